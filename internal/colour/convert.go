package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseToTriple parses a hex ("#abc", "abc", "#aabbcc", "aabbcc") or
// functional ("rgb(r, g, b)", "rgba(r, g, b, a)") colour string.
// Anything it cannot read yields black.
func ParseToTriple(s string) RGB {
	s = strings.TrimSpace(s)
	if isFunctional(s) {
		rgb, _, ok := parseFunctional(s)
		if !ok {
			return RGB{}
		}
		return rgb
	}

	rgb, err := ParseHex(s)
	if err != nil {
		return RGB{}
	}
	return rgb
}

// ParseHex parses a hex colour string into an RGB struct.
// Supports formats: #RRGGBB, RRGGBB, #RGB, RGB.
func ParseHex(hex string) (RGB, error) {
	hex = strings.TrimSpace(hex)
	hex = strings.TrimPrefix(hex, "#")

	// Expand shorthand format (RGB -> RRGGBB).
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour length: expected 3 or 6 characters, got %d", len(hex))
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// NormalizeToHex converts a colour string, typically a computed style value
// such as "rgb(0, 0, 0)", to "#RRGGBB". A fully transparent rgba() value
// (alpha 0) is reported as white. Unparseable input yields black.
func NormalizeToHex(s string) string {
	s = strings.TrimSpace(s)
	if !isFunctional(s) {
		rgb, err := ParseHex(s)
		if err != nil {
			return Black
		}
		return rgb.Hex()
	}

	rgb, transparent, ok := parseFunctional(s)
	if !ok {
		return Black
	}
	if transparent {
		return White
	}
	return rgb.Hex()
}

// IsWhite reports whether s encodes pure white.
func IsWhite(s string) bool {
	return strings.EqualFold(NormalizeToHex(s), White)
}

func isFunctional(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(")
}

// parseFunctional reads the channels of an rgb()/rgba() string. The
// transparent result is true only when the fourth component is the literal
// "0"; spellings such as "0.0" or "0%" are treated as opaque.
func parseFunctional(s string) (rgb RGB, transparent bool, ok bool) {
	open := strings.IndexByte(s, '(')
	body := s[open+1:]
	if end := strings.IndexByte(body, ')'); end >= 0 {
		body = body[:end]
	}

	parts := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	})
	if len(parts) < 3 {
		return RGB{}, false, false
	}

	var channels [3]uint8
	for i := range channels {
		v, ok := parseChannel(parts[i])
		if !ok {
			return RGB{}, false, false
		}
		channels[i] = v
	}

	if len(parts) >= 4 && parts[3] == "0" {
		transparent = true
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, transparent, true
}

// parseChannel reads a single channel, either 0-255 or a percentage, and
// clamps it into range.
func parseChannel(s string) (uint8, bool) {
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 255.0 / 100.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return clamp(math.Round(f*scale)), true
}

func clamp(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
