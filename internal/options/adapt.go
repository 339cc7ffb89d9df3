package options

import (
	"encoding/json"
	"strings"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/settings"
)

// PaletteProcessor turns the shapes a host may hand over for a colour list
// into a palette that carries the remove-colour entry. Accepted shapes:
// palette.Palette, settings.List, a JSON document of either, a flat
// []string of value/name pairs, and decoded JSON ([]any of objects or strings).
func PaletteProcessor(raw any) (any, bool) {
	p, ok := toPalette(raw)
	if !ok {
		return nil, false
	}
	return palette.EnsureRemoveColour(p), true
}

func toPalette(raw any) (palette.Palette, bool) {
	switch v := raw.(type) {
	case palette.Palette:
		return v.Clone(), true
	case settings.List:
		return v.Palette(), true
	case []string:
		return pairsToPalette(v), true
	case string:
		var p palette.Palette
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return nil, false
		}
		return p, true
	case []byte:
		return toPalette(string(v))
	case []any:
		return anyToPalette(v)
	default:
		return nil, false
	}
}

// pairsToPalette maps a flat [value, name, value, name, ...] list. A trailing
// value without a name is named after itself.
func pairsToPalette(items []string) palette.Palette {
	p := make(palette.Palette, 0, (len(items)+1)/2)
	for i := 0; i < len(items); i += 2 {
		value := items[i]
		name := value
		if i+1 < len(items) {
			name = items[i+1]
		}
		if value != palette.RemoveValue && !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		p = append(p, palette.NewSwatch(name, value))
	}
	return palette.Palette(p)
}

func anyToPalette(items []any) (palette.Palette, bool) {
	strs := make([]string, 0, len(items))
	allStrings := true
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			allStrings = false
			break
		}
		strs = append(strs, s)
	}
	if allStrings {
		return pairsToPalette(strs), true
	}

	p := make(palette.Palette, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		value, _ := m["value"].(string)
		name, _ := m["text"].(string)
		if name == "" {
			name, _ = m["name"].(string)
		}
		e := palette.NewSwatch(name, value)
		if value == palette.RemoveValue {
			e.Kind = palette.KindRemove
		}
		p = append(p, e)
	}
	return p, true
}

// ColourString unwraps a colour handed over by an untyped host callback into
// the single string the colour functions accept. Wrapped descriptors (an
// object with a "value" field, or a list whose first element is one) are
// unwrapped; anything unusable becomes black.
func ColourString(v any) string {
	switch c := v.(type) {
	case string:
		if c == "" {
			return colour.Black
		}
		return c
	case map[string]any:
		return ColourString(c["value"])
	case []any:
		if len(c) == 0 {
			return colour.Black
		}
		return ColourString(c[0])
	case palette.Entry:
		return ColourString(c.Value)
	case palette.Palette:
		if len(c) == 0 {
			return colour.Black
		}
		return ColourString(c[0].Value)
	case settings.Colour:
		return ColourString(c.Value)
	default:
		return colour.Black
	}
}
