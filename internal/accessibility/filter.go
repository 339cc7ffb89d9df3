// Package accessibility filters picker palettes down to the colours that meet
// a WCAG contrast threshold against a reference colour.
package accessibility

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/palette"
)

// Level is a WCAG conformance level for normal-size text.
type Level string

const (
	// LevelAA requires a contrast ratio of at least 4.5:1.
	LevelAA Level = "AA"
	// LevelAAA requires a contrast ratio of at least 7:1.
	LevelAAA Level = "AAA"
)

// String implements fmt.Stringer and pflag.Value.
func (l Level) String() string {
	return string(l)
}

// Set implements pflag.Value.
func (l *Level) Set(s string) error {
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}

// ParseLevel parses "AA" or "AAA", case-insensitively. Empty means AA.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AA":
		return LevelAA, nil
	case "AAA":
		return LevelAAA, nil
	default:
		return "", fmt.Errorf("invalid WCAG level %q (valid: AA, AAA)", s)
	}
}

// Threshold returns the minimum contrast ratio for level. Anything other
// than AAA is treated as AA.
func Threshold(level Level) float64 {
	if level == LevelAAA {
		return 7.0
	}
	return 4.5
}

// IsAccessible reports whether fg on bg meets level.
func IsAccessible(fg, bg string, level Level) bool {
	return colour.ContrastRatio(fg, bg) >= Threshold(level)
}

// Report describes the contrast between two colours.
type Report struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	AA         bool    `json:"aa"`
	AAA        bool    `json:"aaa"`
}

// Check computes a Report for fg on bg. Both colours are normalised first,
// so a fully transparent background is measured as white.
func Check(fg, bg string) Report {
	fg, bg = colour.NormalizeToHex(fg), colour.NormalizeToHex(bg)
	ratio := colour.ContrastRatio(fg, bg)
	return Report{
		Foreground: fg,
		Background: bg,
		Ratio:      ratio,
		AA:         ratio >= Threshold(LevelAA),
		AAA:        ratio >= Threshold(LevelAAA),
	}
}

// Filter derives accessible palettes from the original palettes in a store.
type Filter struct {
	originals palette.Reader
	level     Level
}

// NewFilter returns a filter reading originals and testing against level.
func NewFilter(originals palette.Reader, level Level) *Filter {
	if level == "" {
		level = LevelAA
	}
	return &Filter{originals: originals, level: level}
}

// Level returns the level the filter tests against.
func (f *Filter) Level() Level {
	return f.level
}

// BackgroundsForText returns the original background colours that are
// legible behind text in textColour, plus the remove-colour entry.
func (f *Filter) BackgroundsForText(textColour string) (palette.Palette, error) {
	backgrounds, err := f.originals.Backgrounds()
	if err != nil {
		return nil, err
	}

	kept := keep(backgrounds, func(value string) bool {
		return IsAccessible(textColour, value, f.level)
	})
	return palette.EnsureRemoveColour(kept), nil
}

// TextsForBackground returns the original text colours that are legible on
// backgroundColour, plus the remove-colour entry. A white background is the
// editor default and returns the full text palette.
func (f *Filter) TextsForBackground(backgroundColour string) (palette.Palette, error) {
	texts, err := f.originals.Texts()
	if err != nil {
		return nil, err
	}

	if colour.IsWhite(backgroundColour) {
		return palette.EnsureRemoveColour(texts), nil
	}

	kept := keep(texts, func(value string) bool {
		return IsAccessible(value, backgroundColour, f.level)
	})
	return palette.EnsureRemoveColour(kept), nil
}

// keep returns the entries whose value satisfies ok. Sentinel entries are
// not colours and always pass.
func keep(p palette.Palette, ok func(value string) bool) palette.Palette {
	out := make(palette.Palette, 0, len(p))
	for _, e := range p {
		if e.IsRemove() || ok(e.Value) {
			out = append(out, e)
		}
	}
	return out
}
