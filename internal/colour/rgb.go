// Package colour converts between the textual colour encodings a rich-text
// editor hands us (hex, rgb(), rgba()) and computes WCAG relative luminance
// and contrast ratios.
package colour

import (
	"fmt"
	"image/color"
)

// Canonical hex values used as parse fallbacks.
const (
	Black = "#000000"
	White = "#FFFFFF"
)

// RGB represents a colour as an sRGB triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an upper-case hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// Color converts the triple to an opaque color.RGBA.
func (rgb RGB) Color() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// TripleToHex encodes a triple as "#RRGGBB".
func TripleToHex(rgb RGB) string {
	return rgb.Hex()
}
