// Package preview renders contrast grids: every text colour drawn on every
// background colour, labelled with its contrast ratio and WCAG verdict.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/palette"
)

// Layout in pixels.
const (
	CellWidth    = 112
	CellHeight   = 40
	LabelWidth   = 128
	HeaderHeight = 24
	padding      = 6
)

var (
	labelBackground = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
	labelText       = color.RGBA{A: 0xFF}
	passMark        = color.RGBA{R: 0x1B, G: 0x7F, B: 0x3B, A: 0xFF}
	failMark        = color.RGBA{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF}
)

// Grid is a rendered contrast grid. Rows are text colours, columns are
// background colours. Remove-colour entries are skipped.
type Grid struct {
	Texts       palette.Palette
	Backgrounds palette.Palette
	Level       accessibility.Level
}

// NewGrid builds a grid from the two palettes.
func NewGrid(texts, backgrounds palette.Palette, level accessibility.Level) *Grid {
	return &Grid{
		Texts:       swatches(texts),
		Backgrounds: swatches(backgrounds),
		Level:       level,
	}
}

func swatches(p palette.Palette) palette.Palette {
	out := make(palette.Palette, 0, len(p))
	for _, e := range p {
		if !e.IsRemove() {
			out = append(out, e)
		}
	}
	return out
}

// Bounds returns the image size for the grid.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0,
		LabelWidth+CellWidth*len(g.Backgrounds),
		HeaderHeight+CellHeight*len(g.Texts))
}

// Render draws the grid.
func (g *Grid) Render() *image.RGBA {
	img := image.NewRGBA(g.Bounds())
	draw.Draw(img, img.Bounds(), image.NewUniform(labelBackground), image.Point{}, draw.Src)

	for col, bg := range g.Backgrounds {
		x := LabelWidth + col*CellWidth
		drawText(img, truncate(bg.Name, CellWidth), x+padding, HeaderHeight-padding, labelText)
	}

	for row, fg := range g.Texts {
		y := HeaderHeight + row*CellHeight
		drawText(img, truncate(fg.Name, LabelWidth), padding, y+CellHeight/2+4, labelText)

		fgRGB := colour.ParseToTriple(fg.Value)
		for col, bg := range g.Backgrounds {
			x := LabelWidth + col*CellWidth
			g.renderCell(img, image.Rect(x, y, x+CellWidth, y+CellHeight), fgRGB, fg.Value, bg.Value)
		}
	}

	return img
}

func (g *Grid) renderCell(img *image.RGBA, cell image.Rectangle, fgRGB colour.RGB, fg, bg string) {
	draw.Draw(img, cell, image.NewUniform(colour.ParseToTriple(bg).Color()), image.Point{}, draw.Src)

	ratio := colour.ContrastRatio(fg, bg)
	drawText(img, fmt.Sprintf("Aa %.2f", ratio), cell.Min.X+padding, cell.Min.Y+CellHeight/2+4, fgRGB.Color())

	mark := failMark
	if ratio >= accessibility.Threshold(g.Level) {
		mark = passMark
	}
	corner := image.Rect(cell.Max.X-padding-4, cell.Min.Y+padding, cell.Max.X-padding, cell.Min.Y+padding+4)
	draw.Draw(img, corner, image.NewUniform(mark), image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// truncate shortens s so it fits in width pixels of the 7px-wide face.
func truncate(s string, width int) string {
	limit := (width - 2*padding) / basicfont.Face7x13.Advance
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "~"
}

// Encode writes the rendered grid as PNG.
func (g *Grid) Encode(w io.Writer) error {
	if err := png.Encode(w, g.Render()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WriteFile renders the grid to a PNG file at path.
func (g *Grid) WriteFile(path string) error {
	if len(g.Texts) == 0 || len(g.Backgrounds) == 0 {
		return fmt.Errorf("nothing to render: %d text and %d background colours", len(g.Texts), len(g.Backgrounds))
	}

	file, err := os.Create(path) // #nosec G304 - user-specified output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := g.Encode(file); err != nil {
		return err
	}
	return file.Close()
}
