// Package editor connects editor change notifications to the accessibility
// filter: each change recomputes the accessible palettes for the current
// selection and publishes them back into the option registry.
package editor

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/palette"
)

// Format names one of the editor's two colour commands.
type Format string

const (
	// ForeColour is the text colour command.
	ForeColour Format = "forecolor"
	// BackColour is the background colour command.
	BackColour Format = "backcolor"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case ForeColour, BackColour:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown colour format %q (valid: %s, %s)", s, ForeColour, BackColour)
	}
}

// Selection is the effective style of the current selection, as CSS colour
// strings (hex, rgb() or rgba()).
type Selection struct {
	Colour           string `json:"color"`
	BackgroundColour string `json:"backgroundColor"`
}

// Event is dispatched after a palette has been republished so the picker can
// refresh, mirroring the editor's TextColorChange event.
type Event struct {
	Name   Format `json:"name"`
	Colour string `json:"color"`
}

// Dispatcher receives events from the handler.
type Dispatcher func(Event)

// Result holds the palettes published for one change.
type Result struct {
	Text        string          `json:"text"`
	Background  string          `json:"background"`
	Backgrounds palette.Palette `json:"backgrounds"`
	Texts       palette.Palette `json:"texts"`
}

// Handler reacts to editor changes.
type Handler struct {
	registry  *options.Registry
	filter    *accessibility.Filter
	originals palette.Reader
	dispatch  Dispatcher
	logger    hclog.Logger
}

// NewHandler creates a handler publishing into registry. dispatch may be nil.
func NewHandler(registry *options.Registry, originals palette.Reader, level accessibility.Level, dispatch Dispatcher, logger hclog.Logger) *Handler {
	if dispatch == nil {
		dispatch = func(Event) {}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{
		registry:  registry,
		filter:    accessibility.NewFilter(originals, level),
		originals: originals,
		dispatch:  dispatch,
		logger:    logger.Named("editor"),
	}
}

// Filter returns the filter the handler uses.
func (h *Handler) Filter() *accessibility.Filter {
	return h.filter
}

// OnChange recomputes both palettes for sel and publishes them.
func (h *Handler) OnChange(sel Selection) (Result, error) {
	text := colour.NormalizeToHex(sel.Colour)
	background := colour.NormalizeToHex(sel.BackgroundColour)

	backgrounds, err := h.filter.BackgroundsForText(text)
	if err != nil {
		return Result{}, fmt.Errorf("failed to filter background colours: %w", err)
	}
	h.registry.Publish(options.Name(options.BackgroundColours), backgrounds)
	h.dispatch(Event{Name: BackColour, Colour: background})

	texts, err := h.filter.TextsForBackground(background)
	if err != nil {
		return Result{}, fmt.Errorf("failed to filter text colours: %w", err)
	}
	h.registry.Publish(options.Name(options.TextColours), texts)
	h.dispatch(Event{Name: ForeColour, Colour: text})

	h.logger.Debug("published accessible palettes",
		"text", text, "background", background,
		"backgrounds", len(backgrounds), "texts", len(texts))

	return Result{
		Text:        text,
		Background:  background,
		Backgrounds: backgrounds,
		Texts:       texts,
	}, nil
}

// Reset restores the full palette that pairs with format: clearing the text
// colour restores all backgrounds, clearing the background restores all text
// colours. When the selection is otherwise at its default (white background,
// or black text) the other palette is restored as well.
func (h *Handler) Reset(format Format, sel Selection) error {
	switch format {
	case ForeColour:
		if err := h.restore(options.BackgroundColours, h.originals.Backgrounds); err != nil {
			return err
		}
		if sel.BackgroundColour == "" || colour.IsWhite(sel.BackgroundColour) {
			return h.restore(options.TextColours, h.originals.Texts)
		}
	case BackColour:
		if err := h.restore(options.TextColours, h.originals.Texts); err != nil {
			return err
		}
		if sel.Colour == "" || colour.NormalizeToHex(sel.Colour) == colour.Black {
			return h.restore(options.BackgroundColours, h.originals.Backgrounds)
		}
	default:
		return fmt.Errorf("unknown colour format %q", format)
	}
	return nil
}

func (h *Handler) restore(key string, read func() (palette.Palette, error)) error {
	p, err := read()
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", key, err)
	}
	h.registry.Publish(options.Name(key), palette.EnsureRemoveColour(p))
	h.logger.Debug("restored original palette", "option", key, "colours", len(p))
	return nil
}
