// Package source provides the places the palette store can read the host's
// configured palettes from: the option registry, a JSON file, or a URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/settings"
	httputil "github.com/jmylchreest/legible/internal/util/http"
)

// Registry reads the text and background palette options.
type Registry struct {
	registry *options.Registry
}

// NewRegistry returns a source backed by r.
func NewRegistry(r *options.Registry) *Registry {
	return &Registry{registry: r}
}

// Palettes implements palette.Source. It is ready once both options are set.
func (s *Registry) Palettes(context.Context) (palette.Palette, palette.Palette, bool, error) {
	text, ok := s.registry.Palette(options.Name(options.TextColours))
	if !ok {
		return nil, nil, false, nil
	}
	background, ok := s.registry.Palette(options.Name(options.BackgroundColours))
	if !ok {
		return nil, nil, false, nil
	}
	return text, background, true, nil
}

// Static always returns the same document.
type Static struct {
	doc settings.Document
}

// NewStatic returns a source serving doc.
func NewStatic(doc settings.Document) *Static {
	return &Static{doc: doc}
}

// Palettes implements palette.Source.
func (s *Static) Palettes(context.Context) (palette.Palette, palette.Palette, bool, error) {
	if !s.doc.Complete() {
		return nil, nil, false, nil
	}
	text, background := s.doc.Palettes()
	return text, background, true, nil
}

// Remote fetches the palette document from an HTTP(S) URL. A 404 or an
// incomplete document means the host is not ready yet.
type Remote struct {
	url     string
	timeout time.Duration
}

// NewRemote returns a source fetching url.
func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{url: url, timeout: timeout}
}

// Palettes implements palette.Source.
func (s *Remote) Palettes(ctx context.Context) (palette.Palette, palette.Palette, bool, error) {
	data, err := httputil.Fetch(ctx, s.url, httputil.FetchOptions{Timeout: s.timeout})
	if errors.Is(err, httputil.ErrNotFound) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	return fromDocument(data)
}

func fromDocument(data []byte) (palette.Palette, palette.Palette, bool, error) {
	doc, err := settings.ParseDocument(data)
	if err != nil {
		return nil, nil, false, err
	}
	if !doc.Complete() {
		return nil, nil, false, nil
	}
	text, background := doc.Palettes()
	return text, background, true, nil
}

// Seeded copies the palettes of an upstream source into the option registry
// and then reads them back through it, so the picker options hold the
// configured lists from the moment the store is initialised.
type Seeded struct {
	upstream palette.Source
	options  *options.Registry
	registry *Registry
}

// NewSeeded returns a source that seeds r from upstream.
func NewSeeded(upstream palette.Source, r *options.Registry) *Seeded {
	return &Seeded{upstream: upstream, options: r, registry: NewRegistry(r)}
}

// Palettes implements palette.Source.
func (s *Seeded) Palettes(ctx context.Context) (palette.Palette, palette.Palette, bool, error) {
	text, background, ok, err := s.upstream.Palettes(ctx)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	if err := s.options.Set(options.Name(options.TextColours), text); err != nil {
		return nil, nil, false, fmt.Errorf("failed to seed text colours: %w", err)
	}
	if err := s.options.Set(options.Name(options.BackgroundColours), background); err != nil {
		return nil, nil, false, fmt.Errorf("failed to seed background colours: %w", err)
	}
	return s.registry.Palettes(ctx)
}

// Changes forwards the upstream source's notifications, if it has any.
func (s *Seeded) Changes() <-chan struct{} {
	if n, ok := s.upstream.(palette.Notifier); ok {
		return n.Changes()
	}
	return nil
}
