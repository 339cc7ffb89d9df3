// Package options is the host-facing option registry the editor reads its
// picker palettes from. Options are registered with a default and a
// processor that turns whatever raw value the host supplies into the typed
// value readers see.
package options

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jmylchreest/legible/internal/palette"
)

// PluginName is the editor plugin the options belong to.
const PluginName = "tiny_accessibilityfontcolor"

// Option keys, unprefixed.
const (
	TextColours            = "textcolors"
	BackgroundColours      = "backgroundcolors"
	TextColourPicker       = "textcolorpicker"
	BackgroundColourPicker = "backgroundcolorpicker"
)

// Name returns the fully qualified option name for key.
func Name(key string) string {
	return PluginName + ":" + key
}

// Processor converts a raw option value. valid is false when raw cannot be used.
type Processor func(raw any) (value any, valid bool)

// Option describes a registered option.
type Option struct {
	Default   any
	Processor Processor
}

type entry struct {
	opt    Option
	raw    any
	hasRaw bool
}

// Registry stores options by name. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds or replaces the option definition for name. A raw value
// already set for name is kept and will be run through the new processor.
func (r *Registry) Register(name string, opt Option) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[name]; ok {
		e.opt = opt
		return
	}
	r.entries[name] = &entry{opt: opt}
}

// Set stores the raw host value for a registered option.
func (r *Registry) Set(name string, raw any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("option %q is not registered", name)
	}
	if e.opt.Processor != nil {
		if _, valid := e.opt.Processor(raw); !valid {
			return fmt.Errorf("invalid value for option %q", name)
		}
	}
	e.raw = raw
	e.hasRaw = true
	return nil
}

// Get returns the processed value of name. Without a valid raw value the
// default is returned; ok is false when there is nothing to return.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	if e.hasRaw {
		if e.opt.Processor == nil {
			return e.raw, true
		}
		if v, valid := e.opt.Processor(e.raw); valid {
			return v, true
		}
	}
	return e.opt.Default, e.opt.Default != nil
}

// Palette returns name's value as a palette copy.
func (r *Registry) Palette(name string) (palette.Palette, bool) {
	v, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	p, ok := v.(palette.Palette)
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Bool returns name's value as a bool, false when unset.
func (r *Registry) Bool(name string) bool {
	v, _ := r.Get(name)
	b, _ := v.(bool)
	return b
}

// Publish replaces name with an option that always yields p.
func (r *Registry) Publish(name string, p palette.Palette) {
	frozen := p.Clone()
	r.Register(name, Option{
		Default: frozen,
		Processor: func(any) (any, bool) {
			return frozen.Clone(), true
		},
	})
}

// Names returns the registered option names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterPluginOptions registers the plugin's palette and picker options.
// Palette options have no default and stay unconfigured until the host
// sets them.
func RegisterPluginOptions(r *Registry) {
	for _, key := range []string{TextColours, BackgroundColours} {
		r.Register(Name(key), Option{Processor: PaletteProcessor})
	}
	for _, key := range []string{TextColourPicker, BackgroundColourPicker} {
		r.Register(Name(key), Option{Default: false, Processor: BoolProcessor})
	}
}

// BoolProcessor accepts bool values only.
func BoolProcessor(raw any) (any, bool) {
	b, ok := raw.(bool)
	return b, ok
}
