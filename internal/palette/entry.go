// Package palette holds the picker palette model and the frozen store of the
// original, unfiltered text and background palettes.
package palette

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes a normal swatch from the "remove colour" entry.
type Kind int

const (
	// KindSwatch is a regular colour swatch.
	KindSwatch Kind = iota
	// KindRemove is the sentinel that clears the colour.
	KindRemove
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSwatch:
		return "swatch"
	case KindRemove:
		return "remove"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	// RemoveValue is the value carried by the remove-colour sentinel.
	RemoveValue = "remove"
	// RemoveName is the canonical display name of the sentinel.
	RemoveName = "Remove Color"
	// RemoveIcon is the picker icon used for the sentinel.
	RemoveIcon = "color-swatch-remove-color"

	// legacyRemoveName is the label older configurations used for the sentinel.
	legacyRemoveName = "Remove color"

	choiceItem = "choiceitem"
)

// Entry is a single picker swatch.
type Entry struct {
	Name  string
	Value string
	Kind  Kind
}

// NewSwatch returns a normal swatch entry.
func NewSwatch(name, value string) Entry {
	return Entry{Name: name, Value: value, Kind: KindSwatch}
}

// RemoveEntry returns the canonical remove-colour entry.
func RemoveEntry() Entry {
	return Entry{Name: RemoveName, Value: RemoveValue, Kind: KindRemove}
}

// IsRemove reports whether the entry acts as the remove-colour sentinel.
func (e Entry) IsRemove() bool {
	return e.Kind == KindRemove || e.Value == RemoveValue
}

// entryJSON is the choice-item shape the editor's picker consumes.
type entryJSON struct {
	Text  string `json:"text"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
	Icon  string `json:"icon,omitempty"`
	// Name is accepted on input so settings rows ({name, value}) decode directly.
	Name string `json:"name,omitempty"`
}

// MarshalJSON encodes the entry as a picker choice item.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{Text: e.Name, Value: e.Value, Type: choiceItem}
	if e.IsRemove() {
		out.Icon = RemoveIcon
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both choice items ({text, value}) and settings rows ({name, value}).
func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	name := in.Text
	if name == "" {
		name = in.Name
	}
	*e = Entry{Name: name, Value: in.Value, Kind: KindSwatch}
	if in.Value == RemoveValue {
		e.Kind = KindRemove
	}
	return nil
}

// Palette is an ordered list of entries; order is display order.
type Palette []Entry

// Clone returns an independent copy of p. A nil palette clones to nil.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// Values returns the entry values in order.
func (p Palette) Values() []string {
	values := make([]string, len(p))
	for i, e := range p {
		values[i] = e.Value
	}
	return values
}

// HasRemove reports whether p contains a sentinel entry, by value or by legacy label.
func (p Palette) HasRemove() bool {
	for _, e := range p {
		if e.Value == RemoveValue || e.Name == legacyRemoveName {
			return true
		}
	}
	return false
}

// EnsureRemoveColour guarantees the palette offers exactly one way to clear
// the colour. A palette that already carries the sentinel (by value, or by the
// legacy "Remove color" label) is returned as an unchanged copy; otherwise any
// stale "remove" entries are dropped and the canonical entry is appended.
// Applying it twice yields the same palette as applying it once.
func EnsureRemoveColour(p Palette) Palette {
	if p.HasRemove() {
		return p.Clone()
	}

	out := make(Palette, 0, len(p)+1)
	for _, e := range p {
		if e.Value == RemoveValue {
			continue
		}
		out = append(out, e)
	}
	return append(out, RemoveEntry())
}
