// Package settings manages the admin-configured list of named colour swatches:
// validation, the embedded default scheme, and parsing of settings form posts.
package settings

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/legible/internal/i18n"
	"github.com/jmylchreest/legible/internal/palette"
)

const (
	// maxFormRows caps how many numbered rows ParseForm inspects.
	maxFormRows = 100
	// maxFormGap stops ParseForm after this many consecutive missing rows.
	maxFormGap = 10
)

//go:embed colorscheme.json
var defaultScheme []byte

var colourCodePattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{3}$|^#?[0-9A-Fa-f]{6}$`)

// Colour is one configured swatch.
type Colour struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// List is an ordered colour list as stored in configuration.
type List []Colour

// ValidateColourCode reports whether s is a 3- or 6-digit hex code, with or without '#'.
func ValidateColourCode(s string) bool {
	return colourCodePattern.MatchString(s)
}

// RowError describes what is wrong with one row of a list.
type RowError struct {
	Row          int // 1-based
	Value        string
	InvalidName  bool
	InvalidValue bool
	Duplicate    bool
}

// ValidationError lists the invalid rows of a colour list.
type ValidationError struct {
	Rows []RowError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		var problems []string
		if r.InvalidName {
			problems = append(problems, "missing name")
		}
		if r.InvalidValue {
			problems = append(problems, "invalid colour code")
		}
		if r.Duplicate {
			problems = append(problems, "duplicate colour code")
		}
		parts = append(parts, fmt.Sprintf("row %d: %s", r.Row, strings.Join(problems, ", ")))
	}
	return "invalid colour list: " + strings.Join(parts, "; ")
}

// Messages returns one localized message per problem, in row order.
func (e *ValidationError) Messages() []string {
	var out []string
	for _, r := range e.Rows {
		row := map[string]any{"Row": r.Row}
		if r.InvalidName {
			out = append(out, i18n.Td("errorNameMissing", "Row {{.Row}}: colour name is missing", row))
		}
		if r.InvalidValue {
			out = append(out, i18n.Td("colorPickerErrHexCode", "Invalid hex colour code: {{.Value}}", map[string]any{"Value": r.Value}))
		}
		if r.Duplicate {
			out = append(out, i18n.Td("errorDuplicate", "Row {{.Row}}: colour code is already used", row))
		}
	}
	return out
}

// Validate checks every row has a name and a valid, unique colour code.
// It returns a *ValidationError describing all failing rows.
func (l List) Validate() error {
	var rows []RowError
	seen := make(map[string]int, len(l))

	for i, c := range l {
		r := RowError{Row: i + 1, Value: c.Value}
		r.InvalidName = strings.TrimSpace(c.Name) == ""
		r.InvalidValue = !ValidateColourCode(c.Value)
		if !r.InvalidValue {
			key := normalise(c.Value)
			if _, dup := seen[key]; dup {
				r.Duplicate = true
			}
			seen[key] = i
		}
		if r.InvalidName || r.InvalidValue || r.Duplicate {
			rows = append(rows, r)
		}
	}

	if len(rows) > 0 {
		return &ValidationError{Rows: rows}
	}
	return nil
}

// normalise folds a colour code to "#rrggbb" for comparison.
func normalise(v string) string {
	v = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(v), "#"))
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	return "#" + v
}

// Palette converts the list to picker entries, keeping order.
func (l List) Palette() palette.Palette {
	p := make(palette.Palette, 0, len(l))
	for _, c := range l {
		p = append(p, palette.NewSwatch(c.Name, c.Value))
	}
	return p
}

// Parse decodes a JSON colour list. Empty input yields an empty list.
func Parse(data []byte) (List, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return List{}, nil
	}
	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse colour list: %w", err)
	}
	return l, nil
}

// Defaults returns the built-in colour scheme.
func Defaults() List {
	l, err := Parse(defaultScheme)
	if err != nil {
		panic(fmt.Sprintf("embedded colour scheme is invalid: %v", err))
	}
	return l
}

// MergeDefaults returns configured followed by every default whose value is
// not already configured. Configured entries win over defaults with the same
// value; values are compared exactly.
func MergeDefaults(configured, defaults List) List {
	out := make(List, 0, len(configured)+len(defaults))
	out = append(out, configured...)

	existing := make(map[string]struct{}, len(out))
	for _, c := range out {
		existing[c.Value] = struct{}{}
	}
	for _, c := range defaults {
		if _, ok := existing[c.Value]; ok {
			continue
		}
		out = append(out, c)
		existing[c.Value] = struct{}{}
	}
	return out
}

// ErrEmptyForm is returned by ParseForm when no rows were submitted.
var ErrEmptyForm = errors.New("no colour rows submitted")

// ParseForm collects the rows of a settings form post. Fields are named
// "<setting>_name_N" and "<setting>_value_N" with N counting from 1. Values
// are trimmed, rows with neither name nor value are skipped, and scanning
// stops after a run of missing rows.
func ParseForm(form url.Values, setting string) (List, error) {
	var l List
	gap := 0

	for i := 1; i <= maxFormRows; i++ {
		suffix := strconv.Itoa(i)
		name, hasName := lookup(form, setting+"_name_"+suffix)
		value, hasValue := lookup(form, setting+"_value_"+suffix)

		if !hasName && !hasValue {
			gap++
			if gap >= maxFormGap {
				break
			}
			continue
		}
		gap = 0

		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" && value == "" {
			continue
		}
		l = append(l, Colour{Name: name, Value: value})
	}

	if len(l) == 0 {
		return List{}, ErrEmptyForm
	}
	return l, nil
}

func lookup(form url.Values, key string) (string, bool) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Document is the on-disk and over-the-wire shape of the plugin's palette
// configuration.
type Document struct {
	TextColours       List `json:"textcolors"`
	BackgroundColours List `json:"backgroundcolors"`
}

// ParseDocument decodes a palette configuration document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse palette configuration: %w", err)
	}
	return doc, nil
}

// Complete reports whether both palettes are present.
func (d Document) Complete() bool {
	return d.TextColours != nil && d.BackgroundColours != nil
}

// Validate validates both lists.
func (d Document) Validate() error {
	if err := d.TextColours.Validate(); err != nil {
		return fmt.Errorf("textcolors: %w", err)
	}
	if err := d.BackgroundColours.Validate(); err != nil {
		return fmt.Errorf("backgroundcolors: %w", err)
	}
	return nil
}

// Palettes converts both lists to picker palettes carrying the remove-colour entry.
func (d Document) Palettes() (text, background palette.Palette) {
	return palette.EnsureRemoveColour(d.TextColours.Palette()),
		palette.EnsureRemoveColour(d.BackgroundColours.Palette())
}

// DefaultDocument uses the built-in scheme for both palettes.
func DefaultDocument() Document {
	return Document{TextColours: Defaults(), BackgroundColours: Defaults()}
}
