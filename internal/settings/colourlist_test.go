package settings

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/jmylchreest/legible/internal/i18n"
	"github.com/jmylchreest/legible/internal/palette"
)

func TestValidateColourCode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#000", true},
		{"000", true},
		{"#a1B2c3", true},
		{"a1B2c3", true},
		{"#abcd", false},
		{"#ggg", false},
		{"", false},
		{"##000", false},
		{"rgb(0,0,0)", false},
	}
	for _, tt := range tests {
		if got := ValidateColourCode(tt.input); got != tt.want {
			t.Errorf("ValidateColourCode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestListValidate(t *testing.T) {
	if err := (List{{Name: "Black", Value: "#000"}, {Name: "White", Value: "fff"}}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	l := List{
		{Name: "Black", Value: "#000000"},
		{Name: "", Value: "#FFFFFF"},
		{Name: "Broken", Value: "#12"},
		{Name: "Also black", Value: "#000"},
	}
	err := l.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}

	want := []RowError{
		{Row: 2, Value: "#FFFFFF", InvalidName: true},
		{Row: 3, Value: "#12", InvalidValue: true},
		{Row: 4, Value: "#000", Duplicate: true},
	}
	if !reflect.DeepEqual(verr.Rows, want) {
		t.Errorf("Rows = %+v, want %+v", verr.Rows, want)
	}
	if verr.Error() == "" {
		t.Error("Error() returned empty string")
	}

	i18n.Init("en")
	wantMessages := []string{
		"Row 2: colour name is missing",
		"Invalid hex colour code: #12",
		"Row 4: colour code is already used",
	}
	if got := verr.Messages(); !reflect.DeepEqual(got, wantMessages) {
		t.Errorf("Messages() = %q, want %q", got, wantMessages)
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if len(d) == 0 {
		t.Fatal("Defaults() returned no colours")
	}
	if err := d.Validate(); err != nil {
		t.Errorf("embedded scheme is invalid: %v", err)
	}
}

func TestMergeDefaults(t *testing.T) {
	configured := List{
		{Name: "Brand black", Value: "#000000"},
		{Name: "Brand teal", Value: "#008080"},
	}
	defaults := List{
		{Name: "Black", Value: "#000000"},
		{Name: "White", Value: "#FFFFFF"},
		{Name: "White again", Value: "#FFFFFF"},
	}

	got := MergeDefaults(configured, defaults)
	want := List{
		{Name: "Brand black", Value: "#000000"},
		{Name: "Brand teal", Value: "#008080"},
		{Name: "White", Value: "#FFFFFF"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeDefaults() = %+v, want %+v", got, want)
	}
}

func TestParse(t *testing.T) {
	l, err := Parse([]byte(`[{"name":"Red","value":"#FF0000"}]`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(l) != 1 || l[0].Name != "Red" {
		t.Errorf("Parse() = %+v", l)
	}

	if l, err := Parse([]byte("  ")); err != nil || len(l) != 0 {
		t.Errorf("Parse(blank) = %+v, %v", l, err)
	}
	if _, err := Parse([]byte("{")); err == nil {
		t.Error("Parse(invalid) expected error")
	}
}

func TestListPalette(t *testing.T) {
	got := List{{Name: "Red", Value: "#FF0000"}}.Palette()
	want := palette.Palette{palette.NewSwatch("Red", "#FF0000")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Palette() = %+v, want %+v", got, want)
	}
}

func TestParseForm(t *testing.T) {
	form := url.Values{
		"textcolors_name_1":  {" Black "},
		"textcolors_value_1": {"#000000 "},
		"textcolors_name_2":  {""},
		"textcolors_value_2": {""},
		"textcolors_name_4":  {"Red"},
		"textcolors_value_4": {"#F00"},
		"textcolors_name_30": {"Too far"},
		"other_name_1":       {"Ignored"},
	}

	got, err := ParseForm(form, "textcolors")
	if err != nil {
		t.Fatalf("ParseForm() error = %v", err)
	}
	want := List{
		{Name: "Black", Value: "#000000"},
		{Name: "Red", Value: "#F00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseForm() = %+v, want %+v", got, want)
	}

	if _, err := ParseForm(url.Values{}, "textcolors"); !errors.Is(err, ErrEmptyForm) {
		t.Errorf("ParseForm(empty) error = %v, want ErrEmptyForm", err)
	}
}

func TestDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"textcolors":[{"name":"Black","value":"#000"}]}`))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Complete() {
		t.Error("Complete() = true with backgroundcolors missing")
	}

	doc.BackgroundColours = List{}
	if !doc.Complete() {
		t.Error("Complete() = false with both lists present")
	}

	text, background := doc.Palettes()
	if want := []string{"#000", palette.RemoveValue}; !reflect.DeepEqual(text.Values(), want) {
		t.Errorf("text values = %v, want %v", text.Values(), want)
	}
	if want := []string{palette.RemoveValue}; !reflect.DeepEqual(background.Values(), want) {
		t.Errorf("background values = %v, want %v", background.Values(), want)
	}

	bad := Document{TextColours: List{{Name: "", Value: "#000"}}, BackgroundColours: List{}}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() expected error for missing name")
	}
	if err := DefaultDocument().Validate(); err != nil {
		t.Errorf("DefaultDocument().Validate() = %v", err)
	}
}
