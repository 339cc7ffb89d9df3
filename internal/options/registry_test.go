package options

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/settings"
)

func TestName(t *testing.T) {
	if got := Name(TextColours); got != "tiny_accessibilityfontcolor:textcolors" {
		t.Errorf("Name() = %q", got)
	}
}

func TestRegistryUnregistered(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) ok = true")
	}
	if err := r.Set("missing", 1); err == nil {
		t.Error("Set(missing) expected error")
	}
}

func TestRegistryPaletteOption(t *testing.T) {
	r := NewRegistry()
	RegisterPluginOptions(r)
	name := Name(BackgroundColours)

	if _, ok := r.Palette(name); ok {
		t.Fatal("palette option should be unconfigured before Set")
	}

	if err := r.Set(name, settings.List{{Name: "Red", Value: "#FF0000"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok := r.Palette(name)
	if !ok {
		t.Fatal("Palette() ok = false after Set")
	}
	want := palette.Palette{palette.NewSwatch("Red", "#FF0000"), palette.RemoveEntry()}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Palette() = %+v, want %+v", got, want)
	}

	if err := r.Set(name, 42); err == nil {
		t.Error("Set(42) expected invalid value error")
	}
}

func TestRegistryBoolOption(t *testing.T) {
	r := NewRegistry()
	RegisterPluginOptions(r)
	name := Name(TextColourPicker)

	if r.Bool(name) {
		t.Error("picker default should be false")
	}
	if err := r.Set(name, true); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !r.Bool(name) {
		t.Error("Bool() = false after Set(true)")
	}
	if err := r.Set(name, "yes"); err == nil {
		t.Error("Set(\"yes\") expected error")
	}
}

func TestRegistryPublish(t *testing.T) {
	r := NewRegistry()
	RegisterPluginOptions(r)
	name := Name(TextColours)
	if err := r.Set(name, []string{"000000", "Black"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	filtered := palette.Palette{palette.RemoveEntry()}
	r.Publish(name, filtered)
	filtered[0].Name = "mutated"

	got, ok := r.Palette(name)
	if !ok || len(got) != 1 || got[0].Name != palette.RemoveName {
		t.Errorf("Palette() after Publish = %+v, %v", got, ok)
	}

	got[0].Name = "mutated again"
	again, _ := r.Palette(name)
	if again[0].Name != palette.RemoveName {
		t.Error("published palette is shared with readers")
	}

	if names := r.Names(); len(names) != 4 {
		t.Errorf("Names() = %v", names)
	}
}

func TestPaletteProcessorShapes(t *testing.T) {
	var decoded any
	if err := json.Unmarshal([]byte(`[{"name":"Red","value":"#FF0000"},{"text":"Clear","value":"remove"}]`), &decoded); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "palette", raw: palette.Palette{palette.NewSwatch("Red", "#FF0000")}, want: []string{"#FF0000", "remove"}},
		{name: "settings list", raw: settings.List{{Name: "Red", Value: "#F00"}}, want: []string{"#F00", "remove"}},
		{name: "value name pairs", raw: []string{"FF0000", "Red", "#00FF00", "Green"}, want: []string{"#FF0000", "#00FF00", "remove"}},
		{name: "odd pairs", raw: []string{"FF0000", "Red", "0000FF"}, want: []string{"#FF0000", "#0000FF", "remove"}},
		{name: "json string", raw: `[{"name":"Red","value":"#FF0000"}]`, want: []string{"#FF0000", "remove"}},
		{name: "decoded objects keep sentinel", raw: decoded, want: []string{"#FF0000", "remove"}},
		{name: "decoded strings", raw: []any{"FF0000", "Red"}, want: []string{"#FF0000", "remove"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := PaletteProcessor(tt.raw)
			if !ok {
				t.Fatal("PaletteProcessor() valid = false")
			}
			if got := v.(palette.Palette).Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []any{nil, 3, "not json", []any{1, 2}} {
		if _, ok := PaletteProcessor(bad); ok {
			t.Errorf("PaletteProcessor(%v) valid = true", bad)
		}
	}
}

func TestColourString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "plain string", in: "#123456", want: "#123456"},
		{name: "rgb string", in: "rgb(1, 2, 3)", want: "rgb(1, 2, 3)"},
		{name: "empty string", in: "", want: "#000000"},
		{name: "wrapped object", in: map[string]any{"value": "#ABCDEF"}, want: "#ABCDEF"},
		{name: "object without value", in: map[string]any{"text": "x"}, want: "#000000"},
		{name: "list of objects", in: []any{map[string]any{"value": "#111111"}}, want: "#111111"},
		{name: "empty list", in: []any{}, want: "#000000"},
		{name: "entry", in: palette.NewSwatch("Red", "#FF0000"), want: "#FF0000"},
		{name: "settings colour", in: settings.Colour{Name: "Red", Value: "#F00"}, want: "#F00"},
		{name: "number", in: 12, want: "#000000"},
		{name: "nil", in: nil, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColourString(tt.in); got != tt.want {
				t.Errorf("ColourString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
