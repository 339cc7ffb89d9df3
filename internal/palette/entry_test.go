package palette

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEnsureRemoveColour(t *testing.T) {
	tests := []struct {
		name  string
		input Palette
		want  Palette
	}{
		{
			name:  "empty palette gets sentinel",
			input: Palette{},
			want:  Palette{RemoveEntry()},
		},
		{
			name:  "nil palette gets sentinel",
			input: nil,
			want:  Palette{RemoveEntry()},
		},
		{
			name:  "appended at end",
			input: Palette{NewSwatch("Red", "#FF0000"), NewSwatch("Blue", "#0000FF")},
			want:  Palette{NewSwatch("Red", "#FF0000"), NewSwatch("Blue", "#0000FF"), RemoveEntry()},
		},
		{
			name:  "existing sentinel by value kept in place",
			input: Palette{NewSwatch("Clear", RemoveValue), NewSwatch("Red", "#FF0000")},
			want:  Palette{NewSwatch("Clear", RemoveValue), NewSwatch("Red", "#FF0000")},
		},
		{
			name:  "legacy label counts as sentinel",
			input: Palette{NewSwatch("Red", "#FF0000"), NewSwatch("Remove color", "none")},
			want:  Palette{NewSwatch("Red", "#FF0000"), NewSwatch("Remove color", "none")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureRemoveColour(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EnsureRemoveColour() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEnsureRemoveColourIdempotent(t *testing.T) {
	inputs := []Palette{
		{},
		{NewSwatch("Red", "#FF0000")},
		{NewSwatch("Red", "#FF0000"), RemoveEntry(), NewSwatch("Blue", "#0000FF")},
		{NewSwatch("Remove color", "x")},
	}

	for _, p := range inputs {
		once := EnsureRemoveColour(p)
		twice := EnsureRemoveColour(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("not idempotent: once=%+v twice=%+v", once, twice)
		}
	}
}

func TestEnsureRemoveColourDoesNotAlias(t *testing.T) {
	p := Palette{NewSwatch("Red", "#FF0000"), RemoveEntry()}
	out := EnsureRemoveColour(p)
	out[0].Name = "changed"
	if p[0].Name != "Red" {
		t.Error("EnsureRemoveColour returned a palette sharing storage with its input")
	}
}

func TestPaletteClone(t *testing.T) {
	if Palette(nil).Clone() != nil {
		t.Error("Clone of nil palette should be nil")
	}

	p := Palette{NewSwatch("Red", "#FF0000")}
	c := p.Clone()
	c[0].Value = "#000000"
	if p[0].Value != "#FF0000" {
		t.Error("Clone shares storage with original")
	}
}

func TestEntryJSON(t *testing.T) {
	data, err := json.Marshal(Palette{NewSwatch("Red", "#FF0000"), RemoveEntry()})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"text":"Red","value":"#FF0000","type":"choiceitem"},` +
		`{"text":"Remove Color","value":"remove","type":"choiceitem","icon":"color-swatch-remove-color"}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded Palette
	if err := json.Unmarshal([]byte(`[{"name":"Red","value":"#f00"},{"text":"Clear","value":"remove"}]`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded[0] != NewSwatch("Red", "#f00") {
		t.Errorf("decoded[0] = %+v", decoded[0])
	}
	if decoded[1].Kind != KindRemove || decoded[1].Name != "Clear" {
		t.Errorf("decoded[1] = %+v, want remove kind named Clear", decoded[1])
	}
}
