package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/settings"
)

const testDocument = `{
  "textcolors": [{"name": "Black", "value": "#000000"}],
  "backgroundcolors": [{"name": "Red", "value": "#FF0000"}, {"name": "Yellow", "value": "#FFFF00"}]
}`

func TestRegistrySource(t *testing.T) {
	r := options.NewRegistry()
	options.RegisterPluginOptions(r)
	src := NewRegistry(r)

	if _, _, ok, err := src.Palettes(context.Background()); ok || err != nil {
		t.Fatalf("Palettes() before configuration = ok %v, err %v", ok, err)
	}

	if err := r.Set(options.Name(options.TextColours), []string{"000000", "Black"}); err != nil {
		t.Fatal(err)
	}
	if _, _, ok, _ := src.Palettes(context.Background()); ok {
		t.Fatal("Palettes() ready with only text colours configured")
	}

	if err := r.Set(options.Name(options.BackgroundColours), []string{"FFFF00", "Yellow"}); err != nil {
		t.Fatal(err)
	}
	text, background, ok, err := src.Palettes(context.Background())
	if !ok || err != nil {
		t.Fatalf("Palettes() = ok %v, err %v", ok, err)
	}
	if want := []string{"#000000", palette.RemoveValue}; !reflect.DeepEqual(text.Values(), want) {
		t.Errorf("text = %v, want %v", text.Values(), want)
	}
	if want := []string{"#FFFF00", palette.RemoveValue}; !reflect.DeepEqual(background.Values(), want) {
		t.Errorf("background = %v, want %v", background.Values(), want)
	}
}

func TestStaticSource(t *testing.T) {
	text, background, ok, err := NewStatic(settings.DefaultDocument()).Palettes(context.Background())
	if !ok || err != nil {
		t.Fatalf("Palettes() = ok %v, err %v", ok, err)
	}
	if len(text) != len(settings.Defaults())+1 || len(background) != len(text) {
		t.Errorf("unexpected palette sizes: %d/%d", len(text), len(background))
	}

	if _, _, ok, _ := NewStatic(settings.Document{}).Palettes(context.Background()); ok {
		t.Error("empty document reported ready")
	}
}

func TestRemoteSource(t *testing.T) {
	var ready atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("missing User-Agent header")
		}
		if !ready.Load() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testDocument))
	}))
	defer server.Close()

	src := NewRemote(server.URL, time.Second)

	if _, _, ok, err := src.Palettes(context.Background()); ok || err != nil {
		t.Fatalf("Palettes() on 404 = ok %v, err %v", ok, err)
	}

	ready.Store(true)
	text, background, ok, err := src.Palettes(context.Background())
	if !ok || err != nil {
		t.Fatalf("Palettes() = ok %v, err %v", ok, err)
	}
	if len(text) != 2 || len(background) != 3 {
		t.Errorf("unexpected palette sizes: %d/%d", len(text), len(background))
	}
}

func TestRemoteSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, _, ok, err := NewRemote(server.URL, time.Second).Palettes(context.Background()); ok || err == nil {
		t.Errorf("Palettes() = ok %v, err %v, want error", ok, err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palettes.json")
	src := NewFile(path, nil)

	if _, _, ok, err := src.Palettes(context.Background()); ok || err != nil {
		t.Fatalf("Palettes() for missing file = ok %v, err %v", ok, err)
	}

	if err := os.WriteFile(path, []byte(testDocument), 0o600); err != nil {
		t.Fatal(err)
	}
	text, background, ok, err := src.Palettes(context.Background())
	if !ok || err != nil {
		t.Fatalf("Palettes() = ok %v, err %v", ok, err)
	}
	if text[0].Name != "Black" || background[1].Name != "Yellow" {
		t.Errorf("unexpected palettes: %+v / %+v", text, background)
	}

	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := src.Palettes(context.Background()); err == nil {
		t.Error("Palettes() expected parse error")
	}
}

func TestFileSourceInitialisesStoreWhenWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palettes.json")
	src := NewFile(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := src.Watch(ctx); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer src.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(path, []byte(testDocument), 0o600)
	}()

	store := palette.NewStore(palette.WithPollInterval(20*time.Millisecond), palette.WithTimeout(5*time.Second))
	if err := store.Init(ctx, src); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	backgrounds, err := store.Backgrounds()
	if err != nil {
		t.Fatal(err)
	}
	if len(backgrounds) != 3 {
		t.Errorf("Backgrounds() = %+v", backgrounds)
	}
}

func TestSeededSourceFillsRegistry(t *testing.T) {
	r := options.NewRegistry()
	options.RegisterPluginOptions(r)

	path := filepath.Join(t.TempDir(), "palettes.json")
	file := NewFile(path, nil)
	src := NewSeeded(file, r)

	if _, _, ok, err := src.Palettes(context.Background()); ok || err != nil {
		t.Fatalf("Palettes() before the file exists = ok %v, err %v", ok, err)
	}
	if _, ok := r.Palette(options.Name(options.TextColours)); ok {
		t.Fatal("text colours seeded before the upstream source was ready")
	}
	if src.Changes() != file.Changes() {
		t.Error("Changes() does not forward the upstream notifications")
	}

	if err := os.WriteFile(path, []byte(testDocument), 0o600); err != nil {
		t.Fatal(err)
	}
	store := palette.NewStore(palette.WithPollInterval(10*time.Millisecond), palette.WithTimeout(time.Second))
	if err := store.Init(context.Background(), src); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	text, ok := r.Palette(options.Name(options.TextColours))
	if want := []string{"#000000", palette.RemoveValue}; !ok || !reflect.DeepEqual(text.Values(), want) {
		t.Errorf("text option = %v, want %v", text.Values(), want)
	}
	background, ok := r.Palette(options.Name(options.BackgroundColours))
	if want := []string{"#FF0000", "#FFFF00", palette.RemoveValue}; !ok || !reflect.DeepEqual(background.Values(), want) {
		t.Errorf("background option = %v, want %v", background.Values(), want)
	}

	stored, err := store.Backgrounds()
	if err != nil || !reflect.DeepEqual(stored.Values(), background.Values()) {
		t.Errorf("store backgrounds = %v, %v", stored.Values(), err)
	}
}

func TestSeededSourceWithoutNotifier(t *testing.T) {
	r := options.NewRegistry()
	options.RegisterPluginOptions(r)
	if ch := NewSeeded(NewStatic(settings.DefaultDocument()), r).Changes(); ch != nil {
		t.Errorf("Changes() = %v, want nil for a static source", ch)
	}
}
