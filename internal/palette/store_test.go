package palette

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// stubSource becomes ready after readyAfter calls.
type stubSource struct {
	calls      atomic.Int32
	readyAfter int32
	text       Palette
	background Palette
	changes    chan struct{}
}

func (s *stubSource) Palettes(context.Context) (Palette, Palette, bool, error) {
	n := s.calls.Add(1)
	if n < s.readyAfter {
		return nil, nil, false, nil
	}
	return s.text, s.background, true, nil
}

type notifyingSource struct {
	*stubSource
}

func (s notifyingSource) Changes() <-chan struct{} {
	return s.changes
}

func testPalettes() (Palette, Palette) {
	return Palette{NewSwatch("Black", "#000000")},
		Palette{NewSwatch("Red", "#FF0000"), NewSwatch("Yellow", "#FFFF00")}
}

func TestStoreReadsBeforeInit(t *testing.T) {
	s := NewStore()
	if s.State() != StatePending {
		t.Errorf("State() = %s, want pending", s.State())
	}
	if _, err := s.Texts(); !errors.Is(err, ErrNotInitialised) {
		t.Errorf("Texts() error = %v, want ErrNotInitialised", err)
	}
	if _, err := s.Backgrounds(); !errors.Is(err, ErrNotInitialised) {
		t.Errorf("Backgrounds() error = %v, want ErrNotInitialised", err)
	}
}

func TestStoreInitRetriesUntilReady(t *testing.T) {
	text, bg := testPalettes()
	src := &stubSource{readyAfter: 3, text: text, background: bg}
	s := NewStore(WithPollInterval(time.Millisecond), WithTimeout(time.Second))

	if err := s.Init(context.Background(), src); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got := src.calls.Load(); got != 3 {
		t.Errorf("source polled %d times, want 3", got)
	}
	if s.State() != StateReady {
		t.Errorf("State() = %s, want ready", s.State())
	}

	got, err := s.Backgrounds()
	if err != nil {
		t.Fatalf("Backgrounds() error = %v", err)
	}
	if len(got) != 2 || got[1].Name != "Yellow" {
		t.Errorf("Backgrounds() = %+v", got)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	text, bg := testPalettes()
	src := &stubSource{readyAfter: 1, text: text, background: bg}
	s := NewStore()
	if err := s.Init(context.Background(), src); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// Mutating the source after init must not leak in.
	bg[0].Value = "#123456"

	first, _ := s.Backgrounds()
	first[0].Name = "mutated"

	second, _ := s.Backgrounds()
	if second[0].Name != "Red" || second[0].Value != "#FF0000" {
		t.Errorf("snapshot was mutated: %+v", second[0])
	}
	if len(second) != 2 {
		t.Errorf("snapshot length = %d, want 2", len(second))
	}
}

func TestStoreInitTwiceIsNoop(t *testing.T) {
	text, bg := testPalettes()
	s := NewStore()
	if err := s.Init(context.Background(), &stubSource{readyAfter: 1, text: text, background: bg}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	other := &stubSource{readyAfter: 1, text: Palette{}, background: Palette{}}
	if err := s.Init(context.Background(), other); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if other.calls.Load() != 0 {
		t.Error("second Init() consulted its source")
	}
	got, _ := s.Texts()
	if len(got) != 1 {
		t.Errorf("Texts() = %+v, want original snapshot", got)
	}
}

func TestStoreInitTimeout(t *testing.T) {
	src := &stubSource{readyAfter: 1 << 30}
	s := NewStore(WithPollInterval(time.Millisecond), WithTimeout(20*time.Millisecond))

	err := s.Init(context.Background(), src)
	if !errors.Is(err, ErrInitTimeout) {
		t.Fatalf("Init() error = %v, want ErrInitTimeout", err)
	}
	if s.State() != StateFailed {
		t.Errorf("State() = %s, want failed", s.State())
	}
	if src.calls.Load() < 2 {
		t.Errorf("source polled %d times, expected retries", src.calls.Load())
	}
}

func TestStoreInitWakesOnChange(t *testing.T) {
	text, bg := testPalettes()
	src := notifyingSource{&stubSource{readyAfter: 2, text: text, background: bg, changes: make(chan struct{}, 1)}}
	s := NewStore(WithPollInterval(time.Hour), WithTimeout(5*time.Second))

	src.changes <- struct{}{}
	if err := s.Init(context.Background(), src); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if s.State() != StateReady {
		t.Errorf("State() = %s, want ready", s.State())
	}
}
