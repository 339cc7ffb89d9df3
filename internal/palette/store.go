package palette

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultPollInterval is how often Init re-reads a source that is not ready.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultInitTimeout bounds how long Init waits for a source.
	DefaultInitTimeout = 30 * time.Second
)

var (
	// ErrNotInitialised is returned by reads before Init has succeeded.
	ErrNotInitialised = errors.New("palette store not initialised")

	// ErrInitTimeout is returned when the source never became ready.
	ErrInitTimeout = errors.New("timed out waiting for palette configuration")
)

// State is the lifecycle state of a Store.
type State int

const (
	// StatePending means Init has not yet succeeded.
	StatePending State = iota
	// StateReady means the snapshots are frozen and readable.
	StateReady
	// StateFailed means Init gave up.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source supplies the host's configured palettes. ok is false while the host
// has not made them available yet; err is reserved for hard failures, which
// are logged and retried like a not-ready source.
type Source interface {
	Palettes(ctx context.Context) (text, background Palette, ok bool, err error)
}

// Notifier is optionally implemented by sources that can signal a change,
// letting Init re-check before the next poll tick.
type Notifier interface {
	Changes() <-chan struct{}
}

// Reader is the read-only view of the original palettes.
type Reader interface {
	Texts() (Palette, error)
	Backgrounds() (Palette, error)
}

// Store holds the original text and background palettes. They are captured
// once by Init and never change afterwards; readers always get copies.
type Store struct {
	mu          sync.RWMutex
	state       State
	texts       Palette
	backgrounds Palette

	logger       hclog.Logger
	pollInterval time.Duration
	timeout      time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used by the store.
func WithLogger(logger hclog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithTimeout overrides DefaultInitTimeout.
func WithTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewStore creates an uninitialised store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		logger:       hclog.NewNullLogger(),
		pollInterval: DefaultPollInterval,
		timeout:      DefaultInitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("store")
	return s
}

// Init polls src until it reports both palettes, then freezes copies of them.
// Calling Init on a ready store is a no-op. If the source is not ready within
// the configured timeout, or ctx ends first, the store moves to StateFailed
// and ErrInitTimeout is returned; a later Init may try again.
func (s *Store) Init(ctx context.Context, src Source) error {
	if s.State() == StateReady {
		s.logger.Warn("palette store already initialised, skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var changes <-chan struct{}
	if n, ok := src.(Notifier); ok {
		changes = n.Changes()
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	attempts := 0
	for {
		attempts++
		text, background, ok, err := src.Palettes(ctx)
		switch {
		case err != nil:
			s.logger.Debug("palette source failed", "attempt", attempts, "error", err)
		case ok && text != nil && background != nil:
			return s.freeze(text, background, attempts)
		default:
			s.logger.Trace("palette source not ready", "attempt", attempts)
		}

		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.state != StateReady {
				s.state = StateFailed
			}
			s.mu.Unlock()
			s.logger.Error("giving up on palette configuration", "attempts", attempts, "timeout", s.timeout)
			return fmt.Errorf("%w after %d attempts: %w", ErrInitTimeout, attempts, ctx.Err())
		case <-ticker.C:
		case <-changes:
		}
	}
}

func (s *Store) freeze(text, background Palette, attempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		s.logger.Warn("palette store already initialised, skipping")
		return nil
	}

	s.texts = text.Clone()
	s.backgrounds = background.Clone()
	s.state = StateReady
	s.logger.Info("palette store initialised",
		"text_colours", len(s.texts),
		"background_colours", len(s.backgrounds),
		"attempts", attempts)
	return nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Texts returns a copy of the original text palette.
func (s *Store) Texts() (Palette, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrNotInitialised
	}
	return s.texts.Clone(), nil
}

// Backgrounds returns a copy of the original background palette.
func (s *Store) Backgrounds() (Palette, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrNotInitialised
	}
	return s.backgrounds.Clone(), nil
}
