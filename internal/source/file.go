package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/legible/internal/palette"
)

// File reads the palette document from a JSON file. A missing file is not
// an error: the host simply has not written its configuration yet.
type File struct {
	path   string
	logger hclog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	changes chan struct{}
}

// NewFile returns a source reading path.
func NewFile(path string, logger hclog.Logger) *File {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &File{
		path:    path,
		logger:  logger.Named("source.file"),
		changes: make(chan struct{}, 1),
	}
}

// Palettes implements palette.Source.
func (f *File) Palettes(context.Context) (palette.Palette, palette.Palette, bool, error) {
	data, err := os.ReadFile(f.path) // #nosec G304 - user-specified configuration file
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return fromDocument(data)
}

// Watch starts watching the file's directory so Changes fires when the file
// is created or written. It stops when ctx is done or Close is called.
func (f *File) Watch(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	f.watcher = w
	f.logger.Debug("watching for palette configuration", "path", f.path)

	go f.loop(ctx, w)
	return nil
}

func (f *File) loop(ctx context.Context, w *fsnotify.Watcher) {
	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			f.Close()
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			f.logger.Trace("palette configuration changed", "op", event.Op.String())
			select {
			case f.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			f.logger.Warn("watcher error", "error", err)
		}
	}
}

// Changes implements palette.Notifier.
func (f *File) Changes() <-chan struct{} {
	return f.changes
}

// Close stops watching.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	f.watcher = nil
	return err
}
