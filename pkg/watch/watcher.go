package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"demystify-mtg/demystify/pkg/telemetry/logging"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 100 * time.Millisecond

// Config contains configuration for the corpus watcher.
type Config struct {
	// Path is the corpus file to watch.
	Path string

	// Debounce is the time to wait after the last change before calling
	// the change handler.
	// Default: 100ms
	Debounce time.Duration
}

// CorpusWatcher calls a handler whenever the corpus file changes.
//
// The file's directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it over the original
// keep triggering reloads.
type CorpusWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	path     string
	debounce *Debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for cfg.Path. The file must exist.
func New(cfg Config, logger *logging.Logger) (*CorpusWatcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watch path cannot be empty")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Nop()
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", cfg.Path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat corpus: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("corpus path %q is a directory", cfg.Path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &CorpusWatcher{
		watcher:  w,
		logger:   logger,
		path:     abs,
		debounce: NewDebouncer(cfg.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is canceled or Stop is called, calling onChange
// after each debounced burst of changes to the corpus file. Handler errors
// are logged and do not stop the watcher.
func (cw *CorpusWatcher) Watch(ctx context.Context, onChange func(context.Context) error) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	cw.running = true
	cw.mu.Unlock()
	defer close(cw.doneCh)

	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(cw.path), err)
	}

	cw.logger.Info("corpus watcher started", "path", cw.path)

	// Handler runs are serialized so two reloads never overlap.
	var handlerMu sync.Mutex
	reload := func() {
		handlerMu.Lock()
		defer handlerMu.Unlock()

		if ctx.Err() != nil {
			return
		}
		cw.logger.Info("corpus changed, re-running", "path", cw.path)
		if err := onChange(ctx); err != nil {
			cw.logger.Error("corpus reload failed", "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			cw.debounce.Stop()
			cw.logger.Info("corpus watcher stopped")
			return nil

		case <-cw.stopCh:
			cw.debounce.Stop()
			cw.logger.Info("corpus watcher stopped")
			return nil

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !cw.relevant(event) {
				continue
			}
			cw.logger.Debug("corpus event", "op", event.Op.String())
			cw.debounce.Trigger(reload)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			cw.logger.Warn("file watcher error", "error", err)
		}
	}
}

// relevant reports whether event changes the contents of the corpus file.
func (cw *CorpusWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Stop stops a running watcher and releases the fsnotify handle. It is
// safe to call on a watcher that was never started.
func (cw *CorpusWatcher) Stop() error {
	cw.mu.Lock()
	running := cw.running
	select {
	case <-cw.stopCh:
		cw.mu.Unlock()
		return nil
	default:
		close(cw.stopCh)
	}
	cw.mu.Unlock()

	if running {
		<-cw.doneCh
	}
	cw.debounce.Stop()

	if err := cw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
