package knowledge

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/finadvisor/pkg/log"
)

// debounce collapses the burst of write events editors emit on save.
const debounce = 300 * time.Millisecond

// Watcher re-ingests documents in a directory as they change.
type Watcher struct {
	dir     string
	svc     *Service
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
	done    chan struct{}
}

func NewWatcher(dir string, svc *Service) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:     dir,
		svc:     svc,
		watcher: w,
		pending: make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}, nil
}

// Start ingests the directory once and then follows changes until ctx is
// cancelled or Shutdown is called.
func (w *Watcher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if _, err := w.svc.IngestDir(ctx, w.dir); err != nil {
		logger.Warn().Err(err).Msg("initial knowledge ingest failed")
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	logger.Info().Str("dir", w.dir).Msg("watching knowledge directory")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !Supported(event.Name) {
				continue
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("knowledge watcher error")
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.cancel(event.Name)
		if err := w.svc.Remove(ctx, event.Name); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("path", event.Name).Msg("failed to drop removed document")
		}
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		w.schedule(ctx, event.Name)
	}
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if _, err := w.svc.IngestFile(ctx, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.FromCtx(ctx).Error().Err(err).Str("path", path).Msg("failed to re-ingest document")
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.watcher.Close()
}
