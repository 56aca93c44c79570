// Package watch rebuilds a graph whenever its input document changes.
//
// The watcher observes the document's directory rather than the file so
// that editors which save by writing a temp file and renaming it over the
// original are still seen. Bursts of events are coalesced and rebuilds are
// rate limited.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/kgtool/internal/logger"
)

// DefaultInterval is the minimum time between two rebuilds.
const DefaultInterval = 2 * time.Second

// RebuildFunc is called after the watched file changes.
type RebuildFunc func(ctx context.Context) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the minimum time between rebuilds. Zero disables the limit.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d <= 0 {
			w.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		w.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithErrorHandler sets the callback for failed rebuilds. Failures never
// stop the watcher.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher triggers a rebuild when one file changes.
type Watcher struct {
	path    string
	rebuild RebuildFunc
	limiter *rate.Limiter
	onError func(error)
}

// New creates a watcher for path.
func New(path string, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		path:    filepath.Clean(path),
		rebuild: rebuild,
		limiter: rate.NewLimiter(rate.Every(DefaultInterval), 1),
		onError: func(err error) { logger.Warn("rebuild failed: %v", err) },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	logger.Debug("watching %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("change detected: %s", event)

			if err := w.limiter.Wait(ctx); err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					return nil
				}
				return err
			}
			w.drain(fw.Events)

			if err := w.rebuild(ctx); err != nil && ctx.Err() == nil {
				w.onError(err)
			}
		}
	}
}

// relevant reports whether event changes the watched file's content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// drain discards events already queued so a burst triggers one rebuild.
func (w *Watcher) drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
