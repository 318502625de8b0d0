// Package watch re-parses a session report file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/logging"
	"go.uber.org/zap"
)

// DefaultDebounce absorbs the burst of events an editor produces per save.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the result of every parse. err is a read or parse error.
type Handler func(summary *hunt.Summary, err error)

type Watcher struct {
	path     string
	opts     hunt.Options
	logger   *zap.Logger
	Debounce time.Duration

	last    string
	hasLast bool
}

func New(path string, opts hunt.Options, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Watcher{
		path:     abs,
		opts:     opts,
		logger:   logging.OrNop(logger).Named("watch"),
		Debounce: DefaultDebounce,
	}, nil
}

// Run parses the file once and again after every change, until ctx is done.
// The parent directory is watched so that editors replacing the file on save
// are followed.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching report", zap.String("path", w.path))
	w.load(handle)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.load(handle)
		}
	}
}

// load reads and parses the file, skipping saves that left the text as it was.
func (w *Watcher) load(handle Handler) {
	b, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("read report", zap.String("path", w.path), zap.Error(err))
		handle(nil, err)
		return
	}
	text := string(b)
	if w.hasLast && text == w.last {
		return
	}
	w.last, w.hasLast = text, true

	summary, err := hunt.Parse(text, w.opts)
	if err != nil {
		w.logger.Debug("report rejected", zap.String("path", w.path), zap.Error(err))
	}
	handle(summary, err)
}
