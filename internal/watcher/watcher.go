// Package watcher processes documents as they land in a folder.
package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dgallion1/docsum/internal/discover"
)

// DefaultDebounce is how long a file must stay quiet before it is handled.
// PDF writers often create the file and then write it in several bursts.
const DefaultDebounce = 2 * time.Second

// Handler is called once per settled file, one at a time.
type Handler func(ctx context.Context, path string)

// Watcher watches a single folder (not its subfolders) for files matching
// a pattern.
type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
	log      *slog.Logger
}

func New(dir, pattern string, debounce time.Duration, log *slog.Logger) *Watcher {
	if pattern == "" {
		pattern = discover.DefaultPattern
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{dir: dir, pattern: pattern, debounce: debounce, log: log}
}

// Run blocks until ctx is cancelled. Handlers run on the calling goroutine,
// so documents are never processed concurrently.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching folder", "dir", w.dir, "pattern", w.pattern)

	p := newPending()
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !discover.Match(w.pattern, filepath.Base(ev.Name)) {
				continue
			}
			p.touch(ev.Name, time.Now())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)

		case <-timer.C:
			ready, wait := p.settled(time.Now(), w.debounce)
			for _, path := range ready {
				if ctx.Err() != nil {
					return nil
				}
				w.log.Info("file settled", "path", path)
				handle(ctx, path)
			}
			if wait > 0 {
				timer.Reset(wait)
			}
		}
	}
}

// pending tracks the last event time for each file not yet handled.
type pending struct {
	seen map[string]time.Time
}

func newPending() *pending {
	return &pending{seen: make(map[string]time.Time)}
}

func (p *pending) touch(path string, at time.Time) {
	p.seen[path] = at
}

// settled removes and returns, sorted, the files quiet for at least
// debounce. wait is how long until the next file settles, or zero.
func (p *pending) settled(now time.Time, debounce time.Duration) (ready []string, wait time.Duration) {
	for path, at := range p.seen {
		left := debounce - now.Sub(at)
		if left <= 0 {
			ready = append(ready, path)
			delete(p.seen, path)
			continue
		}
		if wait == 0 || left < wait {
			wait = left
		}
	}
	sort.Strings(ready)
	return ready, wait
}
