package localstore

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const subscriberBuffer = 16

// Change is a store change notification delivered to subscribers.
type Change struct {
	// Key is the collection that changed ("users", "reports",
	// "current_user"). Empty for interval ticks.
	Key string
	At  time.Time
}

// Watcher publishes store change notifications. File events from an fsnotify
// watch on the data directory cover writers in other processes; a
// fixed-interval tick is emitted as well so readers built on periodic
// re-reads keep working unchanged.
type Watcher struct {
	store    *Store
	interval time.Duration
	log      zerolog.Logger

	mu   sync.Mutex
	subs []chan Change
}

// NewWatcher creates a Watcher emitting ticks every interval.
func NewWatcher(store *Store, interval time.Duration, log zerolog.Logger) *Watcher {
	return &Watcher{store: store, interval: interval, log: log}
}

// Subscribe registers a new subscriber. Notifications are dropped rather than
// block when the subscriber lags behind.
func (w *Watcher) Subscribe() <-chan Change {
	ch := make(chan Change, subscriberBuffer)
	w.mu.Lock()
	w.subs = append(w.subs, ch)
	w.mu.Unlock()
	return ch
}

// Start launches the watch loop. It stops when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.store.Dir()); err != nil {
		fw.Close()
		return err
	}
	go w.run(ctx, fw)
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			// Temp and quarantine files do not carry the .json suffix.
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			w.publish(Change{Key: strings.TrimSuffix(name, ".json"), At: time.Now()})
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("store watch error")
		case t := <-ticker.C:
			w.publish(Change{At: t})
		}
	}
}

func (w *Watcher) publish(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
