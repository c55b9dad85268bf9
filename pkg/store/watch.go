package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventChanged means the stored blob was written, possibly by another process.
	EventChanged EventType = iota

	// EventWatchError means the watcher hit an error; callers should reload anyway.
	EventWatchError
)

// Event is emitted by Watch when the stored blob changes.
type Event struct {
	Type EventType
	Path string
}

// Watch streams change events for the blob file until ctx is cancelled.
// Bursts of writes are coalesced. The channel is closed once ctx is done or
// the watcher fails.
func (a *Adapter) Watch(ctx context.Context) (<-chan Event, error) {
	loc := a.Location()
	if loc == "" {
		return nil, errors.New("store: backend is not file backed")
	}
	dir := filepath.Dir(loc)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	// sqlite touches planner.sqlite-journal and -wal next to the main file.
	base := filepath.Base(loc)
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				a.log.Warn(ctx, "watcher close", "err", err)
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// consumer busy; the pending reload covers this change.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Warn(ctx, "watch error", "err", err)
				throttle.Enqueue(Event{Type: EventWatchError, Path: loc}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(evt.Name), base) {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Enqueue(Event{Type: EventChanged, Path: loc}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so listeners reload once
// per burst of filesystem activity. Once stopped it never calls send again,
// so the consumer channel can be closed right after Stop returns.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]Event
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]Event),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev.Type] = ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

// flush sends under the lock; send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	pending := t.pending
	t.pending = make(map[EventType]Event)
	t.timer = nil

	for _, ev := range pending {
		send(ev)
	}
}

// Stop cancels any pending flush and waits out one already running.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
