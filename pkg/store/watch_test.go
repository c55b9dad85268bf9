package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleCoalescesBurst(t *testing.T) {
	var (
		mu  sync.Mutex
		got []Event
	)
	done := make(chan struct{}, 1)
	send := func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	}

	th := newEventThrottle(10 * time.Millisecond)
	defer th.Stop()
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventChanged, Path: "p"}, send)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("no flush")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
}

func TestThrottleNeverSendsAfterStop(t *testing.T) {
	events := make(chan Event, 1)
	send := func(ev Event) {
		select {
		case events <- ev:
		default:
		}
	}

	th := newEventThrottle(time.Millisecond)
	th.Enqueue(Event{Type: EventChanged}, send)
	th.Stop()
	// the watcher closes its channel right after Stop; a late flush must not
	// send on it.
	close(events)

	th.flush(send)
	th.Enqueue(Event{Type: EventChanged}, send)
	time.Sleep(20 * time.Millisecond)

	_, open := <-events
	assert.False(t, open)
}
