package localstore

import (
	"context"
	"testing"
	"time"
)

func waitForChange(t *testing.T, ch <-chan Change, match func(Change) bool) Change {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-ch:
			if match(c) {
				return c
			}
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}
}

func TestWatcher_EmitsIntervalTicks(t *testing.T) {
	store := openStore(t, t.TempDir())
	w := NewWatcher(store, 20*time.Millisecond, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Subscribe()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	c := waitForChange(t, ch, func(c Change) bool { return c.Key == "" })
	if c.At.IsZero() {
		t.Error("tick must carry a timestamp")
	}
}

func TestWatcher_NotifiesOnCollectionWrite(t *testing.T) {
	dir := t.TempDir()
	store := openStore(t, dir)
	w := NewWatcher(store, time.Hour, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Subscribe()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	repo := NewUserRepository(store)
	if _, err := repo.Create(context.Background(), newUser("1", "alice@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c := waitForChange(t, ch, func(c Change) bool { return c.Key != "" })
	if c.Key != keyUsers {
		t.Errorf("expected change for %q, got %q", keyUsers, c.Key)
	}
}

func TestWatcher_FanOutReachesAllSubscribers(t *testing.T) {
	store := openStore(t, t.TempDir())
	w := NewWatcher(store, time.Hour, testLogger)

	first := w.Subscribe()
	second := w.Subscribe()
	w.publish(Change{Key: keyReports, At: time.Now()})

	for _, ch := range []<-chan Change{first, second} {
		select {
		case c := <-ch:
			if c.Key != keyReports {
				t.Errorf("expected %q, got %q", keyReports, c.Key)
			}
		default:
			t.Error("subscriber did not receive the published change")
		}
	}
}

func TestWatcher_DropsWhenSubscriberLags(t *testing.T) {
	store := openStore(t, t.TempDir())
	w := NewWatcher(store, time.Hour, testLogger)
	ch := w.Subscribe()

	// Overfill the buffer; publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			w.publish(Change{Key: keyReports, At: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a lagging subscriber")
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("expected a full buffer of %d, got %d", subscriberBuffer, len(ch))
	}
}
