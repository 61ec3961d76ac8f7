package dataview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestInMemorySessionStoreLifecycle(t *testing.T) {
	store := NewInMemorySessionStore()
	ctx := context.Background()
	session := NewSession("s1", "admin.table.rooms", "user-1", nil)
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.Create(ctx, session); err == nil {
		t.Fatalf("expected duplicate session error")
	}
	got, err := store.Get(ctx, "s1")
	if err != nil || got != session {
		t.Fatalf("expected stored session, got %v %v", got, err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Create(ctx, &Session{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestSessionDoSerializesAccess(t *testing.T) {
	view := NewView(10)
	session := NewSession("s1", "t", "", view)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = session.Do(func(v *View) error {
				_, err := v.Add(Record{})
				return err
			})
		}()
	}
	wg.Wait()
	_ = session.Do(func(v *View) error {
		if len(v.All()) != 50 {
			t.Fatalf("expected 50 rows, got %d", len(v.All()))
		}
		return nil
	})
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestInMemorySessionStoreExpiresIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	store := NewInMemorySessionStore(WithIdleTTL(time.Minute), WithSessionClock(clock.Now))
	ctx := context.Background()

	_ = store.Create(ctx, NewSession("stale", "t", "", nil))
	_ = store.Create(ctx, NewSession("active", "t", "", nil))
	clock.Advance(45 * time.Second)
	if _, err := store.Get(ctx, "active"); err != nil {
		t.Fatalf("expected active session, got %v", err)
	}
	clock.Advance(45 * time.Second)

	if _, err := store.Get(ctx, "stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected idle session to expire, got %v", err)
	}
	if _, err := store.Get(ctx, "active"); err != nil {
		t.Fatalf("touched session should survive, got %v", err)
	}

	clock.Advance(2 * time.Minute)
	_ = store.Create(ctx, NewSession("fresh", "t", "", nil))
	if store.Len() != 1 {
		t.Fatalf("expected sweep on create to leave 1 session, got %d", store.Len())
	}
}

func TestInMemorySessionStoreEvictsLeastRecentlyUsed(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	store := NewInMemorySessionStore(WithMaxSessions(2), WithIdleTTL(0), WithSessionClock(clock.Now))
	ctx := context.Background()

	_ = store.Create(ctx, NewSession("a", "t", "", nil))
	clock.Advance(time.Second)
	_ = store.Create(ctx, NewSession("b", "t", "", nil))
	clock.Advance(time.Second)
	_, _ = store.Get(ctx, "a")
	clock.Advance(time.Second)
	_ = store.Create(ctx, NewSession("c", "t", "", nil))

	if store.Len() != 2 {
		t.Fatalf("expected cap of 2, got %d", store.Len())
	}
	if _, err := store.Get(ctx, "b"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	if _, err := store.Get(ctx, "a"); err != nil {
		t.Fatalf("expected a kept, got %v", err)
	}
}
