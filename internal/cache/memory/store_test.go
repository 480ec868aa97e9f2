package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock { return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)} }

func TestSetGet_HitMiss(t *testing.T) {
	c := NewStore(2, 5*time.Minute)
	ctx := context.Background()

	var got domain.Order
	if c.Get(ctx, "order:tracking:T1", &got) {
		t.Fatalf("expected miss before Set")
	}

	_ = c.Set(ctx, "order:tracking:T1", domain.Order{ID: "id-1", TrackingNumber: "T1"}, 0)
	if !c.Get(ctx, "order:tracking:T1", &got) || got.ID != "id-1" {
		t.Fatalf("expected hit for id-1, got %+v", got)
	}
}

func TestTTL_PerKeyExpiry(t *testing.T) {
	clock := newClock()
	c := NewStore(10, time.Hour, WithClock(clock.Now))
	ctx := context.Background()

	_ = c.Set(ctx, "short", "v", time.Minute)
	_ = c.Set(ctx, "long", "v", 0) // TTL по умолчанию

	var v string
	if !c.Get(ctx, "short", &v) {
		t.Fatalf("expected hit right after Set")
	}

	clock.Advance(time.Minute)
	if c.Get(ctx, "short", &v) {
		t.Fatalf("expected miss after TTL expires")
	}
	if !c.Get(ctx, "long", &v) {
		t.Fatalf("default TTL must outlive the short one")
	}
}

func TestGet_DoesNotSlideTTL(t *testing.T) {
	clock := newClock()
	c := NewStore(10, time.Hour, WithClock(clock.Now))
	ctx := context.Background()

	_ = c.Set(ctx, "k", 1, 10*time.Second)
	var v int
	clock.Advance(6 * time.Second)
	_ = c.Get(ctx, "k", &v)
	clock.Advance(6 * time.Second)
	if c.Get(ctx, "k", &v) {
		t.Fatalf("reads must not extend TTL")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewStore(2, time.Hour)
	ctx := context.Background()

	_ = c.Set(ctx, "A", "a", 0)
	_ = c.Set(ctx, "B", "b", 0)
	// A сделать «свежим»
	var v string
	if !c.Get(ctx, "A", &v) {
		t.Fatalf("expected hit for A")
	}
	// Добавляем C — вытеснит B (самый старый)
	_ = c.Set(ctx, "C", "c", 0)

	if c.Get(ctx, "B", &v) {
		t.Fatalf("expected B to be evicted")
	}
	if !c.Get(ctx, "A", &v) || c.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestEviction_PrefersExpired(t *testing.T) {
	clock := newClock()
	c := NewStore(2, time.Hour, WithClock(clock.Now))
	ctx := context.Background()

	_ = c.Set(ctx, "old", "x", time.Hour)
	_ = c.Set(ctx, "fresh-but-short", "x", time.Second)
	var v string
	_ = c.Get(ctx, "old", &v) // old теперь самый свежий по LRU

	clock.Advance(2 * time.Second)
	_ = c.Set(ctx, "new", "x", 0)

	if !c.Get(ctx, "old", &v) || !c.Get(ctx, "new", &v) {
		t.Fatalf("expired entry must be evicted first")
	}
}

func TestValuesAreCopies(t *testing.T) {
	c := NewStore(1, time.Hour)
	ctx := context.Background()

	orig := domain.Order{ID: "Z", Status: domain.OrderStatusPending}
	_ = c.Set(ctx, "Z", orig, 0)
	orig.Status = domain.OrderStatusCanceled

	var o1 domain.Order
	_ = c.Get(ctx, "Z", &o1)
	o1.SenderName = "changed"

	var o2 domain.Order
	_ = c.Get(ctx, "Z", &o2)
	if o2.Status != domain.OrderStatusPending || o2.SenderName != "" {
		t.Fatalf("cache must be isolated from caller mutations: %+v", o2)
	}
}

func TestDelete_AbsentIsNoError(t *testing.T) {
	c := NewStore(4, time.Hour)
	ctx := context.Background()
	_ = c.Set(ctx, "a", 1, 0)

	if err := c.Delete(ctx, "a", "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty store, got %d", c.Len())
	}
}

func TestDeleteMatching(t *testing.T) {
	c := NewStore(10, time.Hour)
	ctx := context.Background()
	for _, k := range []string{"order:tracking:A", "order:tracking:B", "order:tracking:eu/C", "session:A", "users:list"} {
		_ = c.Set(ctx, k, "x", 0)
	}

	// '*' совпадает и с '/', как в Redis
	n, err := c.DeleteMatching(ctx, "order:tracking:*")
	if err != nil || n != 3 {
		t.Fatalf("want 3 deleted, got n=%d err=%v", n, err)
	}
	var v string
	if !c.Get(ctx, "session:A", &v) || !c.Get(ctx, "users:list", &v) {
		t.Fatalf("non-matching keys must survive")
	}

	if _, err := c.DeleteMatching(ctx, "[broken"); err == nil {
		t.Fatalf("expected bad pattern error")
	}
}

func TestGet_WrongTypeIsMiss(t *testing.T) {
	c := NewStore(2, time.Hour)
	ctx := context.Background()
	_ = c.Set(ctx, "k", "not-a-number", 0)

	var n int
	if c.Get(ctx, "k", &n) {
		t.Fatalf("undecodable payload must be reported as absent")
	}
}
