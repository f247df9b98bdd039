package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
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

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	store.Put(ctx, "price:BTC", []byte(`{"price_usd":1}`))
	got, ok := store.Get(ctx, "price:BTC")
	if !ok || string(got) != `{"price_usd":1}` {
		t.Fatalf("expected cached value, got %q ok=%v", got, ok)
	}

	again, ok := store.Get(ctx, "price:BTC")
	if !ok || string(again) != string(got) {
		t.Fatalf("second read differs: %q", again)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	store.Put(ctx, "global", []byte("v"))

	clock.Advance(TTL - time.Nanosecond)
	if _, ok := store.Get(ctx, "global"); !ok {
		t.Fatal("entry should be valid just before TTL")
	}

	clock.Advance(time.Nanosecond)
	if _, ok := store.Get(ctx, "global"); ok {
		t.Fatal("entry should be absent at exactly TTL")
	}
	if store.Len() != 1 {
		t.Fatalf("expired entry should remain stored until overwritten, len=%d", store.Len())
	}
}

func TestMemoryStoreOverwriteRefreshesTimestamp(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	store.Put(ctx, "k", []byte("old"))
	clock.Advance(50 * time.Second)
	store.Put(ctx, "k", []byte("new"))
	clock.Advance(50 * time.Second)

	got, ok := store.Get(ctx, "k")
	if !ok || string(got) != "new" {
		t.Fatalf("expected refreshed value, got %q ok=%v", got, ok)
	}
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	store.Put(ctx, "k", buf)
	buf[0] = 'z'

	got, _ := store.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value was mutated: %q", got)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "k", []byte("abc"))
	first, _ := store.Get(ctx, "k")
	first[0] = 'X'

	got, _ := store.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value was mutated through Get: %q", got)
	}
}

func TestMemoryStoreMaxEntriesEvictsOldest(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(WithClock(clock.Now), WithMaxEntries(2))
	ctx := context.Background()

	store.Put(ctx, "a", []byte("1"))
	clock.Advance(time.Second)
	store.Put(ctx, "b", []byte("2"))
	clock.Advance(time.Second)
	store.Put(ctx, "c", []byte("3"))

	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	if _, ok := store.Get(ctx, "c"); !ok {
		t.Fatal("newest entry missing")
	}

	// overwriting an existing key never evicts
	store.Put(ctx, "b", []byte("22"))
	if _, ok := store.Get(ctx, "c"); !ok || store.Len() != 2 {
		t.Fatal("overwrite should not evict")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%5)
				want := fmt.Sprintf("%d-%d", w, i)
				store.Put(ctx, key, []byte(want))
				if v, ok := store.Get(ctx, key); ok && len(v) == 0 {
					t.Errorf("observed empty value for %s", key)
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestKey(t *testing.T) {
	if got := Key(KindPrice, "btc"); got != "price:BTC" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := Key(KindGlobal, ""); got != "global" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestGetPutJSON(t *testing.T) {
	type snap struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	store := NewMemoryStore()
	ctx := context.Background()

	PutJSON(ctx, store, "price:ETH", &snap{Symbol: "ETH", Price: 3000})
	got, ok := GetJSON[snap](ctx, store, "price:ETH")
	if !ok || got.Symbol != "ETH" || got.Price != 3000 {
		t.Fatalf("unexpected decoded value: %+v ok=%v", got, ok)
	}

	store.Put(ctx, "broken", []byte("{not json"))
	if _, ok := GetJSON[snap](ctx, store, "broken"); ok {
		t.Fatal("undecodable entry should be a miss")
	}

	if _, ok := GetJSON[snap](ctx, nil, "price:ETH"); ok {
		t.Fatal("nil cache should always miss")
	}
}
