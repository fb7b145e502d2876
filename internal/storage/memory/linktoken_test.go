package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
)

func TestLinkTokenStore_InsertTake(t *testing.T) {
	s := NewLinkTokenStore()
	ctx := context.Background()
	exp := time.Now().Add(domain.LinkTokenTTL)

	if !s.Insert(ctx, "d1", domain.LinkEntry{Owner: 42, ExpiresAt: exp}) {
		t.Fatal("Insert() = false, want true")
	}
	if s.Insert(ctx, "d1", domain.LinkEntry{Owner: 7, ExpiresAt: exp}) {
		t.Fatal("second Insert() = true, want false")
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}

	e, ok := s.Take(ctx, "d1")
	if !ok {
		t.Fatal("Take() found = false")
	}
	if e.Owner != 42 {
		t.Errorf("Owner = %d, want 42 (existing entry must not be replaced)", e.Owner)
	}

	if _, ok := s.Take(ctx, "d1"); ok {
		t.Error("second Take() found = true, want false")
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
}

func TestLinkTokenStore_DeleteExpired(t *testing.T) {
	s := NewLinkTokenStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s.Insert(ctx, "past", domain.LinkEntry{Owner: 1, ExpiresAt: now.Add(-time.Second)})
	s.Insert(ctx, "edge", domain.LinkEntry{Owner: 2, ExpiresAt: now})
	s.Insert(ctx, "future", domain.LinkEntry{Owner: 3, ExpiresAt: now.Add(time.Minute)})

	if n := s.DeleteExpired(ctx, now); n != 1 {
		t.Fatalf("DeleteExpired() = %d, want 1", n)
	}
	if _, ok := s.Take(ctx, "past"); ok {
		t.Error("expired entry survived")
	}
	if _, ok := s.Take(ctx, "edge"); !ok {
		t.Error("entry expiring exactly now was removed")
	}
	if _, ok := s.Take(ctx, "future"); !ok {
		t.Error("live entry was removed")
	}
}

func TestLinkTokenStore_ConcurrentTake(t *testing.T) {
	s := NewLinkTokenStore()
	ctx := context.Background()
	s.Insert(ctx, "shared", domain.LinkEntry{Owner: 5, ExpiresAt: time.Now().Add(time.Hour)})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.Take(ctx, "shared"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("winners = %d, want 1", wins.Load())
	}
}
