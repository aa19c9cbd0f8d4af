package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_TakeRemoves(t *testing.T) {
	s := NewMemory(time.Minute)
	ctx := context.Background()

	st := State{Provider: "google", PKCEVerifier: "ver", CSRFToken: "tok"}
	if err := s.Put(ctx, "sess1", st); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	got, err := s.Take(ctx, "sess1")
	if err != nil {
		t.Fatalf("Take err: %v", err)
	}
	if *got != st {
		t.Fatalf("state mismatch: got %+v want %+v", got, st)
	}

	// consumed: second take finds nothing
	if _, err := s.Take(ctx, "sess1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after consume, got %v", err)
	}
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemory(time.Minute)
	ctx := context.Background()

	if err := s.Put(ctx, "sess1", State{Provider: "google", CSRFToken: "old"}); err != nil {
		t.Fatalf("Put err: %v", err)
	}
	if err := s.Put(ctx, "sess1", State{Provider: "github", CSRFToken: "new"}); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	got, err := s.Take(ctx, "sess1")
	if err != nil {
		t.Fatalf("Take err: %v", err)
	}
	if got.Provider != "github" || got.CSRFToken != "new" {
		t.Fatalf("expected the newer state, got %+v", got)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemory(30 * time.Millisecond)
	ctx := context.Background()

	if err := s.Put(ctx, "sess1", State{Provider: "google"}); err != nil {
		t.Fatalf("Put err: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if _, err := s.Take(ctx, "sess1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestMemoryStore_SessionsIndependent(t *testing.T) {
	s := NewMemory(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	keys := []string{"a", "b", "c", "d"}
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			if err := s.Put(ctx, k, State{Provider: k}); err != nil {
				t.Errorf("Put(%s) err: %v", k, err)
			}
		}(k)
	}
	wg.Wait()

	for _, k := range keys {
		got, err := s.Take(ctx, k)
		if err != nil {
			t.Fatalf("Take(%s) err: %v", k, err)
		}
		if got.Provider != k {
			t.Fatalf("cross-session interference: got %q for key %q", got.Provider, k)
		}
	}
}
