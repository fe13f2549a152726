package ratelimit

import (
	"sync"
	"testing"
)

func TestConcurrentLimiter_Basic(t *testing.T) {
	cl := NewConcurrentLimiter(2)

	if !cl.Acquire() {
		t.Error("Expected first Acquire to succeed")
	}
	if !cl.Acquire() {
		t.Error("Expected second Acquire to succeed")
	}
	if cl.Acquire() {
		t.Error("Expected third Acquire to fail at limit 2")
	}
	if cl.Remaining() != 0 {
		t.Errorf("Expected 0 remaining, got %d", cl.Remaining())
	}

	cl.Release()
	if !cl.Acquire() {
		t.Error("Expected Acquire to succeed after Release")
	}
}

func TestConcurrentLimiter_Unlimited(t *testing.T) {
	cl := NewConcurrentLimiter(0)

	for i := 0; i < 100; i++ {
		if !cl.Acquire() {
			t.Fatal("Expected unlimited limiter to always admit")
		}
	}
}

func TestConcurrentLimiter_Concurrent(t *testing.T) {
	const limit = 10
	cl := NewConcurrentLimiter(limit)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cl.Acquire() {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded > limit {
		t.Errorf("Expected at most %d holders, got %d", limit, succeeded)
	}
	if cl.Current() != int64(succeeded) {
		t.Errorf("Expected %d in flight, got %d", succeeded, cl.Current())
	}

	cl.Reset()
	if cl.Current() != 0 {
		t.Errorf("Expected 0 after Reset, got %d", cl.Current())
	}
}
