package ratelimit

import "sync/atomic"

// ConcurrentLimiter caps the number of simultaneous in-flight submissions.
//
// It is a lock-free counting semaphore built on atomic operations. The
// submission client uses it to bound concurrent requests independently of
// the sliding-window rate; a request must clear both limiters before it is
// sent.
//
// # Thread Safety
//
// ConcurrentLimiter is lock-free and safe for concurrent use.
type ConcurrentLimiter struct {
	limit    int64
	inflight atomic.Int64
}

// NewConcurrentLimiter creates a limiter allowing at most limit simultaneous
// holders. A limit of zero or less disables the cap (Acquire always
// succeeds).
func NewConcurrentLimiter(limit int) *ConcurrentLimiter {
	return &ConcurrentLimiter{limit: int64(limit)}
}

// Acquire attempts to take an in-flight slot. It never blocks.
// On success the caller must call Release when done:
//
//	if cl.Acquire() {
//	    defer cl.Release()
//	    // send request
//	}
func (cl *ConcurrentLimiter) Acquire() bool {
	if cl.limit <= 0 {
		return true
	}
	if cl.inflight.Add(1) > cl.limit {
		cl.inflight.Add(-1)
		return false
	}
	return true
}

// Release returns an in-flight slot taken by a successful Acquire.
func (cl *ConcurrentLimiter) Release() {
	if cl.limit <= 0 {
		return
	}
	cl.inflight.Add(-1)
}

// Current returns the number of slots currently held.
func (cl *ConcurrentLimiter) Current() int64 {
	return cl.inflight.Load()
}

// Limit returns the configured cap. Zero or less means unlimited.
func (cl *ConcurrentLimiter) Limit() int64 {
	return cl.limit
}

// Remaining returns the number of free slots, or 0 when saturated.
func (cl *ConcurrentLimiter) Remaining() int64 {
	if cl.limit <= 0 {
		return 0
	}
	remaining := cl.limit - cl.inflight.Load()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the in-flight count. Intended for tests.
func (cl *ConcurrentLimiter) Reset() {
	cl.inflight.Store(0)
}
