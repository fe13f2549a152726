package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SlidingWindow is a blocking sliding-window rate limiter.
//
// It records the admission time of every granted request and caps the number
// of admissions inside the trailing window at limit. The window is the
// half-open interval (now-window, now]: an admission exactly window old no
// longer counts against the limit.
//
// # Algorithm
//
//  1. Purge admission timestamps that have aged out of the window
//  2. If fewer than limit remain, record now and grant admission
//  3. Otherwise sleep until the oldest timestamp ages out, or until another
//     goroutine's admission broadcasts a wake, then re-evaluate from step 1
//
// The re-check loop is the admission algorithm itself, not error recovery:
// after a wake an arbitrary amount of time may have passed and other waiters
// may have claimed freed slots, so each iteration re-purges against the
// current time.
//
// # Fairness
//
// Admission order among waiters approximates arrival order. The mutex hands
// off to goroutines that have waited longer than 1ms (Go's starvation mode),
// and every admission wakes all waiters so none sleeps past a slot freed by
// another caller's purge. Strict FIFO under simultaneous wake is not
// guaranteed.
//
// # Thread Safety
//
// SlidingWindow is safe for concurrent use. Timestamps are appended at the
// tail and trimmed at the head under a single mutex, so no two goroutines
// can both consume the last available slot.
type SlidingWindow struct {
	limit  int
	window time.Duration

	mu     sync.Mutex
	stamps []time.Time   // admission times inside the window, oldest first
	wake   chan struct{} // closed and replaced on every admission
}

// New creates a sliding-window limiter that admits at most limit requests
// per rolling window.
//
// Parameters:
//   - limit: maximum admissions per window, must be > 0
//   - window: rolling window duration, must be > 0
//
// Example:
//
//	// 10 requests per minute
//	limiter, err := ratelimit.New(10, time.Minute)
func New(limit int, window time.Duration) (*SlidingWindow, error) {
	if limit <= 0 {
		return nil, &InvalidArgumentError{
			Field:   "limit",
			Message: fmt.Sprintf("must be a positive integer, got %d", limit),
		}
	}
	if window <= 0 {
		return nil, &InvalidArgumentError{
			Field:   "window",
			Message: fmt.Sprintf("must be a positive duration, got %s", window),
		}
	}

	return &SlidingWindow{
		limit:  limit,
		window: window,
		stamps: make([]time.Time, 0, limit),
		wake:   make(chan struct{}),
	}, nil
}

// Acquire blocks until an admission slot is available, records the
// admission, and returns nil. Upon return the caller is authorized to
// proceed immediately; the recorded timestamp counts against future windows.
//
// If ctx is cancelled while waiting, Acquire aborts the wait and returns
// ctx.Err() without granting admission and without mutating limiter state.
// The limiter remains valid and usable after a cancelled wait.
//
// Time is measured with the monotonic clock reading carried by time.Now(),
// so wall-clock adjustments do not cause over- or under-admission.
func (sw *SlidingWindow) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for {
		sw.mu.Lock()
		now := time.Now()
		sw.purgeLocked(now)

		if len(sw.stamps) < sw.limit {
			sw.stamps = append(sw.stamps, now)
			// Wake all waiters: the purge above may have freed more
			// slots than this admission consumed.
			close(sw.wake)
			sw.wake = make(chan struct{})
			sw.mu.Unlock()
			return nil
		}

		// Saturated. Wait until the oldest admission ages out or another
		// goroutine broadcasts, whichever comes first.
		wait := sw.stamps[0].Add(sw.window).Sub(now)
		wake := sw.wake
		sw.mu.Unlock()

		if wait <= 0 {
			// The oldest entry has already aged out; re-purge and
			// recheck instead of sleeping a zero or negative duration.
			continue
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// Limit returns the configured maximum admissions per window.
func (sw *SlidingWindow) Limit() int {
	return sw.limit
}

// Window returns the configured window duration.
func (sw *SlidingWindow) Window() time.Duration {
	return sw.window
}

// Remaining returns the number of admission slots currently free.
// Expired admissions are purged before counting.
func (sw *SlidingWindow) Remaining() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.purgeLocked(time.Now())
	return sw.limit - len(sw.stamps)
}

// InWindow returns the number of admissions currently inside the window.
func (sw *SlidingWindow) InWindow() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.purgeLocked(time.Now())
	return len(sw.stamps)
}

// purgeLocked removes timestamps that have aged out of the window.
// An entry exactly window old is purged. Caller must hold sw.mu.
func (sw *SlidingWindow) purgeLocked(now time.Time) {
	cutoff := now.Add(-sw.window)

	i := 0
	for i < len(sw.stamps) && !sw.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		n := copy(sw.stamps, sw.stamps[i:])
		sw.stamps = sw.stamps[:n]
	}
}
