// Package ratelimit provides client-side admission control for outbound
// API requests.
//
// # Overview
//
// The package implements two limiters:
//
//   - Sliding Window: blocking rate limiter that caps admissions per rolling
//     time window. Callers block in Acquire until a slot frees up.
//   - Concurrent Limiter: semaphore-style cap on simultaneous in-flight
//     requests.
//
// # Sliding Window
//
// The sliding window limiter guarantees that no more than limit admissions
// occur within any trailing window interval, across any number of concurrent
// goroutines sharing one instance:
//
//	limiter, err := ratelimit.New(10, time.Minute) // 10 requests per minute
//	if err != nil {
//	    return err
//	}
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err // context cancelled while waiting
//	}
//	// admission granted, proceed with the request
//
// Unlike token-bucket style limiters that reject over-limit requests, the
// sliding window limiter applies blocking backpressure: Acquire suspends the
// calling goroutine until capacity becomes available or the context is
// cancelled.
//
// # Concurrent Limiter
//
// The concurrent limiter enforces a maximum number of simultaneous requests:
//
//	cl := ratelimit.NewConcurrentLimiter(5)
//	if cl.Acquire() {
//	    defer cl.Release()
//	    // process request
//	}
//
// # Thread Safety
//
// Both limiters are safe for use by any number of concurrent goroutines
// without external synchronization.
package ratelimit
