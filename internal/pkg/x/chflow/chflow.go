// Package chflow moves values through channels without outliving a context.
//
// Both helpers check ctx before touching the channel, so once ctx is done no
// value is taken or handed over even if the channel is ready. The monitor
// relies on this to stop pulling block announcements right after shutdown.
package chflow

import "context"

// Receive takes the next value from ch. The boolean is false when ch is closed
// or ctx is done, and the value is then the zero value.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var zero T
	if ctx.Err() != nil {
		return zero, false
	}

	select {
	case <-ctx.Done():
		return zero, false
	case v, ok := <-ch:
		return v, ok
	}
}

// Send hands v to ch and reports whether it was delivered before ctx ended.
func Send[T any](ctx context.Context, ch chan<- T, v T) bool {
	if ctx.Err() != nil {
		return false
	}

	select {
	case <-ctx.Done():
		return false
	case ch <- v:
		return true
	}
}
