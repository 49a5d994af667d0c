package api

import (
	"context"
	"time"
)

// Latency holds the simulated round-trip time of each facade operation.
type Latency struct {
	List       time.Duration
	Get        time.Duration
	Create     time.Duration
	Update     time.Duration
	Delete     time.Duration
	BulkUpdate time.Duration
	BulkDelete time.Duration
	Search     time.Duration
}

// DefaultLatency returns the latency profile of a slow remote service.
func DefaultLatency() Latency {
	return Latency{
		List:       500 * time.Millisecond,
		Get:        300 * time.Millisecond,
		Create:     800 * time.Millisecond,
		Update:     600 * time.Millisecond,
		Delete:     400 * time.Millisecond,
		BulkUpdate: 1000 * time.Millisecond,
		BulkDelete: 800 * time.Millisecond,
		Search:     400 * time.Millisecond,
	}
}

// NoLatency returns a profile where every call completes immediately.
func NoLatency() Latency {
	return Latency{}
}

// Scale multiplies every duration by f. Non-positive factors disable latency.
func (l Latency) Scale(f float64) Latency {
	if f <= 0 {
		return NoLatency()
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}
	return Latency{
		List:       scale(l.List),
		Get:        scale(l.Get),
		Create:     scale(l.Create),
		Update:     scale(l.Update),
		Delete:     scale(l.Delete),
		BulkUpdate: scale(l.BulkUpdate),
		BulkDelete: scale(l.BulkDelete),
		Search:     scale(l.Search),
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
