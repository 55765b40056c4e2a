// Package poller is the fixed-interval refetch loop behind the order
// status views: tick immediately, then on the interval, stop with the
// context. Polling is the minimum contract; a push channel may ride on top
// but never replaces it.
package poller

import (
	"context"
	"time"
)

// DefaultInterval matches the status views: a refetch every 5 seconds.
const DefaultInterval = 5 * time.Second

// Func is one poll tick. Errors are the tick's own business: the loop
// never stops on error, mirroring the views that keep refetching after a
// failed request.
type Func func(ctx context.Context)

// Poller drives a Func on an interval.
type Poller struct {
	interval time.Duration
}

func New(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{interval: interval}
}

// Run ticks fn immediately and then every interval until ctx is done.
// It blocks; run it in a goroutine when the caller has other work.
func (p *Poller) Run(ctx context.Context, fn Func) {
	fn(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
