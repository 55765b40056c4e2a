package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itzabhishekgour/smartdine/internal/poller"
)

func TestRunTicksImmediatelyThenOnInterval(t *testing.T) {
	var ticks int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		poller.New(20 * time.Millisecond).Run(ctx, func(ctx context.Context) {
			atomic.AddInt32(&ticks, 1)
		})
		close(done)
	}()

	// The first tick happens before any interval elapses.
	deadline := time.After(15 * time.Millisecond)
	for atomic.LoadInt32(&ticks) == 0 {
		select {
		case <-deadline:
			t.Fatal("no immediate tick")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// More ticks arrive on the interval.
	time.Sleep(70 * time.Millisecond)
	if got := atomic.LoadInt32(&ticks); got < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ticks int32
	done := make(chan struct{})
	go func() {
		poller.New(10 * time.Millisecond).Run(ctx, func(ctx context.Context) {
			atomic.AddInt32(&ticks, 1)
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	// The immediate tick still ran once; nothing more after cancel.
	if got := atomic.LoadInt32(&ticks); got != 1 {
		t.Fatalf("expected exactly the immediate tick, got %d", got)
	}
}

func TestZeroIntervalFallsBackToDefault(t *testing.T) {
	p := poller.New(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	p.Run(ctx, func(ctx context.Context) { ran = true })
	if !ran {
		t.Fatal("immediate tick missing")
	}
}
