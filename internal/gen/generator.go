// Package gen drives the acquire, build, transmit, pace loop that produces
// the synthetic traffic.
package gen

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moscovium115/txgen/internal/frame"
	"github.com/moscovium115/txgen/internal/pool"
)

// Default pacing values, matching the original demo cadence.
const (
	DefaultInterval = 200 * time.Millisecond
	DefaultBackoff  = 100 * time.Millisecond
)

// Transmitter submits a single buffer to the device transmit path. A nil
// return means the implementation has taken ownership of the buffer; on
// error the caller keeps ownership and must release it.
type Transmitter interface {
	Send(*pool.Buffer) error
}

// Options controls loop pacing and lifetime.
type Options struct {
	// Interval is the pacing sleep after each transmit attempt.
	Interval time.Duration

	// Backoff is the sleep after a failed buffer acquisition.
	Backoff time.Duration

	// Count stops the loop after this many transmitted frames.
	// Zero means run until stopped.
	Count uint64
}

// Stats is a snapshot of the loop counters.
type Stats struct {
	Sent      uint64
	Rejected  uint64
	Exhausted uint64
}

// Generator runs the transmit loop on one port. It owns at most one buffer
// at a time and is driven by a single goroutine; the only cross-goroutine
// interaction is Stop and the counter reads in Stats.
type Generator struct {
	pool *pool.Pool
	tx   Transmitter
	opts Options

	stop     chan struct{}
	stopOnce sync.Once

	sent      atomic.Uint64
	rejected  atomic.Uint64
	exhausted atomic.Uint64
}

// New creates a generator. Non-positive pacing values fall back to the
// defaults.
func New(bufs *pool.Pool, tx Transmitter, opts Options) *Generator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	return &Generator{
		pool: bufs,
		tx:   tx,
		opts: opts,
		stop: make(chan struct{}),
	}
}

// Run executes the transmit loop until Stop is called or the configured
// frame count is reached. Cancellation is observed only between iterations:
// an in-flight iteration always completes, and the sleeps are not
// interruptible, so shutdown can lag by up to one sleep interval.
func (g *Generator) Run() error {
	for {
		select {
		case <-g.stop:
			slog.Debug("Generator received stop signal")
			return nil
		default:
		}
		if g.opts.Count > 0 && g.sent.Load() >= g.opts.Count {
			return nil
		}

		b, err := g.pool.Acquire()
		if err != nil {
			g.exhausted.Add(1)
			slog.Warn("No free packet buffer", "error", err)
			time.Sleep(g.opts.Backoff)
			continue
		}

		n, err := frame.Build(b.Bytes())
		if err != nil {
			g.pool.Release(b)
			return fmt.Errorf("build frame: %w", err)
		}
		b.SetLengths(n)

		if err := g.tx.Send(b); err != nil {
			// Rejected: the device accepted nothing, so the buffer is
			// still ours and goes back to the pool exactly once.
			g.rejected.Add(1)
			g.pool.Release(b)
			slog.Warn("Frame rejected by device", "error", err)
		} else {
			// Sent: the transmitter owns the buffer now.
			total := g.sent.Add(1)
			slog.Debug("Frame transmitted", "total", total)
		}

		time.Sleep(g.opts.Interval)
	}
}

// Stop requests termination. Safe to call from any goroutine, any number of
// times; the loop exits at the next iteration boundary.
func (g *Generator) Stop() {
	g.stopOnce.Do(func() {
		close(g.stop)
	})
}

// Stats returns a snapshot of the loop counters.
func (g *Generator) Stats() Stats {
	return Stats{
		Sent:      g.sent.Load(),
		Rejected:  g.rejected.Load(),
		Exhausted: g.exhausted.Load(),
	}
}
