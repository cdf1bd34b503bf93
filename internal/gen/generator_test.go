package gen

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moscovium115/txgen/internal/frame"
	"github.com/moscovium115/txgen/internal/pool"
)

var errDeviceBusy = errors.New("device busy")

// fakePort mimics the real port: on success it takes ownership and returns
// the buffer to the pool, on failure the caller keeps it.
type fakePort struct {
	pool    *pool.Pool
	rejects atomic.Int64 // remaining sends to reject

	sent      atomic.Uint64
	lastFrame atomic.Int64 // length of the last accepted frame
}

func (f *fakePort) Send(b *pool.Buffer) error {
	if f.rejects.Add(-1) >= 0 {
		return errDeviceBusy
	}
	f.lastFrame.Store(int64(b.FrameLen()))
	f.sent.Add(1)
	f.pool.Release(b)
	return nil
}

func fastOptions(count uint64) Options {
	return Options{
		Interval: time.Microsecond,
		Backoff:  time.Microsecond,
		Count:    count,
	}
}

func TestRunCountLimited(t *testing.T) {
	bufs := pool.New(4)
	fp := &fakePort{pool: bufs}
	fp.rejects.Store(-1 << 30)

	g := New(bufs, fp, fastOptions(3))
	require.NoError(t, g.Run())

	stats := g.Stats()
	assert.Equal(t, uint64(3), stats.Sent)
	assert.Equal(t, uint64(0), stats.Rejected)
	assert.Equal(t, uint64(3), fp.sent.Load())
	assert.Equal(t, int64(frame.FrameSize), fp.lastFrame.Load())

	// Every buffer is back with the pool.
	assert.Equal(t, bufs.Capacity(), bufs.Available())
}

func TestRejectedFramesAreReleased(t *testing.T) {
	bufs := pool.New(2)
	fp := &fakePort{pool: bufs}
	fp.rejects.Store(5)

	g := New(bufs, fp, fastOptions(1))
	require.NoError(t, g.Run())

	stats := g.Stats()
	assert.Equal(t, uint64(5), stats.Rejected)
	assert.Equal(t, uint64(1), stats.Sent)

	// Rejected buffers went back to the pool exactly once each: with only
	// two buffers, any leak or double release would have shown up as a
	// stuck loop or a drained pool.
	assert.Equal(t, bufs.Capacity(), bufs.Available())
}

func TestExhaustedPoolBacksOff(t *testing.T) {
	bufs := pool.New(1)
	held, err := bufs.Acquire()
	require.NoError(t, err)

	fp := &fakePort{pool: bufs}
	fp.rejects.Store(-1 << 30)
	g := New(bufs, fp, fastOptions(0))

	done := make(chan error, 1)
	go func() { done <- g.Run() }()

	// Let the loop spin against the empty pool for a while.
	time.Sleep(20 * time.Millisecond)
	g.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("generator did not stop")
	}

	stats := g.Stats()
	assert.Zero(t, stats.Sent)
	assert.Positive(t, stats.Exhausted)
	assert.Equal(t, 0, bufs.Available(), "failed acquisitions must not change the pool")

	bufs.Release(held)
	assert.Equal(t, 1, bufs.Available())
}

func TestStopDuringPacingSleep(t *testing.T) {
	bufs := pool.New(2)
	fp := &fakePort{pool: bufs}
	fp.rejects.Store(-1 << 30)

	g := New(bufs, fp, Options{Interval: 10 * time.Millisecond, Backoff: time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- g.Run() }()

	// Stop lands while the loop is inside the pacing sleep; the iteration
	// finishes its bookkeeping and the flag is observed at the next
	// boundary.
	time.Sleep(5 * time.Millisecond)
	g.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("generator did not stop within a pacing interval")
	}

	assert.Equal(t, bufs.Capacity(), bufs.Available())
}

func TestStopIsIdempotent(t *testing.T) {
	bufs := pool.New(1)
	g := New(bufs, &fakePort{pool: bufs}, fastOptions(0))
	g.Stop()
	g.Stop()

	// A stopped generator returns immediately.
	require.NoError(t, g.Run())
}
