package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	p := New(4)
	assert.Equal(t, 4, p.Capacity())
	assert.Equal(t, 4, p.Available())

	b, err := p.Acquire()
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 3, p.Available())

	p.Release(b)
	assert.Equal(t, 4, p.Available())
}

func TestAcquireExhausted(t *testing.T) {
	p := New(2)

	a, err := p.Acquire()
	require.NoError(t, err)
	b, err := p.Acquire()
	require.NoError(t, err)

	// Repeated failed acquisitions must not change the free count.
	for i := 0; i < 10; i++ {
		_, err := p.Acquire()
		require.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, 0, p.Available())
	}

	p.Release(a)
	p.Release(b)
	assert.Equal(t, 2, p.Available())
}

func TestBufferLengths(t *testing.T) {
	p := New(1)

	b, err := p.Acquire()
	require.NoError(t, err)

	assert.Len(t, b.Bytes(), BufferSize)
	assert.Equal(t, 0, b.DataLen())
	assert.Equal(t, 0, b.FrameLen())

	b.SetLengths(214)
	assert.Equal(t, 214, b.DataLen())
	assert.Equal(t, 214, b.FrameLen())
	assert.Len(t, b.Frame(), 214)

	// Release resets the lengths for the next holder.
	p.Release(b)
	b, err = p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 0, b.FrameLen())
	assert.Empty(t, b.Frame())
}
