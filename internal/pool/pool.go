package pool

import "errors"

// BufferSize is the fixed capacity of every pooled buffer. 2048 bytes covers
// the largest frame the builder produces with room to spare for a full
// Ethernet MTU.
const BufferSize = 2048

// ErrExhausted is returned by Acquire when no free buffer is available.
var ErrExhausted = errors.New("buffer pool exhausted")

// Buffer is a fixed-capacity packet arena with two length fields: the
// occupied-data length and the total frame length. A buffer is owned by
// exactly one holder at a time: the pool, the generator loop, or the port
// after a successful send.
type Buffer struct {
	data     [BufferSize]byte
	dataLen  int
	frameLen int
}

// Bytes returns the whole arena for the builder to stamp headers into.
func (b *Buffer) Bytes() []byte {
	return b.data[:]
}

// SetLengths records both the occupied-data length and the total frame
// length once the builder has finished populating the arena.
func (b *Buffer) SetLengths(n int) {
	b.dataLen = n
	b.frameLen = n
}

// DataLen returns the occupied-data length.
func (b *Buffer) DataLen() int {
	return b.dataLen
}

// FrameLen returns the total frame length.
func (b *Buffer) FrameLen() int {
	return b.frameLen
}

// Frame returns the populated prefix of the arena, the bytes that go on
// the wire.
func (b *Buffer) Frame() []byte {
	return b.data[:b.frameLen]
}

func (b *Buffer) reset() {
	b.dataLen = 0
	b.frameLen = 0
}

// Pool hands out pre-allocated fixed-size buffers. All allocation happens in
// New; Acquire and Release never allocate.
type Pool struct {
	free chan *Buffer
}

// New creates a pool holding size pre-allocated buffers.
func New(size int) *Pool {
	p := &Pool{free: make(chan *Buffer, size)}
	for i := 0; i < size; i++ {
		p.free <- new(Buffer)
	}
	return p
}

// Acquire returns a free buffer, or ErrExhausted when the pool is empty.
// It never blocks the caller.
func (p *Pool) Acquire() (*Buffer, error) {
	select {
	case b := <-p.free:
		return b, nil
	default:
		return nil, ErrExhausted
	}
}

// Release returns a buffer to the pool. Callers release a buffer at most
// once per acquisition.
func (p *Pool) Release(b *Buffer) {
	b.reset()
	p.free <- b
}

// Available returns the number of free buffers.
func (p *Pool) Available() int {
	return len(p.free)
}

// Capacity returns the total number of buffers the pool was created with.
func (p *Pool) Capacity() int {
	return cap(p.free)
}
