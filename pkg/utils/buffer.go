// pkg/utils/buffer.go

package utils

import "encoding/binary"

// Buffer is a cursor over a byte slice that reads and writes big-endian
// integers. Put* and Get* panic when they run past the end of the slice,
// callers check Left() first when the input is untrusted.
type Buffer struct {
	endian binary.ByteOrder
	off    int
	buf    []byte
}

// NewBuffer returns a zeroed buffer of sz bytes ready for writing.
func NewBuffer(sz uint32) *Buffer {
	return FromBuffer(make([]byte, sz))
}

// FromBuffer wraps buf for writing from offset 0.
func FromBuffer(buf []byte) *Buffer {
	return &Buffer{binary.BigEndian, 0, buf}
}

// ReadBuffer wraps buf for reading from offset 0.
func ReadBuffer(buf []byte) *Buffer {
	return FromBuffer(buf)
}

// Left returns the number of bytes after the cursor.
func (b *Buffer) Left() int {
	return len(b.buf) - b.off
}

func (b *Buffer) Put32(v uint32) {
	b.endian.PutUint32(b.buf[b.off:b.off+4], v)
	b.off += 4
}

func (b *Buffer) Get32() uint32 {
	v := b.endian.Uint32(b.buf[b.off : b.off+4])
	b.off += 4
	return v
}

func (b *Buffer) Put(v []byte) {
	l := len(v)
	copy(b.buf[b.off:b.off+l], v)
	b.off += l
}

// Get returns the next l bytes without copying them.
func (b *Buffer) Get(l int) []byte {
	b.off += l
	return b.buf[b.off-l : b.off]
}

// Bytes returns the whole underlying slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}
