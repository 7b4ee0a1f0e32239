// pkg/dgc/chunk.go

package dgc

const (
	// ChunkAlign is the granularity of every chunk size.
	ChunkAlign = 0x800
	// HeaderSize is the length of the opaque notice at the start of an archive.
	HeaderSize = 0x100
	// ReservedSize is the ignored region between the chunk size and chunk 0.
	ReservedSize = 0x6FC
	// PreludeSize is the offset of chunk 0.
	PreludeSize = HeaderSize + 4 + ReservedSize

	chunkHeaderSize  = 4
	recordHeaderSize = 16
)

// ChunkSize returns the smallest multiple of ChunkAlign that can hold
// requested bytes. A zero request yields one ChunkAlign.
func ChunkSize(requested int) int {
	if requested <= 0 {
		return ChunkAlign
	}
	return (1 + (requested-1)/ChunkAlign) * ChunkAlign
}

// Record is one stored blob tagged with three opaque identifiers.
type Record struct {
	Data   []byte
	TypeID int32
	ID1    int32
	ID2    int32
}

// Size returns the encoded size of the record, including its 16 byte header.
func (r *Record) Size() int {
	return len(r.Data) + recordHeaderSize
}

// Chunk is an ordered list of records stored in one fixed-size segment.
type Chunk struct {
	Records []*Record
}

// Size returns the encoded size of the chunk without padding.
func (c *Chunk) Size() int {
	size := chunkHeaderSize
	for _, r := range c.Records {
		size += r.Size()
	}
	return size
}

// DataSize returns the payload bytes held by the chunk.
func (c *Chunk) DataSize() int {
	var size int
	for _, r := range c.Records {
		size += len(r.Data)
	}
	return size
}

func (c *Chunk) add(r *Record) {
	c.Records = append(c.Records, r)
}
