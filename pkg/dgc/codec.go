// pkg/dgc/codec.go

package dgc

import (
	"io"
	"math"
	"os"

	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

// WriteTo encodes the archive to w. Every chunk is padded with zeros to
// exactly ChunkSize bytes.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	if a.ChunkSize <= 0 || uint64(a.ChunkSize) > math.MaxUint32 {
		return 0, errors.Errorf("invalid chunk size %d", a.ChunkSize)
	}
	prelude := utils.NewBuffer(PreludeSize)
	prelude.Put(a.Header[:])
	prelude.Put32(uint32(a.ChunkSize))
	n, err := w.Write(prelude.Bytes())
	written := int64(n)
	if err != nil {
		return written, errors.Wrap(err, "write header")
	}
	for i, c := range a.Chunks {
		if c.Size() > a.ChunkSize {
			return written, errors.Wrapf(ErrChunkOverflow, "chunk %d is %d bytes, chunk size %d", i, c.Size(), a.ChunkSize)
		}
		n, err = w.Write(encodeChunk(c, a.ChunkSize))
		written += int64(n)
		if err != nil {
			return written, errors.Wrapf(err, "write chunk %d", i)
		}
	}
	return written, nil
}

func encodeChunk(c *Chunk, chunkSize int) []byte {
	wb := utils.NewBuffer(uint32(chunkSize))
	wb.Put32(uint32(len(c.Records)))
	for _, r := range c.Records {
		wb.Put32(uint32(r.Size()))
		wb.Put32(uint32(r.TypeID))
		wb.Put32(uint32(r.ID1))
		wb.Put32(uint32(r.ID2))
		wb.Put(r.Data)
	}
	return wb.Bytes()
}

// Encode writes a to w.
func Encode(a *Archive, w io.Writer) error {
	_, err := a.WriteTo(w)
	return err
}

// ReadArchive decodes an archive from r. Chunk data that does not end on a
// chunk boundary is logged and the trailing bytes are dropped.
func ReadArchive(r io.Reader) (*Archive, error) {
	prelude := make([]byte, PreludeSize)
	if _, err := io.ReadFull(r, prelude); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	rb := utils.ReadBuffer(prelude)
	a := &Archive{}
	copy(a.Header[:], rb.Get(HeaderSize))
	a.ChunkSize = int(rb.Get32())
	if a.ChunkSize == 0 {
		return nil, errors.Wrap(ErrCorruptArchive, "chunk size is zero")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read chunks")
	}
	if rest := len(data) % a.ChunkSize; rest > 0 {
		logger.Warnf("%s", &SizeMismatchWarning{StreamSize: len(data), ChunkSize: a.ChunkSize})
		a.trailing = rest
		data = data[:len(data)-rest]
	}
	for off := 0; off < len(data); off += a.ChunkSize {
		c, err := decodeChunk(data[off : off+a.ChunkSize])
		if err != nil {
			return nil, errors.WithMessagef(err, "chunk %d", off/a.ChunkSize)
		}
		a.Chunks = append(a.Chunks, c)
	}
	return a, nil
}

// Decode reads an archive from r.
func Decode(r io.Reader) (*Archive, error) {
	return ReadArchive(r)
}

func decodeChunk(window []byte) (*Chunk, error) {
	rb := utils.ReadBuffer(window)
	if rb.Left() < chunkHeaderSize {
		return nil, errors.Wrap(ErrTruncatedRecord, "record count")
	}
	count := rb.Get32()
	c := &Chunk{}
	for i := uint32(0); i < count; i++ {
		if rb.Left() < recordHeaderSize {
			return nil, errors.Wrapf(ErrTruncatedRecord, "record %d header", i)
		}
		size := int(rb.Get32())
		if size < recordHeaderSize {
			return nil, errors.Wrapf(ErrCorruptArchive, "record %d declares size %d", i, size)
		}
		r := &Record{
			TypeID: int32(rb.Get32()),
			ID1:    int32(rb.Get32()),
			ID2:    int32(rb.Get32()),
		}
		if rb.Left() < size-recordHeaderSize {
			return nil, errors.Wrapf(ErrTruncatedRecord, "record %d needs %d bytes, %d left", i, size-recordHeaderSize, rb.Left())
		}
		r.Data = make([]byte, size-recordHeaderSize)
		copy(r.Data, rb.Get(size-recordHeaderSize))
		c.add(r)
	}
	return c, nil
}

// Open decodes the archive stored at path.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := ReadArchive(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return a, nil
}

// Save encodes the archive to path, replacing it only once the whole
// archive has been written.
func (a *Archive) Save(path string) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Encode(a, w)
	})
}
