// pkg/dgc/errors.go

package dgc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTruncatedRecord is returned when a chunk ends before a record does.
	ErrTruncatedRecord = errors.New("truncated record")
	// ErrCorruptArchive is returned for structurally impossible values.
	ErrCorruptArchive = errors.New("corrupt archive")
	// ErrChunkOverflow is returned when a chunk does not fit the chunk size.
	ErrChunkOverflow = errors.New("chunk exceeds chunk size")
	// ErrBadHandle is returned for handles that do not address a record.
	ErrBadHandle = errors.New("invalid record handle")
)

// SizeMismatchWarning reports chunk data whose length is not a multiple of
// the chunk size. Decoding keeps the aligned prefix.
type SizeMismatchWarning struct {
	StreamSize int
	ChunkSize  int
}

func (w *SizeMismatchWarning) Error() string {
	return fmt.Sprintf("stream size %d is not divisible by chunk size %d, dropping %d trailing bytes",
		w.StreamSize, w.ChunkSize, w.StreamSize%w.ChunkSize)
}
