// pkg/dgc/archive.go

package dgc

import (
	"sort"

	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

var logger = utils.GetLogger("chumworld")

// Archive is a decoded container: a notice header plus records grouped into
// chunks of ChunkSize bytes. It is not safe for concurrent use.
type Archive struct {
	Header    [HeaderSize]byte
	ChunkSize int
	Chunks    []*Chunk

	trailing int
}

// Handle addresses a record by chunk and position inside the chunk. Handles
// are invalidated by any call that moves records.
type Handle struct {
	Chunk int
	Index int
}

// NewArchive creates an empty archive. The header is zero-padded to
// HeaderSize and chunkSize is rounded up to a multiple of ChunkAlign.
func NewArchive(header []byte, chunkSize int) (*Archive, error) {
	if len(header) > HeaderSize {
		return nil, errors.Errorf("header is %d bytes, at most %d allowed", len(header), HeaderSize)
	}
	a := &Archive{ChunkSize: ChunkSize(chunkSize)}
	copy(a.Header[:], header)
	return a, nil
}

// AddFile places r into the first chunk with room for it, opening a new
// chunk when none has. A record larger than an empty chunk grows the chunk
// size and repacks every existing record first.
func (a *Archive) AddFile(r *Record) {
	if need := chunkHeaderSize + r.Size(); need > a.ChunkSize {
		a.redistribute(need)
	}
	for _, c := range a.Chunks {
		if c.Size()+r.Size() <= a.ChunkSize {
			c.add(r)
			return
		}
	}
	a.Chunks = append(a.Chunks, &Chunk{Records: []*Record{r}})
}

// redistribute repacks all records first-fit-decreasing into chunks of
// ChunkSize(newSize) bytes, discarding the old assignment.
func (a *Archive) redistribute(newSize int) {
	var pool []*Record
	for _, c := range a.Chunks {
		pool = append(pool, c.Records...)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return len(pool[i].Data) > len(pool[j].Data)
	})
	old := a.ChunkSize
	a.ChunkSize = ChunkSize(newSize)
	a.Chunks = nil
	for len(pool) > 0 {
		c := &Chunk{}
		size := c.Size()
		rest := pool[:0]
		for _, r := range pool {
			if size+r.Size() <= a.ChunkSize {
				c.add(r)
				size += r.Size()
			} else {
				rest = append(rest, r)
			}
		}
		pool = rest
		a.Chunks = append(a.Chunks, c)
	}
	logger.Debugf("chunk size grew from %d to %d, repacked into %d chunks", old, a.ChunkSize, len(a.Chunks))
}

// Files returns every record in chunk order.
func (a *Archive) Files() []*Record {
	var files []*Record
	for _, c := range a.Chunks {
		files = append(files, c.Records...)
	}
	return files
}

// Len returns the number of records in the archive.
func (a *Archive) Len() int {
	var n int
	for _, c := range a.Chunks {
		n += len(c.Records)
	}
	return n
}

// Trailing returns the number of unaligned bytes dropped when the archive
// was decoded.
func (a *Archive) Trailing() int {
	return a.trailing
}

func (a *Archive) valid(h Handle) bool {
	return h.Chunk >= 0 && h.Chunk < len(a.Chunks) &&
		h.Index >= 0 && h.Index < len(a.Chunks[h.Chunk].Records)
}

// Get returns the record at h, or nil.
func (a *Archive) Get(h Handle) *Record {
	if !a.valid(h) {
		return nil
	}
	return a.Chunks[h.Chunk].Records[h.Index]
}

// Find returns the handle of the first record whose ID1 is id.
func (a *Archive) Find(id int32) (Handle, bool) {
	for ci, c := range a.Chunks {
		for ri, r := range c.Records {
			if r.ID1 == id {
				return Handle{ci, ri}, true
			}
		}
	}
	return Handle{}, false
}

// Remove detaches the record at h. A chunk left empty is dropped.
func (a *Archive) Remove(h Handle) (*Record, error) {
	if !a.valid(h) {
		return nil, errors.Wrapf(ErrBadHandle, "chunk %d index %d", h.Chunk, h.Index)
	}
	c := a.Chunks[h.Chunk]
	r := c.Records[h.Index]
	c.Records = append(c.Records[:h.Index], c.Records[h.Index+1:]...)
	if len(c.Records) == 0 {
		a.Chunks = append(a.Chunks[:h.Chunk], a.Chunks[h.Chunk+1:]...)
	}
	return r, nil
}

// Replace swaps the record at h for r and returns the old record. The new
// record is placed by AddFile, so it may land in another chunk.
func (a *Archive) Replace(h Handle, r *Record) (*Record, error) {
	old, err := a.Remove(h)
	if err != nil {
		return nil, err
	}
	a.AddFile(r)
	return old, nil
}

// Put replaces the record sharing r's ID1, or adds r when there is none.
func (a *Archive) Put(r *Record) *Record {
	if h, ok := a.Find(r.ID1); ok {
		old, _ := a.Replace(h, r)
		return old
	}
	a.AddFile(r)
	return nil
}

// ChunkStats describes the usage of one chunk.
type ChunkStats struct {
	Files   int
	Data    int
	Padding int
}

// Stats summarises an archive for reporting.
type Stats struct {
	ChunkSize int
	Chunks    []ChunkStats
	Files     int
	TotalData int
	MinSize   int
	MaxSize   int
}

// AvgSize returns the mean payload size, or 0 for an empty archive.
func (s *Stats) AvgSize() int {
	if s.Files == 0 {
		return 0
	}
	return s.TotalData / s.Files
}

// Stats computes per-chunk and per-record size statistics.
func (a *Archive) Stats() Stats {
	s := Stats{ChunkSize: a.ChunkSize}
	for _, c := range a.Chunks {
		cs := ChunkStats{Files: len(c.Records), Data: c.DataSize(), Padding: a.ChunkSize - c.Size()}
		for _, r := range c.Records {
			if s.Files == 0 || len(r.Data) < s.MinSize {
				s.MinSize = len(r.Data)
			}
			if len(r.Data) > s.MaxSize {
				s.MaxSize = len(r.Data)
			}
			s.Files++
		}
		s.TotalData += cs.Data
		s.Chunks = append(s.Chunks, cs)
	}
	return s
}
