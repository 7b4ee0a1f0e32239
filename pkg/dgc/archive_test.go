// pkg/dgc/archive_test.go

package dgc

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(size int, id int32) *Record {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(int(id) + i)
	}
	return &Record{Data: data, TypeID: 7, ID1: id, ID2: id}
}

func newTestArchive(t *testing.T, chunkSize int) *Archive {
	a, err := NewArchive([]byte("(c) test notice"), chunkSize)
	require.NoError(t, err)
	return a
}

func checkCeiling(t *testing.T, a *Archive) {
	t.Helper()
	assert.Equal(t, 0, a.ChunkSize%ChunkAlign)
	assert.GreaterOrEqual(t, a.ChunkSize, ChunkAlign)
	for i, c := range a.Chunks {
		assert.LessOrEqual(t, c.Size(), a.ChunkSize, "chunk %d over the ceiling", i)
	}
}

func ids(a *Archive) []int32 {
	var out []int32
	for _, r := range a.Files() {
		out = append(out, r.ID1)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestNewArchive(t *testing.T) {
	a := newTestArchive(t, 0)
	assert.Equal(t, 2048, a.ChunkSize)
	assert.Equal(t, "(c) test notice", string(a.Header[:15]))
	assert.Equal(t, byte(0), a.Header[HeaderSize-1])

	a = newTestArchive(t, 3000)
	assert.Equal(t, 4096, a.ChunkSize)

	_, err := NewArchive(make([]byte, HeaderSize+1), 0)
	assert.Error(t, err)
}

func TestAddFileFirstFit(t *testing.T) {
	a := newTestArchive(t, 0)
	a.AddFile(newRecord(100, 1))
	a.AddFile(newRecord(2028, 2))
	a.AddFile(newRecord(50, 3))

	require.Equal(t, 2048, a.ChunkSize)
	require.Len(t, a.Chunks, 2)
	assert.Equal(t, []int32{1, 3}, []int32{a.Chunks[0].Records[0].ID1, a.Chunks[0].Records[1].ID1})
	assert.Equal(t, 4+116+66, a.Chunks[0].Size())
	require.Len(t, a.Chunks[1].Records, 1)
	assert.Equal(t, 2048, a.Chunks[1].Size(), "2028 byte payload fills a chunk exactly")
	checkCeiling(t, a)
}

func TestAddFileGrowth(t *testing.T) {
	a := newTestArchive(t, 0)
	a.AddFile(newRecord(100, 1))
	a.AddFile(newRecord(2030, 2))
	a.AddFile(newRecord(50, 3))

	// 2030+16 plus the chunk's count prefix does not fit 2048.
	assert.Equal(t, 4096, a.ChunkSize)
	require.Len(t, a.Chunks, 1)
	assert.Equal(t, 4+116+2046+66, a.Chunks[0].Size())
	checkCeiling(t, a)

	a.AddFile(newRecord(5000, 4))
	assert.Equal(t, 6144, a.ChunkSize)
	require.Len(t, a.Chunks, 2)
	// repacked largest first, the triggering record placed afterwards
	first := a.Chunks[0].Records
	require.Len(t, first, 3)
	assert.Equal(t, []int32{2, 1, 3}, []int32{first[0].ID1, first[1].ID1, first[2].ID1})
	require.Len(t, a.Chunks[1].Records, 1)
	assert.Equal(t, int32(4), a.Chunks[1].Records[0].ID1)
	assert.Equal(t, []int32{1, 2, 3, 4}, ids(a))
	checkCeiling(t, a)
}

func TestRedistributeFirstFitDecreasing(t *testing.T) {
	a := newTestArchive(t, 0)
	for i, size := range []int{1000, 900, 800, 700, 600, 500} {
		a.AddFile(newRecord(size, int32(i+1)))
	}
	checkCeiling(t, a)
	before := len(a.Chunks)
	assert.Equal(t, 3, before)

	a.AddFile(newRecord(3000, 100))
	assert.Equal(t, 4096, a.ChunkSize)
	// 4+1016+916+816+716+616 = 4084, so the 500 byte record opens chunk 1
	// and the 3000 byte record joins it.
	require.Len(t, a.Chunks, 2)
	var sizes []int
	for _, r := range a.Chunks[0].Records {
		sizes = append(sizes, len(r.Data))
	}
	assert.Equal(t, []int{1000, 900, 800, 700, 600}, sizes)
	require.Len(t, a.Chunks[1].Records, 2)
	assert.Equal(t, int32(100), a.Chunks[1].Records[1].ID1)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 100}, ids(a))
	checkCeiling(t, a)
}

func TestAddFileRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	a := newTestArchive(t, 0)
	var want []int32
	for i := 0; i < 300; i++ {
		size := rnd.Intn(1500)
		if i%40 == 39 {
			size = rnd.Intn(20000)
		}
		prev := a.ChunkSize
		a.AddFile(newRecord(size, int32(i)))
		want = append(want, int32(i))
		assert.GreaterOrEqual(t, a.ChunkSize, prev, "chunk size never shrinks")
		checkCeiling(t, a)
	}
	assert.Equal(t, want, ids(a))
	assert.Equal(t, 300, a.Len())
}

func TestHandles(t *testing.T) {
	a := newTestArchive(t, 0)
	a.AddFile(newRecord(1500, 1))
	a.AddFile(newRecord(1500, 2))
	a.AddFile(newRecord(10, 3))

	h, ok := a.Find(2)
	require.True(t, ok)
	assert.Equal(t, Handle{1, 0}, h)
	assert.Equal(t, int32(2), a.Get(h).ID1)
	assert.Nil(t, a.Get(Handle{9, 0}))
	_, ok = a.Find(42)
	assert.False(t, ok)

	old, err := a.Remove(h)
	require.NoError(t, err)
	assert.Equal(t, int32(2), old.ID1)
	assert.Len(t, a.Chunks, 1, "empty chunk dropped")

	_, err = a.Remove(Handle{5, 5})
	assert.ErrorIs(t, err, ErrBadHandle)

	h, ok = a.Find(3)
	require.True(t, ok)
	old, err = a.Replace(h, newRecord(3000, 3))
	require.NoError(t, err)
	assert.Len(t, old.Data, 10)
	assert.Equal(t, 4096, a.ChunkSize)
	assert.Equal(t, []int32{1, 3}, ids(a))

	assert.Nil(t, a.Put(newRecord(20, 9)))
	old = a.Put(newRecord(30, 9))
	require.NotNil(t, old)
	assert.Len(t, old.Data, 20)
	assert.Equal(t, []int32{1, 3, 9}, ids(a))
	checkCeiling(t, a)
}

func TestStats(t *testing.T) {
	a := newTestArchive(t, 0)
	s := a.Stats()
	assert.Equal(t, 0, s.Files)
	assert.Equal(t, 0, s.AvgSize())

	a.AddFile(newRecord(100, 1))
	a.AddFile(newRecord(2028, 2))
	a.AddFile(newRecord(50, 3))
	s = a.Stats()
	assert.Equal(t, 2048, s.ChunkSize)
	assert.Equal(t, 3, s.Files)
	assert.Equal(t, 2178, s.TotalData)
	assert.Equal(t, 50, s.MinSize)
	assert.Equal(t, 2028, s.MaxSize)
	assert.Equal(t, 726, s.AvgSize())
	assert.Equal(t, []ChunkStats{
		{Files: 2, Data: 150, Padding: 2048 - 186},
		{Files: 1, Data: 2028, Padding: 0},
	}, s.Chunks)
}
