// pkg/utils/buffer_test.go

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	w := NewBuffer(4 + 4 + 3 + 2)
	w.Put32(0x800)
	w.Put32(uint32(0xFFFFFFFF))
	w.Put([]byte("abc"))
	assert.Equal(t, 2, w.Left())
	assert.Equal(t, []byte{0, 0, 8, 0}, w.Bytes()[:4])
	assert.Equal(t, []byte{0, 0}, w.Bytes()[11:], "unwritten tail stays zero")

	r := ReadBuffer(w.Bytes())
	assert.Equal(t, 13, r.Left())
	assert.Equal(t, uint32(0x800), r.Get32())
	assert.Equal(t, int32(-1), int32(r.Get32()))
	assert.Equal(t, []byte("abc"), r.Get(3))
	assert.Equal(t, 2, r.Left())
	require.Panics(t, func() { r.Get32() })
}
