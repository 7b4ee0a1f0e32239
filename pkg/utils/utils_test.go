// pkg/utils/utils_test.go

package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.bin")

	err := WriteFileAtomic(p, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	})
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	boom := errors.New("boom")
	err = WriteFileAtomic(p, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.Equal(t, boom, err)
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data), "failed write must not replace the target")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
	assert.True(t, Exists(p))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
}

func TestLimiter(t *testing.T) {
	var l *Limiter
	src := bytes.NewReader([]byte("abc"))
	assert.Equal(t, io.Reader(src), l.Reader(src))
	assert.Nil(t, NewLimiter(0))

	l = NewLimiter(1 << 20)
	data, err := io.ReadAll(l.Reader(bytes.NewReader([]byte("throttled"))))
	require.NoError(t, err)
	assert.Equal(t, "throttled", string(data))
}
