// pkg/plugin/plugin_test.go

package plugin

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthText(t *testing.T) {
	var archived bytes.Buffer
	require.NoError(t, LengthText{}.Import(strings.NewReader("hello"), &archived))
	assert.Equal(t, []byte{0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o'}, archived.Bytes())

	var text bytes.Buffer
	require.NoError(t, LengthText{}.Export(&archived, &text))
	assert.Equal(t, "hello", text.String())

	err := LengthText{}.Export(bytes.NewReader([]byte{0, 1}), io.Discard)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type upper struct{}

func (upper) Name() string { return "upper" }
func (upper) Import(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	_, err = out.Write(bytes.ToUpper(data))
	return err
}
func (upper) Export(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	_, err = out.Write(bytes.ToLower(data))
	return err
}

func TestRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"TXT"}, r.Types())
	p, ok := r.Lookup("TXT")
	require.True(t, ok)
	assert.Equal(t, "length-text", p.Name())

	var out bytes.Buffer
	require.NoError(t, r.Export("BIN", bytes.NewReader([]byte{1, 2, 3}), &out))
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes(), "unbound types pass through")

	assert.Error(t, r.Bind("WAV", "missing"))
	r.Register(upper{})
	require.NoError(t, r.Bind("WAV", "upper"))
	out.Reset()
	require.NoError(t, r.Import("WAV", strings.NewReader("abc"), &out))
	assert.Equal(t, "ABC", out.String())
	out.Reset()
	require.NoError(t, r.Export("WAV", strings.NewReader("ABC"), &out))
	assert.Equal(t, "abc", out.String())

	err := r.Export("TXT", bytes.NewReader(nil), io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfig(t *testing.T) {
	c, err := ParseConfig([]byte("types:\n  TXT: length-text\n  SUB: length-text\n"))
	require.NoError(t, err)
	r := NewRegistry()
	r.Register(LengthText{})
	require.NoError(t, c.Apply(r))
	assert.Equal(t, []string{"SUB", "TXT"}, r.Types())

	c, err = ParseConfig([]byte("types:\n  TXT: nope\n"))
	require.NoError(t, err)
	assert.Error(t, c.Apply(NewRegistry()))

	_, err = ParseConfig([]byte("types: [unclosed"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "plugins.yaml")
	require.NoError(t, os.WriteFile(p, []byte("types:\n  TXT: length-text\n"), 0644))
	c, err = LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TXT": "length-text"}, c.Types)
}
