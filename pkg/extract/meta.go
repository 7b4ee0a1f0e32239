// pkg/extract/meta.go

package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

// MetaName is the side-car written next to extracted files.
const MetaName = "meta.json"

// Meta describes an extracted archive. Chunk layout and chunk size are not
// kept, packing recomputes them.
type Meta struct {
	Header string `json:"header"`
	// HeaderRaw holds the notice when it is not valid UTF-8.
	HeaderRaw   []byte     `json:"header_raw,omitempty"`
	Compression string     `json:"compression,omitempty"`
	Files       []MetaFile `json:"files"`
}

// MetaFile describes one extracted record.
type MetaFile struct {
	ID        string `json:"id"`
	TypeID    string `json:"type_id"`
	SubtypeID string `json:"subtype_id"`
	FileName  string `json:"file_name"`
	// Size is the exported length before compression.
	Size int `json:"size,omitempty"`
}

// Exists reports whether a file with this ID is listed.
func (m *Meta) Exists(id string) bool {
	for _, f := range m.Files {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (m *Meta) setHeader(header []byte) {
	trimmed := strings.TrimRight(string(header), "\x00")
	if utf8.ValidString(trimmed) {
		m.Header = trimmed
		return
	}
	m.Header = strings.ToValidUTF8(trimmed, "�")
	m.HeaderRaw = append([]byte(nil), header...)
}

func (m *Meta) header() []byte {
	if m.HeaderRaw != nil {
		return m.HeaderRaw
	}
	return []byte(m.Header)
}

// ReadMeta loads the side-car from dir.
func ReadMeta(dir string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetaName))
	if err != nil {
		return nil, err
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parse %s", MetaName)
	}
	return &m, nil
}

// WriteMeta stores the side-car in dir.
func WriteMeta(dir string, m *Meta) error {
	output, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "json")
	}
	return utils.WriteFileAtomic(filepath.Join(dir, MetaName), func(w io.Writer) error {
		_, err := w.Write(append(output, '\n'))
		return err
	})
}

// FileString builds the on-disk name of an extracted record: the hex id is
// inserted before the extension and anything that is not a letter, digit
// or dot becomes an underscore.
func FileString(name string, id uint32) string {
	var s string
	if pos := strings.LastIndexByte(name, '.'); pos >= 0 {
		s = fmt.Sprintf("%s%8X%s", name[:pos], id, name[pos:])
	} else {
		s = fmt.Sprintf("%s%8X", name, id)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '.' {
			return r
		}
		return '_'
	}, s)
}
