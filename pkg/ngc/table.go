// pkg/ngc/table.go

package ngc

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedLine is returned for table lines not in `<id> "<name>"` form.
	ErrMalformedLine = errors.New("malformed name table line")
	// ErrInvalidName is returned for names a table line cannot hold.
	ErrInvalidName = errors.New("invalid name")
)

// Table maps archive identifiers to the names they were hashed from.
type Table struct {
	Names map[int32]string
}

func NewTable() *Table {
	return &Table{Names: make(map[int32]string)}
}

// Hash returns the identifier of name. A name of the form "#<decimal>" is
// a raw identifier with no known name and maps back to that number.
func Hash(name string) int32 {
	if id, ok := rawID(name); ok {
		return id
	}
	return int32(crc32.ChecksumIEEE([]byte(name)))
}

func rawID(name string) (int32, bool) {
	if !strings.HasPrefix(name, "#") {
		return 0, false
	}
	id, err := strconv.ParseInt(name[1:], 10, 32)
	return int32(id), err == nil
}

// CheckName reports whether name can be stored in a table line.
func CheckName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return errors.Wrapf(ErrInvalidName, "%q contains a line break", name)
	}
	return nil
}

// Lookup returns the name of id.
func (t *Table) Lookup(id int32) (string, bool) {
	name, ok := t.Names[id]
	return name, ok
}

// Name returns the name of id, or "#<id>" when the table does not know it.
func (t *Table) Name(id int32) string {
	if name, ok := t.Names[id]; ok {
		return name
	}
	return "#" + strconv.Itoa(int(id))
}

// Register records name under its hash and returns the hash. Raw
// identifiers are returned without being added.
func (t *Table) Register(name string) int32 {
	if id, ok := rawID(name); ok {
		return id
	}
	id := Hash(name)
	t.Names[id] = name
	return id
}

// ReadTable parses a name table. Reading stops at the end of input, at an
// empty line or at a line starting with a NUL byte.
func ReadTable(r io.Reader) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), 1<<20)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 || line[0] == 0 {
			break
		}
		pos := strings.IndexFunc(line, unicode.IsSpace)
		if pos < 0 {
			return nil, errors.Wrapf(ErrMalformedLine, "line %d: no name", lineno)
		}
		id, err := strconv.ParseInt(line[:pos], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedLine, "line %d: %s", lineno, err)
		}
		name := line[pos+1:]
		if len(name) < 2 || name[0] != '"' || name[len(name)-1] != '"' {
			return nil, errors.Wrapf(ErrMalformedLine, "line %d: name is not quoted", lineno)
		}
		t.Names[int32(id)] = name[1 : len(name)-1]
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read name table")
	}
	return t, nil
}

// WriteTo writes the table sorted by identifier.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	keys := make([]int32, 0, len(t.Names))
	for id := range t.Names {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	bw := bufio.NewWriter(w)
	var written int64
	for _, id := range keys {
		if err := CheckName(t.Names[id]); err != nil {
			return written, err
		}
		n, err := fmt.Fprintf(bw, "%d \"%s\"\n", id, t.Names[id])
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "write name table")
		}
	}
	if err := bw.Flush(); err != nil {
		return written, errors.Wrap(err, "write name table")
	}
	return written, nil
}

// Open reads the name table stored at path.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return t, nil
}

// Save writes the table to path.
func (t *Table) Save(path string) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := t.WriteTo(w)
		return err
	})
}
