// pkg/plugin/text.go

package plugin

import (
	"io"

	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

// LengthText handles text stored as a big-endian u32 byte count followed
// by the bytes.
type LengthText struct{}

func (LengthText) Name() string {
	return "length-text"
}

func (LengthText) Import(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	wb := utils.NewBuffer(4 + uint32(len(data)))
	wb.Put32(uint32(len(data)))
	wb.Put(data)
	_, err = out.Write(wb.Bytes())
	return err
}

// Export drops the length prefix. The declared length is not trusted, the
// rest of the input is copied as is.
func (LengthText) Export(in io.Reader, out io.Writer) error {
	var size [4]byte
	if _, err := io.ReadFull(in, size[:]); err != nil {
		return errors.Wrap(err, "read text length")
	}
	_, err := io.Copy(out, in)
	return err
}
