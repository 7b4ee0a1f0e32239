// pkg/extract/import.go

package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"ChumWorld/pkg/compress"
	"ChumWorld/pkg/dgc"
	"ChumWorld/pkg/ngc"
	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

// Import rebuilds an archive and its name table from a folder written by
// Extract. Names are hashed into identifiers and registered in the table.
func Import(dir string, opts Options) (*dgc.Archive, *ngc.Table, error) {
	meta, err := ReadMeta(dir)
	if err != nil {
		return nil, nil, err
	}
	comp := compress.NewCompressor(meta.Compression)
	if comp == nil {
		return nil, nil, errors.Errorf("unsupported compress algorithm: %s", meta.Compression)
	}
	reg := opts.registry()
	names := ngc.NewTable()

	progress, bar := utils.NewDynProgressBar("Importing files:", opts.Quiet)
	bar.SetTotal(int64(len(meta.Files)), false)
	defer func() {
		bar.SetTotal(-1, true)
		progress.Wait()
	}()

	records := make([]*dgc.Record, 0, len(meta.Files))
	var maxSize int
	for _, f := range meta.Files {
		for _, name := range []string{f.ID, f.TypeID, f.SubtypeID} {
			if err := ngc.CheckName(name); err != nil {
				return nil, nil, err
			}
		}
		if f.FileName != filepath.Base(f.FileName) || f.FileName == "." || f.FileName == ".." {
			return nil, nil, errors.Errorf("%s: file name %q escapes %s", f.ID, f.FileName, dir)
		}
		data, err := readFile(filepath.Join(dir, f.FileName), opts.Limiter)
		if err != nil {
			return nil, nil, err
		}
		if meta.Compression != "" && f.Size > 0 {
			if data, err = compress.Unpack(comp, data, f.Size); err != nil {
				return nil, nil, errors.Wrapf(err, "decompress %s", f.FileName)
			}
		}
		var imported bytes.Buffer
		if err := reg.Import(f.TypeID, bytes.NewReader(data), &imported); err != nil {
			return nil, nil, errors.WithMessage(err, f.ID)
		}

		r := &dgc.Record{
			Data:   imported.Bytes(),
			TypeID: names.Register(f.TypeID),
			ID1:    names.Register(f.ID),
			ID2:    names.Register(f.SubtypeID),
		}
		if len(r.Data) > maxSize {
			maxSize = len(r.Data)
		}
		records = append(records, r)
		bar.Increment()
	}

	a, err := dgc.NewArchive(meta.header(), maxSize)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range records {
		a.AddFile(r)
	}
	logger.Debugf("imported %d files from %s into %d chunks of %d bytes", len(records), dir, len(a.Chunks), a.ChunkSize)
	return a, names, nil
}

func readFile(path string, limiter *utils.Limiter) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(limiter.Reader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}
