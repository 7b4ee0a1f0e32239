// pkg/extract/extract.go

package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ChumWorld/pkg/compress"
	"ChumWorld/pkg/dgc"
	"ChumWorld/pkg/ngc"
	"ChumWorld/pkg/plugin"
	"ChumWorld/pkg/utils"

	"github.com/pkg/errors"
)

var logger = utils.GetLogger("chumworld")

// ErrCompressionMismatch is returned when merging into a folder extracted
// with another compression algorithm.
var ErrCompressionMismatch = errors.New("compression differs from existing extraction")

// Options control Extract and Import.
type Options struct {
	// Registry transcodes payloads, nil means plugin.Default().
	Registry *plugin.Registry
	// Compression is the algorithm for extracted files: none, lz4 or zstd.
	// Import reads it from the side-car instead.
	Compression string
	// Merge keeps side-car entries of an earlier extraction whose IDs are
	// not in the archive.
	Merge bool
	// Limiter throttles file data, nil for no limit.
	Limiter *utils.Limiter
	// Quiet hides the progress bar.
	Quiet bool
}

func (o *Options) registry() *plugin.Registry {
	if o.Registry == nil {
		return plugin.Default()
	}
	return o.Registry
}

// Extract writes every record of a to its own file in dir and describes
// them in dir/meta.json.
func Extract(a *dgc.Archive, names *ngc.Table, dir string, opts Options) error {
	comp := compress.NewCompressor(opts.Compression)
	if comp == nil {
		return errors.Errorf("unsupported compress algorithm: %s", opts.Compression)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	reg := opts.registry()
	meta := &Meta{}
	meta.setHeader(a.Header[:])
	if comp.Name() != "none" {
		meta.Compression = strings.ToLower(opts.Compression)
	}
	var old *Meta
	if opts.Merge {
		var err error
		if old, err = ReadMeta(dir); err != nil && !os.IsNotExist(err) {
			return err
		}
		if old != nil && compressionName(old.Compression) != compressionName(meta.Compression) {
			return errors.Wrapf(ErrCompressionMismatch, "%s holds %s files, cannot merge %s",
				dir, compressionName(old.Compression), compressionName(meta.Compression))
		}
	}

	start := time.Now()
	progress, bar := utils.NewDynProgressBar("Extracting files:", opts.Quiet)
	bar.SetTotal(int64(a.Len()), false)
	defer func() {
		bar.SetTotal(-1, true)
		progress.Wait()
	}()
	for _, r := range a.Files() {
		f := MetaFile{
			ID:        names.Name(r.ID1),
			TypeID:    names.Name(r.TypeID),
			SubtypeID: names.Name(r.ID2),
		}
		f.FileName = FileString(f.ID, uint32(r.ID1))

		var exported bytes.Buffer
		if err := reg.Export(f.TypeID, bytes.NewReader(r.Data), &exported); err != nil {
			return errors.WithMessage(err, f.ID)
		}
		data := exported.Bytes()
		if meta.Compression != "" && len(data) > 0 {
			f.Size = len(data)
			packed, err := compress.Pack(comp, data)
			if err != nil {
				return errors.Wrapf(err, "compress %s", f.ID)
			}
			data = packed
		}
		if err := writeFile(filepath.Join(dir, f.FileName), opts.Limiter.Reader(bytes.NewReader(data))); err != nil {
			return err
		}
		meta.Files = append(meta.Files, f)
		bar.Increment()
	}

	if old != nil {
		for _, f := range old.Files {
			if !meta.Exists(f.ID) {
				meta.Files = append(meta.Files, f)
			}
		}
	}
	if err := WriteMeta(dir, meta); err != nil {
		return err
	}
	logger.Debugf("extracted %d files to %s in %s", a.Len(), dir, time.Since(start))
	return nil
}

func compressionName(algr string) string {
	if algr == "" || strings.EqualFold(algr, "none") {
		return "uncompressed"
	}
	return strings.ToLower(algr)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

// Clean removes the regular files of dir, leaving subdirectories alone.
func Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
