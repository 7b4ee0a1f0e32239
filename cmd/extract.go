// cmd/extract.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ChumWorld/pkg/extract"
	"ChumWorld/pkg/utils"

	"github.com/urfave/cli/v2"
)

func ioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  "io-limit",
			Usage: "limit file data throughput in MiB/s (0 means unlimited)",
		},
	}
}

func extractFlags() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract the contents of an archive to a folder",
		ArgsUsage: "INPUT OUTPUT",
		Action:    extractArchive,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "merge",
				Aliases: []string{"m"},
				Usage:   "merge with an existing extracted folder",
			},
			&cli.BoolFlag{
				Name:    "replace",
				Aliases: []string{"p"},
				Usage:   "replace an existing extracted folder",
			},
			&cli.StringFlag{
				Name:  "compress",
				Value: "none",
				Usage: "compression algorithm for extracted files (lz4, zstd, none)",
			},
		}, ioFlags()...),
	}
}

func extractArchive(ctx *cli.Context) error {
	if err := setup(ctx, 2); err != nil {
		return err
	}
	if ctx.Bool("merge") && ctx.Bool("replace") {
		return fmt.Errorf("--merge and --replace can not be used together")
	}
	reg, err := newRegistry(ctx)
	if err != nil {
		return err
	}
	a, names, err := loadArchive(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	output := ctx.Args().Get(1)
	if err = os.MkdirAll(output, 0755); err != nil {
		return err
	}
	merge := false
	if utils.Exists(filepath.Join(output, extract.MetaName)) {
		if ctx.Bool("replace") {
			if err = extract.Clean(output); err != nil {
				return err
			}
		} else if ctx.Bool("merge") {
			merge = true
		} else {
			w := ctx.App.Writer
			fmt.Fprintln(w, "The given folder already exists. Consider using the following flags:")
			fmt.Fprintln(w, "    --merge,-m to merge the contents of the file with the existing folder")
			fmt.Fprintln(w, "    --replace,-p to replace the existing folder")
			return nil
		}
	}

	err = extract.Extract(a, names, output, extract.Options{
		Registry:    reg,
		Compression: ctx.String("compress"),
		Merge:       merge,
		Limiter:     utils.NewLimiter(ctx.Int64("io-limit") << 20),
		Quiet:       ctx.Bool("quiet"),
	})
	if err != nil {
		return err
	}
	logger.Infof("Extracted %d files to %s", a.Len(), output)
	return nil
}
