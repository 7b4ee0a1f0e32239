// cmd/pack.go

package main

import (
	"ChumWorld/pkg/extract"
	"ChumWorld/pkg/utils"

	"github.com/urfave/cli/v2"
)

func packFlags() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "pack an extracted folder back into an archive",
		ArgsUsage: "INPUT OUTPUT",
		Action:    pack,
		Flags:     ioFlags(),
	}
}

func pack(ctx *cli.Context) error {
	if err := setup(ctx, 2); err != nil {
		return err
	}
	reg, err := newRegistry(ctx)
	if err != nil {
		return err
	}
	a, names, err := extract.Import(ctx.Args().Get(0), extract.Options{
		Registry: reg,
		Limiter:  utils.NewLimiter(ctx.Int64("io-limit") << 20),
		Quiet:    ctx.Bool("quiet"),
	})
	if err != nil {
		return err
	}

	dgcPath, ngcPath := archivePaths(ctx.Args().Get(1))
	if err = names.Save(ngcPath); err != nil {
		return err
	}
	if err = a.Save(dgcPath); err != nil {
		return err
	}
	logger.Infof("Packed %d files into %d chunks of %d bytes: %s", a.Len(), len(a.Chunks), a.ChunkSize, dgcPath)
	return nil
}
