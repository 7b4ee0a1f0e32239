// cmd/list.go

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/zeebo/blake3"
)

func listFlags() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list the files stored in an archive",
		ArgsUsage: "FILE",
		Action:    list,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "digest",
				Aliases: []string{"d"},
				Usage:   "print a BLAKE3 digest of every payload",
			},
		},
	}
}

func list(ctx *cli.Context) error {
	if err := setup(ctx, 1); err != nil {
		return err
	}
	a, names, err := loadArchive(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for _, f := range a.Files() {
		typ := names.Name(f.TypeID)
		if f.ID1 != f.ID2 {
			typ = names.Name(f.ID2) + "/" + typ
		}
		if ctx.Bool("digest") {
			sum := blake3.Sum256(f.Data)
			fmt.Fprintf(w, "%8X %35s: %s %s\n", uint32(f.ID1), typ, names.Name(f.ID1), hex.EncodeToString(sum[:8]))
		} else {
			fmt.Fprintf(w, "%8X %35s: %s\n", uint32(f.ID1), typ, names.Name(f.ID1))
		}
	}
	return nil
}
