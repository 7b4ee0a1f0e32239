// cmd/info.go

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"ChumWorld/pkg/dgc"

	"github.com/urfave/cli/v2"
)

func infoFlags() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show chunk usage and file size statistics of an archive",
		ArgsUsage: "FILE",
		Action:    info,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the statistics as JSON",
			},
		},
	}
}

func printJson(w io.Writer, v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatalf("json: %s", err)
	}
	fmt.Fprintln(w, string(output))
}

func info(ctx *cli.Context) error {
	if err := setup(ctx, 1); err != nil {
		return err
	}
	dgcPath, _ := archivePaths(ctx.Args().Get(0))
	a, err := dgc.Open(dgcPath)
	if err != nil {
		return err
	}
	stats := a.Stats()
	w := ctx.App.Writer
	if ctx.Bool("json") {
		printJson(w, &stats)
		return nil
	}
	for i, c := range stats.Chunks {
		fmt.Fprintf(w, "Chunk %3d: %3d files %8dB data %8dB padding\n", i, c.Files, c.Data, c.Padding)
	}
	fmt.Fprintf(w, "Chunk size: %dB (%X)\n", stats.ChunkSize, stats.ChunkSize)
	fmt.Fprintf(w, "Total size: %dB, num files: %d, average file size: %dB\n", stats.TotalData, stats.Files, stats.AvgSize())
	fmt.Fprintf(w, "Minimum size: %dB, Maximum size: %dB\n", stats.MinSize, stats.MaxSize)
	if a.Trailing() > 0 {
		fmt.Fprintf(w, "Trailing bytes dropped: %d\n", a.Trailing())
	}
	return nil
}
