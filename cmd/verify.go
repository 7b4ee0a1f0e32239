// cmd/verify.go

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"ChumWorld/pkg/dgc"

	"github.com/urfave/cli/v2"
	"github.com/zeebo/blake3"
)

func verifyFlags() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "check that an archive decodes and re-encodes to the same bytes",
		ArgsUsage: "FILE",
		Action:    verify,
	}
}

func verify(ctx *cli.Context) error {
	if err := setup(ctx, 1); err != nil {
		return err
	}
	dgcPath, _ := archivePaths(ctx.Args().Get(0))
	raw, err := os.ReadFile(dgcPath)
	if err != nil {
		return err
	}
	a, err := dgc.Decode(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = dgc.Encode(a, &buf); err != nil {
		return err
	}

	w := ctx.App.Writer
	want := raw[:len(raw)-a.Trailing()]
	got := buf.Bytes()
	sum := blake3.Sum256(want)
	fmt.Fprintf(w, "%s: %d files in %d chunks, blake3 %s\n", dgcPath, a.Len(), len(a.Chunks), hex.EncodeToString(sum[:]))
	// the reserved region is not kept, compare around it
	if len(want) != len(got) ||
		!bytes.Equal(want[:dgc.HeaderSize+4], got[:dgc.HeaderSize+4]) ||
		!bytes.Equal(want[dgc.PreludeSize:], got[dgc.PreludeSize:]) {
		return fmt.Errorf("%s does not re-encode to the same bytes", dgcPath)
	}
	if a.Trailing() > 0 {
		return fmt.Errorf("%s has %d trailing bytes after the last chunk", dgcPath, a.Trailing())
	}
	fmt.Fprintln(w, "OK")
	return nil
}
