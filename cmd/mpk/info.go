package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/ir"
)

func info(cfg *InfoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Info.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, path := range argsOrStdin(args) {
		if i > 0 {
			fmt.Fprintln(cc.Out)
		}
		f, err := getFile(cc, "info", path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s\n", f.Path)
		fmt.Fprintf(cc.Out, "  size:  %d bytes\n", len(f.Data))
		fmt.Fprintf(cc.Out, "  %s\n", f.Digest)
		fmt.Fprintf(cc.Out, "  root:  %s\n", f.Root.Type)
		fmt.Fprintf(cc.Out, "  nodes: %d\n", ir.Count(f.Root))
	}
	return nil
}
