package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/query"
	"github.com/mpk-tools/mpk/render"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires an expression", cli.ErrUsage)
	}
	prog, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	for _, path := range argsOrStdin(args[1:]) {
		f, err := getFile(cc, "find", path)
		if err != nil {
			return err
		}
		matches, err := query.Select(f.Root, prog)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if cfg.Values {
				fmt.Fprintf(cc.Out, "%s: %s\n", m.Path, render.Literal(m.Value))
				continue
			}
			fmt.Fprintf(cc.Out, "%s\n", m.Path)
		}
	}
	return nil
}
