package main

import (
	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/render"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	colors := cfg.colors(cc.Out)
	for i, path := range argsOrStdin(args) {
		if i > 0 {
			cc.Out.Write([]byte("---\n"))
		}
		f, err := getFile(cc, "view", path)
		if err != nil {
			return err
		}
		if err := render.Tree(cc.Out, f.Root, colors); err != nil {
			return err
		}
	}
	return nil
}
