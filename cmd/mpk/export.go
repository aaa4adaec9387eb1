package main

import (
	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/render"
)

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, path := range argsOrStdin(args) {
		if i > 0 {
			cc.Out.Write([]byte("---\n"))
		}
		f, err := getFile(cc, "export", path)
		if err != nil {
			return err
		}
		if cfg.YAML {
			if err := render.ExportYAML(cc.Out, f.Root); err != nil {
				return err
			}
			continue
		}
		if err := render.ExportJSON(cc.Out, f.Root); err != nil {
			return err
		}
	}
	return nil
}
