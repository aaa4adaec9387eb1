package main

import (
	"io"
	"os"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/mpk-tools/mpk/render"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// colors picks the color map for w: forced on by -color, forced off by
// -color=false, otherwise on exactly when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *render.Colors {
	if cfg.Color {
		return render.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return render.NoColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return render.NoColors()
	}
	if isatty.IsTerminal(f.Fd()) {
		return render.NewColors()
	}
	return render.NoColors()
}

type InfoConfig struct {
	*MainConfig

	Info *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Every time.Duration
	Times int `cli:"name=times desc='with -every, max number of rounds'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Every = d
		return d, nil
	}
}

type FindConfig struct {
	*MainConfig
	Values bool `cli:"name=v desc='print matched values, not just paths'"`

	Find *cli.Command
}

type ExportConfig struct {
	*MainConfig
	YAML bool `cli:"name=y aliases=yaml desc='export yaml instead of json'"`

	Export *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}
