package main

import (
	"fmt"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/diff"
	"github.com/mpk-tools/mpk/loader"
	"github.com/mpk-tools/mpk/render"
)

func diffCmd(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Every == 0 {
		a, err := getFile(cc, "a", args[0])
		if err != nil {
			return fmt.Errorf("error loading %s: %w", args[0], err)
		}
		b, err := getFile(cc, "b", args[1])
		if err != nil {
			return fmt.Errorf("error loading %s: %w", args[1], err)
		}
		differs, err := diffFiles(cfg, cc, a, b, false)
		if err != nil {
			return err
		}
		if differs {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	return diffEvery(cfg, cc, args[0], args[1])
}

// diffEvery re-reads both files on an interval, reporting each round in
// which they differ.  -times bounds the number of rounds.
func diffEvery(cfg *DiffConfig, cc *cli.Context, aPath, bPath string) error {
	a := loader.NewSlot("a")
	b := loader.NewSlot("b")
	a.SetPath(aPath)
	b.SetPath(bPath)
	ticker := time.NewTicker(cfg.Every)
	defer ticker.Stop()
	diffCount := 0
	for i := 0; i != cfg.Times; i++ {
		if i > 0 {
			if err := a.Reload(); err != nil {
				return err
			}
			if err := b.Reload(); err != nil {
				return err
			}
		}
		if a.State() != loader.Loaded {
			return fmt.Errorf("error loading %s: %w", aPath, a.Err())
		}
		if b.State() != loader.Loaded {
			return fmt.Errorf("error loading %s: %w", bPath, b.Err())
		}
		differs, err := diffFiles(cfg, cc, a.File(), b.File(), diffCount > 0)
		if err != nil {
			return err
		}
		if differs {
			diffCount++
		}
		<-ticker.C
	}
	return nil
}

func diffFiles(cfg *DiffConfig, cc *cli.Context, a, b *loader.File, sep bool) (bool, error) {
	deltas := diff.Diff(a.Root, b.Root)
	if deltas == nil {
		return false, nil
	}
	if sep {
		if _, err := cc.Out.Write([]byte("---\n")); err != nil {
			return false, err
		}
	}
	if cfg.Every != 0 {
		when := time.Now().Format(time.RFC3339Nano)
		if _, err := fmt.Fprintf(cc.Out, "# difference found at %s\n", when); err != nil {
			return false, err
		}
	}
	if err := render.Deltas(cc.Out, deltas, cfg.colors(cc.Out)); err != nil {
		return false, err
	}
	return true, nil
}
