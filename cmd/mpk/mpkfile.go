package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/decode"
	"github.com/mpk-tools/mpk/digest"
	"github.com/mpk-tools/mpk/loader"
)

// getFile loads path through a fresh slot, or reads cc.In when path is
// "-".  Either way the result is a fully decoded record.
func getFile(cc *cli.Context, slotName, path string) (*loader.File, error) {
	if path == "-" {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		dg := digest.Sum(data)
		payload, err := loader.Expand(data)
		if err != nil {
			return nil, fmt.Errorf("error expanding stdin: %w", err)
		}
		root, err := decode.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("error decoding stdin: %w", err)
		}
		return &loader.File{Path: "-", Data: data, Digest: dg, Root: root}, nil
	}
	slot := loader.NewSlot(slotName)
	slot.SetPath(path)
	if slot.State() != loader.Loaded {
		if err := slot.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", loader.ErrNotLoaded, path)
	}
	return slot.File(), nil
}

// argsOrStdin turns an empty argument list into the conventional "-".
func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
