package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/mpk-tools/mpk/encode"
	"github.com/mpk-tools/mpk/ir"
)

// patch applies an RFC 6902 json patch to a msgpack document and
// writes the patched document back out as msgpack.  The document must
// be json-projectable: no binary or ext values, string map keys only.
func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires <patch.json> <file>, got %v", cli.ErrUsage, args)
	}
	patchData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading patch %q: %w", args[0], err)
	}
	p, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return fmt.Errorf("error decoding patch %q: %w", args[0], err)
	}
	f, err := getFile(cc, "patch", args[1])
	if err != nil {
		return err
	}
	if err := ir.JSONable(f.Root); err != nil {
		return fmt.Errorf("%s is not json-patchable: %w", f.Path, err)
	}
	doc, err := ir.ToJSON(f.Root)
	if err != nil {
		return err
	}
	patched, err := p.Apply(doc)
	if err != nil {
		return fmt.Errorf("error applying patch: %w", err)
	}
	root, err := ir.FromJSON(patched)
	if err != nil {
		return fmt.Errorf("error reading patched document: %w", err)
	}
	return encode.Encode(root, cc.Out)
}
