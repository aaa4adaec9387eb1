package main

import (
	"bytes"
	"encoding/json"

	"github.com/scott-cotton/cli"
)

// dump emits the decoded tree in its structural json form, every node
// tagged with its type, for debugging the decoder and the identity
// rules.
func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, path := range argsOrStdin(args) {
		if i > 0 {
			cc.Out.Write([]byte("---\n"))
		}
		f, err := getFile(cc, "dump", path)
		if err != nil {
			return err
		}
		data, err := json.Marshal(f.Root)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		if _, err := cc.Out.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
