package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "mpk").
		WithSynopsis("mpk [opts] command [opts]").
		WithDescription("mpk is a tool for inspecting and comparing msgpack files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mpkMain(cfg, cc, args)
		}).
		WithSubs(
			InfoCommand(cfg),
			ViewCommand(cfg),
			DiffCommand(cfg),
			FindCommand(cfg),
			ExportCommand(cfg),
			PatchCommand(cfg),
			DumpCommand(cfg))
}

func InfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InfoConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("info").
		WithAliases("i").
		WithSynopsis("info [files]").
		WithDescription("summarize msgpack files: digest, size, root shape").
		WithRun(func(cc *cli.Context, args []string) error {
			return info(cfg, cc, args)
		})
	cfg.Info = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view msgpack files as indented trees in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Times: -1}
	everyOpt := &cli.Opt{
		Name:        "every",
		Description: "re-read and re-diff on an interval",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkEvery()), "(duration)"),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, everyOpt)

	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("diff two msgpack files structurally").
		WithRun(func(cc *cli.Context, args []string) error {
			return diffCmd(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("find").
		WithAliases("f", "query").
		WithOpts(opts...).
		WithSynopsis("find <expr> [files]").
		WithDescription(findDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
	cfg.Find = cmd
	return cmd
}

const findDescription = `find selects nodes with a boolean expression evaluated at every node.

The expression sees these variables:

  path   the node's path, e.g. "/users/0/name"
  kind   the node's type: nil, bool, int, float32, float64, string,
         binary, array, map, ext
  key    the enclosing map key's literal, "" elsewhere
  depth  number of steps from the root
  value  the node's scalar literal, "" for containers
  size   child count for containers, byte count for string/binary/ext

Examples:

  mpk find 'kind == "string" && value contains "error"' data.mpk
  mpk find 'key == "id" && depth > 2' data.mpk`

func ExportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExportConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("export").
		WithAliases("e", "ex").
		WithOpts(opts...).
		WithSynopsis("export [-y] [files]").
		WithDescription("export msgpack files as json or yaml, preserving key order").
		WithRun(func(cc *cli.Context, args []string) error {
			return export(cfg, cc, args)
		})
	cfg.Export = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch <patch.json> <file>").
		WithDescription("apply an RFC 6902 json patch to a msgpack file, emitting msgpack").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("dump").
		WithSynopsis("dump [files]").
		WithDescription("dump the decoded tree structurally").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}
