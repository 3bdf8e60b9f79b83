package main

import (
	"fmt"

	"github.com/docfmt/docfile/codec"
	"github.com/docfmt/docfile/ir"
	"github.com/docfmt/docfile/ir/ladder"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := getArg(cfg.MainConfig, cc, arg, path); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func getArg(cfg *MainConfig, cc *cli.Context, arg, path string) error {
	inFmat, err := cfg.inFormat(arg)
	if err != nil {
		return err
	}
	adapter, root, err := cfg.parseArg(arg)
	if err != nil {
		return err
	}
	tree := ir.NewTree(root)
	lad := ladder.Split(path)
	var res *ir.Node
	if ladder.IsRoot(lad) {
		res = root
	} else {
		res, err = tree.Get(lad)
		if err != nil {
			return err
		}
	}
	if res == nil {
		// unset paths print nothing and don't yell either
		return nil
	}
	out := cfg.outFormat(inFmat)
	if out != inFmat {
		adapter = codec.ForFormat(out)
	}
	d, err := adapter.Render(res)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cc.Out.Write(d)
	return err
}
