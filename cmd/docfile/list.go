package main

import (
	"fmt"

	"github.com/docfmt/docfile/ir"

	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := listArg(cfg.MainConfig, cc, arg); err != nil {
			return fmt.Errorf("error listing %s: %w", arg, err)
		}
	}
	return nil
}

func listArg(cfg *MainConfig, cc *cli.Context, arg string) error {
	_, root, err := cfg.parseArg(arg)
	if err != nil {
		return err
	}
	return root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost || !n.Type.IsLeaf() {
			return !isPost, nil
		}
		_, err := fmt.Fprintf(cc.Out, "%s: %v\n", n.KPath(), ir.ToGo(n))
		return false, err
	})
}
