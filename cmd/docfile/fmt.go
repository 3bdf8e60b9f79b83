package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if cfg.Write && args[0] == "-" {
		return fmt.Errorf("%w: -w requires file arguments", cli.ErrUsage)
	}
	for _, arg := range args {
		if err := fmtArg(cfg, cc, arg); err != nil {
			return fmt.Errorf("error formatting %s: %w", arg, err)
		}
	}
	return nil
}

func fmtArg(cfg *FmtConfig, cc *cli.Context, arg string) error {
	adapter, root, err := cfg.parseArg(arg)
	if err != nil {
		return err
	}
	d, err := adapter.Render(root)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if cfg.Write {
		return os.WriteFile(arg, d, 0644)
	}
	_, err = cc.Out.Write(d)
	return err
}
