package main

import (
	"fmt"

	"github.com/docfmt/docfile/codec"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.OutFormat == nil && count(cfg.J, cfg.Y, cfg.X) == 0 {
		return fmt.Errorf("%w: convert requires an output format (-O)", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := convertArg(cfg.MainConfig, cc, arg); err != nil {
			return fmt.Errorf("error converting %s: %w", arg, err)
		}
	}
	return nil
}

func convertArg(cfg *MainConfig, cc *cli.Context, arg string) error {
	inFmat, err := cfg.inFormat(arg)
	if err != nil {
		return err
	}
	_, root, err := cfg.parseArg(arg)
	if err != nil {
		return err
	}
	out := codec.ForFormat(cfg.outFormat(inFmat))
	d, err := out.Render(root)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cc.Out.Write(d)
	return err
}
