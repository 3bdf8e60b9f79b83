package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/docfmt/docfile/codec"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two file arguments", cli.ErrUsage)
	}
	a, err := canonical(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	b, err := canonical(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	if err := writeDiffs(cfg.MainConfig, cc, diffs); err != nil {
		return err
	}
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return cli.ExitCodeErr(1)
		}
	}
	return nil
}

// canonical renders the parsed document back in the output format, so
// the diff compares structure rather than incidental layout.
func canonical(cfg *MainConfig, arg string) (string, error) {
	inFmat, err := cfg.inFormat(arg)
	if err != nil {
		return "", err
	}
	_, root, err := cfg.parseArg(arg)
	if err != nil {
		return "", err
	}
	d, err := codec.ForFormat(cfg.outFormat(inFmat)).Render(root)
	if err != nil {
		return "", fmt.Errorf("error encoding %s: %w", arg, err)
	}
	return string(d), nil
}

func writeDiffs(cfg *MainConfig, cc *cli.Context, diffs []diffmatchpatch.Diff) error {
	ins := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	if f, ok := cc.Out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		ins.DisableColor()
		del.DisableColor()
	}
	for _, d := range diffs {
		prefix, c := "  ", (*color.Color)(nil)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, c = "+ ", ins
		case diffmatchpatch.DiffDelete:
			prefix, c = "- ", del
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			var err error
			if c != nil {
				_, err = c.Fprintln(cc.Out, prefix+line)
			} else {
				_, err = fmt.Fprintln(cc.Out, prefix+line)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
