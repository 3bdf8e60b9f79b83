package main

import (
	"fmt"
	"io"
	"os"

	"github.com/docfmt/docfile/codec"
	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/ir"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	X bool `cli:"name=x aliases=xml desc='do i/o in xml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat resolves the format to parse an argument with, preferring
// an explicit -I/-j/-y/-x over the argument's own suffix.
func (cfg *MainConfig) inFormat(arg string) (format.Format, error) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, nil
	}
	switch {
	case cfg.J:
		return format.JSONFormat, nil
	case cfg.Y:
		return format.YAMLFormat, nil
	case cfg.X:
		return format.XMLFormat, nil
	}
	if arg != "" && arg != "-" {
		if f, err := format.FromPath(arg); err == nil {
			return f, nil
		}
	}
	return format.JSONFormat, nil
}

// outFormat resolves the format to render results in, defaulting to
// the input format.
func (cfg *MainConfig) outFormat(in format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return in
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readArg reads a file argument, with "-" meaning stdin.
func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", arg, err)
	}
	return d, nil
}

// parseArg reads and parses one file argument in the resolved input
// format, returning the adapter alongside the document.
func (cfg *MainConfig) parseArg(arg string) (codec.Adapter, *ir.Node, error) {
	fmat, err := cfg.inFormat(arg)
	if err != nil {
		return nil, nil, err
	}
	adapter := codec.ForFormat(fmat)
	d, err := readArg(arg)
	if err != nil {
		return nil, nil, err
	}
	root, err := adapter.Parse(d)
	if err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return adapter, root, nil
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='treat the value as a literal string'"`

	Set *cli.Command
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Write bool `cli:"name=w desc='write result back to the source file'"`

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
