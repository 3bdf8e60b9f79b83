package main

import (
	"fmt"

	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/store"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a path, a value, and a file", cli.ErrUsage)
	}
	path, rawVal, file := args[0], args[1], args[2]
	fmat, err := cfg.inFormat(file)
	if err != nil {
		return err
	}
	val, err := parseValue(cfg, rawVal)
	if err != nil {
		return err
	}
	s, err := store.Open(fmat, file, store.WithLogger(theLog))
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Set(path, val); err != nil {
		return err
	}
	return s.SaveTo(file)
}

// parseValue interprets the value argument as a JSON fragment, so
// numbers, booleans, null, and quoted containers work; anything that
// does not parse is taken as a literal string. -s forces the literal
// reading.
func parseValue(cfg *SetConfig, raw string) (any, error) {
	if cfg.String {
		return raw, nil
	}
	s, err := store.FromString(format.JSONFormat, "{\"v\": "+raw+"}")
	if err != nil {
		return raw, nil
	}
	return s.Get("v")
}
