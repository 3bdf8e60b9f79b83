package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var theLog = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
	TimeFormat: time.Kitchen,
	NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
}))
