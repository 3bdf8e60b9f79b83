package ir

import (
	"errors"
)

var (
	// ErrNotLoaded reports a path operation against a tree whose root
	// never initialized, typically because the backing file failed to
	// load.
	ErrNotLoaded = errors.New("file failed to load")

	// ErrSeriesRoot reports a path operation against a sequence-rooted
	// tree, or a series operation against a mapping-rooted tree.
	ErrSeriesRoot = errors.New("unsupported operation for root shape")

	// ErrNotMapping reports a traversal that ran into a non-mapping
	// value where an intermediate mapping was required.
	ErrNotMapping = errors.New("intermediate path segment is not a mapping")
)
