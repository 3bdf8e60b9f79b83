package codec

import (
	"io"

	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/ir"
)

// Adapter parses one backing text format into document trees and
// renders trees back to that format's syntax. Implementations are
// stateless values: a single adapter may parse and render from any
// number of goroutines.
type Adapter interface {
	// Format names the syntax this adapter speaks.
	Format() format.Format

	// Parse converts text into a tree value, preserving mapping key
	// insertion order.
	Parse(d []byte) (*ir.Node, error)

	// ParseReader is Parse over a stream.
	ParseReader(r io.Reader) (*ir.Node, error)

	// Render pretty-prints a document-safe tree. Output is
	// deterministic: rendering equal trees yields identical bytes.
	Render(n *ir.Node) ([]byte, error)

	// EmptyMapping returns a fresh empty mapping node.
	EmptyMapping() *ir.Node

	// EmptySequence returns a fresh empty sequence node.
	EmptySequence() *ir.Node
}

// ForFormat returns the adapter for a format.
func ForFormat(f format.Format) Adapter {
	switch f {
	case format.JSONFormat:
		return JSON{}
	case format.YAMLFormat:
		return YAML{}
	case format.XMLFormat:
		return XML{}
	default:
		return nil
	}
}

// ForName resolves an adapter from a case-insensitive format name
// (json, yaml, yml, xml), as used when picking an adapter from a file
// extension or user config.
func ForName(name string) (Adapter, error) {
	f, err := format.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ForFormat(f), nil
}
