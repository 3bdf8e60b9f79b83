// Package codec maps backing text formats onto document trees.
//
// # Overview
//
// An Adapter parses one format's text into an ir.Node tree and
// renders trees back to that format, preserving mapping key insertion
// order in both directions. Three adapters exist: JSON, YAML
// (goccy/go-yaml with ordered maps), and XML (beevik/etree with an
// explicit element convention, since XML element names cannot carry
// arbitrary mapping keys).
//
// # Rendering contract
//
// Rendering is deterministic and idempotent under reparse:
//
//	Render(Parse(Render(Parse(text))))
//
// is byte-identical to Render(Parse(text)) for any valid input text.
// JSON output follows a fixed scheme: compact encoding re-indented
// with a line break and 4-space nesting after '{', '[' and ',', a
// dedent before '}' and ']', and no line breaks inside quoted
// strings.
//
// # Concurrency
//
// Adapters are stateless values and safe for concurrent use; several
// stores of the same format may parse at once.
package codec
