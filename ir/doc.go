// Package ir provides the in-memory representation for hierarchical
// documents.
//
// # Overview
//
// All documents, whether parsed from JSON, YAML, or XML text or built
// programmatically, are represented as trees of ir.Node values. The
// representation is format-agnostic: the codec package maps each
// backing syntax onto it, and the store package mutates it through
// dotted paths.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field selects the node
// kind:
//
//   - NullType: null value
//   - BoolType: boolean
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//   - NativeType: a reconstructed domain value (see package serial)
//
// For ObjectType nodes, Fields[i] is the key node for the value at
// Values[i], so mapping key order is insertion order and there are
// always as many fields as values. Nodes maintain parent backrefs
// (Parent, ParentIndex, ParentField) for navigation and diagnostics.
//
// # Creating Nodes
//
// Use constructor functions:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{{Key: "key", Val: ir.FromString("value")}})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// ToGo and FromGo convert between nodes and plain Go values (nil,
// bool, int64, float64, string, []any, map[string]any).
//
// # Trees
//
// Tree wraps a root node, which is always a mapping or a sequence,
// never a bare scalar. Mapping-rooted trees support dotted-path
// traversal with creation on demand; sequence-rooted trees support
// wholesale replacement. Shape violations fail fast with
// ErrSeriesRoot, and operations on a tree whose source never loaded
// fail with ErrNotLoaded.
//
// # Thread Safety
//
// Node and Tree are not thread-safe. The store package serializes all
// access under its tree guard; other users must do the same or clone.
package ir
