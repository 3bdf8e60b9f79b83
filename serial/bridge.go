package serial

import (
	"encoding"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/docfmt/docfile/debug"
	"github.com/docfmt/docfile/ir"
)

// ToDocumentSafe converts a value to a document-safe node: a tree of
// mappings, sequences, and scalars that any format adapter can render.
// Serializable values become tagged mappings with TagKey as the first
// entry. The conversion is pure: shared nodes are cloned, never
// mutated, so a snapshot taken here stays valid while another
// goroutine keeps writing to the original.
//
// Values no rule covers degrade to a lossy debug-string scalar rather
// than failing; the degradation is logged.
func ToDocumentSafe(v any) *ir.Node {
	switch x := v.(type) {
	case nil:
		return ir.Null()
	case *ir.Node:
		return safeNode(x)
	case Serializable:
		return tagged(x)
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		kvs := make([]ir.KeyVal, 0, len(keys))
		for _, k := range keys {
			kvs = append(kvs, ir.KeyVal{Key: k, Val: ToDocumentSafe(x[k])})
		}
		return ir.FromKeyVals(kvs)
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			vals[i] = ToDocumentSafe(e)
		}
		return ir.FromSlice(vals)
	}
	if n, err := ir.FromGo(v); err == nil {
		return n
	}
	// enum-like values serialize as their symbolic name
	if tm, ok := v.(encoding.TextMarshaler); ok {
		if d, err := tm.MarshalText(); err == nil {
			return ir.FromString(string(d))
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return ir.FromString(s.String())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vals := make([]*ir.Node, rv.Len())
		for i := range rv.Len() {
			vals[i] = ToDocumentSafe(rv.Index(i).Interface())
		}
		return ir.FromSlice(vals)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]*ir.Node, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = ToDocumentSafe(iter.Value().Interface())
			}
			return ir.FromMap(m)
		}
	}
	// lossy fallback for values nothing can encode
	out := fmt.Sprintf("%T(%v)", v, v)
	if debug.Serial() {
		debug.Logf("serial: lossy fallback for %s", out)
	}
	return ir.FromString(out)
}

func safeNode(n *ir.Node) *ir.Node {
	if n == nil {
		return ir.Null()
	}
	switch n.Type {
	case ir.NativeType:
		return ToDocumentSafe(n.Native)
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, 0, len(n.Fields))
		for i := range n.Fields {
			kvs = append(kvs, ir.KeyVal{
				Key: n.Fields[i].String,
				Val: safeNode(n.Values[i]),
			})
		}
		return ir.FromKeyVals(kvs)
	case ir.ArrayType:
		vals := make([]*ir.Node, len(n.Values))
		for i, v := range n.Values {
			vals[i] = safeNode(v)
		}
		return ir.FromSlice(vals)
	default:
		return n.Clone()
	}
}

// tagged builds the mapping form of a Serializable: TagKey first, the
// remaining keys in sorted order. TagKey appears exactly once even if
// the value's own Serialize output carries it.
func tagged(s Serializable) *ir.Node {
	data := s.Serialize()
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == TagKey {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	kvs := make([]ir.KeyVal, 0, len(keys)+1)
	kvs = append(kvs, ir.KeyVal{Key: TagKey, Val: ir.FromString(s.SerialID())})
	for _, k := range keys {
		kvs = append(kvs, ir.KeyVal{Key: k, Val: ToDocumentSafe(data[k])})
	}
	return ir.FromKeyVals(kvs)
}

// ToNative converts a document-safe node back to its domain form:
// mappings carrying TagKey are rebuilt through the registry into
// native nodes, everything else is deep-copied unchanged. Failures
// are non-fatal: an unknown identifier or failing factory is logged
// and the raw mapping is returned as-is, reserved key intact.
func (r *Registry) ToNative(n *ir.Node) *ir.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case ir.ArrayType:
		vals := make([]*ir.Node, len(n.Values))
		for i, v := range n.Values {
			vals[i] = r.ToNative(v)
		}
		return ir.FromSlice(vals)
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, 0, len(n.Fields))
		for i := range n.Fields {
			kvs = append(kvs, ir.KeyVal{
				Key: n.Fields[i].String,
				Val: r.ToNative(n.Values[i]),
			})
		}
		obj := ir.FromKeyVals(kvs)
		return r.reconstruct(obj)
	default:
		return n.Clone()
	}
}

// ToNative converts through the default registry.
func ToNative(n *ir.Node) *ir.Node {
	return Default.ToNative(n)
}

// reconstruct turns a tagged mapping into a native node, or returns
// the mapping unchanged when it is untagged or reconstruction fails.
func (r *Registry) reconstruct(obj *ir.Node) *ir.Node {
	tag := ir.Get(obj, TagKey)
	if tag == nil {
		return obj
	}
	if tag.Type != ir.StringType {
		slog.Warn("tagged object has non-string identifier",
			"key", TagKey, "type", tag.Type.String())
		return obj
	}
	id := tag.String
	f, ok := r.Lookup(id)
	if !ok {
		slog.Warn("cannot reconstruct unregistered type",
			"err", fmt.Errorf("%w: unknown identifier %q", ErrReconstruct, id))
		return obj
	}
	fields := ir.ToMap(obj)
	delete(fields, TagKey)
	data := make(map[string]any, len(fields))
	for k, v := range fields {
		data[k] = ir.ToGo(v)
	}
	v, err := f(data)
	if err != nil {
		slog.Warn("tagged object factory failed",
			"id", id,
			"err", fmt.Errorf("%w: %w", ErrReconstruct, err))
		return obj
	}
	if debug.Serial() {
		debug.Logf("serial: reconstructed %q", id)
	}
	return ir.FromNative(v)
}
