package ir

import (
	"fmt"
)

// ToGo converts a node to its plain Go binding: nil, bool, int64,
// float64, string, []any, map[string]any, or the wrapped domain value
// for native nodes. Containers are detached copies; mutating them does
// not write through to the tree.
func ToGo(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case StringType:
		return n.String
	case NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return nil
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToGo(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i := range n.Fields {
			res[n.Fields[i].String] = ToGo(n.Values[i])
		}
		return res
	case NativeType:
		return n.Native
	default:
		panic("type")
	}
}

// FromGo converts a plain Go value to a node. It accepts the scalar
// bindings produced by ToGo plus the common widenings (all int and
// float widths), []any, map[string]any, and *Node (cloned). Anything
// else is an error; the serial package layers the tagged-object and
// fallback handling on top of this.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			n, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	default:
		return nil, fmt.Errorf("cannot represent %T", v)
	}
}
