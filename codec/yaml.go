package codec

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/docfmt/docfile/debug"
	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/ir"
)

// YAML is the Adapter for YAML text, built on goccy/go-yaml with
// ordered maps so mapping key order survives the round trip.
type YAML struct{}

func (YAML) Format() format.Format { return format.YAMLFormat }

func (YAML) Parse(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return yamlToNode(v)
}

func (y YAML) ParseReader(r io.Reader) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return y.Parse(d)
}

func (YAML) Render(n *ir.Node) ([]byte, error) {
	v, err := yamlFromNode(n)
	if err != nil {
		return nil, err
	}
	d, err := yaml.MarshalWithOptions(v,
		yaml.Indent(4),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return d, nil
}

func (YAML) EmptyMapping() *ir.Node {
	return ir.FromKeyVals(nil)
}

func (YAML) EmptySequence() *ir.Node {
	return ir.FromSlice(nil)
}

func yamlToNode(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for i := range x {
			val, err := yamlToNode(x[i].Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: fmt.Sprint(x[i].Key), Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := yamlToNode(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	default:
		if n, err := ir.FromGo(v); err == nil {
			return n, nil
		}
		return nil, fmt.Errorf("%w: unsupported yaml value %T", ErrParse, v)
	}
}

func yamlFromNode(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.ObjectType:
		ms := make(yaml.MapSlice, 0, len(n.Fields))
		for i := range n.Fields {
			v, err := yamlFromNode(n.Values[i])
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: n.Fields[i].String, Value: v})
		}
		return ms, nil
	case ir.ArrayType:
		vals := make([]any, len(n.Values))
		for i, v := range n.Values {
			e, err := yamlFromNode(v)
			if err != nil {
				return nil, err
			}
			vals[i] = e
		}
		return vals, nil
	case ir.NativeType:
		// arbitrary objects are not YAML-encodable; degrade to their
		// debug string rather than failing the whole render
		out := fmt.Sprintf("%T(%v)", n.Native, n.Native)
		if debug.Codec() {
			debug.Logf("codec: yaml lossy fallback for %s", out)
		}
		return out, nil
	default:
		return ir.ToGo(n), nil
	}
}
