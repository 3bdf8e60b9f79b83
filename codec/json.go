package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/ir"
)

// JSON is the Adapter for JSON text. Parsing walks the token stream
// directly so that mapping key order survives; a plain unmarshal into
// Go maps would lose it.
type JSON struct{}

func (JSON) Format() format.Format { return format.JSONFormat }

func (j JSON) Parse(d []byte) (*ir.Node, error) {
	return j.ParseReader(bytes.NewReader(d))
}

func (JSON) ParseReader(r io.Reader) (*ir.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	n, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}
	return n, nil
}

func jsonValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return jsonFromToken(dec, tok)
}

func jsonFromToken(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return jsonObject(dec)
		case '[':
			return jsonArray(dec)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrParse, t.String())
		}
	case string:
		return ir.FromString(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return ir.FromInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrParse, t.String())
		}
		return ir.FromFloat(f), nil
	case bool:
		return ir.FromBool(t), nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
	}
}

func jsonObject(dec *json.Decoder) (*ir.Node, error) {
	var kvs []ir.KeyVal
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return ir.FromKeyVals(kvs), nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrParse)
		}
		val, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
}

func jsonArray(dec *json.Decoder) (*ir.Node, error) {
	var vals []*ir.Node
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return ir.FromSlice(vals), nil
		}
		v, err := jsonFromToken(dec, tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
}

// Render emits the tree compactly and then re-indents (see Indent),
// matching the store's pretty-printing contract.
func (JSON) Render(n *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jsonCompact(buf, n); err != nil {
		return nil, err
	}
	return Indent(buf.Bytes()), nil
}

func (JSON) EmptyMapping() *ir.Node {
	return ir.FromKeyVals(nil)
}

func (JSON) EmptySequence() *ir.Node {
	return ir.FromSlice(nil)
}

func jsonCompact(buf *bytes.Buffer, n *ir.Node) error {
	switch n.Type {
	case ir.ObjectType:
		buf.WriteByte('{')
		for i := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, n.Fields[i].String)
			buf.WriteByte(':')
			if err := jsonCompact(buf, n.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case ir.ArrayType:
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := jsonCompact(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case ir.StringType:
		writeJSONString(buf, n.String)
		return nil
	case ir.NumberType:
		buf.WriteString(formatNumber(n))
		return nil
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(n.Bool))
		return nil
	case ir.NullType:
		buf.WriteString("null")
		return nil
	case ir.NativeType:
		return fmt.Errorf("%w: cannot encode native value %T", ErrEncoding, n.Native)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrEncoding, n.Type)
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	d, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	buf.Write(d)
}

func formatNumber(n *ir.Node) string {
	if n.Int64 != nil {
		return strconv.FormatInt(*n.Int64, 10)
	}
	if n.Float64 != nil {
		v := strconv.FormatFloat(*n.Float64, 'f', -1, 64)
		// whole floats keep a decimal point so they reload as floats
		if !strings.Contains(v, ".") {
			v += ".0"
		}
		return v
	}
	return "0"
}
