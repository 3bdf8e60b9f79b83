package codec

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/ir"
)

// XML is the Adapter for XML text. XML has no native notion of typed
// mappings and sequences, so the adapter uses a fixed element
// convention that round-trips arbitrary keys (element names cannot
// carry keys like "=="):
//
//	<map><e k="key">...</e></map>
//	<seq><e>...</e></seq>
//	<e k="key" t="int">5</e>
//
// Scalar entries carry a t attribute naming the scalar type (str,
// int, float, bool, null); container entries hold a single <map> or
// <seq> child.
type XML struct{}

const (
	xmlMap  = "map"
	xmlSeq  = "seq"
	xmlItem = "e"

	xmlKeyAttr  = "k"
	xmlTypeAttr = "t"
)

func (XML) Format() format.Format { return format.XMLFormat }

func (x XML) Parse(d []byte) (*ir.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no document element", ErrParse)
	}
	return xmlContainer(root)
}

func (x XML) ParseReader(r io.Reader) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return x.Parse(d)
}

func (x XML) Render(n *ir.Node) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	el, err := xmlElement(n)
	if err != nil {
		return nil, err
	}
	doc.AddChild(el)
	doc.Indent(4)
	return doc.WriteToBytes()
}

func (XML) EmptyMapping() *ir.Node {
	return ir.FromKeyVals(nil)
}

func (XML) EmptySequence() *ir.Node {
	return ir.FromSlice(nil)
}

func xmlElement(n *ir.Node) (*etree.Element, error) {
	switch n.Type {
	case ir.ObjectType:
		el := etree.NewElement(xmlMap)
		for i := range n.Fields {
			entry, err := xmlEntry(n.Values[i])
			if err != nil {
				return nil, err
			}
			entry.CreateAttr(xmlKeyAttr, n.Fields[i].String)
			el.AddChild(entry)
		}
		return el, nil
	case ir.ArrayType:
		el := etree.NewElement(xmlSeq)
		for _, v := range n.Values {
			entry, err := xmlEntry(v)
			if err != nil {
				return nil, err
			}
			el.AddChild(entry)
		}
		return el, nil
	default:
		return nil, fmt.Errorf("%w: %s root in xml document", ErrEncoding, n.Type)
	}
}

func xmlEntry(n *ir.Node) (*etree.Element, error) {
	el := etree.NewElement(xmlItem)
	switch n.Type {
	case ir.ObjectType, ir.ArrayType:
		child, err := xmlElement(n)
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	case ir.StringType:
		el.CreateAttr(xmlTypeAttr, "str")
		el.SetText(n.String)
	case ir.NumberType:
		if n.Int64 != nil {
			el.CreateAttr(xmlTypeAttr, "int")
			el.SetText(strconv.FormatInt(*n.Int64, 10))
		} else {
			el.CreateAttr(xmlTypeAttr, "float")
			el.SetText(formatNumber(n))
		}
	case ir.BoolType:
		el.CreateAttr(xmlTypeAttr, "bool")
		el.SetText(strconv.FormatBool(n.Bool))
	case ir.NullType:
		el.CreateAttr(xmlTypeAttr, "null")
	case ir.NativeType:
		return nil, fmt.Errorf("%w: cannot encode native value %T", ErrEncoding, n.Native)
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", ErrEncoding, n.Type)
	}
	return el, nil
}

func xmlContainer(el *etree.Element) (*ir.Node, error) {
	switch el.Tag {
	case xmlMap:
		var kvs []ir.KeyVal
		for _, child := range el.ChildElements() {
			key := child.SelectAttr(xmlKeyAttr)
			if child.Tag != xmlItem || key == nil {
				return nil, fmt.Errorf("%w: map entries must be <%s %s=...>", ErrParse, xmlItem, xmlKeyAttr)
			}
			val, err := xmlValue(child)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: key.Value, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case xmlSeq:
		var vals []*ir.Node
		for _, child := range el.ChildElements() {
			if child.Tag != xmlItem {
				return nil, fmt.Errorf("%w: seq entries must be <%s>", ErrParse, xmlItem)
			}
			v, err := xmlValue(child)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ir.FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("%w: unexpected element <%s>", ErrParse, el.Tag)
	}
}

func xmlValue(el *etree.Element) (*ir.Node, error) {
	if children := el.ChildElements(); len(children) > 0 {
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: entry holds %d containers", ErrParse, len(children))
		}
		return xmlContainer(children[0])
	}
	switch t := el.SelectAttrValue(xmlTypeAttr, "str"); t {
	case "str":
		return ir.FromString(el.Text()), nil
	case "int":
		i, err := strconv.ParseInt(el.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad int %q", ErrParse, el.Text())
		}
		return ir.FromInt(i), nil
	case "float":
		f, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad float %q", ErrParse, el.Text())
		}
		return ir.FromFloat(f), nil
	case "bool":
		b, err := strconv.ParseBool(el.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: bad bool %q", ErrParse, el.Text())
		}
		return ir.FromBool(b), nil
	case "null":
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("%w: unknown scalar type %q", ErrParse, t)
	}
}
