package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a single value in a document tree. It works as a recursive
// tagged union: the Type field selects which value fields are
// meaningful. ObjectType nodes keep Fields[i] as the key node for
// Values[i], so mapping key order is insertion order and there are
// always as many fields as values. NativeType nodes carry a
// reconstructed domain value and never reach a format adapter; the
// serial package expands them back into tagged mappings before
// rendering.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
	Native  any
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.ParentField = n.ParentField
	dst.Type = n.Type
	dst.Values = make([]*Node, len(n.Values))
	dst.Fields = make([]*Node, len(n.Fields))
	for i, nv := range n.Values {
		dstI := &Node{}
		nv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = nv.ParentField
		dst.Values[i] = dstI
	}
	for i, nf := range n.Fields {
		dstI := &Node{}
		nf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = nf.String
		dst.Fields[i] = dstI
	}
	dst.String = n.String
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	dst.Bool = n.Bool
	dst.Native = n.Native
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromNative wraps a reconstructed domain value.
func FromNative(v any) *Node {
	return &Node{Type: NativeType, Native: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// ToMap returns the fields of an object node keyed by field name, or
// nil for non-object nodes. Later duplicate keys win.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

// FromMap builds an object node with keys in sorted order, for
// deterministic output when no insertion order exists.
func FromMap(nMap map[string]*Node) *Node {
	res := &Node{}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(nMap))
	res.Values = make([]*Node, len(nMap))
	keys := slices.Sorted(maps.Keys(nMap))
	for i, key := range keys {
		n := nMap[key]
		n.Parent = res
		n.ParentIndex = i
		n.ParentField = key
		nField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = nField
		res.Values[i] = n
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node preserving the given key order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: kv.Key,
			Type:        StringType,
			String:      kv.Key,
		}
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(nSlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(nSlice))
	for i, n := range nSlice {
		res.Values[i] = n
		n.Parent = res
		n.ParentIndex = i
	}
	return res
}

// Get returns the value under field in an object node, or nil.
func Get(n *Node, field string) *Node {
	for i := range n.Fields {
		if n.Fields[i].String == field {
			return n.Values[i]
		}
	}
	return nil
}

// Put sets field to val in an object node, appending when the field is
// absent and replacing in place when present.
func Put(n *Node, field string, val *Node) {
	val.Parent = n
	val.ParentField = field
	for i := range n.Fields {
		if n.Fields[i].String == field {
			val.ParentIndex = i
			n.Values[i] = val
			return
		}
	}
	val.ParentIndex = len(n.Fields)
	n.Fields = append(n.Fields, &Node{
		Parent:      n,
		ParentIndex: val.ParentIndex,
		ParentField: field,
		Type:        StringType,
		String:      field,
	})
	n.Values = append(n.Values, val)
}

// Remove deletes field from an object node, reporting whether it was
// present.
func Remove(n *Node, field string) bool {
	for i := range n.Fields {
		if n.Fields[i].String != field {
			continue
		}
		n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
		n.Values = append(n.Values[:i], n.Values[i+1:]...)
		for j := i; j < len(n.Fields); j++ {
			n.Fields[j].ParentIndex = j
			n.Values[j].ParentIndex = j
		}
		return true
	}
	return false
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, nn := range n.Values {
			if err := nn.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// KPath returns the dotted path of this node's position in its tree,
// with array elements rendered as [i]. The root is "".
func (n *Node) KPath() string {
	if n.Parent == nil {
		return ""
	}
	switch n.Parent.Type {
	case ObjectType:
		prefix := n.Parent.KPath()
		if prefix == "" {
			return n.ParentField
		}
		return prefix + "." + n.ParentField
	case ArrayType:
		return n.Parent.KPath() + "[" + strconv.Itoa(n.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}
