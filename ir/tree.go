package ir

import (
	"fmt"
)

// Tree owns the single root node of a document. The root's shape
// (mapping or sequence) is fixed at construction: path operations are
// valid only on mapping roots and series operations only on sequence
// roots. A nil root marks a tree whose source failed to load; every
// operation on it fails with ErrNotLoaded.
//
// Tree does no locking. Callers that share a tree across goroutines
// serialize access themselves; the store package does so with its tree
// guard.
type Tree struct {
	root *Node
}

func NewTree(root *Node) *Tree {
	return &Tree{root: root}
}

func (t *Tree) Root() *Node {
	return t.root
}

// Loaded reports whether the root initialized.
func (t *Tree) Loaded() bool {
	return t.root != nil
}

// IsSeries reports whether the root is a sequence.
func (t *Tree) IsSeries() bool {
	return t.root != nil && t.root.Type == ArrayType
}

// Traverse walks all but the last ladder segment from the root
// mapping and returns the mapping containing the final key. With
// create set, absent intermediate segments are filled with empty
// mappings. Without create, traversal stops at the deepest mapping
// reached, so the returned container will simply not hold the final
// key. An intermediate segment holding a non-mapping value is a
// usage error either way.
func (t *Tree) Traverse(create bool, ladder []string) (*Node, error) {
	container, err := t.pathRoot()
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(ladder)-1; i++ {
		child := Get(container, ladder[i])
		if child == nil {
			if !create {
				break
			}
			child = &Node{Type: ObjectType}
			Put(container, ladder[i], child)
		}
		if child.Type != ObjectType {
			return nil, fmt.Errorf("%w: %q", ErrNotMapping, ladder[i])
		}
		container = child
	}
	return container, nil
}

// Get returns the node under the ladder, or nil when unset.
func (t *Tree) Get(ladder []string) (*Node, error) {
	container, err := t.Traverse(false, ladder)
	if err != nil {
		return nil, err
	}
	return Get(container, ladder[len(ladder)-1]), nil
}

// IsSet reports whether a value exists under the ladder.
func (t *Tree) IsSet(ladder []string) (bool, error) {
	container, err := t.Traverse(false, ladder)
	if err != nil {
		return false, err
	}
	return Get(container, ladder[len(ladder)-1]) != nil, nil
}

// Set stores n under the ladder, creating intermediate mappings as
// needed. A nil n removes the key instead of storing null.
func (t *Tree) Set(ladder []string, n *Node) error {
	container, err := t.Traverse(true, ladder)
	if err != nil {
		return err
	}
	last := ladder[len(ladder)-1]
	if n == nil {
		Remove(container, last)
		return nil
	}
	Put(container, last, n)
	return nil
}

// Series returns the elements of a sequence root.
func (t *Tree) Series() ([]*Node, error) {
	if t.root == nil {
		return nil, ErrNotLoaded
	}
	if t.root.Type != ArrayType {
		return nil, fmt.Errorf("%w: series operation on %s root", ErrSeriesRoot, t.root.Type)
	}
	res := make([]*Node, len(t.root.Values))
	copy(res, t.root.Values)
	return res, nil
}

// ReplaceSeries replaces the contents of a sequence root wholesale.
func (t *Tree) ReplaceSeries(values []*Node) error {
	if t.root == nil {
		return ErrNotLoaded
	}
	if t.root.Type != ArrayType {
		return fmt.Errorf("%w: series operation on %s root", ErrSeriesRoot, t.root.Type)
	}
	t.root.Values = make([]*Node, len(values))
	for i, v := range values {
		v.Parent = t.root
		v.ParentIndex = i
		t.root.Values[i] = v
	}
	t.root.Fields = nil
	return nil
}

func (t *Tree) pathRoot() (*Node, error) {
	if t.root == nil {
		return nil, ErrNotLoaded
	}
	if t.root.Type == ArrayType {
		return nil, fmt.Errorf("%w: path operation on sequence root", ErrSeriesRoot)
	}
	if t.root.Type != ObjectType {
		return nil, fmt.Errorf("%w: %s root", ErrSeriesRoot, t.root.Type)
	}
	return t.root, nil
}
