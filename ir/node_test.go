package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleDoc() *Node {
	return FromKeyVals([]KeyVal{
		{Key: "name", Val: FromString("x")},
		{Key: "server", Val: FromKeyVals([]KeyVal{
			{Key: "port", Val: FromInt(8080)},
		})},
		{Key: "tags", Val: FromSlice([]*Node{FromString("a"), FromString("b")})},
	})
}

func TestVisitLeaves(t *testing.T) {
	var paths []string
	err := sampleDoc().Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost || !n.Type.IsLeaf() {
			return !isPost, nil
		}
		paths = append(paths, n.KPath())
		return false, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"name", "server.port", "tags[0]", "tags[1]"}
	if d := cmp.Diff(want, paths); d != "" {
		t.Errorf("leaf paths: %s", d)
	}
}

func TestKPath(t *testing.T) {
	doc := sampleDoc()
	if got := doc.KPath(); got != "" {
		t.Errorf("root path = %q, want \"\"", got)
	}
	port := Get(Get(doc, "server"), "port")
	if got := port.KPath(); got != "server.port" {
		t.Errorf("port path = %q", got)
	}
}

func TestToMap(t *testing.T) {
	doc := sampleDoc()
	m := ToMap(doc)
	if len(m) != 3 {
		t.Fatalf("len = %d, want 3", len(m))
	}
	if m["name"].String != "x" {
		t.Errorf("name = %q", m["name"].String)
	}
	// non-objects have no mapping form
	if ToMap(FromInt(1)) != nil {
		t.Error("ToMap of a scalar")
	}
}
