package serial

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docfmt/docfile/ir"
)

type point struct {
	X, Y int64
}

func (p point) SerialID() string { return "test.point" }

func (p point) Serialize() map[string]any {
	return map[string]any{"x": p.X, "y": p.Y}
}

func pointFactory(m map[string]any) (any, error) {
	x, ok := m["x"].(int64)
	if !ok {
		return nil, errors.New("missing x")
	}
	y, ok := m["y"].(int64)
	if !ok {
		return nil, errors.New("missing y")
	}
	return point{X: x, Y: y}, nil
}

func pointRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Register("test.point", pointFactory); err != nil {
		t.Fatal(err)
	}
	r.Freeze()
	return r
}

func TestRoundTrip(t *testing.T) {
	r := pointRegistry(t)
	p := point{X: 3, Y: 4}

	doc := ToDocumentSafe(p)
	if doc.Type != ir.ObjectType {
		t.Fatalf("serialized form is %s, want object", doc.Type)
	}
	// the tag always leads
	if doc.Fields[0].String != TagKey {
		t.Errorf("first field = %q, want %q", doc.Fields[0].String, TagKey)
	}
	if got := ir.Get(doc, TagKey); got.String != "test.point" {
		t.Errorf("tag = %q, want test.point", got.String)
	}

	back := r.ToNative(doc)
	if back.Type != ir.NativeType {
		t.Fatalf("reconstructed node is %s, want native", back.Type)
	}
	if d := cmp.Diff(p, back.Native); d != "" {
		t.Errorf("round trip: %s", d)
	}
}

func TestRoundTripNested(t *testing.T) {
	r := pointRegistry(t)
	doc := ToDocumentSafe(map[string]any{
		"origin": point{X: 0, Y: 0},
		"corners": []any{
			point{X: 1, Y: 1},
			point{X: 2, Y: 2},
		},
	})
	back := ir.ToGo(r.ToNative(doc))
	want := map[string]any{
		"origin": point{X: 0, Y: 0},
		"corners": []any{
			point{X: 1, Y: 1},
			point{X: 2, Y: 2},
		},
	}
	if d := cmp.Diff(want, back); d != "" {
		t.Errorf("nested round trip: %s", d)
	}
}

func TestUnknownTagKeepsRawMapping(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	doc := ToDocumentSafe(point{X: 1, Y: 2})
	back := r.ToNative(doc)
	if back.Type != ir.ObjectType {
		t.Fatalf("unknown tag: node is %s, want object", back.Type)
	}
	// the tag stays visible so nothing is lost
	got := ir.ToGo(back).(map[string]any)
	want := map[string]any{TagKey: "test.point", "x": int64(1), "y": int64(2)}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("raw mapping: %s", d)
	}
}

func TestFactoryFailureKeepsRawMapping(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("test.point", func(m map[string]any) (any, error) {
		return nil, errors.New("refused")
	}); err != nil {
		t.Fatal(err)
	}
	r.Freeze()
	doc := ToDocumentSafe(point{X: 1, Y: 2})
	back := r.ToNative(doc)
	if back.Type != ir.ObjectType {
		t.Errorf("failed reconstruction: node is %s, want object", back.Type)
	}
	if ir.Get(back, TagKey) == nil {
		t.Error("failed reconstruction dropped the tag")
	}
}

type sneaky struct{}

func (sneaky) SerialID() string { return "test.sneaky" }

func (sneaky) Serialize() map[string]any {
	// a Serialize that emits the tag itself must not duplicate it
	return map[string]any{TagKey: "bogus", "v": int64(1)}
}

func TestTagEmittedExactlyOnce(t *testing.T) {
	doc := ToDocumentSafe(sneaky{})
	n := 0
	for _, f := range doc.Fields {
		if f.String == TagKey {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("tag appears %d times", n)
	}
	if got := ir.Get(doc, TagKey); got.String != "test.sneaky" {
		t.Errorf("tag = %q, want test.sneaky", got.String)
	}
}

func TestToDocumentSafeFallback(t *testing.T) {
	doc := ToDocumentSafe(make(chan int))
	if doc.Type != ir.StringType {
		t.Fatalf("fallback node is %s, want string", doc.Type)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", pointFactory); !errors.Is(err, ErrRegister) {
		t.Errorf("empty id: %v, want ErrRegister", err)
	}
	if err := r.Register("a", nil); !errors.Is(err, ErrRegister) {
		t.Errorf("nil factory: %v, want ErrRegister", err)
	}
	if err := r.Register("a", pointFactory); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("a", pointFactory); !errors.Is(err, ErrRegister) {
		t.Errorf("duplicate: %v, want ErrRegister", err)
	}
	if _, ok := r.Lookup("a"); !ok {
		t.Error("Lookup before Freeze")
	}
	r.Freeze()
	r.Freeze() // idempotent
	if _, ok := r.Lookup("a"); !ok {
		t.Error("Lookup after Freeze")
	}
	if err := r.Register("b", pointFactory); !errors.Is(err, ErrRegister) {
		t.Errorf("register after freeze: %v, want ErrRegister", err)
	}
}
