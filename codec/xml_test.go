package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docfmt/docfile/ir"
)

func xmlDoc(t *testing.T) *ir.Node {
	t.Helper()
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("x")},
		{Key: "count", Val: ir.FromInt(3)},
		{Key: "ratio", Val: ir.FromFloat(0.5)},
		{Key: "on", Val: ir.FromBool(true)},
		{Key: "none", Val: ir.Null()},
		{Key: "vals", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("two")})},
		{Key: "sub", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "ok", Val: ir.FromBool(false)}})},
	})
}

func TestXMLRoundTrip(t *testing.T) {
	n := xmlDoc(t)
	d, err := XML{}.Render(n)
	if err != nil {
		t.Fatal(err)
	}
	back, err := XML{}.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ir.ToGo(n), ir.ToGo(back)); diff != "" {
		t.Errorf("round trip:\n%s\n%s", diff, d)
	}
	// key order survives the trip too
	var keys []string
	for _, f := range back.Fields {
		keys = append(keys, f.String)
	}
	want := []string{"name", "count", "ratio", "on", "none", "vals", "sub"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("key order: %s", diff)
	}
}

func TestXMLRenderStable(t *testing.T) {
	once, err := XML{}.Render(xmlDoc(t))
	if err != nil {
		t.Fatal(err)
	}
	back, err := XML{}.Parse(once)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := XML{}.Render(back)
	if err != nil {
		t.Fatal(err)
	}
	if string(once) != string(twice) {
		t.Errorf("render not stable:\n%s\nvs\n%s", once, twice)
	}
}

func TestXMLTagKeyAsAttribute(t *testing.T) {
	// "==" is not a legal element name; keys ride in attributes so
	// the tag key works like any other
	n := ir.FromKeyVals([]ir.KeyVal{
		{Key: "==", Val: ir.FromString("some.type")},
		{Key: "x", Val: ir.FromInt(1)},
	})
	d, err := XML{}.Render(n)
	if err != nil {
		t.Fatal(err)
	}
	back, err := XML{}.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	got := ir.Get(back, "==")
	if got == nil || got.String != "some.type" {
		t.Errorf("tag key lost:\n%s", d)
	}
}

func TestXMLParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"<unclosed>",
		"<map><e>no key attr</e></map>",
		"<other/>",
	} {
		if _, err := (XML{}).Parse([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q): %v, want ErrParse", in, err)
		}
	}
}

func TestXMLRenderScalarRootRejected(t *testing.T) {
	if _, err := (XML{}).Render(ir.FromInt(1)); !errors.Is(err, ErrEncoding) {
		t.Errorf("scalar root: %v, want ErrEncoding", err)
	}
}
