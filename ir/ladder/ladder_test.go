package ladder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"single", "port", []string{"port"}},
		{"nested", "server.http.port", []string{"server", "http", "port"}},
		{"root", "", []string{""}},
		{"trailing dot", "a.", []string{"a", ""}},
		{"leading dot", ".a", []string{"", "a"}},
		{"consecutive dots", "a..b", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.path)
			if d := cmp.Diff(tt.expected, got); d != "" {
				t.Errorf("Split(%q): %s", tt.path, d)
			}
		})
	}
}

func TestJoinInvertsSplit(t *testing.T) {
	for _, path := range []string{"", "a", "a.b.c", "a..b", ".a."} {
		if got := Join(Split(path)); got != path {
			t.Errorf("Join(Split(%q)) = %q", path, got)
		}
	}
}

func TestIsRoot(t *testing.T) {
	if !IsRoot(Split("")) {
		t.Error("empty path should address the root")
	}
	if IsRoot(Split("a")) || IsRoot(Split("a.b")) {
		t.Error("non-empty paths should not address the root")
	}
}
