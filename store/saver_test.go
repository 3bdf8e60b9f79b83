package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/serial"
)

func TestSaveToDistinctTargets(t *testing.T) {
	s, _ := tmpStore(t, format.JSONFormat, "")
	if err := s.Set("a", 1); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	// back-to-back saves to different targets must all land: only
	// saves to the same target may coalesce
	var targets []string
	for i := 0; i < 10; i++ {
		one := filepath.Join(dir, fmt.Sprintf("one-%d.json", i))
		two := filepath.Join(dir, fmt.Sprintf("two-%d.json", i))
		if err := s.SaveTo(one); err != nil {
			t.Fatal(err)
		}
		if err := s.SaveTo(two); err != nil {
			t.Fatal(err)
		}
		targets = append(targets, one, two)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	s.Flush()
	for _, target := range targets {
		if _, err := os.Stat(target); err != nil {
			t.Errorf("accepted save never written: %v", err)
		}
	}
}

func TestSaverDiscardsStaleSnapshots(t *testing.T) {
	s, path := tmpStore(t, format.JSONFormat, "")
	older := &saveJob{
		target: path,
		root:   serial.ToDocumentSafe(map[string]any{"state": "old"}),
		seq:    1,
	}
	newer := &saveJob{
		target: path,
		root:   serial.ToDocumentSafe(map[string]any{"state": "new"}),
		seq:    2,
	}
	// snapshots can reach the saver in the opposite order from
	// which they were taken; the older one must never win
	if !s.saver.submit(newer) {
		t.Fatal("submit refused")
	}
	s.Flush()
	if !s.saver.submit(older) {
		t.Fatal("submit refused")
	}
	s.Flush()

	s2, err := Open(format.JSONFormat, path, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, err := s2.Get("state")
	if err != nil {
		t.Fatal(err)
	}
	if v != "new" {
		t.Errorf("state = %v, stale snapshot overwrote the newer one", v)
	}
}

func TestSaverCoalescesSameTarget(t *testing.T) {
	s, path := tmpStore(t, format.JSONFormat, "")
	for i := 0; i < 50; i++ {
		if err := s.Set("n", i); err != nil {
			t.Fatal(err)
		}
		if err := s.Save(); err != nil {
			t.Fatal(err)
		}
	}
	s.Flush()
	s2, err := Open(format.JSONFormat, path, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, err := s2.Get("n")
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(49) {
		t.Errorf("n = %v, want the last saved value", v)
	}
}
