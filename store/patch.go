package store

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/docfmt/docfile/codec"
	"github.com/docfmt/docfile/ir"
	"github.com/docfmt/docfile/serial"
)

// MergePatch applies an RFC 7386 merge patch to the whole document.
// The patch is JSON regardless of the store's backing format; the
// document is bridged through JSON for the application. The tree
// guard is held across the operation, so concurrent sets cannot
// interleave with the patch.
func (s *Store) MergePatch(patch []byte) error {
	return s.patch(func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

// ApplyPatch applies an RFC 6902 JSON patch to the whole document.
func (s *Store) ApplyPatch(patch []byte) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	return s.patch(p.Apply)
}

func (s *Store) patch(apply func([]byte) ([]byte, error)) error {
	jsonCodec := codec.JSON{}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tree.Loaded() {
		return ir.ErrNotLoaded
	}
	doc, err := jsonCodec.Render(serial.ToDocumentSafe(s.tree.Root()))
	if err != nil {
		return err
	}
	patched, err := apply(doc)
	if err != nil {
		return err
	}
	root, err := jsonCodec.Parse(patched)
	if err != nil {
		return err
	}
	if err := checkRoot(root); err != nil {
		return err
	}
	s.tree = ir.NewTree(s.registry.ToNative(root))
	return nil
}
