package store

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/docfmt/docfile/codec"
	"github.com/docfmt/docfile/debug"
	"github.com/docfmt/docfile/format"
	"github.com/docfmt/docfile/ir"
	"github.com/docfmt/docfile/ir/ladder"
	"github.com/docfmt/docfile/serial"
)

// Store is a file-backed hierarchical document. It owns one document
// tree, one format adapter, an optional file location, and the
// concurrency guards over both: the tree guard serializes every
// path operation and the save-time snapshot, the file guard
// serializes physical reads and writes of the backing file.
//
// A store whose backing file failed to read or parse is degraded
// rather than broken at construction: the failure is logged and every
// subsequent path operation returns ir.ErrNotLoaded.
type Store struct {
	location string
	fmat     format.Format
	adapter  codec.Adapter
	registry *serial.Registry
	log      *slog.Logger

	mu      sync.Mutex // tree guard
	tree    *ir.Tree
	saveSeq uint64

	fileMu sync.RWMutex // file guard

	saver *saver

	watchMu sync.Mutex
	watch   *watcher
}

// Option configures a Store at construction.
type Option func(*Store)

// WithRegistry sets the tagged-object registry consulted on
// deserialization. Defaults to serial.Default.
func WithRegistry(r *serial.Registry) Option {
	return func(s *Store) { s.registry = r }
}

// WithLogger sets the logger for environmental failures (parse, I/O,
// reconstruction context). Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func newStore(f format.Format, opts []Option) (*Store, error) {
	adapter := codec.ForFormat(f)
	if adapter == nil {
		return nil, fmt.Errorf("%w: no adapter for format %d", format.ErrBadFormat, int(f))
	}
	s := &Store{
		fmat:     f,
		adapter:  adapter,
		registry: serial.Default,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.saver = newSaver(s)
	return s, nil
}

// New returns a memory-only store with an empty mapping root.
func New(f format.Format, opts ...Option) (*Store, error) {
	s, err := newStore(f, opts)
	if err != nil {
		return nil, err
	}
	s.tree = ir.NewTree(s.adapter.EmptyMapping())
	return s, nil
}

// Open loads the document at path. A missing, empty, or
// whitespace-only file yields an empty mapping root. Read and parse
// failures are logged and leave the store degraded (nil root) so that
// a later save cannot clobber a file that never loaded; they are not
// returned as errors.
func Open(f format.Format, path string, opts ...Option) (*Store, error) {
	s, err := newStore(f, opts)
	if err != nil {
		return nil, err
	}
	s.location = path
	s.tree = ir.NewTree(s.loadRoot())
	return s, nil
}

// FromString parses a raw document, skipping file I/O entirely.
// Unlike Open, a parse failure here is a caller error and is
// returned.
func FromString(f format.Format, raw string, opts ...Option) (*Store, error) {
	s, err := newStore(f, opts)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		s.tree = ir.NewTree(s.adapter.EmptyMapping())
		return s, nil
	}
	root, err := s.adapter.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	s.tree = ir.NewTree(s.registry.ToNative(root))
	return s, nil
}

// loadRoot reads and parses the backing file, returning nil on
// failure. nil marks the store degraded.
func (s *Store) loadRoot() *ir.Node {
	s.fileMu.RLock()
	d, err := readLocation(s.location)
	s.fileMu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return s.adapter.EmptyMapping()
		}
		s.log.Error("error loading document",
			"op", "read", "path", s.location, "format", s.fmat.String(), "err", err)
		return nil
	}
	if strings.TrimSpace(string(d)) == "" {
		return s.adapter.EmptyMapping()
	}
	root, err := s.adapter.Parse(d)
	if err != nil {
		s.log.Error("error parsing document",
			"path", s.location, "format", s.fmat.String(), "err", err)
		return nil
	}
	if err := checkRoot(root); err != nil {
		s.log.Error("error parsing document",
			"path", s.location, "format", s.fmat.String(), "err", err)
		return nil
	}
	if debug.Store() {
		debug.Logf("store: loaded %s (%s)", s.location, s.fmat)
	}
	return s.registry.ToNative(root)
}

func checkRoot(root *ir.Node) error {
	if root == nil {
		return fmt.Errorf("%w: empty document", codec.ErrParse)
	}
	switch root.Type {
	case ir.ObjectType, ir.ArrayType:
		return nil
	default:
		return fmt.Errorf("%w: document root is a bare %s", codec.ErrParse, root.Type)
	}
}

// Location returns the backing file path, or "" for a memory-only
// store.
func (s *Store) Location() string {
	return s.location
}

// Format returns the store's backing format.
func (s *Store) Format() format.Format {
	return s.fmat
}

// Get returns the value at the dotted path, or nil when unset. The
// empty path addresses the whole root mapping.
func (s *Store) Get(path string) (any, error) {
	return s.GetOr(path, nil)
}

// GetOr returns the value at the dotted path, or def when unset.
// Stored tagged mappings come back as reconstructed domain values;
// containers come back as detached map[string]any / []any copies.
func (s *Store) GetOr(path string, def any) (any, error) {
	lad := ladder.Split(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ladder.IsRoot(lad) {
		root, err := s.rootMapping()
		if err != nil {
			return nil, err
		}
		return ir.ToGo(s.registry.ToNative(root)), nil
	}
	ok, err := s.tree.IsSet(lad)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	n, err := s.tree.Get(lad)
	if err != nil {
		return nil, err
	}
	return ir.ToGo(s.registry.ToNative(n)), nil
}

// Set stores a value at the dotted path, creating intermediate
// mappings on demand. The value passes through the serialization
// bridge first, so Serializable values are stored in their tagged
// mapping form. A nil value removes the key rather than storing null.
func (s *Store) Set(path string, v any) error {
	lad := ladder.Split(path)
	if ladder.IsRoot(lad) {
		return fmt.Errorf("%w: cannot set the root itself", ir.ErrNotMapping)
	}
	var n *ir.Node
	if v != nil {
		n = serial.ToDocumentSafe(v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Set(lad, n)
}

// IsSet reports whether a value exists at the dotted path.
func (s *Store) IsSet(path string) (bool, error) {
	lad := ladder.Split(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ladder.IsRoot(lad) {
		if _, err := s.rootMapping(); err != nil {
			return false, err
		}
		return true, nil
	}
	return s.tree.IsSet(lad)
}

// IsSeries reports whether the root is a sequence. Most path
// operations fail on such a store; use Series and ReplaceSeries.
func (s *Store) IsSeries() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.IsSeries()
}

// Series returns the elements of a sequence-rooted store.
func (s *Store) Series() ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.tree.Series()
	if err != nil {
		return nil, err
	}
	res := make([]any, len(nodes))
	for i, n := range nodes {
		res[i] = ir.ToGo(s.registry.ToNative(n))
	}
	return res, nil
}

// ReplaceSeries replaces the contents of a sequence root wholesale.
func (s *Store) ReplaceSeries(values []any) error {
	nodes := make([]*ir.Node, len(values))
	for i, v := range values {
		nodes[i] = serial.ToDocumentSafe(v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.ReplaceSeries(nodes)
}

// Snapshot returns an independent document-safe copy of the tree,
// taken under the tree guard. Mutations after Snapshot returns do not
// affect the copy.
func (s *Store) Snapshot() (*ir.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tree.Loaded() {
		return nil, ir.ErrNotLoaded
	}
	return serial.ToDocumentSafe(s.tree.Root()), nil
}

// Render pretty-prints the current document in the store's format.
func (s *Store) Render() ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.adapter.Render(snap)
}

// Save persists the document to the store's own location via the
// background saver. The snapshot is taken synchronously under the
// tree guard; rendering and the write happen off the caller's
// goroutine unless the saver has been shut down, in which case the
// save runs synchronously instead of being dropped.
func (s *Store) Save() error {
	return s.SaveTo(s.location)
}

// SaveTo persists the document to an arbitrary target path. The
// snapshot and its sequence number are taken under the tree guard
// together, so snapshots of one store are ordered by age and a stale
// one can never overwrite a newer one.
func (s *Store) SaveTo(target string) error {
	if target == "" {
		return fmt.Errorf("cannot save without a target location")
	}
	s.mu.Lock()
	if !s.tree.Loaded() {
		s.mu.Unlock()
		return ir.ErrNotLoaded
	}
	s.saveSeq++
	job := &saveJob{
		target: target,
		root:   serial.ToDocumentSafe(s.tree.Root()),
		seq:    s.saveSeq,
	}
	s.mu.Unlock()
	if s.saver.submit(job) {
		return nil
	}
	return s.saver.write(job)
}

// Flush blocks until all pending background saves completed.
func (s *Store) Flush() {
	s.saver.flush()
}

// Close flushes pending saves, shuts the background saver down
// (subsequent saves run synchronously), and stops any watcher.
func (s *Store) Close() error {
	s.saver.close()
	s.watchMu.Lock()
	w := s.watch
	s.watch = nil
	s.watchMu.Unlock()
	if w != nil {
		return w.stop()
	}
	return nil
}

// writeSnapshot renders and writes one save job. Writes to the
// store's own location take the file guard write lock; alternate
// targets do not contend with it.
func (s *Store) writeSnapshot(job *saveJob) error {
	d, err := s.adapter.Render(job.root)
	if err != nil {
		s.log.Error("error rendering document",
			"op", "save", "path", job.target, "format", s.fmat.String(), "err", err)
		return err
	}
	lock := job.target == s.location && s.location != ""
	if lock {
		s.fileMu.Lock()
		defer s.fileMu.Unlock()
	}
	if err := writeLocation(job.target, d); err != nil {
		s.log.Error("error saving document",
			"op", "save", "path", job.target, "format", s.fmat.String(), "err", err)
		return err
	}
	if debug.Save() {
		debug.Logf("store: saved %s (%d bytes)", job.target, len(d))
	}
	return nil
}

// rootMapping returns the root for whole-document reads, holding the
// caller's tree guard.
func (s *Store) rootMapping() (*ir.Node, error) {
	root := s.tree.Root()
	if root == nil {
		return nil, ir.ErrNotLoaded
	}
	if root.Type == ir.ArrayType {
		return nil, fmt.Errorf("%w: path operation on sequence root", ir.ErrSeriesRoot)
	}
	return root, nil
}
