package store

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/docfmt/docfile/debug"
	"github.com/docfmt/docfile/ir"
)

type watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch reloads the store whenever its backing file changes on disk.
// A reload that fails to read or parse keeps the current tree and
// logs; the store never degrades because an editor wrote a bad
// intermediate state. Watching stops at Close.
func (s *Store) Watch() error {
	if s.location == "" {
		return fmt.Errorf("cannot watch a store without a location")
	}
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watch != nil {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(s.location); err != nil {
		fsw.Close()
		return err
	}
	w := &watcher{fsw: fsw, done: make(chan struct{})}
	s.watch = w
	go s.watchLoop(w)
	return nil
}

func (s *Store) watchLoop(w *watcher) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if debug.Watch() {
					debug.Logf("store: reload on %s", ev)
				}
				s.reload()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			s.log.Error("error watching document", "path", s.location, "err", err)
		}
	}
}

// reload re-reads and re-parses the backing file, swapping the tree
// in under the tree guard on success only.
func (s *Store) reload() {
	s.fileMu.RLock()
	d, err := readLocation(s.location)
	s.fileMu.RUnlock()
	if err != nil {
		s.log.Error("error reloading document", "path", s.location, "err", err)
		return
	}
	root, err := s.adapter.Parse(d)
	if err == nil {
		err = checkRoot(root)
	}
	if err != nil {
		s.log.Error("error reloading document",
			"path", s.location, "format", s.fmat.String(), "err", err)
		return
	}
	native := s.registry.ToNative(root)
	s.mu.Lock()
	s.tree = ir.NewTree(native)
	s.mu.Unlock()
}

func (w *watcher) stop() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
