package store

import (
	"sync"

	"github.com/docfmt/docfile/ir"
)

// saveJob is one snapshot bound for one target path. seq is allocated
// under the store's tree guard when the snapshot is taken, so it
// orders jobs by snapshot age regardless of submission order.
type saveJob struct {
	target string
	root   *ir.Node
	seq    uint64
}

// saver runs saves on a single background goroutine. Jobs coalesce
// per target: at most one job is pending for each target path, and a
// burst of saves to one target collapses into the newest snapshot.
// Jobs for distinct targets never displace each other. A snapshot
// older than one already written to its target is discarded, so
// out-of-order submissions cannot roll a file back. Write failures
// abort that attempt only; they never poison the saver.
type saver struct {
	store *Store

	mu      sync.Mutex
	idle    *sync.Cond
	pending map[string]*saveJob
	written map[string]uint64
	running bool
	closed  bool
}

func newSaver(s *Store) *saver {
	sv := &saver{
		store:   s,
		pending: map[string]*saveJob{},
		written: map[string]uint64{},
	}
	sv.idle = sync.NewCond(&sv.mu)
	return sv
}

// submit queues a job, coalescing with a not-yet-started job for the
// same target. A job older than what its target already holds is
// superseded and needs no write. It reports false after close; the
// caller then saves synchronously.
func (sv *saver) submit(job *saveJob) bool {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	if sv.closed {
		return false
	}
	if sv.written[job.target] >= job.seq {
		return true
	}
	if cur := sv.pending[job.target]; cur == nil || cur.seq < job.seq {
		sv.pending[job.target] = job
	}
	if !sv.running {
		sv.running = true
		go sv.run()
	}
	return true
}

func (sv *saver) run() {
	for {
		sv.mu.Lock()
		var job *saveJob
		for target, j := range sv.pending {
			job = j
			delete(sv.pending, target)
			break
		}
		if job == nil {
			sv.running = false
			sv.idle.Broadcast()
			sv.mu.Unlock()
			return
		}
		sv.mu.Unlock()
		// Errors already logged by writeSnapshot; nothing to
		// surface from a background save.
		_ = sv.write(job)
	}
}

// write persists one job unless a newer snapshot already reached its
// target. Used by the background loop and, after close, by the
// synchronous fallback.
func (sv *saver) write(job *saveJob) error {
	sv.mu.Lock()
	if sv.written[job.target] >= job.seq {
		sv.mu.Unlock()
		return nil
	}
	sv.mu.Unlock()
	err := sv.store.writeSnapshot(job)
	sv.mu.Lock()
	if sv.written[job.target] < job.seq {
		sv.written[job.target] = job.seq
	}
	sv.mu.Unlock()
	return err
}

// flush blocks until the queue is drained and the goroutine parked.
func (sv *saver) flush() {
	sv.mu.Lock()
	for sv.running || len(sv.pending) > 0 {
		sv.idle.Wait()
	}
	sv.mu.Unlock()
}

// close drains pending work, then puts the saver in synchronous mode.
func (sv *saver) close() {
	sv.mu.Lock()
	sv.closed = true
	for sv.running || len(sv.pending) > 0 {
		sv.idle.Wait()
	}
	sv.mu.Unlock()
}
