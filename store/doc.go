// Package store provides file-backed hierarchical document stores
// addressed by dotted paths.
//
// # Overview
//
// A Store binds one document tree to one format and, usually, one
// file. Values are read and written by dotted path:
//
//	s, _ := store.Open(format.JSONFormat, "conf.json")
//	_ = s.Set("server.port", 8080)
//	v, _ := s.Get("server.port")
//	_ = s.Save()
//	s.Close()
//
// Set creates intermediate mappings on demand, Get returns nil (or a
// caller default via GetOr) for unset paths, and a nil Set removes
// the key. The empty path addresses the whole root mapping.
//
// Values pass through the serial bridge in both directions: anything
// implementing serial.Serializable is stored as a tagged mapping and
// comes back reconstructed, provided its factory is registered.
//
// # Degraded Stores
//
// Open never fails because of file contents. A file that cannot be
// read or parsed leaves the store degraded, with the failure logged:
// every path operation then returns ir.ErrNotLoaded, and Save is
// refused so a half-understood file is never overwritten. A missing
// or blank file is not an error and yields an empty mapping.
//
// FromString is the opposite: its input is caller-supplied, so a
// parse failure is returned as an error.
//
// # Concurrency
//
// All path operations are safe for concurrent use. Save snapshots
// the tree synchronously under the same guard, then renders and
// writes on a background goroutine; a burst of saves to the same
// destination collapses into the last snapshot. Flush waits for pending saves, and Close shuts
// the background saver down, after which saves run synchronously.
//
// # Related Packages
//
// Package ir holds the document tree, package codec the format
// adapters, and package serial the tagged-object registry and
// bridge.
package store
