// Package ladder splits dotted document paths into their ordered
// segments.
//
// A path is a string of keys joined by '.'. There is no escaping
// mechanism: a key containing a literal '.' cannot be addressed and is
// simply split. Split("") yields a single empty segment, which callers
// treat as addressing the root itself rather than a child named "".
package ladder

import (
	"strings"
)

// Split returns the ordered segments of a dotted path.
func Split(path string) []string {
	return strings.Split(path, ".")
}

// Join is the inverse of Split for paths whose keys contain no '.'.
func Join(segments []string) string {
	return strings.Join(segments, ".")
}

// IsRoot reports whether segments address the root itself, i.e. the
// result of Split("").
func IsRoot(segments []string) bool {
	return len(segments) == 1 && segments[0] == ""
}
