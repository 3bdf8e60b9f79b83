package codec

import (
	"bytes"
)

const indentUnit = "    " // 4 spaces

// Indent re-emits compact JSON-like syntax with one key or element per
// line: a line break plus one indent level after '{', '[' and ',', a
// dedent before '}' and ']', and a space after ':'. Empty containers
// stay on one line. Quoted string literals are never broken. The
// output is byte-stable: indenting the
// compact form of a tree always yields the same bytes for the same
// tree content.
func Indent(compact []byte) []byte {
	var (
		sb       bytes.Buffer
		level    int
		text     bool
		escaped  bool
		newlined bool
	)
	indent := func() {
		sb.WriteByte('\n')
		for w := 0; w < level; w++ {
			sb.WriteString(indentUnit)
		}
	}
	for i := 0; i < len(compact); i++ {
		c := compact[i]
		if text {
			sb.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				text = false
			}
			continue
		}
		switch c {
		case '}', ']':
			level--
			indent()
			newlined = true
		case '"':
			text = true
		}
		if newlined {
			if c == '\n' || c == ' ' {
				continue
			}
			newlined = false
		}
		// empty containers stay on one line
		if i+1 < len(compact) &&
			((c == '{' && compact[i+1] == '}') || (c == '[' && compact[i+1] == ']')) {
			sb.WriteByte(c)
			sb.WriteByte(compact[i+1])
			i++
			continue
		}
		sb.WriteByte(c)
		switch c {
		case ':':
			sb.WriteByte(' ')
		case ',':
			indent()
			newlined = true
		case '{', '[':
			level++
			indent()
			newlined = true
		}
	}
	return sb.Bytes()
}
