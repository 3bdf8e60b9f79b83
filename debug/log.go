// Package debug provides env-gated diagnostic logging for the
// document store internals. Each area has a DOCFILE_DEBUG_* boolean
// environment variable; Logf writes to stderr and pretty-prints node
// and map arguments.
package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docfmt/docfile/ir"
)

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			d, err := json.MarshalIndent(ir.ToGo(x), "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
}
