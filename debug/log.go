package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                6,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders v for tracing. Cyclic values are cut at the repeat.
func Dump(v any) string {
	return dumper.Sdump(v)
}

// Logf writes a trace line to stderr. Maps and slices are rendered as
// JSON, other values without a String method with spew. Type names must
// be formatted by the caller.
func Logf(msg string, args ...any) {
	fprintf(os.Stderr, msg, args...)
}

func fprintf(w io.Writer, msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = Dump(a)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int, error:

		default:
			if _, ok := a.(fmt.Stringer); ok {
				continue
			}
			args[i] = Dump(a)
		}
	}
	fmt.Fprintf(w, msg, args...)
}
