package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var out io.Writer = os.Stderr

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case fmt.Stringer:
			args[i] = x.String()
		}
	}
	fmt.Fprintf(out, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(out, "%v\n", v)
		return
	}
	out.Write(d)
}
