package archive

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// Filter wraps a compiled CEL program evaluated against archived entries.
// The zero value (or an empty expression) is disabled and matches everything.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// NewFilter compiles expr. Supported variables:
//
//	seq     int     1-based position within the window
//	ts_ms   int     capture time in ms since Unix epoch
//	size    int     text length in bytes
//	text    string  the entry text
//	json    dyn     parsed payload when text is JSON, null otherwise
//	now_ms  int     evaluation time in ms
func NewFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("seq", cel.IntType),
		cel.Variable("ts_ms", cel.IntType),
		cel.Variable("size", cel.IntType),
		cel.Variable("text", cel.StringType),
		cel.Variable("json", cel.DynType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Filter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against one entry. When disabled,
// returns true. Evaluation errors count as non-matches.
func (f Filter) Eval(seq uint64, tsMs int64, text string) bool {
	if !f.enabled {
		return true
	}
	var jsonObj any
	_ = json.Unmarshal([]byte(text), &jsonObj)
	out, _, err := f.prog.Eval(map[string]any{
		"seq":    int64(seq),
		"ts_ms":  tsMs,
		"size":   int64(len(text)),
		"text":   text,
		"json":   jsonObj,
		"now_ms": time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
