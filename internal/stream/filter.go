package stream

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// itemFilter wraps a compiled CEL program evaluated against each decoded
// item. When disabled, Eval always returns true.
type itemFilter struct {
	prog    cel.Program
	enabled bool
}

// compileFilter builds an itemFilter from a CEL expression. The expression
// sees the following variables:
//
//	input      string  raw input text
//	valid      bool    structural validity
//	ts_ms      int     decoded millisecond timestamp (0 when invalid)
//	randomness string  decoded randomness as lowercase hex ("" when invalid)
//	now_ms     int     wall clock at evaluation time
//
// An empty expression disables filtering.
func compileFilter(expr string) (itemFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return itemFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("input", cel.StringType),
		cel.Variable("valid", cel.BoolType),
		cel.Variable("ts_ms", cel.IntType),
		cel.Variable("randomness", cel.StringType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return itemFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return itemFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return itemFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return itemFilter{}, err
	}
	return itemFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against one item. Evaluation errors
// count as a non-match.
func (f itemFilter) Eval(input string, u ulid.ULID, valid bool) bool {
	if !f.enabled {
		return true
	}
	var tsMs int64
	randomness := ""
	if valid {
		tsMs = int64(u.Timestamp())
		randomness = u.RandomnessHex()
	}
	out, _, err := f.prog.Eval(map[string]any{
		"input":      input,
		"valid":      valid,
		"ts_ms":      tsMs,
		"randomness": randomness,
		"now_ms":     time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
