package convert

import (
	"fmt"
	"strconv"

	cordar "github.com/cordar-format/cordar-go"

	"github.com/expr-lang/expr"
)

// Eval evaluates an expr-lang expression against n. The fields of n's
// root record are variables, and the whole document is also bound to doc
// unless a field already uses that name. Cordar values are strings, so
// the function num converts one to a float64:
//
//	num(server[0].port) > 1024
func Eval(n *cordar.Node, expression string) (any, error) {
	env := map[string]any{}
	v := n.Interface()
	if m, ok := v.(map[string]any); ok {
		for k, e := range m {
			env[k] = e
		}
	}
	if _, ok := env["doc"]; !ok {
		env["doc"] = v
	}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.Function("num", num, new(func(string) float64)),
	)
	if err != nil {
		return nil, fmt.Errorf("convert: compiling %q: %w", expression, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("convert: evaluating %q: %w", expression, err)
	}
	return out, nil
}

func num(params ...any) (any, error) {
	s, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("num: expected a string, got %T", params[0])
	}
	return strconv.ParseFloat(s, 64)
}
