package recast

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expr compiles src into a coercion. The value being stored is bound
// to v; getenv(name) reads the environment.
func Expr(src string) (Func, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("recast expression %q: %w", src, err)
	}
	return func(v any) (any, error) {
		return run(prg, v)
	}, nil
}

// MustExpr is Expr that panics on a compile error.
func MustExpr(src string) Func {
	f, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return f
}

func run(prg *vm.Program, v any) (any, error) {
	res, err := expr.Run(prg, map[string]any{"v": v})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("truthy", func(params ...any) (any, error) {
			return Bool(params[0])
		}),
	}
}
