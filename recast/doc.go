// Package recast provides coercion functions for a box's recast table.
//
// A coercion receives the raw value about to be stored and returns the
// value to store in its place:
//
//	b, err := box.New(
//		box.Recast("port", recast.Int),
//		box.Recast("hosts", recast.List(",", nil)),
//	)
//
// [Expr] compiles an expr-lang expression over the value, bound as v:
//
//	double, err := recast.Expr("int(v) * 2")
package recast
