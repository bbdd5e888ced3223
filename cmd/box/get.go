package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
	"github.com/signadot/tony-format/box/format"
	"github.com/signadot/tony-format/box/recast"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	return runGet(cfg, cc.In, cc.Out, args[0], inputs(args[1:]))
}

func runGet(cfg *GetConfig, in io.Reader, w io.Writer, path string, files []string) error {
	var fn recast.Func
	if cfg.Expr != "" {
		f, err := recast.Expr(cfg.Expr)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		fn = f
	}
	for _, file := range files {
		c, f, err := load(cfg.MainConfig, in, file, false)
		if err != nil {
			return err
		}
		v, err := lookup(c, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, path, err)
		}
		if fn != nil {
			if v, err = fn(plain(v)); err != nil {
				return fmt.Errorf("error evaluating %q: %w", cfg.Expr, err)
			}
		}
		if err := printValue(cfg.MainConfig, w, v, cfg.outFormat(f)); err != nil {
			return err
		}
	}
	return nil
}

func lookup(c box.Container, path string) (any, error) {
	if path == "" || path == "." {
		return c, nil
	}
	switch x := c.(type) {
	case *box.Box:
		return x.GetPath(path)
	case *box.List:
		return x.GetPath(path)
	}
	return nil, fmt.Errorf("unexpected container %T", c)
}

func plain(v any) any {
	switch x := v.(type) {
	case *box.Box:
		return x.ToMap()
	case *box.List:
		return x.ToList()
	}
	return v
}

// printValue writes containers in format f and scalars as plain text.
func printValue(cfg *MainConfig, w io.Writer, v any, f format.Format) error {
	switch x := v.(type) {
	case box.Container:
		return emit(cfg, w, x, f, false)
	case map[string]any:
		c, err := box.New(x)
		if err != nil {
			return err
		}
		return emit(cfg, w, c, f, false)
	case []any:
		c, err := box.NewList(x)
		if err != nil {
			return err
		}
		return emit(cfg, w, c, f, false)
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	s, err := recast.String(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}
