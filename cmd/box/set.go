package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a dotted path, a yaml value and at most one file", cli.ErrUsage)
	}
	return runSet(cfg, cc.In, cc.Out, args[0], args[1], inputs(args[2:])[0])
}

func runSet(cfg *SetConfig, in io.Reader, w io.Writer, path, value, file string) error {
	v, err := codec.Unmarshal(format.YAMLFormat, []byte(value))
	if err != nil {
		return fmt.Errorf("%w: value %q: %w", cli.ErrUsage, value, err)
	}
	c, f, err := load(cfg.MainConfig, in, file, false)
	if err != nil {
		return err
	}
	switch x := c.(type) {
	case *box.Box:
		err = x.SetPath(path, v)
	case *box.List:
		err = x.SetPath(path, v)
	}
	if err != nil {
		return fmt.Errorf("error setting %s: %w", path, err)
	}
	return emit(cfg.MainConfig, w, c, cfg.outFormat(f), false)
}
