package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
)

func attrs(cfg *AttrsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Attrs.Parse(cc, args)
	if err != nil {
		cfg.Attrs.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: attrs takes at most one file", cli.ErrUsage)
	}
	return runAttrs(cfg, cc.In, cc.Out, inputs(args)[0])
}

// runAttrs prints the attribute names of the data in file, leaving out
// the methods of box.Box.
func runAttrs(cfg *AttrsConfig, in io.Reader, w io.Writer, file string) error {
	c, _, err := load(cfg.MainConfig, in, file, false)
	if err != nil {
		return err
	}
	b, ok := c.(*box.Box)
	if !ok {
		return fmt.Errorf("%s holds a list, attrs needs a mapping", file)
	}
	methods := map[string]bool{}
	for _, name := range box.Must(box.New()).Attrs() {
		methods[name] = true
	}
	for _, name := range b.Attrs() {
		if methods[name] {
			continue
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
