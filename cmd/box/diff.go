package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	differs, err := runDiff(cfg, cc.In, cc.Out, args[0], args[1])
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func runDiff(cfg *DiffConfig, in io.Reader, w io.Writer, from, to string) (bool, error) {
	a, _, err := load(cfg.MainConfig, in, from, false)
	if err != nil {
		return false, err
	}
	b, _, err := load(cfg.MainConfig, in, to, false)
	if err != nil {
		return false, err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	d, differs, err := box.Diff(a, b)
	if err != nil {
		return false, err
	}
	if !differs {
		return false, nil
	}
	on := cfg.colorize(w)
	del, ins := paint(on, color.FgRed), paint(on, color.FgGreen)
	var out strings.Builder
	for _, ln := range strings.SplitAfter(d, "\n") {
		switch {
		case strings.HasPrefix(ln, "-"):
			out.WriteString(del(strings.TrimSuffix(ln, "\n")) + "\n")
		case strings.HasPrefix(ln, "+"):
			out.WriteString(ins(strings.TrimSuffix(ln, "\n")) + "\n")
		default:
			out.WriteString(ln)
		}
	}
	_, err = io.WriteString(w, out.String())
	return true, err
}
