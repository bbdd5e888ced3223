package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch and at most one file to which to apply it", cli.ErrUsage)
	}
	return runPatch(cfg, cc.In, cc.Out, args[0], inputs(args[1:])[0])
}

func runPatch(cfg *PatchConfig, in io.Reader, w io.Writer, patchArg, file string) error {
	doc, err := getPatch(cfg, patchArg)
	if err != nil {
		return err
	}
	c, f, err := load(cfg.MainConfig, in, file, false)
	if err != nil {
		return err
	}
	b, ok := c.(*box.Box)
	if !ok {
		return fmt.Errorf("%s holds a list, patch needs a mapping", file)
	}
	if cfg.Merge {
		err = b.MergePatch(doc)
	} else {
		err = b.ApplyJSONPatch(doc)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	return emit(cfg.MainConfig, w, b, cfg.outFormat(f), false)
}

func getPatch(cfg *PatchConfig, arg string) ([]byte, error) {
	if cfg.String {
		return []byte(arg), nil
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return d, nil
}
