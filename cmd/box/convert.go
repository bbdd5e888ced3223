package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runConvert(cfg, cc.In, cc.Out, inputs(args))
}

func runConvert(cfg *ConvertConfig, in io.Reader, w io.Writer, files []string) error {
	for _, file := range files {
		c, f, err := load(cfg.MainConfig, in, file, cfg.Lines)
		if err != nil {
			return err
		}
		if err := emit(cfg.MainConfig, w, c, cfg.outFormat(f), cfg.Lines); err != nil {
			return fmt.Errorf("error converting %s: %w", file, err)
		}
	}
	return nil
}
