package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
	"github.com/signadot/tony-format/box/ident"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='colorize output'"`
	Indent  int    `cli:"name=indent desc='indentation of json and yaml output'"`
	Sort    bool   `cli:"name=sort desc='sort mapping keys on output'"`
	Camel   bool   `cli:"name=camel desc='resolve camelCase keys by their snake_case names'"`
	Dups    string `cli:"name=dups desc='duplicate attribute names: ignore, warn or error'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log debug messages to stderr'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	T bool `cli:"name=t aliases=toml desc='do i/o in toml'"`
	M bool `cli:"name=m aliases=msgpack desc='do i/o in msgpack'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) flagFormat() (format.Format, bool) {
	switch {
	case cfg.J:
		return format.JSONFormat, true
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.T:
		return format.TOMLFormat, true
	case cfg.M:
		return format.MsgpackFormat, true
	}
	return 0, false
}

// inFormat picks the format to read path in: -I, then the file
// extension, then the format flags. Standard input defaults to yaml.
func (cfg *MainConfig) inFormat(path string) (format.Format, error) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, nil
	}
	if path != "-" {
		return format.FromPath(path)
	}
	if f, ok := cfg.flagFormat(); ok {
		return f, nil
	}
	return format.YAMLFormat, nil
}

// outFormat picks the output format: -O, then the format flags, then
// the format the input was read in.
func (cfg *MainConfig) outFormat(in format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if f, ok := cfg.flagFormat(); ok {
		return f
	}
	return in
}

func (cfg *MainConfig) encOpts() []codec.EncodeOption {
	return []codec.EncodeOption{
		codec.Indent(cfg.Indent),
		codec.SortKeys(cfg.Sort),
	}
}

func (cfg *MainConfig) boxOpts() ([]box.Option, error) {
	opts := []box.Option{box.Logger(cfg.logger())}
	if cfg.Camel {
		opts = append(opts, box.CamelKiller())
	}
	if cfg.Dups != "" {
		p, err := ident.ParsePolicy(cfg.Dups)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, box.Duplicates(p))
	}
	return opts, nil
}

func (cfg *MainConfig) logger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// colorize reports whether output to w gets colors: always with -color,
// otherwise when w is a terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorSet = opt.Value != nil
			break
		}
	}
	if colorSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(on bool, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

type ConvertConfig struct {
	*MainConfig
	Lines bool `cli:"name=l aliases=lines desc='read and write json lists one value per line'"`

	Convert *cli.Command
}

type GetConfig struct {
	*MainConfig
	Expr string `cli:"name=x aliases=expr desc='expression applied to the value, bound to v'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type AttrsConfig struct {
	*MainConfig

	Attrs *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=merge desc='apply an RFC 7386 merge patch'"`
	String bool `cli:"name=s desc='patch arg as a string'"`

	Patch *cli.Command
}
