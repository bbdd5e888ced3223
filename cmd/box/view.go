package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/ident"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return runView(cfg, cc.In, cc.Out, inputs(args))
}

func runView(cfg *ViewConfig, in io.Reader, w io.Writer, files []string) error {
	p := newPalette(cfg.colorize(w))
	for i, file := range files {
		c, _, err := load(cfg.MainConfig, in, file, false)
		if err != nil {
			return err
		}
		var tree any
		switch x := c.(type) {
		case *box.Box:
			tree, err = x.ToOrdered()
		case *box.List:
			tree, err = x.ToOrdered()
		}
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		buf := bytes.NewBuffer(nil)
		if i > 0 {
			buf.WriteString("---\n")
		}
		p.node(buf, tree, "")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	key, str, num, lit, punct func(a ...any) string
}

func newPalette(on bool) *palette {
	return &palette{
		key:   paint(on, color.FgCyan),
		str:   paint(on, color.FgGreen),
		num:   paint(on, color.FgYellow),
		lit:   paint(on, color.FgMagenta),
		punct: paint(on, color.Faint),
	}
}

func (p *palette) node(buf *bytes.Buffer, v any, indent string) {
	switch x := v.(type) {
	case codec.Map:
		if len(x) == 0 {
			buf.WriteString(indent + p.punct("{}") + "\n")
			return
		}
		for _, it := range x {
			buf.WriteString(indent + p.key(ident.KeyString(it.Key)) + p.punct(":"))
			p.child(buf, it.Value, indent)
		}
	case []any:
		if len(x) == 0 {
			buf.WriteString(indent + p.punct("[]") + "\n")
			return
		}
		for _, e := range x {
			buf.WriteString(indent + p.punct("-"))
			p.child(buf, e, indent)
		}
	default:
		buf.WriteString(indent + p.scalar(v) + "\n")
	}
}

func (p *palette) child(buf *bytes.Buffer, v any, indent string) {
	switch x := v.(type) {
	case codec.Map:
		if len(x) > 0 {
			buf.WriteByte('\n')
			p.node(buf, x, indent+"  ")
			return
		}
	case []any:
		if len(x) > 0 {
			buf.WriteByte('\n')
			p.node(buf, x, indent+"  ")
			return
		}
	}
	buf.WriteString(" " + p.scalar(v) + "\n")
}

func (p *palette) scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return p.lit("null")
	case bool:
		return p.lit(strconv.FormatBool(x))
	case string:
		return p.str(strconv.Quote(x))
	case codec.Map:
		return p.punct("{}")
	case []any:
		return p.punct("[]")
	}
	return p.num(ident.KeyString(v))
}
