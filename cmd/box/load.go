package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/box"
	"github.com/signadot/tony-format/box/codec"
	"github.com/signadot/tony-format/box/format"
)

// load reads the document at path, "-" meaning in. Mappings load as a
// *box.Box and sequences as a *box.List.
func load(cfg *MainConfig, in io.Reader, path string, lines bool) (box.Container, format.Format, error) {
	f, err := cfg.inFormat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	r := in
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		defer fh.Close()
		r = fh
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading %q: %w", path, err)
	}
	var dopts []codec.DecodeOption
	if lines {
		dopts = append(dopts, codec.DecodeLines(true))
	}
	tree, err := codec.Unmarshal(f, d, dopts...)
	if err != nil {
		return nil, 0, fmt.Errorf("error decoding %s: %w", path, err)
	}
	c, err := cfg.container(f, tree)
	if err != nil {
		return nil, 0, fmt.Errorf("error loading %s: %w", path, err)
	}
	return c, f, nil
}

func (cfg *MainConfig) container(f format.Format, tree any) (box.Container, error) {
	opts, err := cfg.boxOpts()
	if err != nil {
		return nil, err
	}
	switch x := tree.(type) {
	case codec.Map:
		args := []any{x}
		for _, o := range opts {
			args = append(args, o)
		}
		return box.New(args...)
	case []any:
		return box.NewList(x, opts...)
	}
	return nil, &box.FormatError{Format: f, Want: "mapping or list", Got: codec.Kind(tree)}
}

// emit writes c to w in format f. Text output always ends in a newline.
func emit(cfg *MainConfig, w io.Writer, c box.Container, f format.Format, lines bool) error {
	opts := cfg.encOpts()
	if lines {
		opts = append(opts, codec.EncodeLines(true))
	}
	buf := bytes.NewBuffer(nil)
	if err := c.Encode(buf, f, opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if f != format.MsgpackFormat && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
