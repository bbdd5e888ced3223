package box

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/tony-format/box/format"
)

// Diff compares the YAML renderings of a and b line by line. Each line
// of the result starts with "-" when only in a, "+" when only in b and
// " " when in both. The second result reports whether any line differs.
func Diff(a, b Container) (string, bool, error) {
	from, err := render(a)
	if err != nil {
		return "", false, err
	}
	to, err := render(b)
	if err != nil {
		return "", false, err
	}
	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(fromRunes, toRunes, false), lines)
	var (
		buf     strings.Builder
		changed bool
	)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
			changed = true
		case diffpatch.DiffInsert:
			prefix = "+"
			changed = true
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(ln)
		}
	}
	return buf.String(), changed, nil
}

func render(c Container) (string, error) {
	var buf strings.Builder
	if err := c.Encode(&buf, format.YAMLFormat); err != nil {
		return "", err
	}
	s := buf.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s, nil
}
