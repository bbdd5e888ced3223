package dotpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("path syntax error")

// Path is one step of a dotted path. Exactly one of Field and Index is
// set; Next is nil on the last step.
type Path struct {
	Field *string
	Index *int
	Next  *Path
}

// Field returns a single field step.
func Field(name string) *Path {
	return &Path{Field: &name}
}

// Index returns a single index step.
func Index(i int) *Path {
	return &Path{Index: &i}
}

// IsPath reports whether s would be read as more than a plain key, that
// is whether it contains a field separator or an opening bracket.
func IsPath(s string) bool {
	return strings.ContainsAny(s, ".[")
}

// Parse parses a dotted path. The empty path parses to nil.
func Parse(path string) (*Path, error) {
	if path == "" {
		return nil, nil
	}
	root := &Path{}
	if err := parseFrag(path, root, true); err != nil {
		return nil, fmt.Errorf("%w in %q: %w", ErrSyntax, path, err)
	}
	return root, nil
}

// MustParse is Parse that panics on error.
func MustParse(path string) *Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return p
}

func parseFrag(frag string, p *Path, first bool) error {
	var rest string
	switch frag[0] {
	case '.':
		if first {
			return errors.New("leading '.'")
		}
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		p.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return errors.New("expected '[' <index> ']'")
		}
		index, err := parseIndex(frag[1:i])
		if err != nil {
			return err
		}
		p.Index = &index
		rest = frag[i+1:]
		if rest != "" && rest[0] != '.' && rest[0] != '[' {
			return fmt.Errorf("unexpected %q after index", rest[0])
		}
	case ']':
		return errors.New("unbalanced ']'")
	default:
		field, r, err := parseField(frag)
		if err != nil {
			return err
		}
		p.Field = &field
		rest = r
	}
	if rest == "" {
		return nil
	}
	p.Next = &Path{}
	return parseFrag(rest, p.Next, false)
}

// parseField reads one field up to the next separator and returns the
// remainder, which is empty or starts with '.' or '['.
func parseField(s string) (string, string, error) {
	if s == "" {
		return "", "", errors.New("empty field")
	}
	if s[0] == '\'' || s[0] == '"' {
		return parseQuoted(s)
	}
	i := strings.IndexAny(s, ".[]")
	if i == -1 {
		return s, "", nil
	}
	if s[i] == ']' {
		return "", "", errors.New("unbalanced ']'")
	}
	if i == 0 {
		return "", "", errors.New("empty field")
	}
	return s[:i], s[i:], nil
}

func parseQuoted(s string) (string, string, error) {
	q := s[0]
	var buf strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			buf.WriteByte(s[i])
		case c == q:
			rest := s[i+1:]
			if rest != "" && rest[0] != '.' && rest[0] != '[' {
				return "", "", fmt.Errorf("unexpected %q after quoted field", rest[0])
			}
			return buf.String(), rest, nil
		default:
			buf.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated quote %q", q)
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

// String renders the path so that Parse(p.String()) is equal to p.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString renders only the first step of p.
func (p *Path) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.Field != nil:
		return quoteField(*p.Field)
	case p.Index != nil:
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

func quoteField(f string) string {
	if f != "" && !strings.ContainsAny(f, ".[]'\"\\") {
		return f
	}
	var buf strings.Builder
	buf.WriteByte('\'')
	for i := 0; i < len(f); i++ {
		if f[i] == '\'' || f[i] == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(f[i])
	}
	buf.WriteByte('\'')
	return buf.String()
}

// Len returns the number of steps.
func (p *Path) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Last returns the final step.
func (p *Path) Last() *Path {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Key returns the step as a mapping key or sequence index.
func (p *Path) Key() any {
	if p.Field != nil {
		return *p.Field
	}
	if p.Index != nil {
		return *p.Index
	}
	return nil
}

// Append returns a copy of p with q attached after its last step.
func (p *Path) Append(q *Path) *Path {
	if p == nil {
		return q.copy()
	}
	res := p.copy()
	res.Last().Next = q.copy()
	return res
}

func (p *Path) copy() *Path {
	if p == nil {
		return nil
	}
	res := &Path{}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	res.Next = p.Next.copy()
	return res
}
