package codec

type EncodeOption func(*encState)

type encState struct {
	indent int
	lines  bool
	sorted bool
}

// Indent sets the per-level indentation of JSON and YAML output. Zero
// means compact JSON and the YAML encoder's default.
func Indent(n int) EncodeOption {
	return func(es *encState) { es.indent = n }
}

// EncodeLines writes a list as JSON lines, one compact value per line.
func EncodeLines(v bool) EncodeOption {
	return func(es *encState) { es.lines = v }
}

// SortKeys orders mapping keys by their text form.
func SortKeys(v bool) EncodeOption {
	return func(es *encState) { es.sorted = v }
}

func encodeOpts(opts []EncodeOption) *encState {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

type DecodeOption func(*decState)

type decState struct {
	lines bool
}

// DecodeLines reads JSON lines into a list. Blank lines and lines
// starting with '#' are skipped.
func DecodeLines(v bool) DecodeOption {
	return func(ds *decState) { ds.lines = v }
}

func decodeOpts(opts []DecodeOption) *decState {
	ds := &decState{}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}
