package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/tony-format/box"
	"github.com/signadot/tony-format/box/format"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func jsonOut() *MainConfig {
	return &MainConfig{J: true}
}

func TestConvert(t *testing.T) {
	path := writeFile(t, "in.yaml", "b: 1\na: [1, 2]\n")
	var out bytes.Buffer
	require.NoError(t, runConvert(&ConvertConfig{MainConfig: jsonOut()}, nil, &out, []string{path}))
	require.Equal(t, "{\"b\":1,\"a\":[1,2]}\n", out.String())

	out.Reset()
	cfg := &ConvertConfig{MainConfig: &MainConfig{J: true, Sort: true}}
	require.NoError(t, runConvert(cfg, strings.NewReader(`{"z": null, "y": true}`), &out, []string{"-"}))
	require.Equal(t, "{\"y\":true,\"z\":null}\n", out.String())

	out.Reset()
	path = writeFile(t, "in.json", "{\"a\": 1}\n[2]\n")
	cfg = &ConvertConfig{MainConfig: &MainConfig{}, Lines: true}
	require.NoError(t, runConvert(cfg, nil, &out, []string{path}))
	require.Equal(t, "{\"a\":1}\n[2]\n", out.String())

	err := runConvert(&ConvertConfig{MainConfig: &MainConfig{}}, nil, &out, []string{writeFile(t, "in.txt", "")})
	require.ErrorIs(t, err, format.ErrBadFormat)
}

func TestGet(t *testing.T) {
	path := writeFile(t, "in.json", `{"server": {"port": 8080, "hosts": ["a", "b"]}}`)
	var out bytes.Buffer
	cfg := &GetConfig{MainConfig: jsonOut()}
	require.NoError(t, runGet(cfg, nil, &out, "server.port", []string{path}))
	require.NoError(t, runGet(cfg, nil, &out, "server.hosts", []string{path}))
	require.NoError(t, runGet(cfg, nil, &out, "server.hosts[-1]", []string{path}))
	require.Equal(t, "8080\n[\"a\",\"b\"]\nb\n", out.String())

	out.Reset()
	cfg.Expr = "v.port * 2"
	require.NoError(t, runGet(cfg, nil, &out, "server", []string{path}))
	require.Equal(t, "16160\n", out.String())

	cfg.Expr = ""
	err := runGet(cfg, nil, &out, "server.nope", []string{path})
	require.ErrorIs(t, err, box.ErrKeyNotFound)
}

func TestSet(t *testing.T) {
	path := writeFile(t, "in.json", `{"server": {"port": 8080}}`)
	var out bytes.Buffer
	cfg := &SetConfig{MainConfig: &MainConfig{}}
	require.NoError(t, runSet(cfg, nil, &out, "server.port", "9090", path))
	require.Equal(t, "{\"server\":{\"port\":9090}}\n", out.String())

	out.Reset()
	require.NoError(t, runSet(cfg, nil, &out, "server.tags", "[x, y]", path))
	require.Equal(t, "{\"server\":{\"port\":8080,\"tags\":[\"x\",\"y\"]}}\n", out.String())

	err := runSet(cfg, nil, &out, "server.port[0]", "1", path)
	require.ErrorIs(t, err, box.ErrType)
}

func TestAttrs(t *testing.T) {
	path := writeFile(t, "in.json", `{"last": 2, "first-name": 1, "9lives": 3}`)
	var out bytes.Buffer
	require.NoError(t, runAttrs(&AttrsConfig{MainConfig: &MainConfig{}}, nil, &out, path))
	require.Equal(t, "first_name\nlast\nx9lives\n", out.String())

	err := runAttrs(&AttrsConfig{MainConfig: &MainConfig{}}, nil, &out, writeFile(t, "l.json", `[1]`))
	require.Error(t, err)
}

func TestView(t *testing.T) {
	path := writeFile(t, "in.json", `{"a": 1, "sub": {"x": "s"}, "l": [1, {"k": true}], "e": [], "n": null}`)
	var out bytes.Buffer
	require.NoError(t, runView(&ViewConfig{MainConfig: &MainConfig{}}, nil, &out, []string{path}))
	want := `a: 1
sub:
  x: "s"
l:
  - 1
  -
    k: true
e: []
n: null
`
	require.Equal(t, want, out.String())
}

func TestDiff(t *testing.T) {
	a := writeFile(t, "a.json", `{"a": 1, "b": 2}`)
	b := writeFile(t, "b.yaml", "a: 1\nb: 3\n")
	var out bytes.Buffer
	differs, err := runDiff(&DiffConfig{MainConfig: &MainConfig{}}, nil, &out, a, b)
	require.NoError(t, err)
	require.True(t, differs)
	require.Equal(t, " a: 1\n-b: 2\n+b: 3\n", out.String())

	out.Reset()
	differs, err = runDiff(&DiffConfig{MainConfig: &MainConfig{}, Reverse: true}, nil, &out, a, b)
	require.NoError(t, err)
	require.True(t, differs)
	require.Equal(t, " a: 1\n-b: 3\n+b: 2\n", out.String())

	out.Reset()
	differs, err = runDiff(&DiffConfig{MainConfig: &MainConfig{}}, nil, &out, a, a)
	require.NoError(t, err)
	require.False(t, differs)
	require.Empty(t, out.String())
}

func TestPatch(t *testing.T) {
	path := writeFile(t, "in.json", `{"b": 1, "a": {"x": 1}}`)
	var out bytes.Buffer
	cfg := &PatchConfig{MainConfig: &MainConfig{}, String: true}
	require.NoError(t, runPatch(cfg, nil, &out, `[{"op": "replace", "path": "/a/x", "value": 2}]`, path))
	require.Equal(t, "{\"b\":1,\"a\":{\"x\":2}}\n", out.String())

	out.Reset()
	cfg.Merge = true
	require.NoError(t, runPatch(cfg, nil, &out, `{"b": null}`, path))
	require.Equal(t, "{\"a\":{\"x\":1}}\n", out.String())

	p := writeFile(t, "p.json", `[{"op": "remove", "path": "/b"}]`)
	out.Reset()
	require.NoError(t, runPatch(&PatchConfig{MainConfig: &MainConfig{}}, nil, &out, p, path))
	require.Equal(t, "{\"a\":{\"x\":1}}\n", out.String())

	err := runPatch(&PatchConfig{MainConfig: &MainConfig{}, String: true}, nil, &out, `[{`, path)
	require.ErrorIs(t, err, box.ErrFormat)
}
