package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objtree/backend"
	"objtree/primitive"
)

const sampleText = `{root [TypeName:Simple Version:0]
	{Items [ElementCount:2 ElementType:int32 Element0:1 Element1:2]}
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.tree")
	require.NoError(t, os.WriteFile(path, []byte(sampleText), 0o600))

	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "objtree v"+Version+"\n", out)
}

func TestConvert(t *testing.T) {
	input := writeSample(t)
	output := filepath.Join(t.TempDir(), "sample.json")

	_, err := run(t, "convert", "--to", "json", input, output)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	b := backend.NewJSON()
	require.NoError(t, b.Read(f))

	root := b.Tree()
	assert.Equal(t, "root", root.Name())
	assert.Equal(t, primitive.Raw("Simple"), root.Attribute("TypeName").Value)
	assert.Equal(t, "2", root.Child("Items").Attribute("Element1").Value.Text())
}

func TestConvertToStdout(t *testing.T) {
	out, err := run(t, "convert", writeSample(t))
	require.NoError(t, err)
	assert.Equal(t, sampleText, out)
}

func TestConvertFromEnvironment(t *testing.T) {
	t.Setenv("OBJTREE_BACKEND_OUTPUT", "yaml")

	out, err := run(t, "convert", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "name: root")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "objtree.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("backend:\n  output: msgpack\ninspect:\n  max_depth: 1\n"), 0o600))

	out, err := run(t, "--config", cfg, "inspect", writeSample(t))
	require.NoError(t, err)
	assert.Equal(t, "root TypeName=Simple Version=0\n"+
		"  Items ElementCount=2 ElementType=int32 Element0=1 Element1=2\n"+
		"nodes: 2\n", out)

	out, err = run(t, "--config", cfg, "inspect", "--max-depth", "0", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "nodes: 2")
}

func TestInspectFolds(t *testing.T) {
	out, err := run(t, "inspect", "--max-depth", "0", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "  Items ElementCount=2")

	var buf bytes.Buffer
	b := backend.NewText()
	require.NoError(t, b.Read(bytes.NewBufferString(sampleText)))
	outline(&buf, b.Tree(), 0)
	assert.Equal(t, out, buf.String())

	buf.Reset()
	require.NoError(t, b.Read(bytes.NewBufferString("{a {b {c}}}")))
	outline(&buf, b.Tree(), 1)
	assert.Equal(t, "a\n  b\n    ... 1 more\nnodes: 3\n", buf.String())
}

func TestInspectDump(t *testing.T) {
	out, err := run(t, "inspect", "--dump", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Name: (string) (len=5) \"Items\"")
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := run(t, "convert", "--from", "xml", writeSample(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
}
