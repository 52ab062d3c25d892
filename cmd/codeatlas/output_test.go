package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRowsTabular(t *testing.T) {
	var buf bytes.Buffer
	err := renderRows(&buf, "tabular", []string{"NAME", "KIND"}, [][]string{{"Hello", "function"}})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Hello")
}

func TestRenderRowsDefaultsToTabular(t *testing.T) {
	var buf bytes.Buffer
	err := renderRows(&buf, "", []string{"NAME"}, [][]string{{"Hello"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hello")
}

func TestRenderRowsRecord(t *testing.T) {
	var buf bytes.Buffer
	err := renderRows(&buf, "record", []string{"name", "kind"}, [][]string{
		{"Hello", "function"},
		{"World", "variable"},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "name: Hello")
	assert.Contains(t, out, "kind: function")
	assert.Contains(t, out, "name: World")
}

func TestRenderRowsDelimited(t *testing.T) {
	var buf bytes.Buffer
	err := renderRows(&buf, "delimited", []string{"name", "kind"}, [][]string{{"Hello", "function"}})
	require.NoError(t, err)
	assert.Equal(t, "name,kind\nHello,function\n", buf.String())
}

func TestRenderRowsUnknownFormatErrors(t *testing.T) {
	var buf bytes.Buffer
	err := renderRows(&buf, "xml", nil, nil)
	assert.Error(t, err)
}

func TestNewRootCommandWiresEverySubcommand(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "codeatlas", root.Use)

	want := []string{
		"parse", "overview", "search", "outline", "files", "read",
		"deps", "dependents", "callers", "imports", "comments", "errors", "query",
	}
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, w := range want {
		assert.True(t, names[w], "expected subcommand %q to be registered", w)
	}
}
