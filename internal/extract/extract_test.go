package extract

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/dispatch"
)

// parseSource compiles src with the named language's grammar and returns
// its syntax tree, failing the test on any parser error.
func parseSource(t *testing.T, language string, src string) *sitter.Tree {
	t.Helper()
	reg := dispatch.NewRegistry()
	parser, err := reg.NewParser(language)
	require.NoError(t, err)

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	require.NotEqual(t, "ERROR", tree.RootNode().Type(), "source failed to parse cleanly")
	return tree
}

func symbolNames(res Result) []string {
	names := make([]string, len(res.Symbols))
	for i, s := range res.Symbols {
		names[i] = s.Name
	}
	return names
}

func findSymbol(res Result, name string) (int, bool) {
	for i, s := range res.Symbols {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}
