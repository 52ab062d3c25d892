package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

func TestCSharpPublicModifier(t *testing.T) {
	src := `
using System;
using System.Collections.Generic;

namespace Widgets {
	public class Box {
		public int Size() { return 1; }
		private int Hidden() { return 0; }
	}
}
`
	tree := parseSource(t, langreg.CSharp, src)
	res, err := csharpExtractor{}.Extract(tree, []byte(src), "box.cs")
	require.NoError(t, err)

	idx, ok := findSymbol(res, "Widgets")
	require.True(t, ok)
	assert.Equal(t, model.KindNamespace, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported, "namespaces are always exported")

	idx, ok = findSymbol(res, "Box")
	require.True(t, ok)
	assert.Equal(t, model.KindClass, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "Size")
	require.True(t, ok)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "Hidden")
	require.True(t, ok)
	assert.False(t, res.Symbols[idx].IsExported)

	require.Len(t, res.Imports, 2)
	for _, imp := range res.Imports {
		assert.True(t, imp.IsExternal)
	}
}

func TestCSharpInternalModifierIsExported(t *testing.T) {
	src := `
namespace Widgets {
	internal class Box {
		internal int Size() { return 1; }
	}
}
`
	tree := parseSource(t, langreg.CSharp, src)
	res, err := csharpExtractor{}.Extract(tree, []byte(src), "box.cs")
	require.NoError(t, err)

	idx, ok := findSymbol(res, "Box")
	require.True(t, ok)
	assert.True(t, res.Symbols[idx].IsExported, "internal visibility counts as exported per §4.2")

	idx, ok = findSymbol(res, "Size")
	require.True(t, ok)
	assert.True(t, res.Symbols[idx].IsExported)
}
