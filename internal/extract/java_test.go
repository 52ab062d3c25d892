package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

func TestJavaPublicModifier(t *testing.T) {
	src := `
package widgets;

import java.util.List;
import static java.lang.Math.max;

public class Box {
	public int size() { return 1; }
	private int hidden() { return 0; }
}
`
	tree := parseSource(t, langreg.Java, src)
	res, err := javaExtractor{}.Extract(tree, []byte(src), "Box.java")
	require.NoError(t, err)

	idx, ok := findSymbol(res, "Box")
	require.True(t, ok)
	assert.Equal(t, model.KindClass, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "size")
	require.True(t, ok)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "hidden")
	require.True(t, ok)
	assert.False(t, res.Symbols[idx].IsExported)

	byModule := map[string]model.ImportInfo{}
	for _, imp := range res.Imports {
		byModule[imp.ModuleSpecifier] = imp
	}
	require.Contains(t, byModule, "java.util.List")
	assert.Equal(t, "List", byModule["java.util.List"].ImportedName)

	require.Contains(t, byModule, "java.lang.Math.max")
	assert.Equal(t, model.ImportStatic, byModule["java.lang.Math.max"].Kind)
}
