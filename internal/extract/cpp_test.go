package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

func TestCPPAccessSpecifiers(t *testing.T) {
	src := `
#include <vector>

namespace widgets {

class Box {
public:
	Box() {}
	int size() { return width; }

private:
	int width;
};

}
`
	tree := parseSource(t, langreg.CPP, src)
	res, err := cppExtractor{}.Extract(tree, []byte(src), "box.cpp")
	require.NoError(t, err)

	idx, ok := findSymbol(res, "Box")
	require.True(t, ok)
	assert.Equal(t, model.KindClass, res.Symbols[idx].Kind)

	idx, ok = findSymbol(res, "widgets")
	require.True(t, ok)
	assert.Equal(t, model.KindNamespace, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "size")
	require.True(t, ok)
	assert.Equal(t, model.KindMethod, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	require.Len(t, res.Imports, 1)
	assert.True(t, res.Imports[0].IsExternal)
}
