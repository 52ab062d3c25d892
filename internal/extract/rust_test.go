package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

// TestRustVisibilityAndMethods covers Scenario D: pub/non-pub top-level
// functions, a struct, and impl methods (which must be tagged "method",
// not "function").
func TestRustVisibilityAndMethods(t *testing.T) {
	src := `
use std::collections::HashMap;
use crate::util::helper as h;

pub struct Widget {
	id: u32,
}

impl Widget {
	pub fn new() -> Widget {
		Widget { id: 0 }
	}

	fn internal_id(&self) -> u32 {
		self.id
	}
}

pub fn public_fn() {}
fn private_fn() {}
`
	tree := parseSource(t, langreg.Rust, src)
	res, err := rustExtractor{}.Extract(tree, []byte(src), "lib.rs")
	require.NoError(t, err)

	idx, ok := findSymbol(res, "Widget")
	require.True(t, ok)
	assert.Equal(t, model.KindStruct, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "new")
	require.True(t, ok)
	assert.Equal(t, model.KindMethod, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "internal_id")
	require.True(t, ok)
	assert.Equal(t, model.KindMethod, res.Symbols[idx].Kind)
	assert.False(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "public_fn")
	require.True(t, ok)
	assert.Equal(t, model.KindFunction, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "private_fn")
	require.True(t, ok)
	assert.False(t, res.Symbols[idx].IsExported)

	byImported := map[string]model.ImportInfo{}
	for _, imp := range res.Imports {
		byImported[imp.ImportedName] = imp
	}
	require.Contains(t, byImported, "HashMap")
	assert.True(t, byImported["HashMap"].IsExternal)
	require.Contains(t, byImported, "helper")
	assert.Equal(t, "h", byImported["helper"].LocalName)
	assert.False(t, byImported["helper"].IsExternal, "crate:: paths are intra-module")
}
