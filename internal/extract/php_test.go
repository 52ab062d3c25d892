package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

func TestPHPVisibility(t *testing.T) {
	src := `<?php

use App\Services\Mailer;
use App\Contracts\MailerInterface as Contract;

function helper() {}

class Box {
	public function size() { return 1; }
	private function hidden() { return 0; }
}
`
	tree := parseSource(t, langreg.PHP, src)
	res, err := phpExtractor{}.Extract(tree, []byte(src), "Box.php")
	require.NoError(t, err)

	idx, ok := findSymbol(res, "helper")
	require.True(t, ok)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "Box")
	require.True(t, ok)
	assert.Equal(t, model.KindClass, res.Symbols[idx].Kind)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "size")
	require.True(t, ok)
	assert.True(t, res.Symbols[idx].IsExported)

	idx, ok = findSymbol(res, "hidden")
	require.True(t, ok)
	assert.False(t, res.Symbols[idx].IsExported)

	byImported := map[string]model.ImportInfo{}
	for _, imp := range res.Imports {
		byImported[imp.ImportedName] = imp
	}
	require.Contains(t, byImported, "Mailer")
	require.Contains(t, byImported, "MailerInterface")
	assert.Equal(t, "Contract", byImported["MailerInterface"].LocalName)
}
