package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/model"
	"github.com/codeatlas/codeatlas/internal/pipeline"
)

func multiFileOutput() *pipeline.Output {
	return &pipeline.Output{
		Files: []model.FileMetadata{
			{Path: "src/a/main.go", Name: "main.go", Extension: "go", Language: "go"},
			{Path: "src/a/util.go", Name: "util.go", Extension: "go", Language: "go"},
			{Path: "src/b/lib.py", Name: "lib.py", Extension: "py", Language: "python"},
		},
		Symbols: []model.SymbolInfo{
			{Name: "Helper", Kind: model.KindFunction, FilePath: "src/a/util.go", IsExported: true},
		},
		Imports: []model.ImportInfo{
			{SourceFile: "src/a/main.go", ModuleSpecifier: "src/a/util", ImportedName: "Helper", Kind: model.ImportImport, IsExternal: false},
		},
	}
}

func TestBuildOverviewLanguageCounts(t *testing.T) {
	e := openFixture(t, multiFileOutput())
	ov, err := e.BuildOverview(0)
	require.NoError(t, err)

	byLang := map[string]int64{}
	for _, lc := range ov.LanguageCounts {
		byLang[lc.Language] = lc.Files
	}
	assert.Equal(t, int64(2), byLang["go"])
	assert.Equal(t, int64(1), byLang["python"])
}

func TestBuildOverviewSkipsImportPanelsWhenNoImports(t *testing.T) {
	out := multiFileOutput()
	out.Imports = nil
	e := openFixture(t, out)

	ov, err := e.BuildOverview(0)
	require.NoError(t, err)
	assert.Empty(t, ov.TopSymbols)
	assert.Empty(t, ov.HubFiles)
	assert.Empty(t, ov.ImportKinds)
	// the directory panel has no import dependency, so it still populates.
	assert.NotEmpty(t, ov.Directories)
}

func TestBuildOverviewDirectoryTreeRespectsMaxDepth(t *testing.T) {
	e := openFixture(t, multiFileOutput())

	ov, err := e.BuildOverview(1)
	require.NoError(t, err)

	for _, d := range ov.Directories {
		assert.NotContains(t, d.Directory, "/", "depth 1 should truncate to the first path segment")
	}
}

func TestBuildOverviewDirectoryTreeUnboundedAtZero(t *testing.T) {
	e := openFixture(t, multiFileOutput())

	ov, err := e.BuildOverview(0)
	require.NoError(t, err)

	var sawMultiSegment bool
	for _, d := range ov.Directories {
		if strings.Contains(d.Directory, "/") {
			sawMultiSegment = true
		}
	}
	assert.True(t, sawMultiSegment, "unbounded depth should not truncate multi-segment paths")
}
