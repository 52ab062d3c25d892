package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/model"
	"github.com/codeatlas/codeatlas/internal/pipeline"
)

func openFixture(t *testing.T, out *pipeline.Output) *Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Write(dir, out))
	e, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestOpenLoadsRequiredTables(t *testing.T) {
	e := openFixture(t, sampleOutput())
	assert.True(t, e.HasTable("files"))
	assert.True(t, e.HasTable("symbols"))
	assert.True(t, e.HasTable("errors"))
}

func TestErrorsTableIsQueryable(t *testing.T) {
	e := openFixture(t, sampleOutput())

	var errorType string
	require.NoError(t, e.DB.Raw(`SELECT error_type FROM errors WHERE file_path = 'bad.go'`).Scan(&errorType).Error)
	assert.Equal(t, model.ErrorParseFailure, errorType)
}

func TestOpenRegistersImportsViewWhenPresent(t *testing.T) {
	e := openFixture(t, sampleOutput())
	require.True(t, e.HasTable("imports"))

	var isExternal string
	require.NoError(t, e.DB.Raw(`SELECT is_external FROM imports WHERE module_specifier = 'fmt'`).Scan(&isExternal).Error)
	assert.Equal(t, "true", isExternal)
}

func TestOpenOmitsImportsViewWhenDatasetHasNoImports(t *testing.T) {
	out := sampleOutput()
	out.Imports = nil
	e := openFixture(t, out)
	assert.False(t, e.HasTable("imports"))
}

func TestRegisterImportsViewCompatibilityShimDefaultsGoToExternal(t *testing.T) {
	// Simulate a pre-manifest dataset: write imports_raw without an
	// is_external column and let registerImportsView derive it.
	dir := t.TempDir()
	out := &pipeline.Output{
		Files: []model.FileMetadata{
			{Path: "main.go", Name: "main.go", Extension: "go", Language: "go"},
		},
		Symbols: []model.SymbolInfo{},
		Imports: []model.ImportInfo{
			{SourceFile: "main.go", ModuleSpecifier: "fmt", ImportedName: "fmt", Kind: model.ImportImport, Line: 1},
		},
	}
	require.NoError(t, Write(dir, out))

	// writer.go always writes an is_external column, so to exercise the
	// legacy shim branch we rewrite imports.csv without it and remove the
	// manifest, mimicking a dataset predating is_external entirely.
	legacyCSV := "source_file,module_specifier,imported_name,local_name,kind,is_type_only,line\n" +
		"main.go,fmt,fmt,,import,false,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, importsFile), []byte(legacyCSV), 0o644))
	require.NoError(t, os.Remove(filepath.Join(dir, manifestFile)))

	e, err := Open(dir)
	require.NoError(t, err)
	defer e.Close()

	var isExternal string
	require.NoError(t, e.DB.Raw(`SELECT is_external FROM imports WHERE module_specifier = 'fmt'`).Scan(&isExternal).Error)
	assert.Equal(t, "1", isExternal, "go imports fall into the ELSE branch and must default external")
}

func TestHasTableReturnsFalseForUnknownName(t *testing.T) {
	e := openFixture(t, sampleOutput())
	assert.False(t, e.HasTable("does_not_exist"))
}
