package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/model"
	"github.com/codeatlas/codeatlas/internal/pipeline"
)

func sampleOutput() *pipeline.Output {
	return &pipeline.Output{
		Files: []model.FileMetadata{
			{Path: "main.go", Name: "main.go", Extension: "go", Language: "go", SizeBytes: 42, LineCount: 3},
		},
		Symbols: []model.SymbolInfo{
			{Name: "Hello", Kind: model.KindFunction, FilePath: "main.go", StartLine: 2, IsExported: true},
		},
		Imports: []model.ImportInfo{
			{SourceFile: "main.go", ModuleSpecifier: "fmt", ImportedName: "fmt", Kind: model.ImportImport, Line: 1, IsExternal: true},
		},
		Errors: []model.ErrorRecord{
			{FilePath: "bad.go", FileName: "bad.go", Extension: "go", Language: "go", ErrorType: model.ErrorParseFailure, ErrorMessage: "boom"},
		},
	}
}

func TestWriteProducesOneFilePerNonEmptyStream(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, sampleOutput()))

	for _, want := range []string{filesFile, symbolsFile, importsFile, errorsFile, manifestFile} {
		_, err := os.Stat(filepath.Join(dir, want))
		assert.NoError(t, err, "expected %s to exist", want)
	}

	// comments stream was empty, so no comments.csv should be written.
	_, err := os.Stat(filepath.Join(dir, commentsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteManifestRecordsColumnsPerTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, sampleOutput()))

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, schemaVersion, m.Version)
	assert.Contains(t, m.Columns["files"], "path")
	assert.Contains(t, m.Columns["symbols"], "is_exported")
	assert.Contains(t, m.Columns["imports"], "is_external")
	assert.NotContains(t, m.Columns, "comments")
}

func TestWriteOmitsImportsFileWhenStreamEmpty(t *testing.T) {
	dir := t.TempDir()
	out := sampleOutput()
	out.Imports = nil
	require.NoError(t, Write(dir, out))

	_, err := os.Stat(filepath.Join(dir, importsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, sampleOutput()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
