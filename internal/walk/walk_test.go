package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func collect(t *testing.T, root string) []Result {
	t.Helper()
	w := New()
	ch, err := w.Walk(context.Background(), root)
	require.NoError(t, err)
	var out []Result
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestWalkFiltersByRegisteredExtension(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":   "package main\n",
		"README.md": "not source\n",
		"lib.py":    "x = 1\n",
		"notes.txt": "plain text\n",
	})

	results := collect(t, root)
	byPath := map[string]Result{}
	for _, r := range results {
		byPath[r.Path] = r
	}

	assert.Contains(t, byPath, "main.go")
	assert.Contains(t, byPath, "lib.py")
	assert.NotContains(t, byPath, "README.md")
	assert.NotContains(t, byPath, "notes.txt")
}

func TestWalkSkipsAlwaysSkipDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app.go":               "package app\n",
		"node_modules/dep/index.js": "module.exports = {};\n",
		"vendor/pkg/vendor.go":     "package pkg\n",
		".git/HEAD":                "ref: refs/heads/main\n",
	})

	results := collect(t, root)
	for _, r := range results {
		assert.NotContains(t, r.Path, "node_modules")
		assert.NotContains(t, r.Path, "vendor/")
		assert.NotContains(t, r.Path, ".git")
	}
	found := false
	for _, r := range results {
		if r.Path == "src/app.go" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWalkHonorsGitignore(t *testing.T) {
	root := writeTree(t, map[string]string{
		".gitignore":        "ignored/\n*.generated.go\n",
		"keep.go":           "package main\n",
		"ignored/skip.go":   "package ignored\n",
		"thing.generated.go": "package main\n",
	})

	results := collect(t, root)
	byPath := map[string]bool{}
	for _, r := range results {
		byPath[r.Path] = true
	}

	assert.True(t, byPath["keep.go"])
	assert.False(t, byPath["ignored/skip.go"])
	assert.False(t, byPath["thing.generated.go"])
}

func TestWalkRejectsNonDirectoryRoot(t *testing.T) {
	root := writeTree(t, map[string]string{"only.go": "package main\n"})
	w := New()
	_, err := w.Walk(context.Background(), filepath.Join(root, "only.go"))
	assert.Error(t, err)
}

func TestBuildPopulatesPathEvenOnStatError(t *testing.T) {
	root := writeTree(t, map[string]string{"present.go": "package main\n"})
	missing := filepath.Join(root, "gone.go")

	r := build(root, missing)
	assert.Equal(t, "gone.go", r.Path)
	assert.Equal(t, "gone.go", r.Name)
	assert.Equal(t, "go", r.Extension)
	assert.Error(t, r.Err)
}
