package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/model"
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

func TestRunExtractsAcrossLanguages(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go": "package main\n\nfunc Hello() {}\n",
		"lib.py":  "def greet():\n    pass\n",
	})

	d := New(2)
	out, err := d.Run(context.Background(), root)
	require.NoError(t, err)

	assert.Len(t, out.Errors, 0)
	assert.Len(t, out.Files, 2)

	names := map[string]bool{}
	for _, s := range out.Symbols {
		names[s.Name] = true
	}
	assert.True(t, names["Hello"])
	assert.True(t, names["greet"])
}

func TestRunRecordsParseFailureWithoutAbortingOtherFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good.go": "package main\n\nfunc Ok() {}\n",
		"bad.go":  "@@@ not valid go source at all ???\n",
	})

	d := New(1)
	out, err := d.Run(context.Background(), root)
	require.NoError(t, err)

	var sawError bool
	for _, e := range out.Errors {
		if e.FilePath == "bad.go" {
			sawError = true
			assert.Equal(t, model.ErrorParseFailure, e.ErrorType)
		}
	}
	assert.True(t, sawError, "expected bad.go to produce a parse_failure error row")

	var sawGood bool
	for _, f := range out.Files {
		if f.Path == "good.go" {
			sawGood = true
		}
	}
	assert.True(t, sawGood, "good.go should still be indexed")
}

func TestRunOnUnreadableRootReturnsError(t *testing.T) {
	d := New(1)
	_, err := d.Run(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

// A cancelled context must make Run return promptly instead of the
// producer blocking forever on a jobs channel nobody is draining.
func TestRunReturnsPromptlyOnCancelledContext(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go": "package main\n\nfunc A() {}\n",
		"b.go": "package main\n\nfunc B() {}\n",
		"c.go": "package main\n\nfunc C() {}\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(1)
	done := make(chan struct{})
	go func() {
		_, _ = d.Run(ctx, root)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation; producer likely deadlocked")
	}
}
