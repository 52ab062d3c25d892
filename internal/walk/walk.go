// Package walk implements the file-enumeration interface the pipeline
// consumes (§6): an iterator of absolute file paths under a caller-supplied
// root, filtered by the language registry's extension set and by common
// ignore semantics (version-control ignore files, build-output
// directories). It is grounded on core/filewalker.go's worker-pool/channel
// shape, generalized from that walker's ad hoc include/exclude glob lists
// to gitignore-pattern matching via go-git's gitignore package (see
// DESIGN.md for why that dependency was chosen).
package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/codeatlas/codeatlas/internal/langreg"
)

// Result is one discovered source file.
type Result struct {
	Path      string // relative to root, forward slashes (§3: FileMetadata.path)
	AbsPath   string
	Name      string
	Extension string
	Language  string
	Info      fs.FileInfo
	Err       error
}

// alwaysSkipDirs are pruned unconditionally, independent of .gitignore
// content, matching what every real checkout accumulates as build noise.
var alwaysSkipDirs = map[string]bool{
	".git": true, ".hg": true, ".svn": true,
	"node_modules": true, "vendor": true,
	"dist": true, "build": true, "target": true,
	".venv": true, "__pycache__": true,
}

// Walker enumerates a directory tree in parallel.
type Walker struct {
	workers int
}

// New returns a Walker sized to the available cores, scaled up for the
// I/O-bound nature of stat()-ing many small files, mirroring
// core/filewalker.go's NewFileWalker sizing rationale.
func New() *Walker {
	return &Walker{workers: runtime.NumCPU() * 2}
}

// Walk streams every file under root whose extension is registered in
// internal/langreg, honoring .gitignore files encountered along the way
// and the always-skip directory set above. The returned channel closes
// once traversal and stat()-ing are both complete.
func (w *Walker) Walk(ctx context.Context, root string) (<-chan Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "walk", Path: absRoot, Err: fs.ErrInvalid}
	}

	paths := make(chan string, 1024)
	results := make(chan Result, 1024)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go w.worker(ctx, absRoot, paths, results, &wg)
	}

	go func() {
		defer close(paths)
		scan(ctx, absRoot, absRoot, nil, paths)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

func (w *Walker) worker(ctx context.Context, root string, paths <-chan string, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-paths:
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case results <- build(root, p):
			}
		}
	}
}

func build(root, absPath string) Result {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)
	ext := strings.TrimPrefix(filepath.Ext(absPath), ".")
	lang, _ := langreg.LookupExtension(ext)
	base := Result{
		Path: rel, AbsPath: absPath, Name: filepath.Base(absPath),
		Extension: ext, Language: lang,
	}

	info, err := os.Stat(absPath)
	if err != nil {
		base.Err = err
		return base
	}
	base.Info = info
	return base
}

// scan recurses depth-first, accumulating gitignore matchers the way a
// real VCS-aware tool does: patterns from a directory's own .gitignore
// apply to it and every descendant, in addition to whatever its ancestors
// already contributed.
func scan(ctx context.Context, root, dir string, inherited []gitignore.Pattern, paths chan<- string) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	patterns := inherited
	if ps, err := readGitignore(dir); err == nil && len(ps) > 0 {
		patterns = append(append([]gitignore.Pattern{}, inherited...), ps...)
	}
	matcher := gitignore.NewMatcher(patterns)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		full := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(root, full)
		if err != nil {
			continue
		}
		relParts := strings.Split(filepath.ToSlash(rel), "/")

		if entry.IsDir() {
			if alwaysSkipDirs[entry.Name()] {
				continue
			}
			if matcher.Match(relParts, true) {
				continue
			}
			scan(ctx, root, full, patterns, paths)
			continue
		}

		if matcher.Match(relParts, false) {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(full), ".")
		if _, ok := langreg.LookupExtension(ext); !ok {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case paths <- full:
		}
	}
}

func readGitignore(dir string) ([]gitignore.Pattern, error) {
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil, err
	}
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns, nil
}
