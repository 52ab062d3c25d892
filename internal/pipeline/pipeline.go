// Package pipeline is the parallel driver (§4.5, §5): it enumerates
// source paths via internal/walk, partitions them across worker
// goroutines, and runs the per-file sequence open → read → build tree →
// extract → send to aggregator. It is grounded on core/filewalker.go's
// worker-pool/channel shape, generalized from file *discovery* to file
// *processing*: workers read discovered files from a shared job channel
// and append their extracted rows (or ErrorRecords) to one Output under a
// mutex, and every worker owns a private *sitter.Parser drawn from the
// dispatch registry, never shared.
package pipeline

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/dispatch"
	"github.com/codeatlas/codeatlas/internal/extract"
	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
	"github.com/codeatlas/codeatlas/internal/walk"
)

// Output is the aggregated result of a full run: the four record streams
// plus the error stream (§2, §3).
type Output struct {
	Files    []model.FileMetadata
	Symbols  []model.SymbolInfo
	Imports  []model.ImportInfo
	Comments []model.CommentInfo
	Errors   []model.ErrorRecord
}

// Driver runs the extraction pipeline against a root directory.
type Driver struct {
	registry *dispatch.Registry
	workers  int
}

// New returns a Driver backed by a freshly compiled dispatch registry
// (§4.1: grammars and extractors are wired once at construction). workers
// <= 0 selects runtime.NumCPU().
func New(workers int) *Driver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Driver{
		registry: dispatch.NewRegistry(),
		workers:  workers,
	}
}

// Run walks root, fans file processing out across d.workers goroutines
// reading from a shared job channel (§5), and returns the aggregated
// output. Any
// per-file error is isolated into Output.Errors; only a startup-level
// failure (an unreadable root) returns a non-nil error here.
func (d *Driver) Run(ctx context.Context, root string) (*Output, error) {
	w := walk.New()
	discovered, err := w.Walk(ctx, root)
	if err != nil {
		return nil, err
	}

	jobs := make(chan walk.Result, 1024)
	out := &Output{}
	var mu sync.Mutex

	var workersWG sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		workersWG.Add(1)
		go func() {
			defer workersWG.Done()
			d.worker(ctx, jobs, out, &mu)
		}()
	}

producer:
	for r := range discovered {
		select {
		case <-ctx.Done():
			break producer
		case jobs <- r:
		}
	}
	close(jobs)
	workersWG.Wait()

	return out, nil
}

// worker owns a per-language cache of private parsers: a worker that
// processes many files of the same language should not pay the grammar
// attach cost per file, but the parser object itself is never shared with
// another goroutine (§5's non-shareable-state constraint binds the
// *parser*, not its lifetime within one worker).
func (d *Driver) worker(ctx context.Context, jobs <-chan walk.Result, out *Output, mu *sync.Mutex) {
	parsers := map[string]*sitter.Parser{}

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			d.process(ctx, job, parsers, out, mu)
		}
	}
}

func (d *Driver) process(ctx context.Context, job walk.Result, parsers map[string]*sitter.Parser, out *Output, mu *sync.Mutex) {
	if job.Err != nil {
		recordError(out, mu, job, model.ErrorFileRead, job.Err.Error(), 0)
		return
	}

	content, err := os.ReadFile(job.AbsPath)
	if err != nil {
		recordError(out, mu, job, model.ErrorFileRead, err.Error(), 0)
		return
	}

	parser, ok := parsers[job.Language]
	if !ok {
		parser, err = d.registry.NewParser(job.Language)
		if err != nil {
			recordError(out, mu, job, model.ErrorParserCreation, err.Error(), uint64(len(content)))
			return
		}
		parsers[job.Language] = parser
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		recordError(out, mu, job, model.ErrorParseFailure, err.Error(), uint64(len(content)))
		return
	}
	if isErrorTree(tree, len(content)) {
		recordError(out, mu, job, model.ErrorParseFailure, "syntax tree does not cover the file", uint64(len(content)))
		return
	}

	extractor, err := extract.For(job.Language)
	if err != nil {
		recordError(out, mu, job, model.ErrorParserCreation, err.Error(), uint64(len(content)))
		return
	}

	result, err := extractor.Extract(tree, content, job.Path)
	if err != nil {
		recordError(out, mu, job, model.ErrorParseFailure, err.Error(), uint64(len(content)))
		return
	}

	file := model.FileMetadata{
		Path: job.Path, Name: job.Name, Extension: job.Extension,
		Language: job.Language, SizeBytes: uint64(len(content)),
		LineCount: uint64(strings.Count(string(content), "\n")),
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		file.LineCount++
	}

	mu.Lock()
	out.Files = append(out.Files, file)
	out.Symbols = append(out.Symbols, result.Symbols...)
	out.Imports = append(out.Imports, result.Imports...)
	out.Comments = append(out.Comments, result.Comments...)
	mu.Unlock()
}

// isErrorTree mirrors internal/extract's own check (kept independent
// since the pipeline, not the extractor, is what decides whether a file's
// interior is indexed at all, per §4.5).
func isErrorTree(tree *sitter.Tree, srcLen int) bool {
	root := tree.RootNode()
	if root == nil || root.Type() == "ERROR" {
		return true
	}
	return int(root.EndByte()) != srcLen
}

func recordError(out *Output, mu *sync.Mutex, job walk.Result, errType, msg string, size uint64) {
	lang := job.Language
	if lang == "" {
		lang, _ = langreg.LookupExtension(job.Extension)
	}
	rec := model.ErrorRecord{
		FilePath: job.Path, FileName: job.Name, Extension: job.Extension,
		Language: lang, ErrorType: errType, ErrorMessage: msg, SizeBytes: size,
	}
	mu.Lock()
	out.Errors = append(out.Errors, rec)
	mu.Unlock()
}
