// Package dispatch is the seam between the parallel driver and the
// per-language extractors (§4.1). It owns the one thing that must be
// shared, read-only, across every worker goroutine: the compiled
// tree-sitter grammars themselves. Everything else about a parse (the
// *sitter.Parser, the *sitter.Tree) is worker-private and never touches
// this package. Extractors walk each parsed tree directly with a
// recursive switch over node types rather than compiled pattern queries;
// a grammar, once compiled, needs no further shared state.
package dispatch

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/codeatlas/codeatlas/internal/langreg"
)

// grammarFuncs maps a canonical language tag to its tree-sitter grammar
// constructor. typescript.GetLanguage covers both the TypeScript and
// JavaScript extension set (§4.1): the TSX/JS-flavored syntax is close
// enough to the TypeScript grammar's superset that a single grammar
// serves the whole family, the same simplification the teacher's own
// typescript provider makes for ".ts"/".tsx"/".d.ts" files.
var grammarFuncs = map[string]func() *sitter.Language{
	langreg.Go:         golang.GetLanguage,
	langreg.Python:     python.GetLanguage,
	langreg.TypeScript: typescript.GetLanguage,
	langreg.C:          c.GetLanguage,
	langreg.CPP:        cpp.GetLanguage,
	langreg.CSharp:     csharp.GetLanguage,
	langreg.Rust:       rust.GetLanguage,
	langreg.Java:       java.GetLanguage,
	langreg.PHP:        php.GetLanguage,
}

// Registry holds one compiled *sitter.Language per canonical language tag.
// A compiled grammar is immutable and safe for concurrent read-only use by
// many workers, so once NewRegistry returns, no further synchronization is
// needed to hand grammars out.
type Registry struct {
	languages map[string]*sitter.Language
}

// NewRegistry compiles every known grammar once. Grammar construction
// panics inside the tree-sitter C bindings on a malformed grammar table,
// which can only happen if the bundled grammar is corrupt, not from any
// runtime input, so a single eager pass at startup is preferable to
// lazily discovering a broken grammar mid-run.
func NewRegistry() *Registry {
	r := &Registry{
		languages: make(map[string]*sitter.Language, len(grammarFuncs)),
	}
	for id, fn := range grammarFuncs {
		r.languages[id] = fn()
	}
	return r
}

// Language returns the compiled grammar for a canonical language tag.
func (r *Registry) Language(id string) (*sitter.Language, error) {
	lang, ok := r.languages[id]
	if !ok {
		return nil, fmt.Errorf("dispatch: no grammar registered for language %q", id)
	}
	return lang, nil
}

// NewParser returns a fresh, worker-private parser for a language. Each
// worker must own its own parser instance (§5): a *sitter.Parser carries
// mutable state and must never be touched by more than one goroutine
// concurrently.
func (r *Registry) NewParser(id string) (*sitter.Parser, error) {
	lang, err := r.Language(id)
	if err != nil {
		return nil, err
	}
	p := sitter.NewParser()
	p.SetLanguage(lang)
	return p, nil
}
