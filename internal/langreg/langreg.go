// Package langreg maps file extensions to the nine canonical language tags
// the extraction pipeline understands, and back again.
package langreg

import (
	"strings"
	"sync"
)

// Canonical language tags.
const (
	Go         = "go"
	Python     = "python"
	TypeScript = "typescript"
	C          = "c"
	CPP        = "cpp"
	CSharp     = "csharp"
	Rust       = "rust"
	Java       = "java"
	PHP        = "php"
)

// Info describes one registered language: its canonical tag and every
// extension (without a leading dot, lowercased) that maps to it.
type Info struct {
	ID         string
	Extensions []string
}

var (
	mu        sync.RWMutex
	byID      = map[string]Info{}
	byExt     = map[string]string{}
	idOrder   []string
)

func register(id string, exts ...string) {
	mu.Lock()
	defer mu.Unlock()

	normalized := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(e, "."))
		if e == "" {
			continue
		}
		normalized = append(normalized, e)
		byExt[e] = id
	}
	if _, exists := byID[id]; !exists {
		idOrder = append(idOrder, id)
	}
	byID[id] = Info{ID: id, Extensions: normalized}
}

func init() {
	// The TypeScript family covers both TypeScript and JavaScript source,
	// matching the single "typescript" extractor module that handles all
	// six extensions per §4.1.
	register(TypeScript, "ts", "tsx", "js", "jsx", "mjs", "cjs")
	register(C, "c", "h")
	register(CPP, "cpp", "cc", "cxx", "hpp", "hxx", "hh")
	register(CSharp, "cs")
	register(Rust, "rs")
	register(Python, "py", "pyi")
	register(Go, "go")
	register(Java, "java")
	register(PHP, "php", "phtml")
}

// LookupExtension returns the canonical language tag for a file extension
// (with or without a leading dot), and whether it is registered at all.
func LookupExtension(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	mu.RLock()
	defer mu.RUnlock()
	id, ok := byExt[ext]
	return id, ok
}

// Extensions returns every extension registered for a language tag, in no
// particular order. Used at discovery time to filter the walk (§6).
func Extensions(id string) []string {
	mu.RLock()
	defer mu.RUnlock()
	info, ok := byID[id]
	if !ok {
		return nil
	}
	out := make([]string, len(info.Extensions))
	copy(out, info.Extensions)
	return out
}

// Languages returns every registered language, ordered by first
// registration.
func Languages() []Info {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Info, 0, len(idOrder))
	for _, id := range idOrder {
		out = append(out, byID[id])
	}
	return out
}
