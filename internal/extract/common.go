// Package extract holds one module per language family (§2.3, §4.2-§4.4).
// Each module implements the uniform entry point
//
//	Extract(tree *sitter.Tree, source []byte, path string) (Result, error)
//
// and encodes that language's own visibility, import-classification, and
// comment-association rules. Nothing here is shared mutable state: every
// call receives its own tree and its own worker-owned parser product, so
// two workers can run two language extractors concurrently without any
// locking inside this package (§5).
package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// Result is the three-stream output of a single file's extraction.
type Result struct {
	Symbols  []model.SymbolInfo
	Imports  []model.ImportInfo
	Comments []model.CommentInfo
}

// Extractor is implemented once per language family and registered in
// the byLanguage table looked up by For (see registry.go).
type Extractor interface {
	Extract(tree *sitter.Tree, source []byte, path string) (Result, error)
}

// defInfo records what a definition node resolved to, keyed later by
// start byte so comment association can look a sibling node up.
type defInfo struct {
	name string
	kind string
}

// nodeText slices the raw source bytes spanned by a node.
func nodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if int(end) > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}

// span converts a node's tree-sitter point geometry (zero-based row and
// column, as tree-sitter always reports them) into the zero-based
// line/column quadruple SymbolInfo and CommentInfo carry (§3).
func span(n *sitter.Node) (startLine, startCol, endLine, endCol uint64) {
	sp, ep := n.StartPoint(), n.EndPoint()
	return uint64(sp.Row), uint64(sp.Column), uint64(ep.Row), uint64(ep.Column)
}

// classifyCommentText applies the leading-delimiter rule of §4.4,
// extended with Rust's `///`/`//!`/`/*!` doc-comment delimiters (Rust has
// no docstring form, so its documentation marker is purely lexical).
func classifyCommentText(raw string) string {
	switch {
	case strings.HasPrefix(raw, "/**"), strings.HasPrefix(raw, "/*!"):
		return model.CommentDoc
	case strings.HasPrefix(raw, "///"), strings.HasPrefix(raw, "//!"):
		return model.CommentDoc
	case strings.HasPrefix(raw, "/*"):
		return model.CommentBlock
	case strings.HasPrefix(raw, "//"), strings.HasPrefix(raw, "#"):
		return model.CommentLine
	default:
		return model.CommentBlock
	}
}

// unwrapTransparent strips the wrapper node types named in transparent
// (export statements, variable-declarator envelopes, decorator wrappers)
// to find the actual definition node underneath, per §4.4. It returns nil
// if no definition-shaped node is found inside the wrapper chain.
func unwrapTransparent(n *sitter.Node, transparent map[string]bool) *sitter.Node {
	if n == nil {
		return nil
	}
	if !transparent[n.Type()] {
		return n
	}
	nc := int(n.NamedChildCount())
	for i := 0; i < nc; i++ {
		if u := unwrapTransparent(n.NamedChild(i), transparent); u != nil {
			return u
		}
	}
	return nil
}

// findAssociation implements the §4.4 association rule for languages
// whose association target is a following sibling: given the comment
// node, the set of transparent wrapper types, and the index of already
// emitted definitions by start byte, it returns the name/kind of the
// associated symbol, or ("", "") if none exists.
func findAssociation(comment *sitter.Node, transparent map[string]bool, bySymbolStart map[uint32]defInfo) (name, kind string) {
	parent := comment.Parent()
	if parent == nil {
		return "", ""
	}
	nc := int(parent.NamedChildCount())
	idx := -1
	for i := 0; i < nc; i++ {
		if parent.NamedChild(i).StartByte() == comment.StartByte() {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= nc {
		return "", ""
	}
	resolved := unwrapTransparent(parent.NamedChild(idx+1), transparent)
	if resolved == nil {
		return "", ""
	}
	if info, ok := bySymbolStart[resolved.StartByte()]; ok {
		return info.name, info.kind
	}
	return "", ""
}

// isErrorTree reports whether a parsed tree is unusable: its root is an
// ERROR node, or the root's byte extent does not cover the whole file
// (§4.5 "parse_failure"). A merely-inaccurate parse that still covers the
// file (error nodes deeper in the tree) is tolerated; only a root-level
// failure voids the file's interior.
func isErrorTree(tree *sitter.Tree, srcLen int) bool {
	root := tree.RootNode()
	if root == nil {
		return true
	}
	if root.Type() == "ERROR" {
		return true
	}
	if int(root.EndByte()) != srcLen {
		return true
	}
	return false
}

// lastPathSegment returns the final '/'-delimited segment of a module
// specifier, used when a grammar supplies only a bare module path and no
// explicit imported name (§4.3: bare Go import yields imported_name from
// the last path segment).
func lastPathSegment(specifier string) string {
	trimmed := strings.Trim(specifier, `"'`)
	trimmed = strings.TrimRight(trimmed, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// walk calls visit on every node of the tree, pre-order, including n
// itself. visit returning false prunes n's children.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}
