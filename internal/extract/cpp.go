package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codeatlas/codeatlas/internal/model"
)

// C++ extends the C rule set with class/namespace/template nodes. Node
// vocabulary grounded on jmylchreest-aide's C++ TagQueries, which layers
// class_specifier, namespace_definition, and qualified_identifier method
// declarators (Foo::bar(...)) on top of the C grammar's function and
// struct/enum shapes. §4.2's linkage rule (static => not exported) still
// applies to free functions and namespace-scope declarations; a class or
// struct member is exported when the access that applies to it is public:
// the nearest preceding access-specifier label, or, with no label, the
// default (private for `class`, public for `struct`).
type cppExtractor struct{}

func (cppExtractor) Extract(tree *sitter.Tree, source []byte, path string) (Result, error) {
	root := tree.RootNode()
	var res Result
	bySymbolStart := map[uint32]defInfo{}

	emit := func(n *sitter.Node, name, kind string, exported bool) {
		sl, sc, el, ec := span(n)
		res.Symbols = append(res.Symbols, model.SymbolInfo{
			Name: name, Kind: kind, FilePath: path,
			StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
			IsExported: exported,
		})
		bySymbolStart[n.StartByte()] = defInfo{name: name, kind: kind}
	}

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition":
			declarator := n.ChildByFieldName("declarator")
			name := cppDeclaratorName(declarator, source)
			if name == "" {
				return true
			}
			kind := model.KindFunction
			if cppIsInsideClass(n) {
				kind = model.KindMethod
			}
			emit(n, name, kind, cppIsExported(n, source))
		case "class_specifier":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindClass, cppIsExported(n, source))
			}
		case "struct_specifier":
			if name := n.ChildByFieldName("name"); name != nil && n.Parent() != nil && !cppIsInsideClass(n) {
				emit(n, nodeText(name, source), model.KindStruct, cppIsExported(n, source))
			}
		case "enum_specifier":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindEnum, cppIsExported(n, source))
			}
		case "namespace_definition":
			if name := n.ChildByFieldName("name"); name != nil {
				emit(n, nodeText(name, source), model.KindNamespace, true)
			}
		case "preproc_include":
			res.Imports = append(res.Imports, cIncludeRow(n, source, path))
		case "comment":
			raw := nodeText(n, source)
			sl, sc, el, ec := span(n)
			assocName, assocKind := findAssociation(n, map[string]bool{"template_declaration": true}, bySymbolStart)
			res.Comments = append(res.Comments, model.CommentInfo{
				FilePath: path, Text: raw, Kind: classifyCommentText(raw),
				StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec,
				AssociatedSymbol: assocName, AssociatedSymbolKind: assocKind,
			})
		}
		return true
	})

	return res, nil
}

// cppDeclaratorName unwraps pointer/reference/qualified declarators down
// to the plain or qualified identifier naming a function (Foo::bar keeps
// only "bar", matching how a reader names the method by its own name
// rather than its out-of-class qualification).
func cppDeclaratorName(n *sitter.Node, source []byte) string {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			if id := n.ChildByFieldName("declarator"); id != nil {
				return cppDeclaratorName(id, source)
			}
			return ""
		case "pointer_declarator", "reference_declarator":
			n = n.ChildByFieldName("declarator")
		case "qualified_identifier":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				return nodeText(nameNode, source)
			}
			return ""
		case "identifier", "field_identifier", "destructor_name", "operator_name":
			return nodeText(n, source)
		default:
			return ""
		}
	}
	return ""
}

func cppIsInsideClass(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "class_specifier" {
			return true
		}
		if p.Type() == "function_definition" {
			return false
		}
	}
	return false
}

// cppIsExported combines the C static-linkage rule for free functions with
// the class member access-specifier rule: a member is exported unless the
// access resolved by cppNearestAccessLabel (label or class/struct
// default) is "private" or "protected".
func cppIsExported(n *sitter.Node, source []byte) bool {
	if cHasStaticSpecifier(n, source) {
		return false
	}
	if !cppIsInsideClass(n) {
		return true
	}
	return cppNearestAccessLabel(n, source) != "private" && cppNearestAccessLabel(n, source) != "protected"
}

// cppNearestAccessLabel walks backward over n's preceding siblings within
// the enclosing field_declaration_list (a class body) looking for the
// closest access_specifier label above it. Defaults to "private" for a
// `class`, matching C++'s own default, and "public" for a `struct`.
func cppNearestAccessLabel(n *sitter.Node, source []byte) string {
	for cur := n; cur != nil; cur = cur.Parent() {
		body := cur.Parent()
		if body == nil || body.Type() != "field_declaration_list" {
			continue
		}
		classNode := body.Parent()
		label := "public"
		if classNode != nil && classNode.Type() == "class_specifier" {
			label = "private"
		}
		nc := int(body.NamedChildCount())
		for i := 0; i < nc; i++ {
			c := body.NamedChild(i)
			if c.StartByte() >= cur.StartByte() {
				break
			}
			if c.Type() == "access_specifier" {
				label = nodeText(c, source)
			}
		}
		return label
	}
	return "public"
}
