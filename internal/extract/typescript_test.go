package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
	"github.com/codeatlas/codeatlas/internal/model"
)

// TestTypeScriptExports covers Scenario A: every exported declaration
// shape produces one row each, non-exported ones are present but marked
// unexported, and a destructured binding produces no symbol row at all.
func TestTypeScriptExports(t *testing.T) {
	src := `
export function greet(name: string) {}
export class Widget {}
export const value = 1;
export const fn = () => {};
export interface Shape {}
export type Alias = string;
export enum Color { Red, Green }

function helper() {}
const internal = 2;

const { a, b } = getPair();
`
	tree := parseSource(t, langreg.TypeScript, src)
	res, err := typescriptExtractor{}.Extract(tree, []byte(src), "widget.ts")
	require.NoError(t, err)

	exportedKinds := map[string]string{
		"greet": model.KindFunction,
		"Widget": model.KindClass,
		"value": model.KindVariable,
		"fn":    model.KindArrowFunction,
		"Shape": model.KindInterface,
		"Alias": model.KindTypeAlias,
		"Color": model.KindEnum,
	}
	for name, kind := range exportedKinds {
		idx, ok := findSymbol(res, name)
		require.True(t, ok, "expected symbol %q", name)
		assert.Equal(t, kind, res.Symbols[idx].Kind, "kind for %q", name)
		assert.True(t, res.Symbols[idx].IsExported, "%q should be exported", name)
	}

	for _, name := range []string{"helper", "internal"} {
		idx, ok := findSymbol(res, name)
		require.True(t, ok, "expected symbol %q", name)
		assert.False(t, res.Symbols[idx].IsExported, "%q should not be exported", name)
	}

	_, ok := findSymbol(res, "a")
	assert.False(t, ok, "destructured binding should produce no symbol row")
	_, ok = findSymbol(res, "b")
	assert.False(t, ok, "destructured binding should produce no symbol row")
}

// TestTypeScriptImports covers Scenario B: the full range of import forms.
func TestTypeScriptImports(t *testing.T) {
	src := `
import Default from "./local-module";
import * as NS from "external-pkg";
import { a, b as c } from "./named";
import "./side-effect";
import type { OnlyType } from "./types";
export * from "./reexport-all";
export { x, y as z } from "./reexport-named";
const mod = import("./dynamic");
`
	tree := parseSource(t, langreg.TypeScript, src)
	res, err := typescriptExtractor{}.Extract(tree, []byte(src), "imports.ts")
	require.NoError(t, err)

	byModule := map[string][]model.ImportInfo{}
	for _, imp := range res.Imports {
		byModule[imp.ModuleSpecifier] = append(byModule[imp.ModuleSpecifier], imp)
	}

	require.Len(t, byModule["./local-module"], 1)
	assert.Equal(t, "default", byModule["./local-module"][0].ImportedName)
	assert.True(t, byModule["./local-module"][0].IsExternal == false)

	require.Len(t, byModule["external-pkg"], 1)
	assert.Equal(t, "*", byModule["external-pkg"][0].ImportedName)
	assert.True(t, byModule["external-pkg"][0].IsExternal)

	require.Len(t, byModule["./named"], 2)

	require.Len(t, byModule["./side-effect"], 1)
	assert.Equal(t, "", byModule["./side-effect"][0].ImportedName)

	require.Len(t, byModule["./types"], 1)
	assert.True(t, byModule["./types"][0].IsTypeOnly)

	require.Len(t, byModule["./reexport-all"], 1)
	assert.Equal(t, model.ImportReExport, byModule["./reexport-all"][0].Kind)

	require.Len(t, byModule["./reexport-named"], 2)
	for _, r := range byModule["./reexport-named"] {
		assert.Equal(t, model.ImportReExport, r.Kind)
	}

	require.Len(t, byModule["./dynamic"], 1)
	assert.Equal(t, model.ImportDynamic, byModule["./dynamic"][0].Kind)
}
