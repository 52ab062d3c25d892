// Package model defines the five record kinds that flow through the
// extraction pipeline: file metadata, symbols, imports, comments, and
// per-file errors. Every other package in this module reads or writes
// these shapes; nothing downstream invents its own.
package model

// Symbol kinds. Not every kind below has a producer: no extractor
// currently emits union, macro, or property. Readers must treat any other string as an uninterpreted tag rather than
// an error, since the kind column is an open union by design.
const (
	KindFunction       = "function"
	KindClass          = "class"
	KindMethod         = "method"
	KindVariable       = "variable"
	KindInterface      = "interface"
	KindTypeAlias      = "type_alias"
	KindEnum           = "enum"
	KindArrowFunction  = "arrow_function"
	KindStruct         = "struct"
	KindUnion          = "union"
	KindNamespace      = "namespace"
	KindMacro          = "macro"
	KindProperty       = "property"
	KindTrait          = "trait"
	KindConstant       = "constant"
	KindModule         = "module"
)

// Import kinds, per §4.3. Open set; new languages may introduce new tags.
const (
	ImportStatic   = "static"
	ImportDynamic  = "dynamic"
	ImportRequire  = "require"
	ImportReExport = "re_export"
	ImportInclude  = "include"
	ImportUsing    = "using"
	ImportUse      = "use"
	ImportFrom     = "from"
	ImportImport   = "import"
)

// Comment kinds.
const (
	CommentLine  = "line"
	CommentBlock = "block"
	CommentDoc   = "doc"
)

// Error taxonomy for ErrorRecord.ErrorType.
const (
	ErrorParserCreation = "parser_creation"
	ErrorFileRead       = "file_read"
	ErrorParseFailure   = "parse_failure"
)

// FileMetadata is one row of the `files` table, emitted for every source
// file that was opened, read, and parsed without a fatal per-file error.
type FileMetadata struct {
	Path      string `csv:"path" gorm:"primaryKey;column:path"`
	Name      string `csv:"name" gorm:"column:name"`
	Extension string `csv:"extension" gorm:"column:extension"`
	Language  string `csv:"language" gorm:"column:language;index"`
	SizeBytes uint64 `csv:"size_bytes" gorm:"column:size_bytes"`
	LineCount uint64 `csv:"line_count" gorm:"column:line_count"`
}

// SymbolInfo is one row of the `symbols` table.
type SymbolInfo struct {
	Name        string `csv:"name" gorm:"column:name;index"`
	Kind        string `csv:"kind" gorm:"column:kind"`
	FilePath    string `csv:"file_path" gorm:"column:file_path;index"`
	StartLine   uint64 `csv:"start_line" gorm:"column:start_line"`
	StartColumn uint64 `csv:"start_column" gorm:"column:start_column"`
	EndLine     uint64 `csv:"end_line" gorm:"column:end_line"`
	EndColumn   uint64 `csv:"end_column" gorm:"column:end_column"`
	IsExported  bool   `csv:"is_exported" gorm:"column:is_exported"`
}

// ImportInfo is one row of the `imports` table.
type ImportInfo struct {
	SourceFile      string `csv:"source_file" gorm:"column:source_file;index"`
	ModuleSpecifier string `csv:"module_specifier" gorm:"column:module_specifier"`
	ImportedName    string `csv:"imported_name" gorm:"column:imported_name"`
	LocalName       string `csv:"local_name" gorm:"column:local_name"`
	Kind            string `csv:"kind" gorm:"column:kind"`
	IsTypeOnly      bool   `csv:"is_type_only" gorm:"column:is_type_only"`
	Line            uint64 `csv:"line" gorm:"column:line"`
	IsExternal      bool   `csv:"is_external" gorm:"column:is_external"`
}

// CommentInfo is one row of the `comments` table.
type CommentInfo struct {
	FilePath             string `csv:"file_path" gorm:"column:file_path;index"`
	Text                 string `csv:"text" gorm:"column:text"`
	Kind                 string `csv:"kind" gorm:"column:kind"`
	StartLine            uint64 `csv:"start_line" gorm:"column:start_line"`
	StartColumn          uint64 `csv:"start_column" gorm:"column:start_column"`
	EndLine              uint64 `csv:"end_line" gorm:"column:end_line"`
	EndColumn            uint64 `csv:"end_column" gorm:"column:end_column"`
	AssociatedSymbol     string `csv:"associated_symbol" gorm:"column:associated_symbol"`
	AssociatedSymbolKind string `csv:"associated_symbol_kind" gorm:"column:associated_symbol_kind"`
}

// ErrorRecord is one row of the `errors` table, emitted instead of a
// FileMetadata row for a file that could not be opened, read, or parsed.
type ErrorRecord struct {
	FilePath     string `csv:"file_path" gorm:"column:file_path;index"`
	FileName     string `csv:"file_name" gorm:"column:file_name"`
	Extension    string `csv:"extension" gorm:"column:extension"`
	Language     string `csv:"language" gorm:"column:language"`
	ErrorType    string `csv:"error_type" gorm:"column:error_type"`
	ErrorMessage string `csv:"error_message" gorm:"column:error_message"`
	SizeBytes    uint64 `csv:"size_bytes" gorm:"column:size_bytes"`
}

// FileResult is everything a single worker produces for one successfully
// parsed file: the file row plus its three extraction streams. The
// pipeline does not use it; its workers append their rows directly to the
// shared, mutex-guarded pipeline.Output.
type FileResult struct {
	File     FileMetadata
	Symbols  []SymbolInfo
	Imports  []ImportInfo
	Comments []CommentInfo
}
