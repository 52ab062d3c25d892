// Package store implements the columnar writer (§4.6) and the query
// engine (§4.7, §4.8). The writer materializes the five record streams
// as self-describing CSV files plus a manifest recording which columns
// each one carries, written atomically (temp file + rename), grounded on
// core/atomicwriter.go's write-then-rename discipline — trimmed of its
// cross-process file-locking and backup machinery, which has no
// counterpart in a single-process, single-writer batch job like this one.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/codeatlas/codeatlas/internal/pipeline"
)

const (
	filesFile    = "files.csv"
	symbolsFile  = "symbols.csv"
	importsFile  = "imports.csv"
	commentsFile = "comments.csv"
	errorsFile   = "errors.csv"
	manifestFile = "manifest.json"

	schemaVersion = 1
)

// Manifest records the schema version and the column set of each table
// written. Open only checks that it parses: the compatibility shim of §4.7
// decides from each CSV file's own header row, not from these columns.
type Manifest struct {
	Version int                 `json:"version"`
	Columns map[string][]string `json:"columns"`
}

// Write persists an Output as columnar files plus a manifest under dir,
// creating dir if necessary: files, symbols, and errors are always
// written; imports and comments only when their stream is non-empty.
// Every file is written to a temp path in
// the same directory and renamed into place, so a reader never observes a
// partially written table (§4.6).
func Write(dir string, out *pipeline.Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating output directory: %w", err)
	}

	manifest := Manifest{Version: schemaVersion, Columns: map[string][]string{}}

	if err := writeAtomic(dir, filesFile, func(w *csv.Writer) error {
		header := []string{"path", "name", "extension", "language", "size_bytes", "line_count"}
		manifest.Columns["files"] = header
		if err := w.Write(header); err != nil {
			return err
		}
		for _, f := range out.Files {
			if err := w.Write([]string{
				f.Path, f.Name, f.Extension, f.Language,
				strconv.FormatUint(f.SizeBytes, 10), strconv.FormatUint(f.LineCount, 10),
			}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := writeAtomic(dir, symbolsFile, func(w *csv.Writer) error {
		header := []string{"name", "kind", "file_path", "start_line", "start_column", "end_line", "end_column", "is_exported"}
		manifest.Columns["symbols"] = header
		if err := w.Write(header); err != nil {
			return err
		}
		for _, s := range out.Symbols {
			if err := w.Write([]string{
				s.Name, s.Kind, s.FilePath,
				strconv.FormatUint(s.StartLine, 10), strconv.FormatUint(s.StartColumn, 10),
				strconv.FormatUint(s.EndLine, 10), strconv.FormatUint(s.EndColumn, 10),
				strconv.FormatBool(s.IsExported),
			}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if len(out.Imports) > 0 {
		if err := writeAtomic(dir, importsFile, func(w *csv.Writer) error {
			header := []string{"source_file", "module_specifier", "imported_name", "local_name", "kind", "is_type_only", "line", "is_external"}
			manifest.Columns["imports"] = header
			if err := w.Write(header); err != nil {
				return err
			}
			for _, i := range out.Imports {
				if err := w.Write([]string{
					i.SourceFile, i.ModuleSpecifier, i.ImportedName, i.LocalName, i.Kind,
					strconv.FormatBool(i.IsTypeOnly), strconv.FormatUint(i.Line, 10),
					strconv.FormatBool(i.IsExternal),
				}); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if len(out.Comments) > 0 {
		if err := writeAtomic(dir, commentsFile, func(w *csv.Writer) error {
			header := []string{"file_path", "text", "kind", "start_line", "start_column", "end_line", "end_column", "associated_symbol", "associated_symbol_kind"}
			manifest.Columns["comments"] = header
			if err := w.Write(header); err != nil {
				return err
			}
			for _, c := range out.Comments {
				if err := w.Write([]string{
					c.FilePath, c.Text, c.Kind,
					strconv.FormatUint(c.StartLine, 10), strconv.FormatUint(c.StartColumn, 10),
					strconv.FormatUint(c.EndLine, 10), strconv.FormatUint(c.EndColumn, 10),
					c.AssociatedSymbol, c.AssociatedSymbolKind,
				}); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if err := writeAtomic(dir, errorsFile, func(w *csv.Writer) error {
		header := []string{"file_path", "file_name", "extension", "language", "error_type", "error_message", "size_bytes"}
		manifest.Columns["errors"] = header
		if err := w.Write(header); err != nil {
			return err
		}
		for _, e := range out.Errors {
			if err := w.Write([]string{
				e.FilePath, e.FileName, e.Extension, e.Language, e.ErrorType, e.ErrorMessage,
				strconv.FormatUint(e.SizeBytes, 10),
			}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encoding manifest: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, manifestFile), data)
}

func writeAtomic(dir, name string, fn func(w *csv.Writer) error) error {
	path := filepath.Join(dir, name)
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("store: creating %s: %w", name, err)
	}
	w := csv.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("store: writing %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("store: flushing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: closing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: renaming %s into place: %w", name, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: writing manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: renaming manifest into place: %w", err)
	}
	return nil
}
