package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Engine is an open dataset: an in-process SQLite connection with one
// table per present record stream, registered under the names the query
// contract promises (§4.7). Tables are loaded once at Open time from the
// columnar files on disk; there is no live connection back to them
// afterwards; a dataset is read-only for the lifetime of an Engine.
type Engine struct {
	DB  *gorm.DB
	dir string
}

// Open reads manifest.json (or, for a dataset predating the manifest,
// infers schema from whichever CSV headers exist) and loads every present
// table into an in-memory SQLite database. `imports` and `comments` are
// optional (§4.7); `files` and `symbols` are required.
func Open(dir string) (*Engine, error) {
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("store: opening query engine: %w", err)
	}

	e := &Engine{DB: db, dir: dir}

	if err := e.loadTable("files", filesFile, manifest); err != nil {
		return nil, err
	}
	if err := e.loadTable("symbols", symbolsFile, manifest); err != nil {
		return nil, err
	}
	if err := e.loadTable("errors", errorsFile, manifest); err != nil {
		return nil, err
	}
	if e.fileExists(importsFile) {
		if err := e.loadTable("imports_raw", importsFile, manifest); err != nil {
			return nil, err
		}
		if err := e.registerImportsView(manifest); err != nil {
			return nil, err
		}
	}
	if e.fileExists(commentsFile) {
		if err := e.loadTable("comments", commentsFile, manifest); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *Engine) fileExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.dir, name))
	return err == nil
}

func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if os.IsNotExist(err) {
		// A dataset written before the manifest existed: the query layer
		// still has to work (§9 "Schema evolution"), so fall back to
		// trusting each CSV's own header row instead of a recorded one.
		return &Manifest{Version: 0, Columns: map[string][]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("store: parsing manifest: %w", err)
	}
	return &m, nil
}

// loadTable reads a CSV file's header and rows and materializes them as a
// SQLite table of the same name, with every column typed TEXT (the CSV
// columns are re-typed as needed by the queries that read them; sizes and
// line numbers round-trip through SQLite's dynamic typing without loss).
func (e *Engine) loadTable(table, file string, manifest *Manifest) error {
	f, err := os.Open(filepath.Join(e.dir, file))
	if err != nil {
		return fmt.Errorf("store: opening %s: %w", file, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("store: reading %s header: %w", file, err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = fmt.Sprintf("%q", h)
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", table, joinColumns(cols))
	if err := e.DB.Exec(createSQL).Error; err != nil {
		return fmt.Errorf("store: creating table %s: %w", table, err)
	}

	placeholders := make([]string, len(header))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, joinColumns(placeholders))

	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v
		}
		if err := e.DB.Exec(insertSQL, args...).Error; err != nil {
			return fmt.Errorf("store: inserting into %s: %w", table, err)
		}
	}
	manifest.Columns[table] = header
	return nil
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

// registerImportsView exposes `imports` with a stable column set
// regardless of on-disk schema age (§4.7's compatibility shim). A dataset
// already carrying is_external is exposed as-is; an older one without it
// gets a derived column computed in pure SQL from module_specifier and
// the owning file's language, applying the same per-language rules as
// §4.3.
func (e *Engine) registerImportsView(manifest *Manifest) error {
	cols := manifest.Columns["imports_raw"]
	hasExternal := false
	for _, c := range cols {
		if c == "is_external" {
			hasExternal = true
		}
	}
	if hasExternal {
		return e.DB.Exec(`CREATE VIEW imports AS SELECT * FROM imports_raw`).Error
	}

	const classify = `
CASE f.language
  WHEN 'typescript' THEN NOT (i.module_specifier LIKE './%' OR i.module_specifier LIKE '../%'
                           OR i.module_specifier LIKE '/%' OR i.module_specifier LIKE '#%')
  WHEN 'python' THEN NOT (i.module_specifier LIKE '.%')
  WHEN 'rust' THEN NOT (i.module_specifier LIKE 'crate::%' OR i.module_specifier LIKE 'self::%'
                    OR i.module_specifier LIKE 'super::%')
  WHEN 'c' THEN NOT (i.kind = 'include' AND i.module_specifier NOT LIKE '<%')
  WHEN 'cpp' THEN NOT (i.kind = 'include' AND i.module_specifier NOT LIKE '<%')
  ELSE 1
END AS is_external`

	sql := fmt.Sprintf(`
CREATE VIEW imports AS
SELECT i.*, %s
FROM imports_raw i
LEFT JOIN files f ON f.path = i.source_file`, classify)
	return e.DB.Exec(sql).Error
}

// Close releases the underlying SQLite connection.
func (e *Engine) Close() error {
	sqlDB, err := e.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HasTable reports whether a named view/table was registered for this
// dataset (used by commands that degrade gracefully when `imports` or
// `comments` is absent).
func (e *Engine) HasTable(name string) bool {
	var count int64
	e.DB.Raw(`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, name).Scan(&count)
	return count > 0
}
