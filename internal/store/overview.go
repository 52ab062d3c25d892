package store

// Overview composes the fixed panel set of §4.8 purely from SQL over the
// views registered by Open, so the report is testable independent of the
// extraction pipeline and any panel can be reproduced by hand from the
// raw tables.
type Overview struct {
	LanguageCounts []LanguageCount
	TopSymbols     []TopSymbol
	HubFiles       []HubFile
	Directories    []DirectoryCount
	ImportKinds    []KindCount
}

type LanguageCount struct {
	Language string `gorm:"column:language"`
	Files    int64  `gorm:"column:files"`
}

type TopSymbol struct {
	ImportedName string `gorm:"column:imported_name"`
	Kind         string `gorm:"column:kind"`
	ImportCount  int64  `gorm:"column:import_count"`
}

type HubFile struct {
	Path        string `gorm:"column:path"`
	InboundRefs int64  `gorm:"column:inbound_refs"`
}

type DirectoryCount struct {
	Directory string `gorm:"column:directory"`
	Files     int64  `gorm:"column:files"`
}

type KindCount struct {
	Kind  string `gorm:"column:kind"`
	Count int64  `gorm:"column:count"`
}

// BuildOverview assembles every panel. maxDepth bounds the directory-tree
// panel's path-splitting depth; depth <= 0 means unbounded.
func (e *Engine) BuildOverview(maxDepth int) (*Overview, error) {
	ov := &Overview{}

	if err := e.DB.Raw(`
		SELECT language, count(*) AS files
		FROM files
		GROUP BY language
		ORDER BY files DESC`).Scan(&ov.LanguageCounts).Error; err != nil {
		return nil, err
	}

	if e.HasTable("imports") {
		if err := e.DB.Raw(`
			SELECT i.imported_name, coalesce(s.kind, '') AS kind, count(*) AS import_count
			FROM imports i
			LEFT JOIN symbols s ON s.name = i.imported_name
			GROUP BY i.imported_name, kind
			ORDER BY import_count DESC
			LIMIT 25`).Scan(&ov.TopSymbols).Error; err != nil {
			return nil, err
		}

		if err := e.DB.Raw(`
			SELECT f.path AS path, count(*) AS inbound_refs
			FROM files f
			JOIN imports i ON i.module_specifier LIKE '%' || f.name || '%'
			GROUP BY f.path
			ORDER BY inbound_refs DESC
			LIMIT 25`).Scan(&ov.HubFiles).Error; err != nil {
			return nil, err
		}

		if err := e.DB.Raw(`
			SELECT kind, count(*) AS count
			FROM imports
			GROUP BY kind
			ORDER BY count DESC`).Scan(&ov.ImportKinds).Error; err != nil {
			return nil, err
		}
	}

	dirs, err := e.directoryTree(maxDepth)
	if err != nil {
		return nil, err
	}
	ov.Directories = dirs

	return ov, nil
}

// directoryTree groups files by the first maxDepth path segments, splitting
// `path` on '/' in SQL (§4.8). SQLite has no array-slice primitive, so the
// truncation is built with substr/instr rather than a host-language split.
func (e *Engine) directoryTree(maxDepth int) ([]DirectoryCount, error) {
	depth := maxDepth
	if depth <= 0 {
		depth = 64
	}

	// Truncate to at most `depth` '/'-separated segments by finding the
	// position just past the depth-th slash, falling back to the whole
	// path when it has fewer segments than that.
	expr := `
		CASE
			WHEN (length(path) - length(replace(path, '/', ''))) < ? THEN path
			ELSE (
				WITH RECURSIVE pos(n, idx) AS (
					SELECT 1, instr(path, '/')
					UNION ALL
					SELECT n + 1, instr(substr(path, idx + 1), '/') + idx
					FROM pos
					WHERE n < ? AND instr(substr(path, idx + 1), '/') > 0
				)
				SELECT substr(path, 1, max(idx) - 1) FROM pos
			)
		END`

	var dirs []DirectoryCount
	sql := `SELECT (` + expr + `) AS directory, count(*) AS files FROM files GROUP BY directory ORDER BY files DESC`
	if err := e.DB.Raw(sql, depth, depth).Scan(&dirs).Error; err != nil {
		return nil, err
	}
	return dirs, nil
}
