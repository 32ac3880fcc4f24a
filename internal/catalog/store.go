// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps an offline snapshot of catalog concepts in SQLite.
// Snapshots are imported from concept export files, searched by name with
// FTS5, exported again, and can serve as one more registry source.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// Concept is one catalog concept as stored in the snapshot.
type Concept struct {
	ID         string   `json:"id" yaml:"id"`
	ExternalID string   `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Display    string   `json:"display_name" yaml:"display_name"`
	Class      string   `json:"concept_class,omitempty" yaml:"concept_class,omitempty"`
	Datatype   string   `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`
	Names      []string `json:"names,omitempty" yaml:"names,omitempty"`
}

// Store manages the snapshot database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	logger     *zerolog.Logger
}

// NewStore opens or creates the snapshot database at cfg.Dir/catalog.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig, logger *zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults, logger: logging.OrNop(logger)}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS concepts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			external_id TEXT,
			display TEXT NOT NULL,
			class TEXT,
			datatype TEXT,
			url TEXT,
			names TEXT,
			import_file TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_concepts_external_id ON concepts(external_id)`,
		`CREATE INDEX IF NOT EXISTS idx_concepts_import_file ON concepts(import_file)`,
		`CREATE TABLE IF NOT EXISTS import_status (
			file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='concepts_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE concepts_fts USING fts5(display, names, content=concepts, content_rowid=rowid)`,
		`CREATE TRIGGER concepts_ai AFTER INSERT ON concepts BEGIN
			INSERT INTO concepts_fts(rowid, display, names) VALUES (new.rowid, new.display, new.names);
		END`,
		`CREATE TRIGGER concepts_ad AFTER DELETE ON concepts BEGIN
			INSERT INTO concepts_fts(concepts_fts, rowid, display, names) VALUES('delete', old.rowid, old.display, old.names);
		END`,
		`CREATE TRIGGER concepts_au AFTER UPDATE ON concepts BEGIN
			INSERT INTO concepts_fts(concepts_fts, rowid, display, names) VALUES('delete', old.rowid, old.display, old.names);
			INSERT INTO concepts_fts(rowid, display, names) VALUES (new.rowid, new.display, new.names);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Updated  int
	Skipped  int
	Failed   int
	Concepts int
}

// Total returns the number of files processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Updated + s.Skipped + s.Failed
}

// Import loads concept export files into the snapshot. path is a single
// .json/.yaml/.yml file or a directory of them. Files unchanged since their
// last import (by modification time) are skipped; changed files replace the
// concepts they contributed before. A file that fails to parse is counted
// and logged, not fatal.
func (s *Store) Import(ctx context.Context, path string) (ImportSummary, error) {
	files, err := importFiles(path)
	if err != nil {
		return ImportSummary{}, err
	}

	var summary ImportSummary
	for _, file := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(file)
		if err != nil {
			s.logger.Warn().Str("file", file).Err(err).Msg("Import failed")
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM import_status WHERE file = ?`, file,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			s.logger.Debug().Str("file", file).Msg("Import skipped, unchanged")
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		concepts, err := readConcepts(file)
		if err != nil {
			s.logger.Warn().Str("file", file).Err(err).Msg("Import failed")
			summary.Failed++
			continue
		}

		if err := s.importFile(ctx, file, concepts, modTime, isUpdate); err != nil {
			s.logger.Warn().Str("file", file).Err(err).Msg("Import failed")
			summary.Failed++
			continue
		}

		summary.Concepts += len(concepts)
		if isUpdate {
			summary.Updated++
		} else {
			summary.Imported++
		}
		s.logger.Info().Str("file", file).Int("concepts", len(concepts)).Bool("update", isUpdate).Msg("Imported")
	}
	return summary, nil
}

func (s *Store) importFile(ctx context.Context, file string, concepts []Concept, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM concepts WHERE import_file = ?`, file); err != nil {
			return fmt.Errorf("deleting old concepts: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO concepts (id, external_id, display, class, datatype, url, names, import_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			external_id=excluded.external_id, display=excluded.display, class=excluded.class,
			datatype=excluded.datatype, url=excluded.url, names=excluded.names,
			import_file=excluded.import_file`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range concepts {
		namesJSON, _ := json.Marshal(c.Names)
		_, err := stmt.ExecContext(ctx,
			strings.ToLower(c.ID), strings.ToLower(c.ExternalID), c.Display,
			c.Class, c.Datatype, c.URL, string(namesJSON), file,
		)
		if err != nil {
			return fmt.Errorf("inserting concept %s: %w", c.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_status (file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		file, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating import status: %w", err)
	}
	return tx.Commit()
}

// importFiles expands path into the export files to import, sorted by name.
func importFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading import path: %w", err)
	}
	if !info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		return []string{abs}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading import directory %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !isExportFile(e.Name()) {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, abs)
	}
	return files, nil
}

func isExportFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// exportConcept is one concept in a catalog export file.
type exportConcept struct {
	ID           string       `json:"id" yaml:"id"`
	UUID         string       `json:"uuid" yaml:"uuid"`
	ExternalID   string       `json:"external_id" yaml:"external_id"`
	DisplayName  string       `json:"display_name" yaml:"display_name"`
	ConceptClass string       `json:"concept_class" yaml:"concept_class"`
	Datatype     string       `json:"datatype" yaml:"datatype"`
	URL          string       `json:"url" yaml:"url"`
	Names        []exportName `json:"names" yaml:"names"`
}

type exportName struct {
	Name   string `json:"name" yaml:"name"`
	Locale string `json:"locale" yaml:"locale"`
}

// readConcepts parses a JSON or YAML list of exported concepts. Entries
// without any identifier are dropped.
func readConcepts(file string) ([]Concept, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var raw []exportConcept
	if strings.ToLower(filepath.Ext(file)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	concepts := make([]Concept, 0, len(raw))
	for _, r := range raw {
		id := r.ID
		if id == "" {
			id = r.UUID
		}
		if id == "" {
			id = r.ExternalID
		}
		if id == "" {
			continue
		}
		c := Concept{
			ID:         id,
			ExternalID: r.ExternalID,
			Display:    r.DisplayName,
			Class:      r.ConceptClass,
			Datatype:   r.Datatype,
			URL:        r.URL,
		}
		for _, n := range r.Names {
			if n.Name != "" {
				c.Names = append(c.Names, n.Name)
			}
		}
		if c.Display == "" && len(c.Names) > 0 {
			c.Display = c.Names[0]
		}
		concepts = append(concepts, c)
	}
	return concepts, nil
}
