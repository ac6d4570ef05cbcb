// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extraction runs in a local SQLite database and
// makes their text searchable.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

const dbFile = "pdftext.db"

// Store manages the extraction catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog database at catalogDir/pdftext.db,
// creating the schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pdf_path TEXT NOT NULL,
			output_path TEXT,
			backend TEXT NOT NULL,
			pages INTEGER NOT NULL,
			pages_with_text INTEGER NOT NULL,
			characters INTEGER NOT NULL,
			extracted_at TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_pdf_path ON runs(pdf_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='runs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE runs_fts USING fts5(text, content=runs, content_rowid=rowid)`,
			`CREATE TRIGGER runs_ai AFTER INSERT ON runs BEGIN
				INSERT INTO runs_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
			`CREATE TRIGGER runs_ad AFTER DELETE ON runs BEGIN
				INSERT INTO runs_fts(runs_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record appends one extraction run with its full text and returns the
// record with its assigned ID.
func (s *Store) Record(ctx context.Context, rec types.RunRecord, text string) (types.RunRecord, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (pdf_path, output_path, backend, pages, pages_with_text, characters, extracted_at, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PDFPath, rec.OutputPath, string(rec.Backend),
		rec.Pages, rec.PagesWithText, rec.Characters,
		rec.ExtractedAt.UTC().Format(time.RFC3339), text,
	)
	if err != nil {
		return rec, fmt.Errorf("inserting run: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("reading run id: %w", err)
	}
	return rec, nil
}

// List returns recorded runs, newest first, capped at the configured
// maximum.
func (s *Store) List(ctx context.Context) ([]types.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, pdf_path, output_path, backend, pages, pages_with_text, characters, extracted_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// Hit is one full-text search result: the matching run plus a snippet of
// the text around the match.
type Hit struct {
	Run     types.RunRecord
	Snippet string
}

// Search runs an FTS5 full-text query over the recorded extraction text.
func (s *Store) Search(ctx context.Context, query string) ([]Hit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.rowid, r.pdf_path, r.output_path, r.backend, r.pages, r.pages_with_text, r.characters, r.extracted_at,
		        snippet(runs_fts, 0, '[', ']', '…', 12)
		 FROM runs_fts JOIN runs r ON r.rowid = runs_fts.rowid
		 WHERE runs_fts MATCH ?
		 ORDER BY rank LIMIT ?`, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var rec types.RunRecord
		var backend, extractedAt, snippet string
		if err := rows.Scan(&rec.ID, &rec.PDFPath, &rec.OutputPath, &backend,
			&rec.Pages, &rec.PagesWithText, &rec.Characters, &extractedAt, &snippet); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		rec.Backend = types.Backend(backend)
		rec.ExtractedAt, _ = time.Parse(time.RFC3339, extractedAt)
		hits = append(hits, Hit{Run: rec, Snippet: snippet})
	}
	return hits, rows.Err()
}

func scanRun(rows *sql.Rows) (types.RunRecord, error) {
	var rec types.RunRecord
	var backend, extractedAt string
	if err := rows.Scan(&rec.ID, &rec.PDFPath, &rec.OutputPath, &backend,
		&rec.Pages, &rec.PagesWithText, &rec.Characters, &extractedAt); err != nil {
		return rec, fmt.Errorf("scanning run: %w", err)
	}
	rec.Backend = types.Backend(backend)
	rec.ExtractedAt, _ = time.Parse(time.RFC3339, extractedAt)
	return rec, nil
}
