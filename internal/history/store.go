// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists generation records in a local SQLite database
// and exports them for sharing.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/idea-engine/pkg/types"
)

const dbFile = "ideas.db"

// Store manages the generation history SQLite database.
type Store struct {
	db      *sql.DB
	maxList int
}

// NewStore opens or creates the history database at dir/ideas.db and
// creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "history"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxList := cfg.MaxList
	if maxList <= 0 {
		maxList = 20
	}

	s := &Store{db: db, maxList: maxList}

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
		`CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			num_ideas INTEGER NOT NULL,
			complexity TEXT NOT NULL,
			model TEXT,
			ideas TEXT NOT NULL,
			web_query TEXT,
			web_text TEXT,
			papers TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_topic ON generations(topic)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts a generation record and returns its assigned ID. The paper
// feed is stored as JSON.
func (s *Store) Save(ctx context.Context, rec types.GenerationRecord) (int64, error) {
	papersJSON, err := json.Marshal(rec.Papers)
	if err != nil {
		return 0, fmt.Errorf("marshaling papers: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO generations
			(topic, num_ideas, complexity, model, ideas, web_query, web_text, papers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Topic, rec.NumIdeas, string(rec.Complexity), rec.Model, rec.Ideas,
		rec.Web.Query, rec.Web.Text, string(papersJSON),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted ID: %w", err)
	}
	return id, nil
}

// List returns the most recent records, newest first. A non-positive
// limit uses the store default.
func (s *Store) List(ctx context.Context, limit int) ([]types.GenerationRecord, error) {
	if limit <= 0 {
		limit = s.maxList
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, num_ideas, complexity, model, ideas, web_query, web_text, papers, created_at
		 FROM generations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.GenerationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns one record by ID. A missing ID yields sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, id int64) (types.GenerationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, topic, num_ideas, complexity, model, ideas, web_query, web_text, papers, created_at
		 FROM generations WHERE id = ?`, id)
	return scanRecord(row)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.GenerationRecord, error) {
	var (
		rec        types.GenerationRecord
		complexity string
		papersJSON string
		createdAt  string
	)

	err := row.Scan(&rec.ID, &rec.Topic, &rec.NumIdeas, &complexity, &rec.Model,
		&rec.Ideas, &rec.Web.Query, &rec.Web.Text, &papersJSON, &createdAt)
	if err != nil {
		return types.GenerationRecord{}, err
	}

	rec.Complexity = types.Complexity(complexity)

	if papersJSON != "" {
		if err := json.Unmarshal([]byte(papersJSON), &rec.Papers); err != nil {
			return types.GenerationRecord{}, fmt.Errorf("parsing stored papers: %w", err)
		}
	}

	if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		rec.CreatedAt = t
	}

	return rec, nil
}
