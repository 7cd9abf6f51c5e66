package sqlite

import (
	"context"
	"database/sql"

	"github.com/kasuboski/guessr/pkg/logger"
	"github.com/kasuboski/guessr/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// New creates a new sqlite database given a path to the database file
func New(filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	return SQLite{
		db: db,
	}, nil
}

// Init runs any pending schema migrations
func (s SQLite) Init(ctx context.Context) error {
	return runMigrations(s.db)
}

// PutGuess stores a guess record, replacing any previous record for the name
func (s SQLite) PutGuess(ctx context.Context, record storage.GuessRecord) (int64, error) {
	log := logger.FromCtx(ctx)

	stmt := `INSERT INTO guesses (name, properties, confidence)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET properties = excluded.properties, confidence = excluded.confidence`
	result, err := s.db.ExecContext(ctx, stmt, record.Name, record.Properties, record.Confidence)
	if err != nil {
		log.Errorw("failed to store guess", "name", record.Name, "error", err)
		return 0, err
	}

	return result.LastInsertId()
}

// GetGuess returns the stored record for a name or storage.ErrNotFound
func (s SQLite) GetGuess(ctx context.Context, name string) (storage.GuessRecord, error) {
	var record storage.GuessRecord

	stmt := `SELECT id, name, properties, confidence, created_at FROM guesses WHERE name = ?`
	row := s.db.QueryRowContext(ctx, stmt, name)
	err := row.Scan(&record.ID, &record.Name, &record.Properties, &record.Confidence, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return record, storage.ErrNotFound
	}
	if err != nil {
		return record, err
	}

	return record, nil
}

// ListGuesses lists the stored records, newest first
func (s SQLite) ListGuesses(ctx context.Context) ([]storage.GuessRecord, error) {
	log := logger.FromCtx(ctx)

	records := make([]storage.GuessRecord, 0)

	stmt := `SELECT id, name, properties, confidence, created_at FROM guesses ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		log.Errorw("failed to list guesses", "error", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record storage.GuessRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.Properties, &record.Confidence, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteGuess removes the record for a name; missing records are not an error
func (s SQLite) DeleteGuess(ctx context.Context, name string) error {
	stmt := `DELETE FROM guesses WHERE name = ?`
	_, err := s.db.ExecContext(ctx, stmt, name)
	return err
}
