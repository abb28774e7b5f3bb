package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore persists history records and settings in a local SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "planeval")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "planeval")
}

// DataPath returns the full path to the history database.
func DataPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads all records, most recent first. Rows with an unparseable
// timestamp keep a zero CreatedAt rather than failing the load.
func (s *SQLiteStore) Load() ([]model.Record, error) {
	rows, err := s.db.Query(`SELECT
		id, plan, fact, percentage, additional_percentage, final_percentage,
		score, display_date, created_at
		FROM records
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, MaxRecords)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var final sql.NullFloat64
		var createdStr string

		err := rows.Scan(&r.ID, &r.Plan, &r.Fact, &r.Percentage,
			&r.AdditionalPercentage, &final, &r.Score, &r.Date, &createdStr)
		if err != nil {
			return nil, err
		}

		if final.Valid {
			v := final.Float64
			r.FinalPercentage = &v
		}
		if createdStr != "" {
			if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
				r.CreatedAt = t
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Append stores a record and prunes everything beyond the cap.
func (s *SQLiteStore) Append(rec model.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var final any
	if rec.FinalPercentage != nil {
		final = *rec.FinalPercentage
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO records
		(id, plan, fact, percentage, additional_percentage, final_percentage,
		 score, display_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Plan, rec.Fact, rec.Percentage, rec.AdditionalPercentage,
		final, rec.Score, rec.Date, rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`DELETE FROM records WHERE id NOT IN (
		SELECT id FROM records ORDER BY created_at DESC, rowid DESC LIMIT ?
	)`, MaxRecords)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Clear removes all records.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM records")
	return err
}

// GetKV returns the value for a key, empty string if absent.
func (s *SQLiteStore) GetKV(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetKV stores a key-value pair.
func (s *SQLiteStore) SetKV(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, value)
	return err
}

// RecordCount returns the number of stored records.
func (s *SQLiteStore) RecordCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}
