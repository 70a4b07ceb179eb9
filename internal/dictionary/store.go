// SPDX-License-Identifier: MIT

// Package dictionary persists per-language protected phrases and applies
// them to machine segmentation output. A protected phrase never carries a
// break inside it, whatever the model thinks.
package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go driver
)

// MaxPhraseLen caps stored phrases; longer entries are almost certainly
// whole sentences pasted by mistake.
const MaxPhraseLen = 128

// Store persists protected phrases in SQLite.
type Store struct {
	db *sql.DB
}

// Open initializes the dictionary database at path. WAL mode and busy
// timeout are set in the DSN so they apply to every pooled connection.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	lang       TEXT NOT NULL,
	phrase     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (lang, phrase)
)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Add registers a protected phrase for lang. Adding an existing phrase is a
// no-op.
func (s *Store) Add(ctx context.Context, lang, phrase string) error {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return fmt.Errorf("empty phrase")
	}
	if len(phrase) > MaxPhraseLen {
		return fmt.Errorf("phrase exceeds %d bytes", MaxPhraseLen)
	}
	if lang == "" {
		return fmt.Errorf("empty lang")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (lang, phrase) VALUES (?, ?)
		 ON CONFLICT (lang, phrase) DO NOTHING`, lang, phrase)
	if err != nil {
		return fmt.Errorf("insert phrase: %w", err)
	}
	return nil
}

// Remove deletes a protected phrase. It reports whether the phrase existed.
func (s *Store) Remove(ctx context.Context, lang, phrase string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entries WHERE lang = ? AND phrase = ?`, lang, phrase)
	if err != nil {
		return false, fmt.Errorf("delete phrase: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns all protected phrases for lang, longest first so longer
// protections win when occurrences nest.
func (s *Store) List(ctx context.Context, lang string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT phrase FROM entries WHERE lang = ? ORDER BY length(phrase) DESC, phrase`, lang)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// HealthCheck verifies the database is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
