// Package stats records command usage in SQLite. Client IPs are never stored
// raw; they are hashed with a per-store salt.
package stats

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"termfolio/internal/logger"
)

var log = logger.Named("stats")

var ErrClosed = errors.New("stats: store is closed")

const schema = `
CREATE TABLE IF NOT EXISTS usage (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	command TEXT NOT NULL,
	recognized INTEGER NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_usage_command ON usage(command);
CREATE INDEX IF NOT EXISTS idx_usage_timestamp ON usage(timestamp);
`

// Event is one resolved command request.
type Event struct {
	Command    string
	Recognized bool
	Source     string
	IP         string
	UserAgent  string
}

// Count is the number of times a command was requested.
type Count struct {
	Command string `json:"command"`
	Count   int64  `json:"count"`
}

// Summary aggregates the usage table.
type Summary struct {
	Total          int64   `json:"total"`
	UniqueVisitors int64   `json:"unique_visitors"`
	Today          int64   `json:"today"`
	NotFound       int64   `json:"not_found"`
	Commands       []Count `json:"commands"`
}

// Store wraps the SQLite database.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (or creates) the database at path. An empty salt is replaced by
// a random one, so hashes are only stable for the lifetime of the store.
func Open(path, salt string) (*Store, error) {
	if salt == "" {
		var err error
		if salt, err = randomSalt(); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	// modernc sqlite 不支持多连接并发写
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create stats schema: %w", err)
	}
	log.WithField("path", path).Info("stats store ready")
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

func randomSalt() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// HashIP returns the salted, truncated hash stored in place of ip.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record inserts one usage row.
func (s *Store) Record(ctx context.Context, ev Event) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage (command, recognized, source, hashed_ip, user_agent, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.Command, ev.Recognized, ev.Source, s.HashIP(ev.IP), ev.UserAgent, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Summary returns totals and per-command counts, most requested first.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	if s == nil || s.db == nil {
		return Summary{}, ErrClosed
	}
	var sum Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM usage`).
		Scan(&sum.Total, &sum.UniqueVisitors); err != nil {
		return Summary{}, fmt.Errorf("count usage: %w", err)
	}
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usage WHERE timestamp >= ?`, midnight).
		Scan(&sum.Today); err != nil {
		return Summary{}, fmt.Errorf("count today: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usage WHERE recognized = 0`).
		Scan(&sum.NotFound); err != nil {
		return Summary{}, fmt.Errorf("count not found: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT command, COUNT(*) AS n FROM usage
		WHERE recognized = 1
		GROUP BY command
		ORDER BY n DESC, command ASC
	`)
	if err != nil {
		return Summary{}, fmt.Errorf("query command counts: %w", err)
	}
	defer rows.Close()
	sum.Commands = []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Command, &c.Count); err != nil {
			return Summary{}, fmt.Errorf("scan command count: %w", err)
		}
		sum.Commands = append(sum.Commands, c)
	}
	return sum, rows.Err()
}

// Prune deletes rows older than maxAge and returns how many were removed.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM usage WHERE timestamp < ?`, s.now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("prune usage: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.WithField("rows", n).Info("pruned old usage rows")
	}
	return n, nil
}
