package sessionstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// orphanTTL is how long rows of a session that never closed survive. A
// live session older than this may lose entries, which only costs a
// recomputed pass.
const orphanTTL = 24 * time.Hour

// SQLite is a Store backed by an SQLite database. Several sessions can share
// one database file; every store only sees the rows of its own session.
type SQLite struct {
	conn    *sql.DB
	session string

	mu     sync.Mutex
	closed bool
}

// OpenSQLite opens (or creates) the database at path. An empty path or
// ":memory:" uses a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := strings.TrimSpace(path)
	memory := dsn == "" || dsn == ":memory:"
	if memory {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		dsn += "?_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if memory {
		// Each pooled connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLite{conn: conn, session: uuid.NewString()}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := s.purgeExpired(orphanTTL); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session_cache (
			session TEXT NOT NULL,
			key TEXT NOT NULL,
			value BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session, key)
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// purgeExpired removes rows older than ttl from any session, which reclaims
// the rows of sessions that exited without Close.
func (s *SQLite) purgeExpired(ttl time.Duration) error {
	_, err := s.conn.Exec(
		`DELETE FROM session_cache WHERE created_at < datetime('now', ?)`,
		fmt.Sprintf("-%d seconds", int64(ttl/time.Second)),
	)
	if err != nil {
		return fmt.Errorf("purge expired sessions: %w", err)
	}
	return nil
}

// Session returns the id scoping this store's rows.
func (s *SQLite) Session() string {
	return s.session
}

// Get implements Store.
func (s *SQLite) Get(key string) ([]byte, bool, error) {
	if err := s.checkOpen(); err != nil {
		return nil, false, err
	}
	var value []byte
	err := s.conn.QueryRow(
		`SELECT value FROM session_cache WHERE session = ? AND key = ?`,
		s.session, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	return value, true, nil
}

// Put implements Store.
func (s *SQLite) Put(key string, value []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.conn.Exec(
		`INSERT INTO session_cache (session, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(session, key) DO UPDATE SET value = excluded.value, created_at = CURRENT_TIMESTAMP`,
		s.session, key, value,
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *SQLite) Clear() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if _, err := s.conn.Exec(`DELETE FROM session_cache WHERE session = ?`, s.session); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Close ends the session: its rows are removed and the connection closed.
func (s *SQLite) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	_, purgeErr := s.conn.Exec(`DELETE FROM session_cache WHERE session = ?`, s.session)
	closeErr := s.conn.Close()
	if purgeErr != nil {
		return fmt.Errorf("purge session: %w", purgeErr)
	}
	return closeErr
}

func (s *SQLite) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
