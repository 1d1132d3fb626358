package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// TokenCache keeps the session between CLI invocations so each command does
// not need a fresh password grant. Only the bearer token is stored.
type TokenCache struct {
	db *sql.DB
}

const tokenCacheSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	email         TEXT PRIMARY KEY,
	bearer_token  TEXT NOT NULL,
	expires_at    INTEGER NOT NULL,
	owner_user_id TEXT NOT NULL
)`

// OpenTokenCache opens (and creates) the cache database at path
func OpenTokenCache(path string) (*TokenCache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return NewTokenCache(db)
}

// NewTokenCache uses an already opened database
func NewTokenCache(db *sql.DB) (*TokenCache, error) {
	// a second connection to :memory: would see an empty database
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(tokenCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return &TokenCache{db: db}, nil
}

// Close closes the underlying database
func (c *TokenCache) Close() error {
	return c.db.Close()
}

// Save stores s for email, replacing any previous session
func (c *TokenCache) Save(email string, s Session) error {
	_, err := c.db.Exec(`
		INSERT INTO sessions (email, bearer_token, expires_at, owner_user_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			bearer_token = excluded.bearer_token,
			expires_at = excluded.expires_at,
			owner_user_id = excluded.owner_user_id`,
		email, s.BearerToken, s.ExpiresAt.UnixMilli(), s.OwnerUserID)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session of email. Sessions already inside the
// expiry buffer at now are treated as missing.
func (c *TokenCache) Load(email string, now time.Time) (Session, bool, error) {
	var (
		s       Session
		expires int64
	)
	err := c.db.QueryRow(
		`SELECT bearer_token, expires_at, owner_user_id FROM sessions WHERE email = ?`, email,
	).Scan(&s.BearerToken, &expires, &s.OwnerUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to load session: %w", err)
	}
	s.ExpiresAt = time.UnixMilli(expires)
	if s.ExpiredAt(now) {
		return Session{}, false, nil
	}
	return s, true, nil
}

// Delete forgets the session of email
func (c *TokenCache) Delete(email string) error {
	if _, err := c.db.Exec(`DELETE FROM sessions WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
