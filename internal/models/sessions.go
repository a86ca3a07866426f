package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateSession binds an opaque token to a user id. Any live sessions for the
// same user are revoked first, so a user holds at most one active session.
func CreateSession(db *sql.DB, userID, token string, expires time.Time) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	_, err = db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, token, userID, expires)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func GetSession(db *sql.DB, token string) (*Session, error) {
	row := db.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, token)
	var s Session
	var revoked sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}

// RevokeSession invalidates a token. Revoking an already-revoked or unknown
// token is not an error.
func RevokeSession(db *sql.DB, token string) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ? AND revoked_at IS NULL`, token)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
