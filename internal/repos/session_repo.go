package repos

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"gestorpro/internal/domain"
)

// ActiveUserKey is where the logged-in user is cached between runs.
const ActiveUserKey = "active_user"

// SessionRepo is a key-value store backed by the kv table.
type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

// Get returns sql.ErrNoRows when the key is absent.
func (r *SessionRepo) Get(key string) (string, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM kv WHERE key = ?`, key)
	return v, err
}

func (r *SessionRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

func (r *SessionRepo) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// SaveUser stores a serialized copy of u as the session marker.
func (r *SessionRepo) SaveUser(u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.Set(ActiveUserKey, string(b))
}

// User returns the cached user, or nil when no session is stored.
func (r *SessionRepo) User() (*domain.User, error) {
	v, err := r.Get(ActiveUserKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SessionRepo) Clear() error { return r.Delete(ActiveUserKey) }
