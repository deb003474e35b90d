package sessionstore

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Record describes one saved session file.
type Record struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

// Store persists upstream login sessions, one blob per username. Usernames
// are validated by the HTTP layer before they reach the store.
type Store interface {
	Save(username string, data []byte) error
	Load(username string) ([]byte, error)
	List() ([]Record, error)
	Delete(username string) error
	Path(username string) string
}
