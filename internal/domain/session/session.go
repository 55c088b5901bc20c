package session

import (
	"context"
	"errors"
	"time"

	"github.com/khoahotran/devfinder/internal/view"
)

var ErrNotFound = errors.New("session not found")

// Store keeps view state snapshots for live browser sessions.
type Store interface {
	Load(ctx context.Context, id string) (*view.State, error)
	Save(ctx context.Context, id string, state view.State, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
