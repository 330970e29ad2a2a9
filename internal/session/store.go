package session

import (
	"context"
	"time"
)

// Session maps an opaque client-presented identifier to a user id.
// It stores an identity pointer only, no auth state.
type Session struct {
	SessionID string    // unique, unguessable identifier
	UserID    int64     // references the user store
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) for unknown or expired sessions; callers
// treat that identically to "not authenticated". Delete is idempotent.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
