package cart

import (
	"context"
	"time"
)

// SessionStore holds one cart State per session. Update must serialize
// calls for the same session id.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Update(ctx context.Context, sessionID string, fn func(State) (State, error)) (State, error)
	Delete(ctx context.Context, sessionID string) error
	Sweep(ctx context.Context, idle time.Duration) int
	Len() int
}
