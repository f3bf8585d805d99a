// Package session keeps the artworks a user generated during the current
// session, so a download can return exactly what was previewed.
//
// Nothing outlives its TTL: expired sessions read as missing and
// [Store.Cleanup] drops them.
//
//   - [MemoryStore]: process-local, used by the preview server
//   - [FileStore]: JSON files, used by the TUI to keep the last artwork
//     across a crash within the TTL
//
// Usage:
//
//	sess := session.New(artwork, session.DefaultTTL)
//	_ = store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if err != nil { ... }
//	if sess == nil {
//	    // unknown or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ellipsegen/pkg/render/sink"
)

// DefaultTTL is how long a generated artwork stays downloadable.
const DefaultTTL = time.Hour

// Session is one generated artwork with its lifetime.
type Session struct {
	ID        string       `json:"id"`
	Artwork   sink.Artwork `json:"artwork"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// New wraps a in a session with a fresh random ID.
func New(a sink.Artwork, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Artwork:   a,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return s.isExpiredAt(time.Now())
}

func (s *Session) isExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// Store persists sessions for at most their TTL.
type Store interface {
	// Get returns nil, nil when the session is unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)

	Set(ctx context.Context, s *Session) error

	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// ValidID reports whether id is a well-formed session ID. Stores use it to
// reject path traversal and garbage before touching storage.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
