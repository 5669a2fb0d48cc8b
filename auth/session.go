package auth

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	// ErrNoSession is returned when the request carries no token.
	ErrNoSession = errors.New("auth: no session")
	// ErrInvalidSession is returned for tokens that fail verification.
	ErrInvalidSession = errors.New("auth: invalid session")
)

// Session is an authenticated console user.
type Session struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// SessionVerifier authenticates a request.
type SessionVerifier interface {
	Verify(r *http.Request) (*Session, error)
}

// VerifierFunc adapts a function to SessionVerifier.
type VerifierFunc func(r *http.Request) (*Session, error)

// Verify implements SessionVerifier.
func (f VerifierFunc) Verify(r *http.Request) (*Session, error) { return f(r) }

type sessionKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// New returns a JWT verifier for cfg, or nil when auth is disabled.
func New(cfg Config) (SessionVerifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return NewJWTVerifier(cfg)
}
