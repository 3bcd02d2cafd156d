package session

import (
	"context"
	"strings"
)

type contextKey struct{}

// Identity describes the browser session an operation originates from.
type Identity struct {
	SessionID string
	UserID    string
	Token     string
}

// WithIdentity attaches the session identity to ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	identity.SessionID = strings.TrimSpace(identity.SessionID)
	identity.UserID = strings.TrimSpace(identity.UserID)
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}

// SessionID is a shortcut returning the session id from ctx or "".
func SessionID(ctx context.Context) string {
	identity, _ := FromContext(ctx)
	return identity.SessionID
}

// Token returns the platform token carried by ctx or "".
func Token(ctx context.Context) string {
	identity, _ := FromContext(ctx)
	return identity.Token
}

// UserID returns the authenticated user id carried by ctx or "".
func UserID(ctx context.Context) string {
	identity, _ := FromContext(ctx)
	return identity.UserID
}
