package security

import (
	"context"
	"strings"
)

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID int64
	Email  string
}

type contextKey int

const identityKey contextKey = iota

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext reports false for anonymous callers.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// BearerToken extracts the token from an Authorization header value.
// Anything other than "Bearer <token>" yields "".
func BearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// Authenticate resolves an Authorization header to an identity. Missing,
// malformed, badly signed and expired tokens all report false.
func Authenticate(tokens TokenService, header string) (Identity, bool) {
	raw := BearerToken(header)
	if raw == "" {
		return Identity{}, false
	}
	claims, err := tokens.Validate(raw)
	if err != nil {
		return Identity{}, false
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, true
}
