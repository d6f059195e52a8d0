package jwt

import "context"

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying the verified identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom извлекает identity, положенную в контекст middleware аутентификации
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}
