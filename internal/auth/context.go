package auth

import (
	"context"
)

type ctxKey string

const (
	principalKey ctxKey = "principal"
)

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func FromContext(ctx context.Context) Principal {
	if v, ok := ctx.Value(principalKey).(Principal); ok {
		return v
	}
	return Principal{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).UserID
}
