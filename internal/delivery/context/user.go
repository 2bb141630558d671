package context

import (
	"context"
	"log/slog"

	"accounts/internal/domain/entity"
)

// KeyUser is the key for storing the authenticated user in context.
const KeyUser ContextKey = "user"

// WithUser returns a new context carrying the authenticated user.
// A request-scoped logger already in ctx is replaced by one tagged with the user's id.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	ctx = context.WithValue(ctx, KeyUser, user)
	if logger := GetLogger(ctx); logger != nil && user != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", user.ID.String())))
	}

	return ctx
}

// UserFromContext returns the authenticated user, if the request carried a valid token.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(KeyUser).(*entity.User)

	return user, ok && user != nil
}
