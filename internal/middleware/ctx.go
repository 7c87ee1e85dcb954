package middleware

import (
	"context"

	"carnetvoyage/internal/models"
)

type ctxKey string

const (
	ContextUserID ctxKey = "user_id"
	ContextUser   ctxKey = "user"
)

func WithUser(ctx context.Context, user *models.PublicUser) context.Context {
	ctx = context.WithValue(ctx, ContextUser, user)
	return context.WithValue(ctx, ContextUserID, user.ID)
}

func UserFromContext(ctx context.Context) (*models.PublicUser, bool) {
	u, ok := ctx.Value(ContextUser).(*models.PublicUser)
	return u, ok
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ContextUserID).(int)
	return id, ok
}
