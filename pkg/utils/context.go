package utils

import (
	"context"

	"library-catalog/internal/data/entity"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	RolesKey    contextKey = "roles"
)

// SetUserContext stores the authenticated principal for the request.
func SetUserContext(ctx context.Context, userID int64, username string, roles []entity.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, UsernameKey, username)
	ctx = context.WithValue(ctx, RolesKey, roles)
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return 0, false
	}

	userID, ok := userIDVal.(int64)
	return userID, ok
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	usernameVal := ctx.Value(UsernameKey)
	if usernameVal == nil {
		return "", false
	}

	username, ok := usernameVal.(string)
	return username, ok
}

func GetRolesFromContext(ctx context.Context) ([]entity.Role, bool) {
	rolesVal := ctx.Value(RolesKey)
	if rolesVal == nil {
		return nil, false
	}

	roles, ok := rolesVal.([]entity.Role)
	return roles, ok
}
