package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

const (
	userIDKey = contextKey("userID")
	actorKey  = contextKey("actor")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetActorFromContext retrieves the authenticated actor from the request context.
func GetActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetActorFromGin retrieves the authenticated actor from the Gin request context.
func GetActorFromGin(c *gin.Context) (domain.Actor, bool) {
	return GetActorFromContext(c.Request.Context())
}
