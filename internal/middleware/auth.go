package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// accessClaims are the JWT claims issued by the identity service.
// store_id is empty for administrative users.
type accessClaims struct {
	StoreID string `json:"store_id"`
	Admin   bool   `json:"admin"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores the resulting actor
// in the request context for handlers and services downstream.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &accessClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			GetLoggerFromContext(c).Warn("Invalid access token", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is missing subject"})
			return
		}

		actor := domain.Actor{
			UserID:  claims.Subject,
			StoreID: claims.StoreID,
			IsAdmin: claims.Admin,
		}

		requestLogger := GetLoggerFromContext(c).With(
			slog.String("user_id", actor.UserID),
			slog.String("store_id", actor.StoreID),
		)

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, userIDKey, actor.UserID)
		ctx = context.WithValue(ctx, actorKey, actor)
		ctx = context.WithValue(ctx, loggerCtxKey, requestLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(loggerKey), requestLogger)

		c.Next()
	}
}
