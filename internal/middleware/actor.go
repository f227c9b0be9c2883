package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ActorHeader carries the pre-authenticated actor identity. Authentication
// happens upstream at the platform gateway; this service only consumes the
// identity for audit attribution and never validates credentials itself.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware creates a Gin middleware that requires the actor identity
// header on every request in the group and threads it through the request
// context for audit attribution.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			logger.Warn("Actor identity header missing", slog.String("header", ActorHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ActorHeader + " header required"})
			return
		}

		// Store the actor ID in the standard context
		ctxWithActor := context.WithValue(c.Request.Context(), actorIDKey, actorID)

		// Add actor ID to the logger
		enrichedLogger := logger.With(slog.String("actor_id", actorID))

		// Store the enriched logger back into the standard context
		ctxWithLoggerAndActor := context.WithValue(ctxWithActor, loggerCtxKey, enrichedLogger)

		// Update the request context
		c.Request = c.Request.WithContext(ctxWithLoggerAndActor)

		c.Next()
	}
}
