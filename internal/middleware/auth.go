package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bacaxnot/finance-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and stores its subject as the
// authenticated user id.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret, issuer)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		ctx := WithUserID(c.Request.Context(), userID)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
