package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins to call the API with bearer tokens
// and idempotency keys.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", IdempotencyKeyHeader, RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, IdempotencyHitHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
