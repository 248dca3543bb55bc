package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
)

// CronMiddleware authenticates the external scheduler that triggers the
// feedback sweep endpoint.
type CronMiddleware struct {
	log    *logger.Logger
	secret string
}

func NewCronMiddleware(log *logger.Logger, secret string) *CronMiddleware {
	middlewareLogger := log.With("Middleware", "CronMiddleware")
	return &CronMiddleware{log: middlewareLogger, secret: secret}
}

func (cm *CronMiddleware) RequireCronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cm.secret == "" {
			c.Next()
			return
		}
		tokenString := extractBearerToken(c)
		if tokenString == "" || subtle.ConstantTimeCompare([]byte(tokenString), []byte(cm.secret)) != 1 {
			cm.log.Warn("Cron trigger rejected", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
