package app

import (
	"github.com/gin-gonic/gin"

	"github.com/pawcrate/pawcrate-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		QuestionnaireHandler:  handlers.Questionnaire,
		FeedbackHandler:       handlers.Feedback,
		RecommendationHandler: handlers.Recommendation,
		JobsHandler:           handlers.Jobs,
		WebhooksHandler:       handlers.Webhooks,
		AuthMiddleware:        middleware.Auth,
		CronMiddleware:        middleware.Cron,
		WebhookMiddleware:     middleware.Webhook,
		AllowedOrigins:        cfg.AllowedOrigins,
	})
}
