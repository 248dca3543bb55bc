package app

import (
	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/middleware"
)

type Middleware struct {
	Auth    *middleware.AuthMiddleware
	Cron    *middleware.CronMiddleware
	Webhook *middleware.WebhookMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:    middleware.NewAuthMiddleware(log, cfg.AdminAPIToken),
		Cron:    middleware.NewCronMiddleware(log, cfg.CronSecret),
		Webhook: middleware.NewWebhookMiddleware(log, cfg.WebhookSecret),
	}
}
