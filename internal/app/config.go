package app

import (
	"strings"
	"time"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/utils"
)

type Config struct {
	Port                string
	AppURL              string
	CronSecret          string
	AdminAPIToken       string
	WebhookSecret       string
	AllowedOrigins      []string
	FeedbackDelay       time.Duration
	FeedbackMaxAttempts int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	appURL := utils.GetEnv("APP_URL", "http://localhost:3000", log)
	cronSecret := utils.GetEnv("CRON_SECRET", "", log)
	adminAPIToken := utils.GetEnv("ADMIN_API_TOKEN", "", log)
	webhookSecret := utils.GetEnv("SHOPIFY_WEBHOOK_SECRET", "", log)
	feedbackDelayDays := utils.GetEnvAsInt("FEEDBACK_DELAY_DAYS", 7, log)
	feedbackMaxAttempts := utils.GetEnvAsInt("FEEDBACK_MAX_ATTEMPTS", 5, log)

	var origins []string
	for _, o := range strings.Split(utils.GetEnv("ALLOWED_ORIGINS", "", log), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:                port,
		AppURL:              appURL,
		CronSecret:          cronSecret,
		AdminAPIToken:       adminAPIToken,
		WebhookSecret:       webhookSecret,
		AllowedOrigins:      origins,
		FeedbackDelay:       time.Duration(feedbackDelayDays) * 24 * time.Hour,
		FeedbackMaxAttempts: feedbackMaxAttempts,
	}
}
