package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pawcrate/pawcrate-backend/internal/handlers"
	"github.com/pawcrate/pawcrate-backend/internal/middleware"
)

type RouterConfig struct {
	QuestionnaireHandler  *handlers.QuestionnaireHandler
	FeedbackHandler       *handlers.FeedbackHandler
	RecommendationHandler *handlers.RecommendationHandler
	JobsHandler           *handlers.JobsHandler
	WebhooksHandler       *handlers.WebhooksHandler
	AuthMiddleware        *middleware.AuthMiddleware
	CronMiddleware        *middleware.CronMiddleware
	WebhookMiddleware     *middleware.WebhookMiddleware
	AllowedOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("pawcrate-backend"))

	// Cors
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Shopper-facing feedback endpoints, reached from emailed links.
		api.POST("/feedback/submit", cfg.FeedbackHandler.Submit)
		api.GET("/feedback/:questionnaireId", cfg.FeedbackHandler.GetForm)

		// Scheduler trigger for the feedback sweep.
		jobs := api.Group("/jobs")
		jobs.Use(cfg.CronMiddleware.RequireCronSecret())
		jobs.POST("/send-feedback", cfg.JobsHandler.RunFeedbackSweep)
		jobs.GET("/send-feedback", cfg.JobsHandler.FeedbackSweepHint)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		// Questionnaire intake from the embedded admin post-purchase page.
		admin.POST("/questionnaire/submit", cfg.QuestionnaireHandler.Submit)
		admin.GET("/questionnaires", cfg.QuestionnaireHandler.List)
		admin.GET("/questionnaires/:id", cfg.QuestionnaireHandler.GetDetail)
		admin.GET("/questionnaires/:id/feedback-summary", cfg.QuestionnaireHandler.FeedbackSummary)
		admin.POST("/recommendations/:id/generate", cfg.RecommendationHandler.Generate)
	}

	// ===============
	// || Webhooks  ||
	// ===============
	webhooks := router.Group("/webhooks")
	webhooks.Use(cfg.WebhookMiddleware.VerifyShopifyHMAC())
	{
		webhooks.POST("/fulfillments/create", cfg.WebhooksHandler.FulfillmentCreated)
		webhooks.POST("/orders/create", cfg.WebhooksHandler.OrderCreated)
	}

	return router
}
