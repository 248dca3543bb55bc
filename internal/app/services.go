package app

import (
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/services"
)

type Services struct {
	Questionnaire     services.QuestionnaireService
	Fulfillment       services.FulfillmentService
	Feedback          services.FeedbackService
	FeedbackScheduler services.FeedbackSchedulerService
	Recommendation    services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var storefront services.Storefront
	if clients.Shopify != nil {
		storefront = clients.Shopify
	}
	var model services.ChatModel
	if clients.Openai != nil {
		model = clients.Openai
	}

	questionnaireService := services.NewQuestionnaireService(db, log, repos.Questionnaire, storefront, clients.Sendgrid)
	fulfillmentService := services.NewFulfillmentService(db, log, repos.FulfillmentTracking, cfg.FeedbackDelay)
	feedbackService := services.NewFeedbackService(db, log, repos.Questionnaire, repos.ProductFeedback)
	schedulerService := services.NewFeedbackSchedulerService(
		db, log,
		repos.FulfillmentTracking,
		repos.Questionnaire,
		repos.ProductFeedback,
		clients.Sendgrid,
		clients.SweepLock,
		cfg.AppURL,
		cfg.FeedbackMaxAttempts,
	)
	recommendationService := services.NewRecommendationService(db, log, repos.Questionnaire, repos.AIRecommendation, storefront, model)

	return Services{
		Questionnaire:     questionnaireService,
		Fulfillment:       fulfillmentService,
		Feedback:          feedbackService,
		FeedbackScheduler: schedulerService,
		Recommendation:    recommendationService,
	}
}
