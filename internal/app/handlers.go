package app

import (
	"github.com/pawcrate/pawcrate-backend/internal/handlers"
	"github.com/pawcrate/pawcrate-backend/internal/logger"
)

type Handlers struct {
	Questionnaire  *handlers.QuestionnaireHandler
	Feedback       *handlers.FeedbackHandler
	Recommendation *handlers.RecommendationHandler
	Jobs           *handlers.JobsHandler
	Webhooks       *handlers.WebhooksHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Questionnaire:  handlers.NewQuestionnaireHandler(log, services.Questionnaire, services.Recommendation),
		Feedback:       handlers.NewFeedbackHandler(log, services.Feedback),
		Recommendation: handlers.NewRecommendationHandler(log, services.Recommendation),
		Jobs:           handlers.NewJobsHandler(services.FeedbackScheduler),
		Webhooks:       handlers.NewWebhooksHandler(log, services.Fulfillment),
	}
}
