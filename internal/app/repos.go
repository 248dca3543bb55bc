package app

import (
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/repos"
)

type Repos struct {
	Questionnaire       repos.QuestionnaireRepo
	FulfillmentTracking repos.FulfillmentTrackingRepo
	ProductFeedback     repos.ProductFeedbackRepo
	AIRecommendation    repos.AIRecommendationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Questionnaire:       repos.NewQuestionnaireRepo(db, log),
		FulfillmentTracking: repos.NewFulfillmentTrackingRepo(db, log),
		ProductFeedback:     repos.NewProductFeedbackRepo(db, log),
		AIRecommendation:    repos.NewAIRecommendationRepo(db, log),
	}
}
