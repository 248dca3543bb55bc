package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type AIRecommendationRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rec *types.AIRecommendation) (*types.AIRecommendation, error)
	GetByQuestionnaireIDs(ctx context.Context, tx *gorm.DB, questionnaireIDs []uuid.UUID) ([]*types.AIRecommendation, error)
	GetByPeriod(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, monthYear string) (*types.AIRecommendation, error)
}

type aiRecommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAIRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) AIRecommendationRepo {
	repoLog := baseLog.With("repo", "AIRecommendationRepo")
	return &aiRecommendationRepo{db: db, log: repoLog}
}

// Upsert writes the snapshot for (questionnaire, month); a second write in
// the same month overwrites the payload in place.
func (rr *aiRecommendationRepo) Upsert(ctx context.Context, tx *gorm.DB, rec *types.AIRecommendation) (*types.AIRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "questionnaire_id"}, {Name: "month_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"recommended_products", "model_response", "updated_at",
			}),
		}).
		Create(rec).Error; err != nil {
		return nil, err
	}

	return rec, nil
}

func (rr *aiRecommendationRepo) GetByQuestionnaireIDs(ctx context.Context, tx *gorm.DB, questionnaireIDs []uuid.UUID) ([]*types.AIRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.AIRecommendation
	if len(questionnaireIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("questionnaire_id IN ?", questionnaireIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *aiRecommendationRepo) GetByPeriod(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, monthYear string) (*types.AIRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.AIRecommendation
	err := transaction.WithContext(ctx).
		Where("questionnaire_id = ? AND month_year = ?", questionnaireID, monthYear).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
