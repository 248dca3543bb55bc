package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type ProductFeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ProductFeedback) ([]*types.ProductFeedback, error)
	GetByQuestionnaireIDs(ctx context.Context, tx *gorm.DB, questionnaireIDs []uuid.UUID) ([]*types.ProductFeedback, error)
	ListPendingByQuestionnaireID(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID) ([]*types.ProductFeedback, error)
	FillPendingResponse(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, productID string, rating *int, comments string, respondedAt time.Time) (bool, error)
}

type productFeedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) ProductFeedbackRepo {
	repoLog := baseLog.With("repo", "ProductFeedbackRepo")
	return &productFeedbackRepo{db: db, log: repoLog}
}

func (pr *productFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ProductFeedback) ([]*types.ProductFeedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(rows) == 0 {
		return []*types.ProductFeedback{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (pr *productFeedbackRepo) GetByQuestionnaireIDs(ctx context.Context, tx *gorm.DB, questionnaireIDs []uuid.UUID) ([]*types.ProductFeedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.ProductFeedback
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

func (pr *productFeedbackRepo) ListPendingByQuestionnaireID(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID) ([]*types.ProductFeedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.ProductFeedback
	if err := transaction.WithContext(ctx).
		Where("questionnaire_id = ? AND responded_at IS NULL", questionnaireID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FillPendingResponse stamps the oldest pending placeholder for the product,
// if one exists. Returns false when there is no placeholder to fill, in
// which case the caller inserts a fresh responded row instead.
func (pr *productFeedbackRepo) FillPendingResponse(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, productID string, rating *int, comments string, respondedAt time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var pending types.ProductFeedback
	err := transaction.WithContext(ctx).
		Where("questionnaire_id = ? AND product_id = ? AND responded_at IS NULL", questionnaireID, productID).
		Order("created_at ASC").
		First(&pending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	res := transaction.WithContext(ctx).
		Model(&types.ProductFeedback{}).
		Where("id = ? AND responded_at IS NULL", pending.ID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"comments":     comments,
			"responded_at": respondedAt,
			"updated_at":   respondedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
