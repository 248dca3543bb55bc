package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type QuestionnaireRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questionnaires []*types.SubscriptionQuestionnaire) ([]*types.SubscriptionQuestionnaire, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SubscriptionQuestionnaire, error)
	GetByIDWithHistory(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubscriptionQuestionnaire, error)
	GetByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.SubscriptionQuestionnaire, error)
	OrderIDExists(ctx context.Context, tx *gorm.DB, orderID string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.SubscriptionQuestionnaire, error)
}

type questionnaireRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionnaireRepo(db *gorm.DB, baseLog *logger.Logger) QuestionnaireRepo {
	repoLog := baseLog.With("repo", "QuestionnaireRepo")
	return &questionnaireRepo{db: db, log: repoLog}
}

func (qr *questionnaireRepo) Create(ctx context.Context, tx *gorm.DB, questionnaires []*types.SubscriptionQuestionnaire) ([]*types.SubscriptionQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(questionnaires) == 0 {
		return []*types.SubscriptionQuestionnaire{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questionnaires).Error; err != nil {
		return nil, err
	}

	return questionnaires, nil
}

func (qr *questionnaireRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SubscriptionQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.SubscriptionQuestionnaire
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionnaireRepo) GetByIDWithHistory(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubscriptionQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var result types.SubscriptionQuestionnaire
	if err := transaction.WithContext(ctx).
		Preload("Feedbacks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *questionnaireRepo) GetByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.SubscriptionQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.SubscriptionQuestionnaire
	if len(orderIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionnaireRepo) OrderIDExists(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.SubscriptionQuestionnaire{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (qr *questionnaireRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.SubscriptionQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.SubscriptionQuestionnaire
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
