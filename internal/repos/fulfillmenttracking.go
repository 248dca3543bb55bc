package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type FulfillmentTrackingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.FulfillmentTracking) ([]*types.FulfillmentTracking, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.FulfillmentTracking, error)
	ListDueForFeedback(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.FulfillmentTracking, error)
	ClaimForFeedback(ctx context.Context, tx *gorm.DB, id uuid.UUID, now time.Time) (bool, error)
	MarkFeedbackSent(ctx context.Context, tx *gorm.DB, id uuid.UUID, sentAt time.Time) error
	ReleaseFeedbackClaim(ctx context.Context, tx *gorm.DB, id uuid.UUID, maxAttempts int) error
}

type fulfillmentTrackingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFulfillmentTrackingRepo(db *gorm.DB, baseLog *logger.Logger) FulfillmentTrackingRepo {
	repoLog := baseLog.With("repo", "FulfillmentTrackingRepo")
	return &fulfillmentTrackingRepo{db: db, log: repoLog}
}

func (fr *fulfillmentTrackingRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.FulfillmentTracking) ([]*types.FulfillmentTracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(rows) == 0 {
		return []*types.FulfillmentTracking{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (fr *fulfillmentTrackingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.FulfillmentTracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.FulfillmentTracking
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

// ListDueForFeedback selects rows eligible for a feedback send. The due-time
// comparison is inclusive: a row scheduled for exactly `now` is selected.
func (fr *fulfillmentTrackingRepo) ListDueForFeedback(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.FulfillmentTracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.FulfillmentTracking
	if err := transaction.WithContext(ctx).
		Where("status = ? AND feedback_scheduled_for <= ? AND feedback_sent_at IS NULL",
			types.FulfillmentStatusFulfilled, now).
		Order("feedback_scheduled_for ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ClaimForFeedback flips one row to feedback_sending with a conditional
// update guarded by the selection predicate. Zero rows affected means a
// concurrent sweep already claimed or sent it.
func (fr *fulfillmentTrackingRepo) ClaimForFeedback(ctx context.Context, tx *gorm.DB, id uuid.UUID, now time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.FulfillmentTracking{}).
		Where("id = ? AND status = ? AND feedback_scheduled_for <= ? AND feedback_sent_at IS NULL",
			id, types.FulfillmentStatusFulfilled, now).
		Updates(map[string]interface{}{
			"status":     types.FulfillmentStatusFeedbackSending,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (fr *fulfillmentTrackingRepo) MarkFeedbackSent(ctx context.Context, tx *gorm.DB, id uuid.UUID, sentAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.FulfillmentTracking{}).
		Where("id = ? AND status = ?", id, types.FulfillmentStatusFeedbackSending).
		Updates(map[string]interface{}{
			"status":           types.FulfillmentStatusFeedbackSent,
			"feedback_sent_at": sentAt,
			"updated_at":       sentAt,
		}).Error
}

// ReleaseFeedbackClaim returns a claimed row to the pool after a failed
// attempt. Once the attempt counter reaches maxAttempts the row is parked as
// feedback_abandoned so the sweep stops reconsidering it.
func (fr *fulfillmentTrackingRepo) ReleaseFeedbackClaim(ctx context.Context, tx *gorm.DB, id uuid.UUID, maxAttempts int) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.FulfillmentTracking{}).
		Where("id = ? AND status = ?", id, types.FulfillmentStatusFeedbackSending).
		Updates(map[string]interface{}{
			"feedback_attempts": gorm.Expr("feedback_attempts + 1"),
			"status": gorm.Expr(
				"CASE WHEN feedback_attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts,
				types.FulfillmentStatusFeedbackAbandoned,
				types.FulfillmentStatusFulfilled,
			),
			"updated_at": time.Now().UTC(),
		}).Error
}
