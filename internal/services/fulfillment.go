package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type FulfillmentService interface {
	TrackFulfillment(ctx context.Context, fulfillmentID string, orderID string, products []types.ShippedProduct) (*types.FulfillmentTracking, error)
}

type fulfillmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	trackingRepo repos.FulfillmentTrackingRepo

	feedbackDelay time.Duration
}

func NewFulfillmentService(db *gorm.DB, baseLog *logger.Logger, trackingRepo repos.FulfillmentTrackingRepo, feedbackDelay time.Duration) FulfillmentService {
	if feedbackDelay <= 0 {
		feedbackDelay = 7 * 24 * time.Hour
	}
	return &fulfillmentService{
		db:            db,
		log:           baseLog.With("service", "FulfillmentService"),
		trackingRepo:  trackingRepo,
		feedbackDelay: feedbackDelay,
	}
}

// TrackFulfillment records a shipment event and schedules its feedback
// solicitation for fulfillment time plus the configured delay.
func (s *fulfillmentService) TrackFulfillment(ctx context.Context, fulfillmentID string, orderID string, products []types.ShippedProduct) (*types.FulfillmentTracking, error) {
	if fulfillmentID == "" || orderID == "" {
		return nil, fmt.Errorf("%w: fulfillment id and order id are required", ErrInvalidInput)
	}
	if products == nil {
		products = []types.ShippedProduct{}
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}

	now := time.Now().UTC()
	tracking := &types.FulfillmentTracking{
		ShopifyFulfillmentID: fulfillmentID,
		OrderID:              orderID,
		Status:               types.FulfillmentStatusFulfilled,
		FulfilledAt:          now,
		FeedbackScheduledFor: now.Add(s.feedbackDelay),
		Products:             datatypes.JSON(payload),
	}

	created, err := s.trackingRepo.Create(ctx, nil, []*types.FulfillmentTracking{tracking})
	if err != nil {
		return nil, fmt.Errorf("create fulfillment tracking: %w", err)
	}

	s.log.Info("Fulfillment tracking created",
		"tracking_id", created[0].ID,
		"order_id", orderID,
		"feedback_scheduled_for", created[0].FeedbackScheduledFor)
	return created[0], nil
}
