package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/types"
)

func SeedQuestionnaire(tb testing.TB, ctx context.Context, tx *gorm.DB, orderID string) *types.SubscriptionQuestionnaire {
	tb.Helper()
	q := &types.SubscriptionQuestionnaire{
		ID:            uuid.New(),
		OrderID:       orderID,
		DogName:       "Biscuit",
		DogGender:     "female",
		DogSize:       "medium",
		Breed:         "Corgi",
		ToyPreference: "squeaky",
		Email:         "owner@example.com",
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed questionnaire: %v", err)
	}
	return q
}

func SeedFulfillment(tb testing.TB, ctx context.Context, tx *gorm.DB, orderID string, scheduledFor time.Time) *types.FulfillmentTracking {
	tb.Helper()
	ft := &types.FulfillmentTracking{
		ID:                   uuid.New(),
		ShopifyFulfillmentID: "ful-" + orderID,
		OrderID:              orderID,
		Status:               types.FulfillmentStatusFulfilled,
		FulfilledAt:          scheduledFor.Add(-7 * 24 * time.Hour),
		FeedbackScheduledFor: scheduledFor,
		Products:             datatypes.JSON([]byte(`[{"id":"prod-1","title":"Rope Tug"},{"id":"prod-2","title":"Squeaky Duck"}]`)),
	}
	if err := tx.WithContext(ctx).Create(ft).Error; err != nil {
		tb.Fatalf("seed fulfillment: %v", err)
	}
	return ft
}

func SeedPendingFeedback(tb testing.TB, ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, productID string) *types.ProductFeedback {
	tb.Helper()
	now := time.Now().UTC()
	pf := &types.ProductFeedback{
		ID:              uuid.New(),
		QuestionnaireID: questionnaireID,
		ProductID:       productID,
		ProductTitle:    "Rope Tug",
		EmailSentAt:     &now,
	}
	if err := tx.WithContext(ctx).Create(pf).Error; err != nil {
		tb.Fatalf("seed pending feedback: %v", err)
	}
	return pf
}
