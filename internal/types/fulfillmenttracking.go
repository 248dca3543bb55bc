package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	FulfillmentStatusFulfilled         = "fulfilled"
	FulfillmentStatusFeedbackSending   = "feedback_sending"
	FulfillmentStatusFeedbackSent      = "feedback_sent"
	FulfillmentStatusFeedbackAbandoned = "feedback_abandoned"
)

// FulfillmentTracking records one shipment event and the schedule for its
// feedback solicitation. OrderID joins to SubscriptionQuestionnaire without
// an enforced foreign key: the webhook can arrive before intake.
type FulfillmentTracking struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ShopifyFulfillmentID string         `gorm:"not null;index;column:shopify_fulfillment_id" json:"shopify_fulfillment_id"`
	OrderID              string         `gorm:"not null;index;column:order_id" json:"order_id"`
	Status               string         `gorm:"not null;default:fulfilled;index;column:status" json:"status"`
	FulfilledAt          time.Time      `gorm:"not null;column:fulfilled_at" json:"fulfilled_at"`
	FeedbackScheduledFor time.Time      `gorm:"not null;index;column:feedback_scheduled_for" json:"feedback_scheduled_for"`
	FeedbackSentAt       *time.Time     `gorm:"column:feedback_sent_at" json:"feedback_sent_at,omitempty"`
	FeedbackAttempts     int            `gorm:"not null;default:0;column:feedback_attempts" json:"feedback_attempts"`
	Products             datatypes.JSON `gorm:"type:jsonb;column:products" json:"products"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (FulfillmentTracking) TableName() string {
	return "fulfillment_tracking"
}
