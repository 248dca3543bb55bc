package types

import (
	"time"

	"github.com/google/uuid"
)

// ProductFeedback is one customer's verdict on one shipped product. The
// sweep creates it as a pending placeholder (RespondedAt nil); the customer
// submission fills rating/comments and stamps RespondedAt exactly once.
type ProductFeedback struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionnaireID uuid.UUID  `gorm:"type:uuid;not null;index;column:questionnaire_id" json:"questionnaire_id"`
	FulfillmentID   string     `gorm:"column:fulfillment_id" json:"fulfillment_id"`
	ProductID       string     `gorm:"not null;column:product_id" json:"product_id"`
	ProductTitle    string     `gorm:"column:product_title" json:"product_title"`
	ProductImageURL string     `gorm:"column:product_image_url" json:"product_image_url"`
	Rating          *int       `gorm:"column:rating" json:"rating,omitempty"`
	Comments        string     `gorm:"column:comments" json:"comments"`
	EmailSentAt     *time.Time `gorm:"column:email_sent_at" json:"email_sent_at,omitempty"`
	RespondedAt     *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (ProductFeedback) TableName() string {
	return "product_feedback"
}
