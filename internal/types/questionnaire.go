package types

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionQuestionnaire is the pet profile collected at checkout.
// One row per Shopify order; never edited after intake.
type SubscriptionQuestionnaire struct {
	ID               uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderID          string             `gorm:"uniqueIndex;not null;column:order_id" json:"order_id"`
	DogName          string             `gorm:"not null;column:dog_name" json:"dog_name"`
	DogGender        string             `gorm:"column:dog_gender" json:"dog_gender"`
	DogSize          string             `gorm:"column:dog_size" json:"dog_size"`
	Breed            string             `gorm:"not null;column:breed" json:"breed"`
	Birthday         *time.Time         `gorm:"column:birthday" json:"birthday,omitempty"`
	AdoptionDay      *time.Time         `gorm:"column:adoption_day" json:"adoption_day,omitempty"`
	ToyPreference    string             `gorm:"column:toy_preference" json:"toy_preference"`
	Allergies        string             `gorm:"column:allergies" json:"allergies"`
	Email            string             `gorm:"not null;column:email" json:"email"`
	SubscriptionPlan string             `gorm:"column:subscription_plan" json:"subscription_plan"`
	Feedbacks        []ProductFeedback  `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionnaireID;references:ID" json:"feedbacks,omitempty"`
	Recommendations  []AIRecommendation `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionnaireID;references:ID" json:"recommendations,omitempty"`
	CreatedAt        time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (SubscriptionQuestionnaire) TableName() string {
	return "subscription_questionnaire"
}
