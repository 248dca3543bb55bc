package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AIRecommendation is the monthly recommendation snapshot for one
// questionnaire. At most one row per (questionnaire, month); regenerating
// within the month overwrites in place.
type AIRecommendation struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionnaireID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_ai_recommendation_period;column:questionnaire_id" json:"questionnaire_id"`
	MonthYear           string         `gorm:"not null;uniqueIndex:idx_ai_recommendation_period;column:month_year" json:"month_year"`
	RecommendedProducts datatypes.JSON `gorm:"type:jsonb;column:recommended_products" json:"recommended_products"`
	ModelResponse       string         `gorm:"column:model_response" json:"model_response"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (AIRecommendation) TableName() string {
	return "ai_recommendation"
}
