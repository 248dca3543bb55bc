package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type FeedbackItem struct {
	ProductID       string
	ProductTitle    string
	ProductImageURL string
	FulfillmentID   string
	Rating          *int
	Comments        string
}

// FeedbackForm is the payload backing the customer-facing feedback page.
type FeedbackForm struct {
	QuestionnaireID uuid.UUID                `json:"questionnaire_id"`
	DogName         string                   `json:"dog_name"`
	Pending         []*types.ProductFeedback `json:"pending"`
}

type FeedbackService interface {
	Submit(ctx context.Context, questionnaireID uuid.UUID, items []FeedbackItem) (int, error)
	GetForm(ctx context.Context, questionnaireID uuid.UUID) (*FeedbackForm, error)
}

type feedbackService struct {
	db            *gorm.DB
	log           *logger.Logger
	questionnaire repos.QuestionnaireRepo
	feedbackRepo  repos.ProductFeedbackRepo
}

func NewFeedbackService(db *gorm.DB, baseLog *logger.Logger, questionnaireRepo repos.QuestionnaireRepo, feedbackRepo repos.ProductFeedbackRepo) FeedbackService {
	return &feedbackService{
		db:            db,
		log:           baseLog.With("service", "FeedbackService"),
		questionnaire: questionnaireRepo,
		feedbackRepo:  feedbackRepo,
	}
}

// Submit records the customer's ratings. A submission fills the pending
// placeholder for (questionnaire, product) when the sweep pre-created one;
// otherwise it inserts a fresh responded row, so feedback for products we
// never solicited is still accepted.
func (s *feedbackService) Submit(ctx context.Context, questionnaireID uuid.UUID, items []FeedbackItem) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: feedback items required", ErrInvalidInput)
	}
	for _, item := range items {
		if item.ProductID == "" {
			return 0, fmt.Errorf("%w: productId required on every item", ErrInvalidInput)
		}
		if item.Rating != nil && (*item.Rating < 1 || *item.Rating > 5) {
			return 0, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
		}
	}

	existing, err := s.questionnaire.GetByIDs(ctx, nil, []uuid.UUID{questionnaireID})
	if err != nil {
		return 0, fmt.Errorf("questionnaire lookup: %w", err)
	}
	if len(existing) == 0 {
		return 0, ErrQuestionnaireNotFound
	}

	now := time.Now().UTC()
	saved := 0
	for _, item := range items {
		filled, err := s.feedbackRepo.FillPendingResponse(ctx, nil, questionnaireID, item.ProductID, item.Rating, item.Comments, now)
		if err != nil {
			return saved, fmt.Errorf("fill pending feedback: %w", err)
		}
		if filled {
			saved++
			continue
		}

		respondedAt := now
		title := item.ProductTitle
		if title == "" {
			title = "Unknown Product"
		}
		row := &types.ProductFeedback{
			QuestionnaireID: questionnaireID,
			FulfillmentID:   item.FulfillmentID,
			ProductID:       item.ProductID,
			ProductTitle:    title,
			ProductImageURL: item.ProductImageURL,
			Rating:          item.Rating,
			Comments:        item.Comments,
			RespondedAt:     &respondedAt,
		}
		if _, err := s.feedbackRepo.Create(ctx, nil, []*types.ProductFeedback{row}); err != nil {
			return saved, fmt.Errorf("create feedback: %w", err)
		}
		saved++
	}

	s.log.Info("Feedback submitted", "questionnaire_id", questionnaireID, "count", saved)
	return saved, nil
}

func (s *feedbackService) GetForm(ctx context.Context, questionnaireID uuid.UUID) (*FeedbackForm, error) {
	existing, err := s.questionnaire.GetByIDs(ctx, nil, []uuid.UUID{questionnaireID})
	if err != nil {
		return nil, fmt.Errorf("questionnaire lookup: %w", err)
	}
	if len(existing) == 0 {
		return nil, ErrQuestionnaireNotFound
	}

	pending, err := s.feedbackRepo.ListPendingByQuestionnaireID(ctx, nil, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("list pending feedback: %w", err)
	}

	return &FeedbackForm{
		QuestionnaireID: questionnaireID,
		DogName:         existing[0].DogName,
		Pending:         pending,
	}, nil
}
