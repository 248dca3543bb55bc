package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type QuestionnaireIntake struct {
	OrderID          string
	DogName          string
	DogGender        string
	DogSize          string
	Breed            string
	Birthday         *time.Time
	AdoptionDay      *time.Time
	ToyPreference    string
	Allergies        string
	Email            string
	SubscriptionPlan string
}

type QuestionnaireService interface {
	Intake(ctx context.Context, input QuestionnaireIntake) (*types.SubscriptionQuestionnaire, error)
	List(ctx context.Context) ([]*types.SubscriptionQuestionnaire, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*types.SubscriptionQuestionnaire, error)
}

type questionnaireService struct {
	db         *gorm.DB
	log        *logger.Logger
	repo       repos.QuestionnaireRepo
	storefront Storefront
	mailer     Mailer
}

func NewQuestionnaireService(db *gorm.DB, baseLog *logger.Logger, repo repos.QuestionnaireRepo, storefront Storefront, mailer Mailer) QuestionnaireService {
	return &questionnaireService{
		db:         db,
		log:        baseLog.With("service", "QuestionnaireService"),
		repo:       repo,
		storefront: storefront,
		mailer:     mailer,
	}
}

// Intake persists the pet profile and mirrors it onto the Shopify order as a
// note. The note write and the welcome email are best-effort: the
// questionnaire row is the source of truth.
func (s *questionnaireService) Intake(ctx context.Context, input QuestionnaireIntake) (*types.SubscriptionQuestionnaire, error) {
	if input.OrderID == "" || input.DogName == "" || input.Breed == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: orderId, dogName, breed and email are required", ErrInvalidInput)
	}

	exists, err := s.repo.OrderIDExists(ctx, nil, input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("check order id: %w", err)
	}
	if exists {
		return nil, ErrDuplicateOrder
	}

	questionnaire := &types.SubscriptionQuestionnaire{
		OrderID:          input.OrderID,
		DogName:          input.DogName,
		DogGender:        input.DogGender,
		DogSize:          input.DogSize,
		Breed:            input.Breed,
		Birthday:         input.Birthday,
		AdoptionDay:      input.AdoptionDay,
		ToyPreference:    input.ToyPreference,
		Allergies:        input.Allergies,
		Email:            input.Email,
		SubscriptionPlan: input.SubscriptionPlan,
	}

	created, err := s.repo.Create(ctx, nil, []*types.SubscriptionQuestionnaire{questionnaire})
	if err != nil {
		return nil, fmt.Errorf("create questionnaire: %w", err)
	}
	questionnaire = created[0]

	note := formatQuestionnaireAsNote(input)
	if s.storefront != nil {
		if ok, err := s.storefront.UpdateOrderNote(ctx, input.OrderID, note); err != nil || !ok {
			s.log.Warn("Failed to write questionnaire note to order",
				"order_id", input.OrderID, "error", err)
		}
	}

	if s.mailer != nil {
		if _, err := s.mailer.SendWelcomeEmail(ctx, input.Email, input.DogName); err != nil {
			s.log.Warn("Failed to send welcome email", "order_id", input.OrderID, "error", err)
		}
	}

	return questionnaire, nil
}

func (s *questionnaireService) List(ctx context.Context) ([]*types.SubscriptionQuestionnaire, error) {
	return s.repo.List(ctx, nil)
}

func (s *questionnaireService) GetDetail(ctx context.Context, id uuid.UUID) (*types.SubscriptionQuestionnaire, error) {
	questionnaire, err := s.repo.GetByIDWithHistory(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return questionnaire, nil
}

func formatQuestionnaireAsNote(input QuestionnaireIntake) string {
	parts := []string{
		"SUBSCRIPTION QUESTIONNAIRE",
		"Dog Name: " + input.DogName,
		"Gender: " + input.DogGender,
		"Size: " + input.DogSize,
		"Breed: " + input.Breed,
	}
	if input.Birthday != nil {
		parts = append(parts, "Birthday: "+input.Birthday.Format("2006-01-02"))
	}
	if input.AdoptionDay != nil {
		parts = append(parts, "Adoption Day: "+input.AdoptionDay.Format("2006-01-02"))
	}
	parts = append(parts,
		"Toy Preference: "+input.ToyPreference,
		"Allergies: "+input.Allergies,
		"Subscription Plan: "+input.SubscriptionPlan,
	)
	return strings.Join(parts, "\n")
}
