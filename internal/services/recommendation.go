package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

// GenerateResult carries the persisted snapshot plus the parsed ranking.
type GenerateResult struct {
	Snapshot        *types.AIRecommendation       `json:"snapshot"`
	Recommendations []types.ProductRecommendation `json:"recommendations"`
}

type RecommendationService interface {
	Generate(ctx context.Context, questionnaireID uuid.UUID) (*GenerateResult, error)
	FeedbackSummary(ctx context.Context, questionnaireID uuid.UUID) (string, error)
}

type recommendationService struct {
	db            *gorm.DB
	log           *logger.Logger
	questionnaire repos.QuestionnaireRepo
	snapshots     repos.AIRecommendationRepo
	storefront    Storefront
	model         ChatModel
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	questionnaireRepo repos.QuestionnaireRepo,
	snapshotRepo repos.AIRecommendationRepo,
	storefront Storefront,
	model ChatModel,
) RecommendationService {
	return &recommendationService{
		db:            db,
		log:           baseLog.With("service", "RecommendationService"),
		questionnaire: questionnaireRepo,
		snapshots:     snapshotRepo,
		storefront:    storefront,
		model:         model,
	}
}

// Generate ranks the live catalog for one dog and stores the result keyed by
// the current year-month: regenerating within a month overwrites in place.
// A model response that cannot be parsed is a hard error, not retried.
func (s *recommendationService) Generate(ctx context.Context, questionnaireID uuid.UUID) (*GenerateResult, error) {
	if s.storefront == nil || s.model == nil {
		return nil, fmt.Errorf("recommendation generation requires shopify and openai credentials")
	}

	questionnaire, err := s.questionnaire.GetByIDWithHistory(ctx, nil, questionnaireID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, fmt.Errorf("questionnaire lookup: %w", err)
	}

	catalog, err := s.storefront.GetProducts(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	system, user := buildRecommendationPrompt(questionnaire, catalog)

	responseText, err := s.model.GenerateText(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	recommendations, err := parseRecommendations(responseText)
	if err != nil {
		s.log.Error("Failed to parse model response",
			"questionnaire_id", questionnaireID, "response", responseText, "error", err)
		return nil, err
	}

	payload, err := json.Marshal(recommendations)
	if err != nil {
		return nil, fmt.Errorf("encode recommendations: %w", err)
	}

	snapshot := &types.AIRecommendation{
		QuestionnaireID:     questionnaireID,
		MonthYear:           time.Now().UTC().Format("2006-01"),
		RecommendedProducts: datatypes.JSON(payload),
		ModelResponse:       responseText,
	}
	snapshot, err = s.snapshots.Upsert(ctx, nil, snapshot)
	if err != nil {
		return nil, fmt.Errorf("store recommendation snapshot: %w", err)
	}

	s.log.Info("Recommendations generated",
		"questionnaire_id", questionnaireID, "month_year", snapshot.MonthYear, "count", len(recommendations))
	return &GenerateResult{Snapshot: snapshot, Recommendations: recommendations}, nil
}

// FeedbackSummary produces a short plain-text read on the dog's likes and
// dislikes. Model trouble degrades to an empty summary rather than failing
// the caller.
func (s *recommendationService) FeedbackSummary(ctx context.Context, questionnaireID uuid.UUID) (string, error) {
	questionnaire, err := s.questionnaire.GetByIDWithHistory(ctx, nil, questionnaireID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrQuestionnaireNotFound
		}
		return "", fmt.Errorf("questionnaire lookup: %w", err)
	}
	if len(questionnaire.Feedbacks) == 0 || s.model == nil {
		return "", nil
	}

	summary, err := s.model.GenerateText(ctx, "", buildSummaryPrompt(questionnaire))
	if err != nil {
		s.log.Warn("Feedback summary generation failed", "questionnaire_id", questionnaireID, "error", err)
		return "", nil
	}
	return strings.TrimSpace(summary), nil
}

// parseRecommendations is defensive against prose around the payload: it
// first tries the bracket-delimited array substring, then the raw response.
func parseRecommendations(responseText string) ([]types.ProductRecommendation, error) {
	var recommendations []types.ProductRecommendation

	start := strings.Index(responseText, "[")
	end := strings.LastIndex(responseText, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &recommendations); err == nil {
			return recommendations, nil
		}
	}

	if err := json.Unmarshal([]byte(responseText), &recommendations); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelResponseInvalid, err)
	}
	return recommendations, nil
}

const recommendationSystemPrompt = `You are an expert pet product curator for a premium dog toy subscription box service.
Your job is to analyze customer preferences, previous feedback, and available inventory to recommend the best products for each dog.

Consider factors like:
- Dog size and breed (some toys are better for certain sizes/energy levels)
- Toy preferences (plush, durable, mix)
- Allergies (avoid products with specific ingredients)
- Previous feedback (what they liked/disliked)
- Product variety (don't recommend too similar items)`

func buildRecommendationPrompt(questionnaire *types.SubscriptionQuestionnaire, catalog []types.CatalogProduct) (string, string) {
	var b strings.Builder

	b.WriteString("Please recommend 3-5 products for this subscription box:\n\n")
	b.WriteString("DOG PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", questionnaire.DogName)
	fmt.Fprintf(&b, "- Gender: %s\n", questionnaire.DogGender)
	fmt.Fprintf(&b, "- Size: %s\n", questionnaire.DogSize)
	fmt.Fprintf(&b, "- Breed: %s\n", questionnaire.Breed)
	fmt.Fprintf(&b, "- Toy Preference: %s\n", questionnaire.ToyPreference)
	fmt.Fprintf(&b, "- Allergies: %s\n\n", questionnaire.Allergies)

	if len(questionnaire.Feedbacks) > 0 {
		b.WriteString("PREVIOUS FEEDBACK:\n")
		for i, fb := range questionnaire.Feedbacks {
			rating := "Not rated"
			if fb.Rating != nil {
				rating = fmt.Sprintf("%d/5", *fb.Rating)
			}
			comments := fb.Comments
			if comments == "" {
				comments = "No comments"
			}
			fmt.Fprintf(&b, "%d. %s\n   Rating: %s\n   Comments: %s\n\n", i+1, fb.ProductTitle, rating, comments)
		}
	} else {
		b.WriteString("No previous feedback available (first box)\n\n")
	}

	b.WriteString("AVAILABLE PRODUCTS:\n")
	for i, p := range catalog {
		fmt.Fprintf(&b, "%d. ID: %s\n   Title: %s\n   Description: %s\n   Type: %s\n   Tags: %s\n\n",
			i+1, p.ID, p.Title, p.Description, p.ProductType, strings.Join(p.Tags, ", "))
	}

	b.WriteString(`Please respond with a JSON array of 3-5 recommended products in this exact format:
[
  {
    "productId": "product_id_here",
    "productTitle": "product_title_here",
    "reasoning": "Brief explanation of why this product is a good fit",
    "confidence": 0.95
  }
]

Only return the JSON array, no additional text.`)

	return recommendationSystemPrompt, b.String()
}

func buildSummaryPrompt(questionnaire *types.SubscriptionQuestionnaire) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following product feedback for %s and provide a brief summary of their preferences and dislikes:\n\n", questionnaire.DogName)
	b.WriteString("FEEDBACK HISTORY:\n")
	for i, fb := range questionnaire.Feedbacks {
		rating := "Not rated"
		if fb.Rating != nil {
			rating = fmt.Sprintf("%d/5", *fb.Rating)
		}
		comments := fb.Comments
		if comments == "" {
			comments = "No comments"
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n   Rating: %s\n   Comments: %s\n\n",
			i+1, fb.ProductTitle, fb.CreatedAt.Format("2006-01-02"), rating, comments)
	}
	fmt.Fprintf(&b, "Provide a concise summary (2-3 sentences) highlighting patterns in what %s enjoys and what to avoid.", questionnaire.DogName)
	return b.String()
}
