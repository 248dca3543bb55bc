package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	redisclient "github.com/pawcrate/pawcrate-backend/internal/clients/redis"
	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

// SweepResult is the summary returned by one sweep invocation.
type SweepResult struct {
	Success   bool   `json:"success"`
	Processed int    `json:"processed"`
	Sent      int    `json:"sent"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// FeedbackSchedulerService runs the feedback-email sweep: select due
// fulfillment rows, claim each one, send the solicitation email, and create
// pending feedback placeholders. The sweep has no timer of its own; the cron
// trigger endpoint invokes it.
type FeedbackSchedulerService interface {
	RunSweep(ctx context.Context) SweepResult
}

type feedbackSchedulerService struct {
	db            *gorm.DB
	log           *logger.Logger
	trackingRepo  repos.FulfillmentTrackingRepo
	questionnaire repos.QuestionnaireRepo
	feedbackRepo  repos.ProductFeedbackRepo
	mailer        Mailer
	sweepLock     redisclient.SweepLock

	appURL      string
	maxAttempts int
}

func NewFeedbackSchedulerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	trackingRepo repos.FulfillmentTrackingRepo,
	questionnaireRepo repos.QuestionnaireRepo,
	feedbackRepo repos.ProductFeedbackRepo,
	mailer Mailer,
	sweepLock redisclient.SweepLock,
	appURL string,
	maxAttempts int,
) FeedbackSchedulerService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &feedbackSchedulerService{
		db:            db,
		log:           baseLog.With("service", "FeedbackSchedulerService"),
		trackingRepo:  trackingRepo,
		questionnaire: questionnaireRepo,
		feedbackRepo:  feedbackRepo,
		mailer:        mailer,
		sweepLock:     sweepLock,
		appURL:        strings.TrimRight(appURL, "/"),
		maxAttempts:   maxAttempts,
	}
}

func (s *feedbackSchedulerService) RunSweep(ctx context.Context) SweepResult {
	if s.sweepLock != nil {
		locked, release, err := s.sweepLock.TryLock(ctx)
		if err != nil {
			// Lock trouble should not stop the sweep: the per-row claim
			// still keeps concurrent triggers safe.
			s.log.Warn("Sweep lock unavailable, proceeding without it", "error", err)
		} else if !locked {
			s.log.Info("Sweep already running elsewhere, skipping")
			return SweepResult{Success: true, Processed: 0}
		} else {
			defer release()
		}
	}

	now := time.Now().UTC()

	due, err := s.trackingRepo.ListDueForFeedback(ctx, nil, now)
	if err != nil {
		s.log.Error("Failed to select due fulfillments", "error", err)
		return SweepResult{Success: false, Error: err.Error()}
	}

	s.log.Info("Running feedback email sweep", "due", len(due))

	result := SweepResult{Success: true, Processed: len(due)}
	for _, row := range due {
		sent, err := s.processRow(ctx, row, now)
		if err != nil {
			s.log.Error("Failed to process fulfillment, continuing",
				"tracking_id", row.ID, "order_id", row.OrderID, "error", err)
			result.Skipped++
			continue
		}
		if sent {
			result.Sent++
		} else {
			result.Skipped++
		}
	}

	s.log.Info("Feedback email sweep completed",
		"processed", result.Processed, "sent", result.Sent, "skipped", result.Skipped)
	return result
}

// processRow handles one due fulfillment. It returns (false, nil) when the
// row was claimed by a concurrent sweep, and an error for any failure after
// which the claim has been released back to the pool.
func (s *feedbackSchedulerService) processRow(ctx context.Context, row *types.FulfillmentTracking, now time.Time) (bool, error) {
	claimed, err := s.trackingRepo.ClaimForFeedback(ctx, nil, row.ID, now)
	if err != nil {
		return false, fmt.Errorf("claim: %w", err)
	}
	if !claimed {
		s.log.Debug("Row claimed by a concurrent sweep, skipping", "tracking_id", row.ID)
		return false, nil
	}

	questionnaires, err := s.questionnaire.GetByOrderIDs(ctx, nil, []string{row.OrderID})
	if err != nil {
		s.release(ctx, row)
		return false, fmt.Errorf("questionnaire lookup: %w", err)
	}
	if len(questionnaires) == 0 {
		s.release(ctx, row)
		return false, fmt.Errorf("no questionnaire for order %s", row.OrderID)
	}
	questionnaire := questionnaires[0]

	var products []types.ShippedProduct
	if err := json.Unmarshal(row.Products, &products); err != nil {
		s.release(ctx, row)
		return false, fmt.Errorf("decode products: %w", err)
	}

	feedbackURL := fmt.Sprintf("%s/feedback/%s", s.appURL, questionnaire.ID)

	sent, err := s.mailer.SendFeedbackEmail(ctx, types.FeedbackEmailData{
		CustomerEmail: questionnaire.Email,
		DogName:       questionnaire.DogName,
		FeedbackURL:   feedbackURL,
		Products:      products,
	})
	if err != nil {
		s.release(ctx, row)
		return false, fmt.Errorf("send feedback email: %w", err)
	}
	if !sent {
		s.release(ctx, row)
		return false, fmt.Errorf("mailer declined to send for order %s", row.OrderID)
	}

	if err := s.trackingRepo.MarkFeedbackSent(ctx, nil, row.ID, now); err != nil {
		// Email is out; leaving the row claimed would re-send on a future
		// sweep, so surface the error without releasing.
		return false, fmt.Errorf("mark feedback sent: %w", err)
	}

	placeholders := make([]*types.ProductFeedback, 0, len(products))
	for _, product := range products {
		productID := product.ID
		if productID == "" {
			productID = "unknown"
		}
		emailSentAt := now
		placeholders = append(placeholders, &types.ProductFeedback{
			QuestionnaireID: questionnaire.ID,
			FulfillmentID:   row.ShopifyFulfillmentID,
			ProductID:       productID,
			ProductTitle:    product.Title,
			ProductImageURL: product.ImageURL,
			EmailSentAt:     &emailSentAt,
		})
	}
	if _, err := s.feedbackRepo.Create(ctx, nil, placeholders); err != nil {
		return false, fmt.Errorf("create feedback placeholders: %w", err)
	}

	s.log.Info("Sent feedback email",
		"to", questionnaire.Email, "dog", questionnaire.DogName, "products", len(products))
	return true, nil
}

func (s *feedbackSchedulerService) release(ctx context.Context, row *types.FulfillmentTracking) {
	if err := s.trackingRepo.ReleaseFeedbackClaim(ctx, nil, row.ID, s.maxAttempts); err != nil {
		s.log.Error("Failed to release feedback claim", "tracking_id", row.ID, "error", err)
	}
}
