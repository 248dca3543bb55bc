package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

// In-memory repo fakes. They keep only the semantics the services lean on:
// conditional claims, pending-placeholder fills and month-keyed upserts.

type fakeTrackingRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*types.FulfillmentTracking
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{rows: map[uuid.UUID]*types.FulfillmentTracking{}}
}

func (f *fakeTrackingRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.FulfillmentTracking) ([]*types.FulfillmentTracking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		if r.Status == "" {
			r.Status = types.FulfillmentStatusFulfilled
		}
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeTrackingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.FulfillmentTracking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.FulfillmentTracking, 0, len(ids))
	for _, id := range ids {
		if r, ok := f.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTrackingRepo) ListDueForFeedback(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.FulfillmentTracking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.FulfillmentTracking
	for _, r := range f.rows {
		if r.Status == types.FulfillmentStatusFulfilled && !r.FeedbackScheduledFor.After(now) && r.FeedbackSentAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTrackingRepo) ClaimForFeedback(ctx context.Context, tx *gorm.DB, id uuid.UUID, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.Status != types.FulfillmentStatusFulfilled {
		return false, nil
	}
	r.Status = types.FulfillmentStatusFeedbackSending
	return true, nil
}

func (f *fakeTrackingRepo) MarkFeedbackSent(ctx context.Context, tx *gorm.DB, id uuid.UUID, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.Status != types.FulfillmentStatusFeedbackSending {
		return gorm.ErrRecordNotFound
	}
	r.Status = types.FulfillmentStatusFeedbackSent
	r.FeedbackSentAt = &sentAt
	return nil
}

func (f *fakeTrackingRepo) ReleaseFeedbackClaim(ctx context.Context, tx *gorm.DB, id uuid.UUID, maxAttempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.FeedbackAttempts++
	if r.FeedbackAttempts >= maxAttempts {
		r.Status = types.FulfillmentStatusFeedbackAbandoned
	} else {
		r.Status = types.FulfillmentStatusFulfilled
	}
	return nil
}

type fakeQuestionnaireRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*types.SubscriptionQuestionnaire
}

func newFakeQuestionnaireRepo() *fakeQuestionnaireRepo {
	return &fakeQuestionnaireRepo{rows: map[uuid.UUID]*types.SubscriptionQuestionnaire{}}
}

func (f *fakeQuestionnaireRepo) Create(ctx context.Context, tx *gorm.DB, questionnaires []*types.SubscriptionQuestionnaire) ([]*types.SubscriptionQuestionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range questionnaires {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		f.rows[q.ID] = q
	}
	return questionnaires, nil
}

func (f *fakeQuestionnaireRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SubscriptionQuestionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.SubscriptionQuestionnaire, 0, len(ids))
	for _, id := range ids {
		if q, ok := f.rows[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionnaireRepo) GetByIDWithHistory(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubscriptionQuestionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuestionnaireRepo) GetByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.SubscriptionQuestionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.SubscriptionQuestionnaire
	for _, q := range f.rows {
		for _, oid := range orderIDs {
			if q.OrderID == oid {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (f *fakeQuestionnaireRepo) OrderIDExists(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.rows {
		if q.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQuestionnaireRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.SubscriptionQuestionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.SubscriptionQuestionnaire, 0, len(f.rows))
	for _, q := range f.rows {
		out = append(out, q)
	}
	return out, nil
}

type fakeFeedbackRepo struct {
	mu   sync.Mutex
	rows []*types.ProductFeedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ProductFeedback) ([]*types.ProductFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		f.rows = append(f.rows, r)
	}
	return rows, nil
}

func (f *fakeFeedbackRepo) GetByQuestionnaireIDs(ctx context.Context, tx *gorm.DB, questionnaireIDs []uuid.UUID) ([]*types.ProductFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.ProductFeedback
	for _, r := range f.rows {
		for _, id := range questionnaireIDs {
			if r.QuestionnaireID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) ListPendingByQuestionnaireID(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID) ([]*types.ProductFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.ProductFeedback
	for _, r := range f.rows {
		if r.QuestionnaireID == questionnaireID && r.RespondedAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) FillPendingResponse(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, productID string, rating *int, comments string, respondedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.QuestionnaireID == questionnaireID && r.ProductID == productID && r.RespondedAt == nil {
			r.Rating = rating
			r.Comments = comments
			at := respondedAt
			r.RespondedAt = &at
			return true, nil
		}
	}
	return false, nil
}

type fakeAIRecommendationRepo struct {
	mu   sync.Mutex
	rows map[string]*types.AIRecommendation
}

func newFakeAIRecommendationRepo() *fakeAIRecommendationRepo {
	return &fakeAIRecommendationRepo{rows: map[string]*types.AIRecommendation{}}
}

func (f *fakeAIRecommendationRepo) Upsert(ctx context.Context, tx *gorm.DB, rec *types.AIRecommendation) (*types.AIRecommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := rec.QuestionnaireID.String() + "|" + rec.MonthYear
	if existing, ok := f.rows[key]; ok {
		existing.RecommendedProducts = rec.RecommendedProducts
		existing.ModelResponse = rec.ModelResponse
		return existing, nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	f.rows[key] = rec
	return rec, nil
}

func (f *fakeAIRecommendationRepo) GetByQuestionnaireIDs(ctx context.Context, tx *gorm.DB, questionnaireIDs []uuid.UUID) ([]*types.AIRecommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.AIRecommendation
	for _, r := range f.rows {
		for _, id := range questionnaireIDs {
			if r.QuestionnaireID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeAIRecommendationRepo) GetByPeriod(ctx context.Context, tx *gorm.DB, questionnaireID uuid.UUID, monthYear string) (*types.AIRecommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[questionnaireID.String()+"|"+monthYear]
	if !ok {
		return nil, nil
	}
	return r, nil
}

// Collaborator fakes.

type fakeMailer struct {
	mu       sync.Mutex
	sendOK   bool
	sendErr  error
	feedback []types.FeedbackEmailData
	welcomes []string
}

func (f *fakeMailer) SendFeedbackEmail(ctx context.Context, data types.FeedbackEmailData) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return false, f.sendErr
	}
	if !f.sendOK {
		return false, nil
	}
	f.feedback = append(f.feedback, data)
	return true, nil
}

func (f *fakeMailer) SendWelcomeEmail(ctx context.Context, customerEmail string, dogName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, customerEmail)
	return true, nil
}

type fakeStorefront struct {
	products []types.CatalogProduct
	notes    map[string]string
}

func (f *fakeStorefront) GetProducts(ctx context.Context, first int) ([]types.CatalogProduct, error) {
	return f.products, nil
}

func (f *fakeStorefront) UpdateOrderNote(ctx context.Context, orderID string, note string) (bool, error) {
	if f.notes == nil {
		f.notes = map[string]string{}
	}
	f.notes[orderID] = note
	return true, nil
}

type fakeModel struct {
	response string
	err      error
}

func (f *fakeModel) GenerateText(ctx context.Context, system string, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
