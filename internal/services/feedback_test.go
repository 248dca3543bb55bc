package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pawcrate/pawcrate-backend/internal/types"
)

func seedFeedbackFixtures(t *testing.T, questionnaires *fakeQuestionnaireRepo, feedback *fakeFeedbackRepo) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	qs, err := questionnaires.Create(ctx, nil, []*types.SubscriptionQuestionnaire{{
		OrderID: "order-fb",
		DogName: "Biscuit",
		Email:   "owner@example.com",
	}})
	if err != nil {
		t.Fatalf("seed questionnaire: %v", err)
	}
	q := qs[0]

	if _, err := feedback.Create(ctx, nil, []*types.ProductFeedback{{
		QuestionnaireID: q.ID,
		ProductID:       "prod-1",
		ProductTitle:    "Rope Tug",
	}}); err != nil {
		t.Fatalf("seed placeholder: %v", err)
	}
	return q.ID
}

func TestSubmit_FillsPlaceholderInPlace(t *testing.T) {
	questionnaires := newFakeQuestionnaireRepo()
	feedback := newFakeFeedbackRepo()
	qID := seedFeedbackFixtures(t, questionnaires, feedback)

	svc := NewFeedbackService(nil, testLogger(t), questionnaires, feedback)

	rating := 5
	saved, err := svc.Submit(context.Background(), qID, []FeedbackItem{{
		ProductID: "prod-1",
		Rating:    &rating,
		Comments:  "destroyed in a day, loved every minute",
	}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if saved != 1 {
		t.Fatalf("expected 1 saved, got %d", saved)
	}

	rows, _ := feedback.GetByQuestionnaireIDs(context.Background(), nil, []uuid.UUID{qID})
	if len(rows) != 1 {
		t.Fatalf("expected fill-in-place, got %d rows", len(rows))
	}
	if rows[0].Rating == nil || *rows[0].Rating != 5 || rows[0].RespondedAt == nil {
		t.Fatalf("placeholder not filled: %+v", rows[0])
	}
}

func TestSubmit_InsertsRowForUnsolicitedProduct(t *testing.T) {
	questionnaires := newFakeQuestionnaireRepo()
	feedback := newFakeFeedbackRepo()
	qID := seedFeedbackFixtures(t, questionnaires, feedback)

	svc := NewFeedbackService(nil, testLogger(t), questionnaires, feedback)

	rating := 3
	saved, err := svc.Submit(context.Background(), qID, []FeedbackItem{{
		ProductID: "prod-extra",
		Rating:    &rating,
	}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if saved != 1 {
		t.Fatalf("expected 1 saved, got %d", saved)
	}

	rows, _ := feedback.GetByQuestionnaireIDs(context.Background(), nil, []uuid.UUID{qID})
	if len(rows) != 2 {
		t.Fatalf("expected inserted row plus placeholder, got %d", len(rows))
	}
	var inserted *types.ProductFeedback
	for _, r := range rows {
		if r.ProductID == "prod-extra" {
			inserted = r
		}
	}
	if inserted == nil {
		t.Fatalf("inserted row not found")
	}
	if inserted.ProductTitle != "Unknown Product" {
		t.Fatalf("expected default title, got %q", inserted.ProductTitle)
	}
	if inserted.RespondedAt == nil {
		t.Fatalf("expected inserted row to be responded")
	}
}

func TestSubmit_RejectsBadInput(t *testing.T) {
	questionnaires := newFakeQuestionnaireRepo()
	feedback := newFakeFeedbackRepo()
	qID := seedFeedbackFixtures(t, questionnaires, feedback)

	svc := NewFeedbackService(nil, testLogger(t), questionnaires, feedback)

	if _, err := svc.Submit(context.Background(), qID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty items, got %v", err)
	}

	rating := 6
	if _, err := svc.Submit(context.Background(), qID, []FeedbackItem{{ProductID: "prod-1", Rating: &rating}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range rating, got %v", err)
	}

	if _, err := svc.Submit(context.Background(), qID, []FeedbackItem{{Rating: nil}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing productId, got %v", err)
	}
}

func TestSubmit_UnknownQuestionnaire(t *testing.T) {
	questionnaires := newFakeQuestionnaireRepo()
	feedback := newFakeFeedbackRepo()

	svc := NewFeedbackService(nil, testLogger(t), questionnaires, feedback)

	rating := 4
	_, err := svc.Submit(context.Background(), uuid.New(), []FeedbackItem{{ProductID: "prod-1", Rating: &rating}})
	if !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("expected ErrQuestionnaireNotFound, got %v", err)
	}
}

func TestGetForm_ReturnsDogNameAndPending(t *testing.T) {
	questionnaires := newFakeQuestionnaireRepo()
	feedback := newFakeFeedbackRepo()
	qID := seedFeedbackFixtures(t, questionnaires, feedback)

	svc := NewFeedbackService(nil, testLogger(t), questionnaires, feedback)

	form, err := svc.GetForm(context.Background(), qID)
	if err != nil {
		t.Fatalf("GetForm: %v", err)
	}
	if form.DogName != "Biscuit" {
		t.Fatalf("expected dog name, got %q", form.DogName)
	}
	if len(form.Pending) != 1 || form.Pending[0].ProductID != "prod-1" {
		t.Fatalf("unexpected pending list: %+v", form.Pending)
	}
}
