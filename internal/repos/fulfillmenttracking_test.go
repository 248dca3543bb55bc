package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/repos/testutil"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

func TestListDueForFeedback_InclusiveBoundary(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewFulfillmentTrackingRepo(db, log)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	due := testutil.SeedFulfillment(t, ctx, tx, "order-due", now.Add(-time.Hour))
	exact := testutil.SeedFulfillment(t, ctx, tx, "order-exact", now)
	testutil.SeedFulfillment(t, ctx, tx, "order-future", now.Add(time.Hour))

	rows, err := repo.ListDueForFeedback(ctx, tx, now)
	if err != nil {
		t.Fatalf("ListDueForFeedback: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 due rows, got %d", len(rows))
	}
	got := map[string]bool{}
	for _, r := range rows {
		got[r.OrderID] = true
	}
	if !got[due.OrderID] || !got[exact.OrderID] {
		t.Fatalf("expected due and exact-boundary rows, got %v", got)
	}
}

func TestListDueForFeedback_SkipsAlreadySent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewFulfillmentTrackingRepo(db, log)
	ctx := context.Background()

	now := time.Now().UTC()
	row := testutil.SeedFulfillment(t, ctx, tx, "order-sent", now.Add(-time.Hour))
	sentAt := now.Add(-30 * time.Minute)
	if err := tx.Model(&types.FulfillmentTracking{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{"status": types.FulfillmentStatusFeedbackSent, "feedback_sent_at": sentAt}).Error; err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	rows, err := repo.ListDueForFeedback(ctx, tx, now)
	if err != nil {
		t.Fatalf("ListDueForFeedback: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no due rows, got %d", len(rows))
	}
}

func TestClaimForFeedback_OnlyFirstClaimerWins(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewFulfillmentTrackingRepo(db, log)
	ctx := context.Background()

	now := time.Now().UTC()
	row := testutil.SeedFulfillment(t, ctx, tx, "order-claim", now.Add(-time.Hour))

	claimed, err := repo.ClaimForFeedback(ctx, tx, row.ID, now)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if !claimed {
		t.Fatalf("expected first claim to succeed")
	}

	claimed, err = repo.ClaimForFeedback(ctx, tx, row.ID, now)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claimed {
		t.Fatalf("expected second claim to fail")
	}
}

func TestMarkFeedbackSent_RequiresClaim(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewFulfillmentTrackingRepo(db, log)
	ctx := context.Background()

	now := time.Now().UTC()
	row := testutil.SeedFulfillment(t, ctx, tx, "order-mark", now.Add(-time.Hour))

	if _, err := repo.ClaimForFeedback(ctx, tx, row.ID, now); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := repo.MarkFeedbackSent(ctx, tx, row.ID, now); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{row.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload: %v (%d rows)", err, len(got))
	}
	if got[0].Status != types.FulfillmentStatusFeedbackSent {
		t.Fatalf("expected status feedback_sent, got %q", got[0].Status)
	}
	if got[0].FeedbackSentAt == nil {
		t.Fatalf("expected feedback_sent_at to be set")
	}
}

func TestReleaseFeedbackClaim_ReturnsToFulfilledAndCountsAttempt(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewFulfillmentTrackingRepo(db, log)
	ctx := context.Background()

	now := time.Now().UTC()
	row := testutil.SeedFulfillment(t, ctx, tx, "order-release", now.Add(-time.Hour))

	if _, err := repo.ClaimForFeedback(ctx, tx, row.ID, now); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := repo.ReleaseFeedbackClaim(ctx, tx, row.ID, 5); err != nil {
		t.Fatalf("release: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{row.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload: %v (%d rows)", err, len(got))
	}
	if got[0].Status != types.FulfillmentStatusFulfilled {
		t.Fatalf("expected status fulfilled after release, got %q", got[0].Status)
	}
	if got[0].FeedbackAttempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", got[0].FeedbackAttempts)
	}
}

func TestReleaseFeedbackClaim_AbandonsAtMaxAttempts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewFulfillmentTrackingRepo(db, log)
	ctx := context.Background()

	now := time.Now().UTC()
	row := testutil.SeedFulfillment(t, ctx, tx, "order-abandon", now.Add(-time.Hour))

	maxAttempts := 2
	for i := 0; i < maxAttempts; i++ {
		claimed, err := repo.ClaimForFeedback(ctx, tx, row.ID, now)
		if err != nil || !claimed {
			t.Fatalf("claim %d: claimed=%v err=%v", i, claimed, err)
		}
		if err := repo.ReleaseFeedbackClaim(ctx, tx, row.ID, maxAttempts); err != nil {
			t.Fatalf("release %d: %v", i, err)
		}
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{row.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload: %v (%d rows)", err, len(got))
	}
	if got[0].Status != types.FulfillmentStatusFeedbackAbandoned {
		t.Fatalf("expected status feedback_abandoned, got %q", got[0].Status)
	}
	if got[0].FeedbackAttempts != maxAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAttempts, got[0].FeedbackAttempts)
	}

	// Abandoned rows never come back into the sweep.
	due, err := repo.ListDueForFeedback(ctx, tx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListDueForFeedback: %v", err)
	}
	for _, r := range due {
		if r.ID == row.ID {
			t.Fatalf("abandoned row still listed as due")
		}
	}
}
