package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pawcrate/pawcrate-backend/internal/repos"
	"github.com/pawcrate/pawcrate-backend/internal/repos/testutil"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

func TestUpsert_OverwritesWithinSameMonth(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewAIRecommendationRepo(db, log)
	ctx := context.Background()

	q := testutil.SeedQuestionnaire(t, ctx, tx, "order-rec")

	first, err := repo.Upsert(ctx, tx, &types.AIRecommendation{
		QuestionnaireID:     q.ID,
		MonthYear:           "2026-08",
		RecommendedProducts: datatypes.JSON([]byte(`[{"productId":"a"}]`)),
		ModelResponse:       "first",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, &types.AIRecommendation{
		QuestionnaireID:     q.ID,
		MonthYear:           "2026-08",
		RecommendedProducts: datatypes.JSON([]byte(`[{"productId":"b"}]`)),
		ModelResponse:       "second",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByPeriod(ctx, tx, q.ID, "2026-08")
	if err != nil {
		t.Fatalf("GetByPeriod: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a snapshot row")
	}
	if got.ModelResponse != "second" {
		t.Fatalf("expected overwritten snapshot, got %q", got.ModelResponse)
	}

	rows, err := repo.GetByQuestionnaireIDs(ctx, tx, []uuid.UUID{q.ID})
	if err != nil {
		t.Fatalf("GetByQuestionnaireIDs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row for the month, got %d", len(rows))
	}
	_ = first
	_ = second
}

func TestUpsert_KeepsDistinctMonths(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewAIRecommendationRepo(db, log)
	ctx := context.Background()

	q := testutil.SeedQuestionnaire(t, ctx, tx, "order-rec-months")

	for _, month := range []string{"2026-07", "2026-08"} {
		if _, err := repo.Upsert(ctx, tx, &types.AIRecommendation{
			QuestionnaireID: q.ID,
			MonthYear:       month,
			ModelResponse:   month,
		}); err != nil {
			t.Fatalf("upsert %s: %v", month, err)
		}
	}

	rows, err := repo.GetByQuestionnaireIDs(ctx, tx, []uuid.UUID{q.ID})
	if err != nil {
		t.Fatalf("GetByQuestionnaireIDs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 monthly snapshots, got %d", len(rows))
	}
}

func TestGetByPeriod_NilWhenMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := repos.NewAIRecommendationRepo(db, log)
	ctx := context.Background()

	q := testutil.SeedQuestionnaire(t, ctx, tx, "order-rec-none")

	got, err := repo.GetByPeriod(ctx, tx, q.ID, "1999-01")
	if err != nil {
		t.Fatalf("GetByPeriod: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing period, got %+v", got)
	}
}
