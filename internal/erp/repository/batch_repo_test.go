package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/testutil"
)

func seedBatch(t *testing.T, repo *BatchRepository, qty int, stage entity.Stage, updatedAt time.Time) *entity.ProductionBatch {
	t.Helper()
	b := &entity.ProductionBatch{
		ID:           "batch-" + time.Now().Format("150405.000000"),
		BatchCode:    "PB-TEST",
		SKU:          "RG-100",
		Quantity:     qty,
		CurrentStage: stage,
		Type:         entity.BatchTypeProduction,
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("Failed to seed batch: %v", err)
	}
	return b
}

func TestSplitConservesQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	past := time.Now().Add(-50 * time.Hour)
	orig := seedBatch(t, repo, 10, entity.StageCasting, past)

	moved, err := repo.Split(ctx, orig, 4, entity.StagePolishing, "batch-split-new")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if moved.Quantity != 4 || moved.CurrentStage != entity.StagePolishing {
		t.Errorf("moved batch = %d @ %s, want 4 @ polishing", moved.Quantity, moved.CurrentStage)
	}
	if !moved.CreatedAt.Equal(orig.CreatedAt) {
		t.Error("moved batch must keep the original created_at")
	}

	remainder, err := repo.FindByID(ctx, orig.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if remainder.Quantity != 6 || remainder.CurrentStage != entity.StageCasting {
		t.Errorf("remainder = %d @ %s, want 6 @ casting", remainder.Quantity, remainder.CurrentStage)
	}

	if moved.Quantity+remainder.Quantity != 10 {
		t.Errorf("quantity not conserved: %d + %d != 10", moved.Quantity, remainder.Quantity)
	}

	// splitting re-baselines the delay timer on the remainder too
	if time.Since(remainder.UpdatedAt) > time.Minute {
		t.Errorf("remainder updated_at not refreshed: %v", remainder.UpdatedAt)
	}
}

func TestSplitRejectsOutOfRangeQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	orig := seedBatch(t, repo, 5, entity.StageWaxing, time.Now())

	for _, qty := range []int{0, -1, 5, 6} {
		if _, err := repo.Split(ctx, orig, qty, entity.StageCasting, "batch-bad"); err == nil {
			t.Errorf("Split with qty=%d should fail", qty)
		}
	}

	// the full-quantity path goes through UpdateStage, never Split
	remainder, _ := repo.FindByID(ctx, orig.ID)
	if remainder.Quantity != 5 {
		t.Errorf("rejected splits must not mutate the batch, quantity = %d", remainder.Quantity)
	}
}

func TestUpdateStageRefreshesTimer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	past := time.Now().Add(-50 * time.Hour)
	b := seedBatch(t, repo, 3, entity.StageWaxing, past)

	if err := repo.UpdateStage(ctx, b.ID, entity.StageCasting); err != nil {
		t.Fatalf("UpdateStage failed: %v", err)
	}

	got, _ := repo.FindByID(ctx, b.ID)
	if got.CurrentStage != entity.StageCasting {
		t.Errorf("stage = %s, want casting", got.CurrentStage)
	}
	if time.Since(got.UpdatedAt) > time.Minute {
		t.Errorf("updated_at not refreshed on stage move: %v", got.UpdatedAt)
	}
}

func TestGenerateCodeFormat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBatchRepository(db)

	code, err := repo.GenerateCode(context.Background())
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}

	// PB-YYYYMMDD plus a 4-digit suffix that does not depend on row counts
	wantPrefix := "PB-" + time.Now().Format("20060102")
	if !strings.HasPrefix(code, wantPrefix) || len(code) != len(wantPrefix)+4 {
		t.Errorf("code = %q, want %s + 4-digit suffix", code, wantPrefix)
	}
}

func TestUpdateStageMissingBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBatchRepository(db)

	if err := repo.UpdateStage(context.Background(), "no-such-batch", entity.StageCasting); err == nil {
		t.Error("UpdateStage on a missing batch should fail")
	}
}
