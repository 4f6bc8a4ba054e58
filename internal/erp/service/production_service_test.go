package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/atelierlab/aurum/internal/testutil"
	"gorm.io/gorm"
)

func setupProductionTest(t *testing.T) (*gorm.DB, *ProductionService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewProductionService(repos.Batch, repos.Product, repos.Material, repos.Order, repos.Collection)
	return db, svc
}

// seedCatalog creates a stone-set ring, a plain chain and an imported product.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedMaterial(t, db, "m-gold", "AU-585", "Gold 14k", entity.MaterialCategoryMetal)
	testutil.SeedMaterial(t, db, "m-zircon", "ZRC-3MM", "Zircon 3mm", entity.MaterialCategoryStone)

	testutil.SeedProduct(t, db, &entity.Product{
		ID: "p-ring", SKU: "RG-100", Name: "Solitaire Ring", Gender: entity.GenderWomen,
		Recipe: entity.RecipeItems{
			{Type: entity.RecipeItemRaw, MaterialID: "m-gold", Quantity: 3.5},
			{Type: entity.RecipeItemRaw, MaterialID: "m-zircon", Quantity: 1},
		},
	})
	testutil.SeedProduct(t, db, &entity.Product{
		ID: "p-chain", SKU: "NK-200", Name: "Plain Chain", Gender: entity.GenderMen,
		Recipe: entity.RecipeItems{
			{Type: entity.RecipeItemRaw, MaterialID: "m-gold", Quantity: 8},
		},
	})
	testutil.SeedProduct(t, db, &entity.Product{
		ID: "p-import", SKU: "ER-300", Name: "Imported Hoops",
		ProductionType: entity.ProductionImported,
	})
}

func seedBatch(t *testing.T, db *gorm.DB, id, sku string, qty int, stage entity.Stage) *entity.ProductionBatch {
	t.Helper()
	now := time.Now().Add(-2 * time.Hour)
	b := &entity.ProductionBatch{
		ID: id, BatchCode: "PB-" + id, SKU: sku, Quantity: qty,
		CurrentStage: stage, Type: entity.BatchTypeProduction,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("Failed to seed batch: %v", err)
	}
	return b
}

func TestCreateBatchInitialStage(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	inhouse, err := svc.CreateBatch(ctx, CreateBatchRequest{SKU: "RG-100", Quantity: 5}, "op-1")
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	if inhouse.CurrentStage != entity.StageWaxing {
		t.Errorf("inhouse batch starts at %s, want waxing", inhouse.CurrentStage)
	}

	imported, err := svc.CreateBatch(ctx, CreateBatchRequest{SKU: "ER-300", Quantity: 3}, "op-1")
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	if imported.CurrentStage != entity.StageAwaitingDelivery {
		t.Errorf("imported batch starts at %s, want awaiting_delivery", imported.CurrentStage)
	}

	if _, err := svc.CreateBatch(ctx, CreateBatchRequest{SKU: "XX-999", Quantity: 1}, "op-1"); err == nil {
		t.Error("CreateBatch with unknown sku should fail")
	}
}

func TestMoveNoOpOnSameStage(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	b := seedBatch(t, db, "b-noop", "NK-200", 5, entity.StageCasting)

	got, err := svc.Move(context.Background(), b.ID, entity.StageCasting, 5)
	if err != nil {
		t.Fatalf("no-op move errored: %v", err)
	}
	// no write happened, the stale timestamp survives
	if time.Since(got.UpdatedAt) < time.Hour {
		t.Error("no-op move must not touch updated_at")
	}
}

func TestMoveSkipGuard(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	plain := seedBatch(t, db, "b-plain", "NK-200", 5, entity.StageCasting)
	if _, err := svc.Move(ctx, plain.ID, entity.StageSetting, 5); !errors.Is(err, ErrSettingNotRequired) {
		t.Errorf("expected ErrSettingNotRequired, got %v", err)
	}
	got, _ := svc.batchRepo.FindByID(ctx, plain.ID)
	if got.CurrentStage != entity.StageCasting {
		t.Error("rejected move must not mutate the batch")
	}

	stoneSet := seedBatch(t, db, "b-stone", "RG-100", 5, entity.StageCasting)
	moved, err := svc.Move(ctx, stoneSet.ID, entity.StageSetting, 5)
	if err != nil {
		t.Fatalf("stone-set batch should enter setting: %v", err)
	}
	if moved.CurrentStage != entity.StageSetting {
		t.Errorf("stage = %s, want setting", moved.CurrentStage)
	}
}

func TestMovePartialImportReceiveRejected(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	b := seedBatch(t, db, "b-import", "ER-300", 10, entity.StageAwaitingDelivery)

	if _, err := svc.Move(ctx, b.ID, entity.StageLabeling, 4); !errors.Is(err, ErrPartialImportReceive) {
		t.Errorf("expected ErrPartialImportReceive, got %v", err)
	}

	// full-batch receive goes through
	moved, err := svc.Move(ctx, b.ID, entity.StageLabeling, 10)
	if err != nil {
		t.Fatalf("full receive failed: %v", err)
	}
	if moved.CurrentStage != entity.StageLabeling {
		t.Errorf("stage = %s, want labeling", moved.CurrentStage)
	}
}

func TestMoveFullQuantityKeepsSingleRecord(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	orig := seedBatch(t, db, "b-full", "NK-200", 8, entity.StageWaxing)

	moved, err := svc.Move(ctx, orig.ID, entity.StageCasting, 8)
	if err != nil {
		t.Fatalf("full move failed: %v", err)
	}
	if moved.ID != orig.ID {
		t.Errorf("full move must keep the same record, got %s", moved.ID)
	}
	if moved.Quantity != 8 || moved.CurrentStage != entity.StageCasting {
		t.Errorf("moved = %d @ %s, want 8 @ casting", moved.Quantity, moved.CurrentStage)
	}

	// moving the whole quantity never creates a sibling batch
	var count int64
	db.Model(&entity.ProductionBatch{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 batch record after full move, got %d", count)
	}
}

func TestMoveSplitsPartialQuantity(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	orig := seedBatch(t, db, "b-split", "NK-200", 10, entity.StageCasting)

	moved, err := svc.Move(ctx, orig.ID, entity.StagePolishing, 4)
	if err != nil {
		t.Fatalf("partial move failed: %v", err)
	}
	if moved.ID == orig.ID {
		t.Fatal("partial move must create a new batch record")
	}
	if moved.Quantity != 4 || moved.CurrentStage != entity.StagePolishing {
		t.Errorf("moved = %d @ %s, want 4 @ polishing", moved.Quantity, moved.CurrentStage)
	}

	remainder, _ := svc.batchRepo.FindByID(ctx, orig.ID)
	if remainder.Quantity != 6 || remainder.CurrentStage != entity.StageCasting {
		t.Errorf("remainder = %d @ %s, want 6 @ casting", remainder.Quantity, remainder.CurrentStage)
	}

	if _, err := svc.Move(ctx, orig.ID, entity.StagePolishing, 7); !errors.Is(err, ErrBadSplitQuantity) {
		t.Errorf("expected ErrBadSplitQuantity for oversized qty, got %v", err)
	}
}

func TestQuickNext(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	// plain product skips setting: casting -> polishing
	plain := seedBatch(t, db, "b-qn-plain", "NK-200", 5, entity.StageCasting)
	moved, err := svc.QuickNext(ctx, plain.ID)
	if err != nil {
		t.Fatalf("QuickNext failed: %v", err)
	}
	if moved.CurrentStage != entity.StagePolishing {
		t.Errorf("stage = %s, want polishing (setting skipped)", moved.CurrentStage)
	}

	// stone-set product goes casting -> setting
	stoneSet := seedBatch(t, db, "b-qn-stone", "RG-100", 5, entity.StageCasting)
	moved, err = svc.QuickNext(ctx, stoneSet.ID)
	if err != nil {
		t.Fatalf("QuickNext failed: %v", err)
	}
	if moved.CurrentStage != entity.StageSetting {
		t.Errorf("stage = %s, want setting", moved.CurrentStage)
	}

	// imported product receives straight into labeling
	imported := seedBatch(t, db, "b-qn-import", "ER-300", 5, entity.StageAwaitingDelivery)
	moved, err = svc.QuickNext(ctx, imported.ID)
	if err != nil {
		t.Fatalf("QuickNext failed: %v", err)
	}
	if moved.CurrentStage != entity.StageLabeling {
		t.Errorf("stage = %s, want labeling", moved.CurrentStage)
	}

	// terminal stage has no successor
	done := seedBatch(t, db, "b-qn-done", "NK-200", 5, entity.StageReady)
	if _, err := svc.QuickNext(ctx, done.ID); !errors.Is(err, ErrNoFurtherStage) {
		t.Errorf("expected ErrNoFurtherStage, got %v", err)
	}
}

func TestDelayedListing(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	late := time.Now().Add(-49 * time.Hour)
	fresh := time.Now().Add(-1 * time.Hour)

	for _, b := range []*entity.ProductionBatch{
		{ID: "b-late", BatchCode: "PB-1", SKU: "NK-200", Quantity: 2, CurrentStage: entity.StageWaxing, Type: entity.BatchTypeProduction, CreatedAt: late, UpdatedAt: late},
		{ID: "b-fresh", BatchCode: "PB-2", SKU: "NK-200", Quantity: 2, CurrentStage: entity.StageWaxing, Type: entity.BatchTypeProduction, CreatedAt: fresh, UpdatedAt: fresh},
		{ID: "b-ready", BatchCode: "PB-3", SKU: "NK-200", Quantity: 2, CurrentStage: entity.StageReady, Type: entity.BatchTypeProduction, CreatedAt: late, UpdatedAt: late},
	} {
		if err := db.Create(b).Error; err != nil {
			t.Fatalf("Failed to seed batch: %v", err)
		}
	}

	delayed, err := svc.Delayed(ctx)
	if err != nil {
		t.Fatalf("Delayed failed: %v", err)
	}
	if len(delayed) != 1 || delayed[0].ID != "b-late" {
		t.Errorf("delayed = %+v, want only b-late", delayed)
	}
}

func TestOrderDispatchCreatesBatch(t *testing.T) {
	db, svc := setupProductionTest(t)
	seedCatalog(t, db)
	ctx := context.Background()

	repos := repository.NewRepositories(db)
	orderSvc := NewOrderService(repos.Order, svc)

	order, err := orderSvc.Create(ctx, CreateOrderRequest{
		CustomerName: "Eleni K.",
		Items: []CreateOrderLine{
			{SKU: "RG-100", SizeInfo: "54", Quantity: 2},
		},
	}, "op-1")
	if err != nil {
		t.Fatalf("Create order failed: %v", err)
	}
	wantPrefix := "SO-" + time.Now().Format("20060102")
	if !strings.HasPrefix(order.OrderCode, wantPrefix) || len(order.OrderCode) != len(wantPrefix)+4 {
		t.Errorf("order code = %q, want %s + 4-digit suffix", order.OrderCode, wantPrefix)
	}

	batch, err := orderSvc.Dispatch(ctx, order.ID, order.Items[0].ID, "op-1")
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if batch.CurrentStage != entity.StageWaxing || batch.Quantity != 2 {
		t.Errorf("batch = %d @ %s, want 2 @ waxing", batch.Quantity, batch.CurrentStage)
	}
	if batch.OrderID == nil || *batch.OrderID != order.ID {
		t.Error("batch must reference the order")
	}

	// the customer name flows into the enriched view
	enriched, err := svc.ListEnriched(ctx, repository.BatchListParams{OrderID: order.ID})
	if err != nil {
		t.Fatalf("ListEnriched failed: %v", err)
	}
	if len(enriched) != 1 || enriched[0].CustomerName != "Eleni K." {
		t.Errorf("enriched = %+v, want customer Eleni K.", enriched)
	}

	// double dispatch is rejected
	if _, err := orderSvc.Dispatch(ctx, order.ID, order.Items[0].ID, "op-1"); err == nil {
		t.Error("dispatching the same line twice should fail")
	}
}
