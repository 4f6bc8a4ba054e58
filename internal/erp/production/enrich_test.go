package production

import (
	"testing"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
)

func testRefData() RefData {
	products := []entity.Product{
		{
			ID: "p1", SKU: "RG-100", Name: "Solitaire Ring", Gender: entity.GenderWomen,
			Recipe: entity.RecipeItems{
				{Type: entity.RecipeItemRaw, MaterialID: "m-gold", Quantity: 3.5},
				{Type: entity.RecipeItemRaw, MaterialID: "m-zircon", Quantity: 1},
			},
		},
		{
			ID: "p2", SKU: "NK-200", Name: "Plain Chain", Gender: entity.GenderMen,
			Recipe: entity.RecipeItems{
				{Type: entity.RecipeItemRaw, MaterialID: "m-gold", Quantity: 8},
			},
		},
		{
			ID: "p3", SKU: "BR-300", Name: "Charm Bracelet", Gender: entity.GenderUnisex,
			Recipe: entity.RecipeItems{
				// component lines never count as stones, whatever they reference
				{Type: entity.RecipeItemComponent, SKU: "RG-100", Quantity: 1},
			},
		},
	}
	materials := []entity.Material{
		{ID: "m-gold", Code: "AU-585", Name: "Gold 14k", Category: entity.MaterialCategoryMetal},
		{ID: "m-zircon", Code: "ZRC-3MM", Name: "Zircon 3mm", Category: entity.MaterialCategoryStone},
	}
	orders := []entity.Order{
		{ID: "ord-001", OrderCode: "SO-20260801", CustomerName: "Eleni K."},
	}
	return BuildRefData(products, materials, orders)
}

func TestRequiresSetting(t *testing.T) {
	refs := testRefData()

	if !RequiresSetting(refs.Products["RG-100"], refs.Materials) {
		t.Error("product with a stone recipe line must require setting")
	}
	if RequiresSetting(refs.Products["NK-200"], refs.Materials) {
		t.Error("metal-only product must not require setting")
	}
	if RequiresSetting(refs.Products["BR-300"], refs.Materials) {
		t.Error("component recipe lines must not count as stones")
	}
	if RequiresSetting(nil, refs.Materials) {
		t.Error("missing product defaults to no setting")
	}
}

func TestEnrichDelayDetection(t *testing.T) {
	refs := testRefData()
	now := time.Now()

	tests := []struct {
		name        string
		stage       entity.Stage
		hoursAgo    int
		wantDelayed bool
		wantDiff    int
	}{
		{"waxing past threshold", entity.StageWaxing, 49, true, 49},
		{"waxing inside threshold", entity.StageWaxing, 47, false, 47},
		{"waxing exactly at threshold is not delayed", entity.StageWaxing, 48, false, 48},
		{"casting past threshold", entity.StageCasting, 25, true, 25},
		{"ready never delays", entity.StageReady, 500, false, 500},
		{"awaiting delivery never delays", entity.StageAwaitingDelivery, 500, false, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := entity.ProductionBatch{
				ID: "b1", SKU: "NK-200", Quantity: 5,
				CurrentStage: tt.stage,
				UpdatedAt:    now.Add(-time.Duration(tt.hoursAgo) * time.Hour),
			}
			eb := Enrich(b, refs, now)
			if eb.IsDelayed != tt.wantDelayed {
				t.Errorf("IsDelayed = %v, want %v", eb.IsDelayed, tt.wantDelayed)
			}
			if eb.DiffHours != tt.wantDiff {
				t.Errorf("DiffHours = %d, want %d", eb.DiffHours, tt.wantDiff)
			}
		})
	}
}

func TestEnrichResolvesReferences(t *testing.T) {
	refs := testRefData()
	now := time.Now()
	orderID := "ord-001"

	b := entity.ProductionBatch{
		ID: "b1", SKU: "RG-100", Quantity: 10,
		CurrentStage: entity.StageCasting,
		OrderID:      &orderID,
		UpdatedAt:    now.Add(-2 * time.Hour),
	}
	eb := Enrich(b, refs, now)

	if eb.Product == nil || eb.Product.Name != "Solitaire Ring" {
		t.Fatalf("product not resolved: %+v", eb.Product)
	}
	if !eb.RequiresSetting {
		t.Error("RG-100 carries a zircon, expected RequiresSetting")
	}
	if eb.CustomerName != "Eleni K." {
		t.Errorf("CustomerName = %q, want %q", eb.CustomerName, "Eleni K.")
	}
}

func TestEnrichDegradesOnMissingReferences(t *testing.T) {
	refs := testRefData()
	now := time.Now()
	ghostOrder := "ord-missing"

	b := entity.ProductionBatch{
		ID: "b2", SKU: "XX-999", Quantity: 1,
		CurrentStage: entity.StagePolishing,
		OrderID:      &ghostOrder,
		UpdatedAt:    now,
	}
	eb := Enrich(b, refs, now)

	if eb.Product != nil {
		t.Error("unknown sku should leave product nil")
	}
	if eb.RequiresSetting {
		t.Error("unknown sku defaults to no setting")
	}
	if eb.CustomerName != "" {
		t.Error("unknown order leaves customer name empty")
	}
}
