package service

import (
	"context"
	"testing"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/atelierlab/aurum/internal/testutil"
)

func setupCatalogTest(t *testing.T) *CatalogService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewCatalogService(repos.Product, repos.Material, repos.Collection, nil, nil, "", "")
}

func TestCreateProductRejectsUnknownGender(t *testing.T) {
	catalog := setupCatalogTest(t)
	ctx := context.Background()

	if _, err := catalog.CreateProduct(ctx, CreateProductRequest{
		SKU: "KD-100", Name: "Kids Ring", Gender: "kids",
	}); err == nil {
		t.Error("gender outside the enum should be rejected")
	}

	// empty gender still defaults to unisex
	p, err := catalog.CreateProduct(ctx, CreateProductRequest{SKU: "BR-400", Name: "Cuff"})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if p.Gender != entity.GenderUnisex {
		t.Errorf("gender = %q, want unisex", p.Gender)
	}

	if _, err := catalog.UpdateProduct(ctx, p.ID, UpdateProductRequest{Gender: "kids"}); err == nil {
		t.Error("update to a gender outside the enum should be rejected")
	}
}
