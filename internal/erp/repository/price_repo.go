package repository

import (
	"context"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetalPriceRepository struct {
	db *gorm.DB
}

func NewMetalPriceRepository(db *gorm.DB) *MetalPriceRepository {
	return &MetalPriceRepository{db: db}
}

// Upsert 按金属+成色写入克价
func (r *MetalPriceRepository) Upsert(ctx context.Context, p *entity.MetalPrice) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "metal"}, {Name: "purity"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_per_gram", "currency", "updated_by", "updated_at"}),
	}).Create(p).Error
}

func (r *MetalPriceRepository) Find(ctx context.Context, metal, purity string) (*entity.MetalPrice, error) {
	var p entity.MetalPrice
	err := r.db.WithContext(ctx).
		Where("metal = ? AND purity = ?", metal, purity).First(&p).Error
	return &p, err
}

func (r *MetalPriceRepository) List(ctx context.Context) ([]entity.MetalPrice, error) {
	var prices []entity.MetalPrice
	err := r.db.WithContext(ctx).Order("metal ASC, purity ASC").Find(&prices).Error
	return prices, err
}
