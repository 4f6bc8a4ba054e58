package repository

import (
	"context"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, m *entity.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) Update(ctx context.Context, m *entity.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	return &m, err
}

func (r *MaterialRepository) List(ctx context.Context, category string) ([]entity.Material, error) {
	query := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var materials []entity.Material
	err := query.Order("code ASC").Find(&materials).Error
	return materials, err
}
