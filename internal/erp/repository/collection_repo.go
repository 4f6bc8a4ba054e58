package repository

import (
	"context"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"gorm.io/gorm"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) Create(ctx context.Context, c *entity.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollectionRepository) List(ctx context.Context) ([]entity.Collection, error) {
	var collections []entity.Collection
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&collections).Error
	return collections, err
}

// NameMap 系列ID到名称的查找表，用于看板分组
func (r *CollectionRepository) NameMap(ctx context.Context) (map[int64]string, error) {
	collections, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(collections))
	for _, c := range collections {
		names[c.ID] = c.Name
	}
	return names, nil
}
