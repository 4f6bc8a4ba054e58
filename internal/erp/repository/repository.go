package repository

import "gorm.io/gorm"

// Repositories ERP 仓库集合
type Repositories struct {
	Product    *ProductRepository
	Material   *MaterialRepository
	Collection *CollectionRepository
	Order      *OrderRepository
	Batch      *BatchRepository
	MetalPrice *MetalPriceRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Product:    NewProductRepository(db),
		Material:   NewMaterialRepository(db),
		Collection: NewCollectionRepository(db),
		Order:      NewOrderRepository(db),
		Batch:      NewBatchRepository(db),
		MetalPrice: NewMetalPriceRepository(db),
	}
}
