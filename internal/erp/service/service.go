package service

import (
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
)

// Services 服务集合
type Services struct {
	Catalog    *CatalogService
	Order      *OrderService
	Production *ProductionService
	Pricing    *PricingService
	Report     *ReportService
}

// Options 服务装配参数
type Options struct {
	Redis         *redis.Client
	Minio         *minio.Client
	Bucket        string
	PublicBaseURL string
	PricingMargin float64
}

func NewServices(repos *repository.Repositories, opts Options) *Services {
	productionSvc := NewProductionService(
		repos.Batch, repos.Product, repos.Material, repos.Order, repos.Collection,
	)
	return &Services{
		Catalog: NewCatalogService(
			repos.Product, repos.Material, repos.Collection,
			opts.Redis, opts.Minio, opts.Bucket, opts.PublicBaseURL,
		),
		Order:      NewOrderService(repos.Order, productionSvc),
		Production: productionSvc,
		Pricing:    NewPricingService(repos.MetalPrice, repos.Product, opts.Redis, opts.PricingMargin),
		Report:     NewReportService(productionSvc),
	}
}
