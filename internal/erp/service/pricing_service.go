package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/redis/go-redis/v9"
)

const metalPriceTTL = time.Hour

// ErrNoMetalPrice 请求的金属/成色没有市场价
var ErrNoMetalPrice = errors.New("该金属成色没有市场价")

// PricingService 定价服务：金属克价缓存与产品报价
type PricingService struct {
	priceRepo   *repository.MetalPriceRepository
	productRepo *repository.ProductRepository
	rdb         *redis.Client
	margin      float64
}

func NewPricingService(priceRepo *repository.MetalPriceRepository, productRepo *repository.ProductRepository, rdb *redis.Client, margin float64) *PricingService {
	if margin <= 0 {
		margin = 1.0
	}
	return &PricingService{
		priceRepo:   priceRepo,
		productRepo: productRepo,
		rdb:         rdb,
		margin:      margin,
	}
}

func metalPriceKey(metal, purity string) string {
	return fmt.Sprintf("metal_price:%s:%s", metal, purity)
}

// SetPrice 设定金属克价：落库并刷新缓存
func (s *PricingService) SetPrice(ctx context.Context, metal, purity string, pricePerGram float64, userID string) (*entity.MetalPrice, error) {
	if pricePerGram <= 0 {
		return nil, fmt.Errorf("克价必须为正数")
	}

	price := &entity.MetalPrice{
		ID:           newID(),
		Metal:        metal,
		Purity:       purity,
		PricePerGram: pricePerGram,
		Currency:     "EUR",
		UpdatedBy:    userID,
	}
	if err := s.priceRepo.Upsert(ctx, price); err != nil {
		return nil, fmt.Errorf("写入金属价失败: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, metalPriceKey(metal, purity),
			strconv.FormatFloat(pricePerGram, 'f', -1, 64), metalPriceTTL)
	}
	return price, nil
}

// PricePerGram 读取克价：先查缓存，失效则回源落库值并回填
func (s *PricingService) PricePerGram(ctx context.Context, metal, purity string) (float64, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, metalPriceKey(metal, purity)).Float64(); err == nil {
			return cached, nil
		}
	}

	price, err := s.priceRepo.Find(ctx, metal, purity)
	if err != nil {
		return 0, ErrNoMetalPrice
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, metalPriceKey(metal, purity),
			strconv.FormatFloat(price.PricePerGram, 'f', -1, 64), metalPriceTTL)
	}
	return price.PricePerGram, nil
}

func (s *PricingService) ListPrices(ctx context.Context) ([]entity.MetalPrice, error) {
	return s.priceRepo.List(ctx)
}

// Quote 产品报价明细
type Quote struct {
	SKU          string  `json:"sku"`
	Metal        string  `json:"metal"`
	Purity       string  `json:"purity"`
	WeightGrams  float64 `json:"weight_g"`
	PricePerGram float64 `json:"price_per_gram"`
	MetalCost    float64 `json:"metal_cost"`
	LaborCost    float64 `json:"labor_cost"`
	Margin       float64 `json:"margin"`
	Total        float64 `json:"total"`
}

// QuoteProduct 报价 = (重量×克价 + 工费) × 毛利系数
func (s *PricingService) QuoteProduct(ctx context.Context, sku string) (*Quote, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("产品不存在: %w", err)
	}
	if product.Metal == "" {
		return nil, fmt.Errorf("产品 %s 未设定金属成色", sku)
	}

	perGram, err := s.PricePerGram(ctx, product.Metal, product.Purity)
	if err != nil {
		return nil, err
	}

	metalCost := product.WeightGrams * perGram
	return &Quote{
		SKU:          product.SKU,
		Metal:        product.Metal,
		Purity:       product.Purity,
		WeightGrams:  product.WeightGrams,
		PricePerGram: perGram,
		MetalCost:    metalCost,
		LaborCost:    product.LaborCost,
		Margin:       s.margin,
		Total:        (metalCost + product.LaborCost) * s.margin,
	}, nil
}
