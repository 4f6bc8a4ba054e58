package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
)

const (
	productCacheKey = "catalog:products"
	productCacheTTL = 5 * time.Minute
)

// CatalogService 目录服务：产品、原材料、系列，产品图上传
type CatalogService struct {
	productRepo    *repository.ProductRepository
	materialRepo   *repository.MaterialRepository
	collectionRepo *repository.CollectionRepository
	rdb            *redis.Client
	minioClient    *minio.Client
	bucketName     string
	publicBaseURL  string
}

func NewCatalogService(
	productRepo *repository.ProductRepository,
	materialRepo *repository.MaterialRepository,
	collectionRepo *repository.CollectionRepository,
	rdb *redis.Client,
	minioClient *minio.Client,
	bucketName, publicBaseURL string,
) *CatalogService {
	return &CatalogService{
		productRepo:    productRepo,
		materialRepo:   materialRepo,
		collectionRepo: collectionRepo,
		rdb:            rdb,
		minioClient:    minioClient,
		bucketName:     bucketName,
		publicBaseURL:  publicBaseURL,
	}
}

// CreateProductRequest 创建产品请求
type CreateProductRequest struct {
	SKU            string             `json:"sku" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	Gender         string             `json:"gender"`
	Collections    []int64            `json:"collections"`
	ProductionType string             `json:"production_type"`
	Metal          string             `json:"metal"`
	Purity         string             `json:"purity"`
	WeightGrams    float64            `json:"weight_g"`
	LaborCost      float64            `json:"labor_cost"`
	Recipe         entity.RecipeItems `json:"recipe"`
	Description    string             `json:"description"`
}

func validGender(g string) bool {
	switch g {
	case entity.GenderWomen, entity.GenderMen, entity.GenderUnisex:
		return true
	}
	return false
}

func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*entity.Product, error) {
	gender := req.Gender
	if gender == "" {
		gender = entity.GenderUnisex
	}
	if !validGender(gender) {
		return nil, fmt.Errorf("无效的性别分类: %s", gender)
	}
	productionType := req.ProductionType
	if productionType == "" {
		productionType = entity.ProductionInhouse
	}

	p := &entity.Product{
		ID:             newID(),
		SKU:            req.SKU,
		Name:           req.Name,
		Gender:         gender,
		Collections:    entity.Int64List(req.Collections),
		ProductionType: productionType,
		Metal:          req.Metal,
		Purity:         req.Purity,
		WeightGrams:    req.WeightGrams,
		LaborCost:      req.LaborCost,
		Recipe:         req.Recipe,
		Description:    req.Description,
		Status:         entity.ProductStatusActive,
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("创建产品失败: %w", err)
	}
	s.invalidateProductCache(ctx)
	return p, nil
}

// UpdateProductRequest 更新产品请求（零值跳过）
type UpdateProductRequest struct {
	Name        string              `json:"name"`
	Gender      string              `json:"gender"`
	Collections []int64             `json:"collections"`
	WeightGrams *float64            `json:"weight_g"`
	LaborCost   *float64            `json:"labor_cost"`
	Recipe      *entity.RecipeItems `json:"recipe"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*entity.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("产品不存在: %w", err)
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Gender != "" {
		if !validGender(req.Gender) {
			return nil, fmt.Errorf("无效的性别分类: %s", req.Gender)
		}
		p.Gender = req.Gender
	}
	if req.Collections != nil {
		p.Collections = entity.Int64List(req.Collections)
	}
	if req.WeightGrams != nil {
		p.WeightGrams = *req.WeightGrams
	}
	if req.LaborCost != nil {
		p.LaborCost = *req.LaborCost
	}
	if req.Recipe != nil {
		p.Recipe = *req.Recipe
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Status != "" {
		p.Status = req.Status
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("更新产品失败: %w", err)
	}
	s.invalidateProductCache(ctx)
	return p, nil
}

// ListProducts 分页产品列表；无筛选的首页走Redis缓存
func (s *CatalogService) ListProducts(ctx context.Context, params repository.ProductListParams) ([]entity.Product, int64, error) {
	cacheable := s.rdb != nil &&
		params.Gender == "" && params.Status == "" && params.Keyword == "" &&
		(params.Page == 0 || params.Page == 1)

	if cacheable {
		if cached, err := s.rdb.Get(ctx, productCacheKey).Bytes(); err == nil {
			var result struct {
				Items []entity.Product `json:"items"`
				Total int64            `json:"total"`
			}
			if json.Unmarshal(cached, &result) == nil {
				return result.Items, result.Total, nil
			}
		}
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("读取产品失败: %w", err)
	}

	if cacheable {
		payload, _ := json.Marshal(struct {
			Items []entity.Product `json:"items"`
			Total int64            `json:"total"`
		}{products, total})
		s.rdb.Set(ctx, productCacheKey, payload, productCacheTTL)
	}
	return products, total, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("产品不存在: %w", err)
	}
	return p, nil
}

// UploadProductImage 上传产品图到对象存储并回写URL
func (s *CatalogService) UploadProductImage(ctx context.Context, id string, reader io.Reader, size int64, filename, contentType string) (*entity.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("产品不存在: %w", err)
	}
	if s.minioClient == nil {
		return nil, fmt.Errorf("对象存储未配置")
	}

	objectName := fmt.Sprintf("products/%s/%d%s", p.SKU, time.Now().UnixNano(), path.Ext(filename))
	_, err = s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("上传产品图失败: %w", err)
	}

	p.ImageURL = fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucketName, objectName)
	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("更新产品失败: %w", err)
	}
	s.invalidateProductCache(ctx)
	return p, nil
}

// CreateMaterialRequest 创建原材料请求
type CreateMaterialRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Unit        string  `json:"unit"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

func (s *CatalogService) CreateMaterial(ctx context.Context, req CreateMaterialRequest) (*entity.Material, error) {
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	m := &entity.Material{
		ID:          newID(),
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Unit:        unit,
		CostPerUnit: req.CostPerUnit,
		Status:      entity.MaterialStatusActive,
	}
	if err := s.materialRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("创建原材料失败: %w", err)
	}
	return m, nil
}

func (s *CatalogService) ListMaterials(ctx context.Context, category string) ([]entity.Material, error) {
	return s.materialRepo.List(ctx, category)
}

func (s *CatalogService) CreateCollection(ctx context.Context, name string, sortOrder int) (*entity.Collection, error) {
	c := &entity.Collection{Name: name, SortOrder: sortOrder}
	if err := s.collectionRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("创建系列失败: %w", err)
	}
	return c, nil
}

func (s *CatalogService) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	return s.collectionRepo.List(ctx)
}

func (s *CatalogService) invalidateProductCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, productCacheKey)
	}
}
