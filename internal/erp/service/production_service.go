package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/production"
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/google/uuid"
)

// 工序流转的校验错误。写入未发生，调用方以提示而非故障处理。
var (
	ErrSettingNotRequired   = errors.New("该批次产品不含宝石，无需镶嵌工序")
	ErrNoFurtherStage       = errors.New("批次已在终态，没有下一道工序")
	ErrPartialImportReceive = errors.New("外购件收货必须整批确认，不支持拆分")
	ErrBadSplitQuantity     = errors.New("流转数量必须在 1 与批次数量之间")
	ErrUnknownStage         = errors.New("未知工序")
)

// ProductionService 生产看板服务：工序流转、批次拆分、看板投影
type ProductionService struct {
	batchRepo      *repository.BatchRepository
	productRepo    *repository.ProductRepository
	materialRepo   *repository.MaterialRepository
	orderRepo      *repository.OrderRepository
	collectionRepo *repository.CollectionRepository
}

func NewProductionService(
	batchRepo *repository.BatchRepository,
	productRepo *repository.ProductRepository,
	materialRepo *repository.MaterialRepository,
	orderRepo *repository.OrderRepository,
	collectionRepo *repository.CollectionRepository,
) *ProductionService {
	return &ProductionService{
		batchRepo:      batchRepo,
		productRepo:    productRepo,
		materialRepo:   materialRepo,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
	}
}

// CreateBatchRequest 创建批次请求（订单投产或备货）
type CreateBatchRequest struct {
	SKU           string  `json:"sku" binding:"required"`
	VariantSuffix string  `json:"variant_suffix"`
	SizeInfo      string  `json:"size_info"`
	Quantity      int     `json:"quantity" binding:"required,gte=1"`
	OrderID       *string `json:"order_id"`
	Type          string  `json:"type"`
	Notes         string  `json:"notes"`
}

// CreateBatch 投产：外购产品从收货工序开始，自产从起蜡开始
func (s *ProductionService) CreateBatch(ctx context.Context, req CreateBatchRequest, userID string) (*entity.ProductionBatch, error) {
	product, err := s.productRepo.FindBySKU(ctx, req.SKU)
	if err != nil {
		return nil, fmt.Errorf("产品不存在: %w", err)
	}

	initial := entity.StageWaxing
	if product.ProductionType == entity.ProductionImported {
		initial = entity.StageAwaitingDelivery
	}

	batchType := req.Type
	if batchType == "" {
		batchType = entity.BatchTypeProduction
	}

	code, err := s.batchRepo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("生成批次编码失败: %w", err)
	}

	batch := &entity.ProductionBatch{
		ID:            newID(),
		BatchCode:     code,
		SKU:           req.SKU,
		VariantSuffix: req.VariantSuffix,
		SizeInfo:      req.SizeInfo,
		Quantity:      req.Quantity,
		CurrentStage:  initial,
		OrderID:       req.OrderID,
		Type:          batchType,
		Notes:         req.Notes,
		CreatedBy:     userID,
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("创建批次失败: %w", err)
	}
	return batch, nil
}

// Move 把批次（或其中一部分）流转到目标工序。
// 目标等于当前工序时不产生写入；镶嵌拦截与收货整批约束见校验错误。
func (s *ProductionService) Move(ctx context.Context, batchID string, target entity.Stage, qty int) (*entity.ProductionBatch, error) {
	if !production.ValidStage(target) {
		return nil, ErrUnknownStage
	}

	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("批次不存在: %w", err)
	}

	if target == batch.CurrentStage {
		return batch, nil
	}

	// qty 为零表示整批
	if qty == 0 {
		qty = batch.Quantity
	}
	if qty < 1 || qty > batch.Quantity {
		return nil, ErrBadSplitQuantity
	}

	// 镶嵌拦截：无宝石批次不得流入镶嵌工序
	if batch.CurrentStage == entity.StageCasting && target == entity.StageSetting {
		requires, rerr := s.requiresSetting(ctx, batch.SKU)
		if rerr != nil {
			return nil, rerr
		}
		if !requires {
			return nil, ErrSettingNotRequired
		}
	}

	// 外购件收货：整批确认，不提供拆分
	if batch.CurrentStage == entity.StageAwaitingDelivery && qty != batch.Quantity {
		return nil, ErrPartialImportReceive
	}

	if qty == batch.Quantity {
		if err := s.batchRepo.UpdateStage(ctx, batch.ID, target); err != nil {
			return nil, fmt.Errorf("工序流转失败: %w", err)
		}
		return s.batchRepo.FindByID(ctx, batch.ID)
	}

	moved, err := s.batchRepo.Split(ctx, batch, qty, target, newID())
	if err != nil {
		return nil, fmt.Errorf("批次拆分失败: %w", err)
	}
	return moved, nil
}

// QuickNext 整批推进到下一道工序（按产品自动跳过镶嵌、外购直达贴标）
func (s *ProductionService) QuickNext(ctx context.Context, batchID string) (*entity.ProductionBatch, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("批次不存在: %w", err)
	}

	requires, err := s.requiresSetting(ctx, batch.SKU)
	if err != nil {
		return nil, err
	}

	imported := false
	if product, perr := s.productRepo.FindBySKU(ctx, batch.SKU); perr == nil {
		imported = product.ProductionType == entity.ProductionImported
	}

	target, ok := production.NextStage(batch.CurrentStage, requires, imported)
	if !ok {
		return nil, ErrNoFurtherStage
	}
	return s.Move(ctx, batchID, target, batch.Quantity)
}

// UpdateNotes 更新批次备注
func (s *ProductionService) UpdateNotes(ctx context.Context, batchID, notes string) error {
	if _, err := s.batchRepo.FindByID(ctx, batchID); err != nil {
		return fmt.Errorf("批次不存在: %w", err)
	}
	return s.batchRepo.UpdateNotes(ctx, batchID, notes)
}

// StageBoard 单道工序的看板列
type StageBoard struct {
	Stage  entity.Stage             `json:"stage"`
	Label  string                   `json:"label"`
	Color  string                   `json:"color"`
	Groups []production.GenderGroup `json:"groups"`
}

// Board 组装整板：取数→加工→按工序分组投影
func (s *ProductionService) Board(ctx context.Context) ([]StageBoard, error) {
	enriched, names, err := s.enrichAll(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]StageBoard, 0, len(production.Stages))
	for _, stage := range production.Stages {
		boards = append(boards, StageBoard{
			Stage:  stage,
			Label:  production.StageLabel(stage),
			Color:  production.StageColor(stage),
			Groups: production.GroupForBoard(enriched, stage, names),
		})
	}
	return boards, nil
}

// ListEnriched 加工视图批次列表
func (s *ProductionService) ListEnriched(ctx context.Context, params repository.BatchListParams) ([]production.EnrichedBatch, error) {
	batches, err := s.batchRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("读取批次失败: %w", err)
	}
	refs, err := s.refData(ctx)
	if err != nil {
		return nil, err
	}
	return production.EnrichAll(batches, refs, time.Now()), nil
}

// Delayed 延误批次列表（看板延误栏）
func (s *ProductionService) Delayed(ctx context.Context) ([]production.EnrichedBatch, error) {
	enriched, _, err := s.enrichAll(ctx)
	if err != nil {
		return nil, err
	}
	delayed := make([]production.EnrichedBatch, 0)
	for _, b := range enriched {
		if b.IsDelayed {
			delayed = append(delayed, b)
		}
	}
	return delayed, nil
}

func (s *ProductionService) enrichAll(ctx context.Context) ([]production.EnrichedBatch, map[int64]string, error) {
	batches, err := s.batchRepo.List(ctx, repository.BatchListParams{})
	if err != nil {
		return nil, nil, fmt.Errorf("读取批次失败: %w", err)
	}
	refs, err := s.refData(ctx)
	if err != nil {
		return nil, nil, err
	}
	names, err := s.collectionRepo.NameMap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("读取系列失败: %w", err)
	}
	return production.EnrichAll(batches, refs, time.Now()), names, nil
}

func (s *ProductionService) refData(ctx context.Context) (production.RefData, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return production.RefData{}, fmt.Errorf("读取产品失败: %w", err)
	}
	materials, err := s.materialRepo.List(ctx, "")
	if err != nil {
		return production.RefData{}, fmt.Errorf("读取原材料失败: %w", err)
	}
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return production.RefData{}, fmt.Errorf("读取订单失败: %w", err)
	}
	return production.BuildRefData(products, materials, orders), nil
}

func (s *ProductionService) requiresSetting(ctx context.Context, sku string) (bool, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		// 产品缺失时降级为不需要镶嵌
		return false, nil
	}
	materials, err := s.materialRepo.List(ctx, "")
	if err != nil {
		return false, fmt.Errorf("读取原材料失败: %w", err)
	}
	lookup := make(map[string]*entity.Material, len(materials))
	for i := range materials {
		lookup[materials[i].ID] = &materials[i]
	}
	return production.RequiresSetting(product, lookup), nil
}

// newID 32位主键，与既有实体ID宽度一致
func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
