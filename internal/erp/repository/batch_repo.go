package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"gorm.io/gorm"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) Create(ctx context.Context, b *entity.ProductionBatch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BatchRepository) FindByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	return &b, err
}

// BatchListParams 批次列表筛选
type BatchListParams struct {
	Stage   entity.Stage
	OrderID string
	SKU     string
	Type    string
}

func (r *BatchRepository) List(ctx context.Context, params BatchListParams) ([]entity.ProductionBatch, error) {
	query := r.db.WithContext(ctx).Model(&entity.ProductionBatch{})
	if params.Stage != "" {
		query = query.Where("current_stage = ?", params.Stage)
	}
	if params.OrderID != "" {
		query = query.Where("order_id = ?", params.OrderID)
	}
	if params.SKU != "" {
		query = query.Where("sku = ?", params.SKU)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	var batches []entity.ProductionBatch
	err := query.Order("sku ASC, variant_suffix ASC, created_at ASC").Find(&batches).Error
	return batches, err
}

// UpdateStage 整批流转：改工序并刷新停留计时
func (r *BatchRepository) UpdateStage(ctx context.Context, id string, stage entity.Stage) error {
	res := r.db.WithContext(ctx).Model(&entity.ProductionBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stage": stage,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BatchRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	return r.db.WithContext(ctx).Model(&entity.ProductionBatch{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

// Split 拆分批次：原批次缩量留在原工序，新批次携带拆出数量进入目标工序。
// 两次写入在同一事务中完成，数量守恒不依赖调用方。
// 拆分会同时重置两个批次的停留计时（明确的延误时钟重置策略）。
func (r *BatchRepository) Split(ctx context.Context, orig *entity.ProductionBatch, qtyToMove int, target entity.Stage, newID string) (*entity.ProductionBatch, error) {
	if qtyToMove < 1 || qtyToMove >= orig.Quantity {
		return nil, fmt.Errorf("拆分数量越界: %d / %d", qtyToMove, orig.Quantity)
	}

	now := time.Now()
	moved := &entity.ProductionBatch{
		ID:            newID,
		BatchCode:     orig.BatchCode,
		SKU:           orig.SKU,
		VariantSuffix: orig.VariantSuffix,
		SizeInfo:      orig.SizeInfo,
		Quantity:      qtyToMove,
		CurrentStage:  target,
		OrderID:       orig.OrderID,
		Type:          orig.Type,
		Notes:         orig.Notes,
		CreatedBy:     orig.CreatedBy,
		CreatedAt:     orig.CreatedAt,
		UpdatedAt:     now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.ProductionBatch{}).
			Where("id = ? AND quantity = ?", orig.ID, orig.Quantity).
			Updates(map[string]interface{}{
				"quantity":   orig.Quantity - qtyToMove,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 数量已被并发修改，放弃本次拆分
			return gorm.ErrRecordNotFound
		}
		return tx.Create(moved).Error
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// GenerateCode 生成批次编码 PB-YYYYMMDDnnnn。
// 后缀取纳秒时间而非行数，并发投产不会撞号。
func (r *BatchRepository) GenerateCode(ctx context.Context) (string, error) {
	now := time.Now()
	return fmt.Sprintf("PB-%s%04d", now.Format("20060102"), now.UnixNano()%10000), nil
}
