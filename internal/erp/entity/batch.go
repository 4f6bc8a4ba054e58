package entity

import (
	"time"
)

// Stage 生产工序。封闭枚举，顺序见 production.Stages。
type Stage string

const (
	StageAwaitingDelivery Stage = "awaiting_delivery"
	StageWaxing           Stage = "waxing"
	StageCasting          Stage = "casting"
	StageSetting          Stage = "setting"
	StagePolishing        Stage = "polishing"
	StageLabeling         Stage = "labeling"
	StageReady            Stage = "ready"
)

// BatchType 批次类型
const (
	BatchTypeProduction = "production"
	BatchTypeRefurbish  = "refurbish"
)

// ProductionBatch 生产批次：同一工序上的一组实物件
type ProductionBatch struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	BatchCode     string    `json:"batch_code" gorm:"size:50;not null;index"`
	SKU           string    `json:"sku" gorm:"size:64;not null;index"`
	VariantSuffix string    `json:"variant_suffix" gorm:"size:16"`
	SizeInfo      string    `json:"size_info" gorm:"size:32"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	CurrentStage  Stage     `json:"current_stage" gorm:"size:24;not null;index"`
	OrderID       *string   `json:"order_id" gorm:"size:32;index"`
	Type          string    `json:"type" gorm:"size:16;not null;default:production"`
	Notes         string    `json:"notes" gorm:"type:text"`
	CreatedBy     string    `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time `json:"created_at"`
	// UpdatedAt 是工序停留时长与延误判定的基准，每次工序流转都会刷新
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductionBatch) TableName() string {
	return "production_batches"
}
