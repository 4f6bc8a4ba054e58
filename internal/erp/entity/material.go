package entity

import (
	"time"
)

// Material 原材料实体
type Material struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Code        string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Category    string     `json:"category" gorm:"size:16;not null;index"`
	Unit        string     `json:"unit" gorm:"size:16;not null;default:pcs"`
	CostPerUnit float64    `json:"cost_per_unit" gorm:"type:decimal(12,4)"`
	Status      string     `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
}

func (Material) TableName() string {
	return "materials"
}

// MaterialCategory 原材料分类。stone 分类决定批次是否需要镶嵌工序。
const (
	MaterialCategoryMetal   = "metal"
	MaterialCategoryStone   = "stone"
	MaterialCategoryFinding = "finding"
	MaterialCategoryOther   = "other"
)

// MaterialStatus 原材料状态
const (
	MaterialStatusActive   = "active"
	MaterialStatusInactive = "inactive"
)
