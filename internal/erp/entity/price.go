package entity

import (
	"time"
)

// Metal 金属种类
const (
	MetalGold   = "gold"
	MetalSilver = "silver"
)

// MetalPrice 金属市场价（克价）。Redis缓存失效时作为兜底。
type MetalPrice struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Metal        string    `json:"metal" gorm:"size:16;not null;uniqueIndex:idx_metal_purity"`
	Purity       string    `json:"purity" gorm:"size:8;not null;uniqueIndex:idx_metal_purity"`
	PricePerGram float64   `json:"price_per_gram" gorm:"type:decimal(12,4);not null"`
	Currency     string    `json:"currency" gorm:"size:3;not null;default:EUR"`
	UpdatedBy    string    `json:"updated_by" gorm:"size:64"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MetalPrice) TableName() string {
	return "metal_prices"
}
