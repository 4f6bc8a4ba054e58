package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// RecipeItem 配方行项：raw 指向原材料，component 指向其他成品
type RecipeItem struct {
	Type       string  `json:"type"` // raw | component
	MaterialID string  `json:"material_id,omitempty"`
	SKU        string  `json:"sku,omitempty"`
	Quantity   float64 `json:"quantity"`
}

// RecipeItemRaw / RecipeItemComponent 配方行项类型
const (
	RecipeItemRaw       = "raw"
	RecipeItemComponent = "component"
)

// RecipeItems 用于PostgreSQL JSONB类型
type RecipeItems []RecipeItem

func (r RecipeItems) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *RecipeItems) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, r)
}

// Int64List JSONB整数数组（系列ID列表）
type Int64List []int64

func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *Int64List) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Product 产品实体（按SKU唯一）
type Product struct {
	ID             string      `json:"id" gorm:"primaryKey;size:32"`
	SKU            string      `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Name           string      `json:"name" gorm:"size:128;not null"`
	Gender         string      `json:"gender" gorm:"size:16;not null;default:unisex"`
	Collections    Int64List   `json:"collections" gorm:"type:jsonb"`
	ProductionType string      `json:"production_type" gorm:"size:16;not null;default:inhouse"`
	Metal          string      `json:"metal" gorm:"size:16"`
	Purity         string      `json:"purity" gorm:"size:8"`
	WeightGrams    float64     `json:"weight_g" gorm:"type:decimal(10,3)"`
	LaborCost      float64     `json:"labor_cost" gorm:"type:decimal(12,2)"`
	Recipe         RecipeItems `json:"recipe" gorm:"type:jsonb"`
	ImageURL       string      `json:"image_url" gorm:"size:512"`
	Description    string      `json:"description" gorm:"type:text"`
	Status         string      `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	DeletedAt      *time.Time  `json:"deleted_at" gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

// Gender 产品性别分类
const (
	GenderWomen  = "women"
	GenderMen    = "men"
	GenderUnisex = "unisex"
)

// ProductionType 生产方式
const (
	ProductionInhouse  = "inhouse"
	ProductionImported = "imported"
)

// ProductStatus 产品状态
const (
	ProductStatusActive       = "active"
	ProductStatusDiscontinued = "discontinued"
)

// Collection 产品系列
type Collection struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:64;not null;uniqueIndex"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}
