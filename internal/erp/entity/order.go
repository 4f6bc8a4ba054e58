package entity

import (
	"time"
)

// OrderStatus 订单状态
const (
	OrderStatusOpen       = "open"
	OrderStatusInProgress = "in_progress"
	OrderStatusFulfilled  = "fulfilled"
	OrderStatusCancelled  = "cancelled"
)

// Order 客户订单
type Order struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	OrderCode    string     `json:"order_code" gorm:"size:50;not null;uniqueIndex"`
	CustomerName string     `json:"customer_name" gorm:"size:128;not null"`
	Status       string     `json:"status" gorm:"size:16;not null;default:open"`
	DueDate      *time.Time `json:"due_date"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedBy    string     `json:"created_by" gorm:"size:64"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单行项
type OrderItem struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	OrderID       string    `json:"order_id" gorm:"size:32;not null;index"`
	SKU           string    `json:"sku" gorm:"size:64;not null"`
	VariantSuffix string    `json:"variant_suffix" gorm:"size:16"`
	SizeInfo      string    `json:"size_info" gorm:"size:32"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	Status        string    `json:"status" gorm:"size:16;not null;default:pending"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemStatus 订单行项状态
const (
	OrderItemStatusPending    = "pending"
	OrderItemStatusDispatched = "dispatched"
	OrderItemStatusDone       = "done"
)
