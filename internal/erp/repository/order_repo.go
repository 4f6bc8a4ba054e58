package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) Update(ctx context.Context, o *entity.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND deleted_at IS NULL", id).First(&o).Error
	return &o, err
}

func (r *OrderRepository) FindItem(ctx context.Context, itemID string) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	return &item, err
}

func (r *OrderRepository) UpdateItem(ctx context.Context, item *entity.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// OrderListParams 订单列表筛选
type OrderListParams struct {
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *OrderRepository) List(ctx context.Context, params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("order_code ILIKE ? OR customer_name ILIKE ?", kw, kw)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}

	var orders []entity.Order
	err := query.Preload("Items").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&orders).Error
	return orders, total, err
}

// ListAll 全量订单，用于加工视图参照数据
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).Where("deleted_at IS NULL").Find(&orders).Error
	return orders, err
}

// GenerateCode 生成订单编码 SO-YYYYMMDDnnnn。
// order_code 有唯一索引，后缀取纳秒时间避免并发撞号。
func (r *OrderRepository) GenerateCode(ctx context.Context) (string, error) {
	now := time.Now()
	return fmt.Sprintf("SO-%s%04d", now.Format("20060102"), now.UnixNano()%10000), nil
}
