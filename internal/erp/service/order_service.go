package service

import (
	"context"
	"fmt"
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/repository"
)

// OrderService 订单服务：录入与投产派发
type OrderService struct {
	orderRepo     *repository.OrderRepository
	productionSvc *ProductionService
}

func NewOrderService(orderRepo *repository.OrderRepository, productionSvc *ProductionService) *OrderService {
	return &OrderService{orderRepo: orderRepo, productionSvc: productionSvc}
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	DueDate      *time.Time        `json:"due_date"`
	Notes        string            `json:"notes"`
	Items        []CreateOrderLine `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderLine 订单行项
type CreateOrderLine struct {
	SKU           string `json:"sku" binding:"required"`
	VariantSuffix string `json:"variant_suffix"`
	SizeInfo      string `json:"size_info"`
	Quantity      int    `json:"quantity" binding:"required,gte=1"`
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, userID string) (*entity.Order, error) {
	code, err := s.orderRepo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("生成订单编码失败: %w", err)
	}

	order := &entity.Order{
		ID:           newID(),
		OrderCode:    code,
		CustomerName: req.CustomerName,
		Status:       entity.OrderStatusOpen,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
		CreatedBy:    userID,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:            newID(),
			OrderID:       order.ID,
			SKU:           line.SKU,
			VariantSuffix: line.VariantSuffix,
			SizeInfo:      line.SizeInfo,
			Quantity:      line.Quantity,
			Status:        entity.OrderItemStatusPending,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// Dispatch 把订单行项派发到生产：创建批次并把行项置为已投产
func (s *OrderService) Dispatch(ctx context.Context, orderID, itemID, userID string) (*entity.ProductionBatch, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}

	item, err := s.orderRepo.FindItem(ctx, itemID)
	if err != nil || item.OrderID != order.ID {
		return nil, fmt.Errorf("订单行项不存在")
	}
	if item.Status != entity.OrderItemStatusPending {
		return nil, fmt.Errorf("订单行项已投产: %s", item.Status)
	}

	batch, err := s.productionSvc.CreateBatch(ctx, CreateBatchRequest{
		SKU:           item.SKU,
		VariantSuffix: item.VariantSuffix,
		SizeInfo:      item.SizeInfo,
		Quantity:      item.Quantity,
		OrderID:       &order.ID,
		Type:          entity.BatchTypeProduction,
	}, userID)
	if err != nil {
		return nil, err
	}

	item.Status = entity.OrderItemStatusDispatched
	if err := s.orderRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("更新订单行项失败: %w", err)
	}

	if order.Status == entity.OrderStatusOpen {
		order.Status = entity.OrderStatusInProgress
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("更新订单状态失败: %w", err)
		}
	}
	return batch, nil
}
