package handler

import (
	"errors"

	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/atelierlab/aurum/internal/erp/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderHandler 订单接口
type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	params := repository.OrderListParams{
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    queryInt(c, "page", 1),
		Size:    queryInt(c, "page_size", 20),
	}
	orders, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: orders, Pagination: NewPagination(params.Page, params.Size, total)})
}

// Get GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	Success(c, order)
}

// Create POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.Create(c.Request.Context(), req, c.GetString("user_id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, order)
}

// Dispatch POST /orders/:id/items/:itemId/dispatch 行项投产
func (h *OrderHandler) Dispatch(c *gin.Context) {
	batch, err := h.svc.Dispatch(
		c.Request.Context(), c.Param("id"), c.Param("itemId"), c.GetString("user_id"),
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, batch)
}
