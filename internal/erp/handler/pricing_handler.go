package handler

import (
	"errors"

	"github.com/atelierlab/aurum/internal/erp/service"
	"github.com/gin-gonic/gin"
)

// PricingHandler 定价接口
type PricingHandler struct {
	svc *service.PricingService
}

func NewPricingHandler(svc *service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// ListPrices GET /pricing/metals
func (h *PricingHandler) ListPrices(c *gin.Context) {
	prices, err := h.svc.ListPrices(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: prices})
}

// SetPriceRequest 设定金属克价请求
type SetPriceRequest struct {
	Metal        string  `json:"metal" binding:"required"`
	Purity       string  `json:"purity" binding:"required"`
	PricePerGram float64 `json:"price_per_gram" binding:"required,gt=0"`
}

// SetPrice PUT /pricing/metals
func (h *PricingHandler) SetPrice(c *gin.Context) {
	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	price, err := h.svc.SetPrice(
		c.Request.Context(), req.Metal, req.Purity, req.PricePerGram, c.GetString("user_id"),
	)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, price)
}

// Quote GET /pricing/quote/:sku
func (h *PricingHandler) Quote(c *gin.Context) {
	quote, err := h.svc.QuoteProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		if errors.Is(err, service.ErrNoMetalPrice) {
			BadRequest(c, err.Error())
			return
		}
		NotFound(c, err.Error())
		return
	}
	Success(c, quote)
}
