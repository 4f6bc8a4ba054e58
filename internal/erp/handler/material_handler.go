package handler

import (
	"github.com/atelierlab/aurum/internal/erp/service"
	"github.com/gin-gonic/gin"
)

// MaterialHandler 原材料与系列接口
type MaterialHandler struct {
	svc *service.CatalogService
}

func NewMaterialHandler(svc *service.CatalogService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List GET /materials
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.svc.ListMaterials(c.Request.Context(), c.Query("category"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: materials})
}

// Create POST /materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	material, err := h.svc.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, material)
}

// ListCollections GET /collections
func (h *MaterialHandler) ListCollections(c *gin.Context) {
	collections, err := h.svc.ListCollections(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: collections})
}

// CollectionRequest 创建系列请求
type CollectionRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateCollection POST /collections
func (h *MaterialHandler) CreateCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	collection, err := h.svc.CreateCollection(c.Request.Context(), req.Name, req.SortOrder)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, collection)
}
