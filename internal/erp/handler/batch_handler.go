package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/atelierlab/aurum/internal/erp/entity"
	"github.com/atelierlab/aurum/internal/erp/repository"
	"github.com/atelierlab/aurum/internal/erp/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BatchHandler 生产批次与看板接口
type BatchHandler struct {
	svc       *service.ProductionService
	reportSvc *service.ReportService
}

func NewBatchHandler(svc *service.ProductionService, reportSvc *service.ReportService) *BatchHandler {
	return &BatchHandler{svc: svc, reportSvc: reportSvc}
}

// List GET /batches
func (h *BatchHandler) List(c *gin.Context) {
	params := repository.BatchListParams{
		Stage:   entity.Stage(c.Query("stage")),
		OrderID: c.Query("order_id"),
		SKU:     c.Query("sku"),
		Type:    c.Query("type"),
	}
	batches, err := h.svc.ListEnriched(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: batches})
}

// Create POST /batches 备货投产（无订单）
func (h *BatchHandler) Create(c *gin.Context) {
	var req service.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	batch, err := h.svc.CreateBatch(c.Request.Context(), req, c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Created(c, batch)
}

// MoveRequest 工序流转请求。quantity 为空表示整批。
type MoveRequest struct {
	TargetStage entity.Stage `json:"target_stage" binding:"required"`
	Quantity    *int         `json:"quantity"`
}

// Move POST /batches/:id/move
func (h *BatchHandler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	// quantity 为空按整批处理；显式传零按校验错误拒绝
	qty := 0
	if req.Quantity != nil {
		if *req.Quantity == 0 {
			BadRequest(c, service.ErrBadSplitQuantity.Error())
			return
		}
		qty = *req.Quantity
	}

	batch, err := h.svc.Move(c.Request.Context(), c.Param("id"), req.TargetStage, qty)
	if err != nil {
		h.writeMoveError(c, err)
		return
	}
	Success(c, batch)
}

func (h *BatchHandler) writeMoveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingNotRequired),
		errors.Is(err, service.ErrNoFurtherStage),
		errors.Is(err, service.ErrPartialImportReceive),
		errors.Is(err, service.ErrBadSplitQuantity),
		errors.Is(err, service.ErrUnknownStage):
		BadRequest(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// QuickNext POST /batches/:id/next
func (h *BatchHandler) QuickNext(c *gin.Context) {
	batch, err := h.svc.QuickNext(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeMoveError(c, err)
		return
	}
	Success(c, batch)
}

// NotesRequest 备注更新请求
type NotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes PUT /batches/:id/notes
func (h *BatchHandler) UpdateNotes(c *gin.Context) {
	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.svc.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// Board GET /production/board
func (h *BatchHandler) Board(c *gin.Context) {
	boards, err := h.svc.Board(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, boards)
}

// Delayed GET /production/delayed
func (h *BatchHandler) Delayed(c *gin.Context) {
	delayed, err := h.svc.Delayed(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: delayed})
}

// ExportBoard GET /production/board/export 下载看板xlsx
func (h *BatchHandler) ExportBoard(c *gin.Context) {
	f, filename, err := h.reportSvc.ExportBoard(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
