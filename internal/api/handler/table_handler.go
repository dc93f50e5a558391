package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/service"
	"wedding-planner/backend/pkg/response"
)

// TableHandler 餐桌与座位模块 HTTP 处理器
type TableHandler struct {
	tableSvc service.TableService
}

// NewTableHandler 创建 TableHandler
func NewTableHandler(tableSvc service.TableService) *TableHandler {
	return &TableHandler{tableSvc: tableSvc}
}

// Create 创建餐桌
// POST /api/v1/tables
func (h *TableHandler) Create(c *gin.Context) {
	var req dto.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	table, err := h.tableSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTableError(c, err)
		return
	}

	response.Created(c, table)
}

// List 餐桌列表
// GET /api/v1/tables
func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.tableSvc.List(c.Request.Context())
	if err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tables})
}

// Get 餐桌详情（含已分配宾客）
// GET /api/v1/tables/:id
func (h *TableHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "餐桌ID不能为空")
		return
	}

	table, err := h.tableSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, table)
}

// Update 更新餐桌
// PUT /api/v1/tables/:id
func (h *TableHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "餐桌ID不能为空")
		return
	}

	var req dto.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	table, err := h.tableSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, table)
}

// Delete 删除餐桌（其上宾客回到未分配）
// DELETE /api/v1/tables/:id
func (h *TableHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "餐桌ID不能为空")
		return
	}

	if err := h.tableSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignGuest 分配宾客到餐桌
// POST /api/v1/seating/assign
func (h *TableHandler) AssignGuest(c *gin.Context) {
	var req dto.AssignGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, err := h.tableSvc.AssignGuest(c.Request.Context(), &req)
	if err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, result)
}

// UnassignGuest 从餐桌移除宾客
// POST /api/v1/seating/unassign
func (h *TableHandler) UnassignGuest(c *gin.Context) {
	var req dto.UnassignGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	if err := h.tableSvc.UnassignGuest(c.Request.Context(), req.GuestID); err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, nil)
}

// SeatingPlan 座位图
// GET /api/v1/seating
func (h *TableHandler) SeatingPlan(c *gin.Context) {
	plan, err := h.tableSvc.SeatingPlan(c.Request.Context())
	if err != nil {
		h.handleTableError(c, err)
		return
	}

	response.OK(c, plan)
}

// handleTableError 统一处理座位模块业务错误
func (h *TableHandler) handleTableError(c *gin.Context, err error) {
	var capErr *service.CapacityError
	switch {
	case errors.Is(err, service.ErrTableNotFound):
		response.NotFound(c, 13101, "餐桌不存在")
	case errors.Is(err, service.ErrTableNameExists):
		response.Conflict(c, 13102, "餐桌名称已存在")
	case errors.Is(err, service.ErrGuestNotFound):
		response.NotFound(c, 12101, "宾客不存在")
	case errors.As(err, &capErr):
		response.Conflict(c, 13103, capErr.Error())
	default:
		response.InternalError(c)
	}
}
