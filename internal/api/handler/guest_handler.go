package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/service"
	"wedding-planner/backend/pkg/response"
)

// GuestHandler 宾客模块 HTTP 处理器
type GuestHandler struct {
	guestSvc service.GuestService
}

// NewGuestHandler 创建 GuestHandler
func NewGuestHandler(guestSvc service.GuestService) *GuestHandler {
	return &GuestHandler{guestSvc: guestSvc}
}

// Create 创建宾客
// POST /api/v1/guests
func (h *GuestHandler) Create(c *gin.Context) {
	var req dto.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	guest, err := h.guestSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGuestError(c, err)
		return
	}

	response.Created(c, guest)
}

// List 宾客列表（支持搜索与筛选）
// GET /api/v1/guests
func (h *GuestHandler) List(c *gin.Context) {
	var req dto.GuestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.guestSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleGuestError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 宾客详情
// GET /api/v1/guests/:id
func (h *GuestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "宾客ID不能为空")
		return
	}

	guest, err := h.guestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleGuestError(c, err)
		return
	}

	response.OK(c, guest)
}

// Update 更新宾客
// PUT /api/v1/guests/:id
func (h *GuestHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "宾客ID不能为空")
		return
	}

	var req dto.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	guest, err := h.guestSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGuestError(c, err)
		return
	}

	response.OK(c, guest)
}

// Delete 删除宾客
// DELETE /api/v1/guests/:id
func (h *GuestHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "宾客ID不能为空")
		return
	}

	if err := h.guestSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleGuestError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResendInvitation 重新生成令牌并重发邀请
// POST /api/v1/guests/:id/resend-invitation
func (h *GuestHandler) ResendInvitation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "宾客ID不能为空")
		return
	}

	if err := h.guestSvc.ResendInvitation(c.Request.Context(), id); err != nil {
		h.handleGuestError(c, err)
		return
	}

	response.OK(c, gin.H{"sent": true})
}

// handleGuestError 统一处理宾客模块业务错误
func (h *GuestHandler) handleGuestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGuestNotFound):
		response.NotFound(c, 12101, "宾客不存在")
	case errors.Is(err, service.ErrTableNotFound):
		response.NotFound(c, 13101, "餐桌不存在")
	case errors.Is(err, service.ErrInvitationSendFailed):
		response.Error(c, http.StatusBadGateway, 12102, "邀请邮件发送失败")
	default:
		response.InternalError(c)
	}
}
