package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/service"
	"wedding-planner/backend/pkg/response"
)

// RsvpHandler 公开 RSVP 模块 HTTP 处理器
// 该模块不经过认证，仅凭令牌访问
type RsvpHandler struct {
	rsvpSvc service.RsvpService
}

// NewRsvpHandler 创建 RsvpHandler
func NewRsvpHandler(rsvpSvc service.RsvpService) *RsvpHandler {
	return &RsvpHandler{rsvpSvc: rsvpSvc}
}

// GetPage 获取 RSVP 页面状态
// GET /api/v1/rsvp/:token
func (h *RsvpHandler) GetPage(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 14001, "令牌不能为空")
		return
	}

	page, err := h.rsvpSvc.GetPage(c.Request.Context(), token)
	if err != nil {
		h.handleRsvpError(c, err)
		return
	}

	response.OK(c, page)
}

// Submit 提交回复
// POST /api/v1/rsvp/:token
func (h *RsvpHandler) Submit(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 14001, "令牌不能为空")
		return
	}

	var req dto.SubmitRsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.rsvpSvc.Submit(c.Request.Context(), token, &req)
	if err != nil {
		h.handleRsvpError(c, err)
		return
	}

	response.OK(c, result)
}

// CalendarInvite 下载日历邀请
// GET /api/v1/rsvp/:token/calendar
func (h *RsvpHandler) CalendarInvite(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 14001, "令牌不能为空")
		return
	}

	data, filename, err := h.rsvpSvc.CalendarInvite(c.Request.Context(), token)
	if err != nil {
		h.handleRsvpError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// handleRsvpError 统一处理 RSVP 模块业务错误
func (h *RsvpHandler) handleRsvpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenNotFound):
		response.NotFound(c, 14101, "邀请链接无效")
	case errors.Is(err, service.ErrInvalidToken):
		// 不区分"已用/已过期/不存在"，防止探测
		response.Error(c, http.StatusGone, 14102, "邀请链接已失效")
	case errors.Is(err, service.ErrPartySizeOutOfRange):
		response.BadRequest(c, 14103, "出席人数必须在 1-20 之间")
	case errors.Is(err, service.ErrCalendarUnavailable):
		response.NotFound(c, 14104, "日历邀请不可用")
	default:
		response.InternalError(c)
	}
}
