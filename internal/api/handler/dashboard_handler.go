package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"wedding-planner/backend/internal/service"
	"wedding-planner/backend/pkg/response"
)

// DashboardHandler 仪表盘与导出模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
	exportSvc    service.ExportService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService, exportSvc service.ExportService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, exportSvc: exportSvc}
}

// Summary 管理端首页汇总
// GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	result, err := h.dashboardSvc.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Stats JSON 统计
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	result, err := h.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportGuests 导出宾客清单
// GET /api/v1/export/guests
func (h *DashboardHandler) ExportGuests(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportGuestList(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *DashboardHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoGuests):
		response.NotFound(c, 15101, "暂无宾客可导出")
	default:
		response.InternalError(c)
	}
}
