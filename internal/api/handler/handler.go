package handler

import "wedding-planner/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Guest     *GuestHandler
	Table     *TableHandler
	Rsvp      *RsvpHandler
	Dashboard *DashboardHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Guest:     NewGuestHandler(svc.Guest),
		Table:     NewTableHandler(svc.Table),
		Rsvp:      NewRsvpHandler(svc.Rsvp),
		Dashboard: NewDashboardHandler(svc.Dashboard, svc.Export),
	}
}
