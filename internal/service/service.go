package service

import (
	"time"

	"go.uber.org/zap"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/repository"
	"wedding-planner/backend/pkg/jwt"
	"wedding-planner/backend/pkg/mailer"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Rsvp      RsvpService
	Guest     GuestService
	Table     TableService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	rsvpSvc := NewRsvpService(cfg, repo, mail, logger)
	return &Service{
		Auth:      NewAuthService(cfg, jwtMgr, logger),
		Rsvp:      rsvpSvc,
		Guest:     NewGuestService(cfg, repo, rsvpSvc, mail, logger),
		Table:     NewTableService(repo, logger),
		Dashboard: NewDashboardService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}

// 时间戳的统一输出格式（保留时区偏移，本地时间不会被误标为 UTC）
const timeFormat = time.RFC3339
