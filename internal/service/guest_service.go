package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
	"wedding-planner/backend/pkg/mailer"
)

// ── 宾客模块业务错误 ──

var (
	// ErrGuestNotFound 宾客不存在
	ErrGuestNotFound = errors.New("宾客不存在")
)

// GuestService 宾客管理业务接口
type GuestService interface {
	// Create 创建宾客，可选立即生成令牌并发送邀请
	Create(ctx context.Context, req *dto.CreateGuestRequest) (*dto.GuestResponse, error)
	// List 按筛选条件查询宾客，附带筛选选项
	List(ctx context.Context, req *dto.GuestListRequest) (*dto.GuestListResponse, error)
	// GetByID 宾客详情，含令牌状态
	GetByID(ctx context.Context, id string) (*dto.GuestResponse, error)
	// Update 更新宾客信息（仅更新非 nil 字段）
	Update(ctx context.Context, id string, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error)
	// Delete 删除宾客，令牌随外键级联删除
	Delete(ctx context.Context, id string) error
	// ResendInvitation 重新生成令牌并重发邀请邮件
	ResendInvitation(ctx context.Context, id string) error
}

type guestService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rsvp   RsvpService
	mail   mailer.Mailer
	logger *zap.Logger
}

// NewGuestService 创建 GuestService 实例
func NewGuestService(
	cfg *config.Config,
	repo *repository.Repository,
	rsvp RsvpService,
	mail mailer.Mailer,
	logger *zap.Logger,
) GuestService {
	return &guestService{cfg: cfg, repo: repo, rsvp: rsvp, mail: mail, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *guestService) Create(ctx context.Context, req *dto.CreateGuestRequest) (*dto.GuestResponse, error) {
	guest := &model.Guest{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		GroupFamily:         req.GroupFamily,
		NumberOfPeople:      req.NumberOfPeople,
		Status:              model.StatusPending,
		DietaryRestrictions: req.DietaryRestrictions,
	}

	if req.TableID != nil && *req.TableID != "" {
		if _, err := s.repo.Table.GetByID(ctx, *req.TableID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTableNotFound
			}
			return nil, err
		}
		guest.TableID = req.TableID
	}

	if err := s.repo.Guest.Create(ctx, guest); err != nil {
		s.logger.Error("创建宾客失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("宾客已创建",
		zap.String("guest_id", guest.GuestID),
		zap.String("email", guest.Email),
	)

	resp := s.toGuestResponse(guest)

	// 邀请发送失败不回滚创建，通过 invitation_sent 告知调用方
	if req.SendInvitation {
		sent := true
		if err := s.rsvp.RegenerateToken(ctx, guest.GuestID); err != nil {
			s.logger.Warn("创建后发送邀请失败", zap.String("guest_id", guest.GuestID), zap.Error(err))
			sent = false
		}
		resp.InvitationSent = &sent
	}

	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *guestService) List(ctx context.Context, req *dto.GuestListRequest) (*dto.GuestListResponse, error) {
	filters := &repository.GuestListFilters{}
	if req != nil {
		filters.Search = req.Search
		filters.Status = model.RsvpStatus(req.Status)
		filters.TableID = req.TableID
		filters.Group = req.Group
	}

	guests, err := s.repo.Guest.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询宾客列表失败", zap.Error(err))
		return nil, err
	}

	tables, err := s.repo.Table.List(ctx)
	if err != nil {
		s.logger.Error("查询餐桌列表失败", zap.Error(err))
		return nil, err
	}

	groups, err := s.repo.Guest.ListGroups(ctx)
	if err != nil {
		s.logger.Error("查询分组标签失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.GuestListResponse{
		List:   make([]dto.GuestResponse, 0, len(guests)),
		Tables: make([]dto.TableBrief, 0, len(tables)),
		Groups: groups,
	}
	for i := range guests {
		resp.List = append(resp.List, *s.toGuestResponse(&guests[i]))
	}
	for i := range tables {
		resp.Tables = append(resp.Tables, dto.TableBrief{
			ID:   tables[i].TableID,
			Name: tables[i].Name,
		})
	}
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *guestService) GetByID(ctx context.Context, id string) (*dto.GuestResponse, error) {
	guest, err := s.repo.Guest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		s.logger.Error("查询宾客失败", zap.String("guest_id", id), zap.Error(err))
		return nil, err
	}

	resp := s.toGuestResponse(guest)

	// 详情页附带令牌状态，供管理端展示回执链接
	if guest.RsvpToken != nil {
		token := guest.RsvpToken
		tr := &dto.TokenResponse{
			Token:               token.Token,
			ExpiresAt:           token.ExpiresAt.Format(timeFormat),
			IsUsed:              token.IsUsed,
			IsExpired:           token.IsExpired(),
			DaysUntilExpiration: token.DaysUntilExpiration(),
			RsvpURL:             s.rsvp.RsvpURL(token.Token),
		}
		if token.UsedAt != nil {
			tr.UsedAt = token.UsedAt.Format(timeFormat)
		}
		resp.Token = tr
	}

	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *guestService) Update(ctx context.Context, id string, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error) {
	guest, err := s.repo.Guest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		s.logger.Error("查询宾客失败", zap.String("guest_id", id), zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		guest.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		guest.LastName = *req.LastName
	}
	if req.Email != nil {
		guest.Email = *req.Email
	}
	if req.GroupFamily != nil {
		guest.GroupFamily = *req.GroupFamily
	}
	if req.NumberOfPeople != nil {
		guest.NumberOfPeople = *req.NumberOfPeople
	}
	if req.Status != nil {
		guest.Status = model.RsvpStatus(*req.Status)
	}
	if req.DietaryRestrictions != nil {
		guest.DietaryRestrictions = *req.DietaryRestrictions
	}
	if req.TableID != nil {
		// 空串表示清除分配
		if *req.TableID == "" {
			guest.TableID = nil
		} else {
			if _, err := s.repo.Table.GetByID(ctx, *req.TableID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrTableNotFound
				}
				return nil, err
			}
			guest.TableID = req.TableID
		}
	}

	// 清除预加载的关联，避免 Save 连带写入
	guest.Table = nil
	guest.RsvpToken = nil

	if err := s.repo.Guest.Update(ctx, guest); err != nil {
		s.logger.Error("更新宾客失败", zap.String("guest_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *guestService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Guest.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		s.logger.Error("查询宾客失败", zap.String("guest_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Guest.Delete(ctx, id); err != nil {
		s.logger.Error("删除宾客失败", zap.String("guest_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("宾客已删除", zap.String("guest_id", id))
	return nil
}

// ────────────────────── ResendInvitation ──────────────────────

func (s *guestService) ResendInvitation(ctx context.Context, id string) error {
	return s.rsvp.RegenerateToken(ctx, id)
}

// ── 内部辅助方法 ──

func (s *guestService) toGuestResponse(g *model.Guest) *dto.GuestResponse {
	resp := &dto.GuestResponse{
		ID:                  g.GuestID,
		FirstName:           g.FirstName,
		LastName:            g.LastName,
		FullName:            g.FullName(),
		Email:               g.Email,
		GroupFamily:         g.GroupFamily,
		NumberOfPeople:      g.NumberOfPeople,
		Status:              string(g.Status),
		DietaryRestrictions: g.DietaryRestrictions,
		CreatedAt:           g.CreatedAt.Format(timeFormat),
	}
	if g.UpdatedAt != nil {
		resp.UpdatedAt = g.UpdatedAt.Format(timeFormat)
	}
	if g.RespondedAt != nil {
		resp.RespondedAt = g.RespondedAt.Format(timeFormat)
	}
	if g.Table != nil {
		resp.Table = &dto.TableBrief{ID: g.Table.TableID, Name: g.Table.Name}
	}
	return resp
}
