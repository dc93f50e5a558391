package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
	"wedding-planner/backend/pkg/mailer"
)

// ── RSVP 模块业务错误 ──

var (
	// ErrTokenNotFound 令牌不存在（页面渲染为"链接无效"）
	ErrTokenNotFound = errors.New("令牌不存在")
	// ErrInvalidToken 令牌不可用：不存在、已过期或已被使用
	// 对外契约不区分原因，页面状态由 GetPage 单独给出
	ErrInvalidToken = errors.New("令牌无效")
	// ErrPartySizeOutOfRange 确认出席时人数超出 [1,20]
	ErrPartySizeOutOfRange = errors.New("出席人数必须在 1-20 之间")
	// ErrInvitationSendFailed 邀请邮件发送失败（重发场景阻断）
	ErrInvitationSendFailed = errors.New("邀请邮件发送失败")
	// ErrCalendarUnavailable 当前令牌不满足生成日历邀请的条件
	ErrCalendarUnavailable = errors.New("日历邀请不可用")
)

// RsvpService RSVP 令牌生命周期业务接口
//
// 令牌状态机：Active →（时间触发，现算不落库）Expired；Active →（提交触发）Used。
// Used 与 Expired 均为终态。
type RsvpService interface {
	// GenerateToken 为宾客生成新令牌（替换语义：同一宾客至多一条令牌）
	GenerateToken(ctx context.Context, guestID string, expirationDays int) (*model.RsvpToken, error)
	// GetToken 按令牌串精确查找，附带宾客信息；只读
	GetToken(ctx context.Context, tokenStr string) (*model.RsvpToken, error)
	// ValidateToken 令牌当前是否可用于提交
	ValidateToken(ctx context.Context, tokenStr string) bool
	// GetPage 公开 RSVP 页面状态（表单/已回复/已过期）
	GetPage(ctx context.Context, tokenStr string) (*dto.RsvpPageResponse, error)
	// Submit 提交回复：消费令牌并更新宾客，两者同一事务提交
	Submit(ctx context.Context, tokenStr string, req *dto.SubmitRsvpRequest) (*dto.RsvpResultResponse, error)
	// RegenerateToken 重新生成令牌并发送新的邀请邮件
	RegenerateToken(ctx context.Context, guestID string) error
	// RsvpURL 拼接宾客可访问的回执链接
	RsvpURL(tokenStr string) string
	// CalendarInvite 为已确认出席的宾客生成 .ics 日历邀请
	CalendarInvite(ctx context.Context, tokenStr string) ([]byte, string, error)
}

type rsvpService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mail   mailer.Mailer
	logger *zap.Logger
}

// NewRsvpService 创建 RsvpService 实例
func NewRsvpService(
	cfg *config.Config,
	repo *repository.Repository,
	mail mailer.Mailer,
	logger *zap.Logger,
) RsvpService {
	return &rsvpService{cfg: cfg, repo: repo, mail: mail, logger: logger}
}

// newTokenString 生成 64 位十六进制令牌串
// 256 bit 加密随机数，不可枚举、不含时间或序列成分
func newTokenString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成令牌随机数失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ────────────────────── GenerateToken ──────────────────────

func (s *rsvpService) GenerateToken(ctx context.Context, guestID string, expirationDays int) (*model.RsvpToken, error) {
	guest, err := s.repo.Guest.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		s.logger.Error("查询宾客失败", zap.String("guest_id", guestID), zap.Error(err))
		return nil, err
	}

	if expirationDays <= 0 {
		expirationDays = s.cfg.Rsvp.TokenExpirationDays
	}

	tokenStr, err := newTokenString()
	if err != nil {
		return nil, err
	}

	token := &model.RsvpToken{
		Token:     tokenStr,
		GuestID:   guest.GuestID,
		ExpiresAt: time.Now().AddDate(0, 0, expirationDays),
		IsUsed:    false,
	}

	// 删旧 + 插新必须同一事务提交，保证任意时刻至多一条令牌
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.RsvpToken.DeleteByGuest(ctx, guest.GuestID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除旧令牌失败", zap.String("guest_id", guestID), zap.Error(err))
		return nil, err
	}

	if err := txRepo.RsvpToken.Create(ctx, token); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建令牌失败", zap.String("guest_id", guestID), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("已生成 RSVP 令牌",
		zap.String("guest_id", guestID),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return token, nil
}

// ────────────────────── GetToken ──────────────────────

func (s *rsvpService) GetToken(ctx context.Context, tokenStr string) (*model.RsvpToken, error) {
	token, err := s.repo.RsvpToken.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		s.logger.Error("查询令牌失败", zap.Error(err))
		return nil, err
	}
	return token, nil
}

// ────────────────────── ValidateToken ──────────────────────

func (s *rsvpService) ValidateToken(ctx context.Context, tokenStr string) bool {
	token, err := s.GetToken(ctx, tokenStr)
	if err != nil {
		return false
	}
	return token.IsValid()
}

// ────────────────────── GetPage ──────────────────────

func (s *rsvpService) GetPage(ctx context.Context, tokenStr string) (*dto.RsvpPageResponse, error) {
	token, err := s.GetToken(ctx, tokenStr)
	if err != nil {
		return nil, err
	}

	resp := &dto.RsvpPageResponse{
		State: dto.RsvpStateForm,
		Guest: toRsvpGuest(token.Guest),
		// 预填当前值，宾客只需修改差异部分
		NumberOfPeople:      token.Guest.NumberOfPeople,
		DietaryRestrictions: token.Guest.DietaryRestrictions,
		ExpiresAt:           token.ExpiresAt.Format(timeFormat),
		DaysUntilExpiration: token.DaysUntilExpiration(),
	}

	// 已使用优先于已过期：已回复的宾客看到的是回执确认页
	switch {
	case token.IsUsed:
		resp.State = dto.RsvpStateAlreadyResponded
		if token.Guest.RespondedAt != nil {
			resp.RespondedAt = token.Guest.RespondedAt.Format(timeFormat)
		}
	case token.IsExpired():
		resp.State = dto.RsvpStateExpired
	}

	return resp, nil
}

// ────────────────────── Submit ──────────────────────

func (s *rsvpService) Submit(ctx context.Context, tokenStr string, req *dto.SubmitRsvpRequest) (*dto.RsvpResultResponse, error) {
	// 重新校验，防御页面渲染到提交之间令牌失效
	token, err := s.repo.RsvpToken.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Error("查询令牌失败", zap.Error(err))
		return nil, err
	}
	if !token.IsValid() || token.Guest == nil {
		return nil, ErrInvalidToken
	}

	status := model.RsvpStatus(req.Status)
	people := req.NumberOfPeople
	dietary := req.DietaryRestrictions

	// 任何持久化之前完成数值校验
	if status == model.StatusDeclined {
		people = 0
		dietary = ""
	} else if people < 1 || people > 20 {
		return nil, ErrPartySizeOutOfRange
	}

	now := time.Now()
	guest := token.Guest
	guest.Status = status
	guest.NumberOfPeople = people
	guest.DietaryRestrictions = dietary
	guest.RespondedAt = &now
	guest.Table = nil
	guest.RsvpToken = nil

	// 令牌消费与宾客更新同一事务：条件更新抢占失败即视为令牌无效，
	// 并发提交同一令牌时至多一个调用方成功
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	rows, err := txRepo.RsvpToken.Consume(ctx, token.TokenID, now)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("消费令牌失败", zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrInvalidToken
	}

	if err := txRepo.Guest.Update(ctx, guest); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新宾客回复失败", zap.String("guest_id", guest.GuestID), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("RSVP 提交成功",
		zap.String("guest_id", guest.GuestID),
		zap.String("status", string(status)),
		zap.Int("people", people),
	)

	// 回执邮件：确认→确认邮件，婉拒→回执邮件；失败仅记录，不影响已提交的回复
	switch status {
	case model.StatusConfirmed:
		if err := s.mail.SendConfirmation(guest); err != nil {
			s.logger.Warn("确认邮件发送失败", zap.String("guest_id", guest.GuestID), zap.Error(err))
		}
	case model.StatusDeclined:
		if err := s.mail.SendDecline(guest); err != nil {
			s.logger.Warn("婉拒回执邮件发送失败", zap.String("guest_id", guest.GuestID), zap.Error(err))
		}
	}

	return &dto.RsvpResultResponse{
		Guest:               toRsvpGuest(guest),
		Status:              string(status),
		NumberOfPeople:      people,
		DietaryRestrictions: dietary,
		RespondedAt:         now.Format(timeFormat),
	}, nil
}

// ────────────────────── RegenerateToken ──────────────────────

// RegenerateToken 令牌丢失或过期时重新签发
// 效果幂等：无论调用多少次，宾客最终都恰有一条新令牌；令牌串每次不同
func (s *rsvpService) RegenerateToken(ctx context.Context, guestID string) error {
	token, err := s.GenerateToken(ctx, guestID, s.cfg.Rsvp.TokenExpirationDays)
	if err != nil {
		return err
	}

	guest, err := s.repo.Guest.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		return err
	}

	// 重发只有邮件这一个效果，发送失败即整体失败
	if err := s.mail.SendInvitation(guest, s.RsvpURL(token.Token)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvitationSendFailed, err)
	}

	return nil
}

// ────────────────────── RsvpURL ──────────────────────

func (s *rsvpService) RsvpURL(tokenStr string) string {
	return fmt.Sprintf("%s/rsvp/%s", s.cfg.Server.BaseURL, tokenStr)
}

// ────────────────────── CalendarInvite ──────────────────────

func (s *rsvpService) CalendarInvite(ctx context.Context, tokenStr string) ([]byte, string, error) {
	token, err := s.GetToken(ctx, tokenStr)
	if err != nil {
		return nil, "", err
	}

	// 仅已确认出席的宾客可下载；婚礼日期未配置时同样不可用
	if token.Guest == nil || token.Guest.Status != model.StatusConfirmed || s.cfg.Wedding.Date.IsZero() {
		return nil, "", ErrCalendarUnavailable
	}

	data := buildCalendarInvite(&s.cfg.Wedding, token.Guest)
	return data, "wedding.ics", nil
}

// ── 内部辅助方法 ──

func toRsvpGuest(g *model.Guest) dto.RsvpGuest {
	if g == nil {
		return dto.RsvpGuest{}
	}
	return dto.RsvpGuest{
		FullName:    g.FullName(),
		GroupFamily: g.GroupFamily,
		Status:      string(g.Status),
	}
}
