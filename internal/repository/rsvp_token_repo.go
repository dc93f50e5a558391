package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wedding-planner/backend/internal/model"
)

// RsvpTokenRepository RSVP 令牌数据访问接口
type RsvpTokenRepository interface {
	Create(ctx context.Context, token *model.RsvpToken) error
	GetByToken(ctx context.Context, token string) (*model.RsvpToken, error)
	GetByGuest(ctx context.Context, guestID string) (*model.RsvpToken, error)
	// DeleteByGuest 删除宾客名下的令牌（替换语义的前半步）；不存在时不报错
	DeleteByGuest(ctx context.Context, guestID string) error
	// Consume 条件消费：仅当 is_used=false 时置为已使用
	// 返回实际更新的行数，0 表示令牌已被并发请求抢先消费
	Consume(ctx context.Context, tokenID string, usedAt time.Time) (int64, error)
}

// rsvpTokenRepo RsvpTokenRepository 的 GORM 实现
type rsvpTokenRepo struct {
	db *gorm.DB
}

// NewRsvpTokenRepo 创建 RsvpTokenRepository 实例
func NewRsvpTokenRepo(db *gorm.DB) RsvpTokenRepository {
	return &rsvpTokenRepo{db: db}
}

func (r *rsvpTokenRepo) Create(ctx context.Context, token *model.RsvpToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *rsvpTokenRepo) GetByToken(ctx context.Context, token string) (*model.RsvpToken, error) {
	var t model.RsvpToken
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Guest.Table").
		Where("token = ?", token).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *rsvpTokenRepo) GetByGuest(ctx context.Context, guestID string) (*model.RsvpToken, error) {
	var t model.RsvpToken
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *rsvpTokenRepo) DeleteByGuest(ctx context.Context, guestID string) error {
	return r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Delete(&model.RsvpToken{}).Error
}

func (r *rsvpTokenRepo) Consume(ctx context.Context, tokenID string, usedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RsvpToken{}).
		Where("token_id = ? AND is_used = false", tokenID).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": usedAt,
		})
	return result.RowsAffected, result.Error
}
