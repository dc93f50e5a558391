package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Guest     GuestRepository
	Table     TableRepository
	RsvpToken RsvpTokenRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Guest:     NewGuestRepo(db),
		Table:     NewTableRepo(db),
		RsvpToken: NewRsvpTokenRepo(db),
		db:        db,
	}
}

// BeginTx 开启手动事务
// db 为 nil 时（单测场景）返回 nil 事务，调用方需对 tx 做 nil 判断
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务连接的 Repository 副本
// tx 为 nil 时返回自身（与 BeginTx 的降级行为配对）
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{
		Guest:     NewGuestRepo(tx),
		Table:     NewTableRepo(tx),
		RsvpToken: NewRsvpTokenRepo(tx),
		db:        tx,
	}
}
