package repository

import (
	"context"

	"gorm.io/gorm"

	"wedding-planner/backend/internal/model"
)

// GuestListFilters 宾客列表筛选条件（零值字段不参与过滤）
type GuestListFilters struct {
	Search  string // 姓名/邮箱子串匹配
	Status  model.RsvpStatus
	TableID string
	Group   string
}

// GuestRepository 宾客数据访问接口
type GuestRepository interface {
	Create(ctx context.Context, guest *model.Guest) error
	GetByID(ctx context.Context, id string) (*model.Guest, error)
	Update(ctx context.Context, guest *model.Guest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *GuestListFilters) ([]model.Guest, error)
	ListAll(ctx context.Context) ([]model.Guest, error)
	// ListUnassignedConfirmed 未排桌且已确认出席的宾客（座位图左栏）
	ListUnassignedConfirmed(ctx context.Context) ([]model.Guest, error)
	// ListGroups 去重后的家庭/分组标签，按字典序
	ListGroups(ctx context.Context) ([]string, error)
}

// guestRepo GuestRepository 的 GORM 实现
type guestRepo struct {
	db *gorm.DB
}

// NewGuestRepo 创建 GuestRepository 实例
func NewGuestRepo(db *gorm.DB) GuestRepository {
	return &guestRepo{db: db}
}

func (r *guestRepo) Create(ctx context.Context, guest *model.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *guestRepo) GetByID(ctx context.Context, id string) (*model.Guest, error) {
	var guest model.Guest
	err := r.db.WithContext(ctx).
		Preload("Table").
		Preload("RsvpToken").
		Where("guest_id = ?", id).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepo) Update(ctx context.Context, guest *model.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

// Delete 删除宾客；令牌由外键级联删除，无需单独处理
func (r *guestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("guest_id = ?", id).
		Delete(&model.Guest{}).Error
}

func (r *guestRepo) List(ctx context.Context, filters *GuestListFilters) ([]model.Guest, error) {
	db := r.db.WithContext(ctx).Model(&model.Guest{}).Preload("Table")

	if filters != nil {
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			db = db.Where(
				"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
				pattern, pattern, pattern,
			)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.TableID != "" {
			db = db.Where("table_id = ?", filters.TableID)
		}
		if filters.Group != "" {
			db = db.Where("group_family = ?", filters.Group)
		}
	}

	var guests []model.Guest
	if err := db.Order("last_name, first_name").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *guestRepo) ListAll(ctx context.Context) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.db.WithContext(ctx).
		Preload("Table").
		Order("last_name, first_name").
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *guestRepo) ListUnassignedConfirmed(ctx context.Context) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.db.WithContext(ctx).
		Where("table_id IS NULL AND status = ?", model.StatusConfirmed).
		Order("last_name, first_name").
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *guestRepo) ListGroups(ctx context.Context) ([]string, error) {
	var groups []string
	err := r.db.WithContext(ctx).
		Model(&model.Guest{}).
		Where("group_family <> ''").
		Distinct("group_family").
		Order("group_family").
		Pluck("group_family", &groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
