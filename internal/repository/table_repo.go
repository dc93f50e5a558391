package repository

import (
	"context"

	"gorm.io/gorm"

	"wedding-planner/backend/internal/model"
)

// TableRepository 餐桌数据访问接口
type TableRepository interface {
	Create(ctx context.Context, table *model.Table) error
	GetByID(ctx context.Context, id string) (*model.Table, error)
	GetByName(ctx context.Context, name string) (*model.Table, error)
	Update(ctx context.Context, table *model.Table) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Table, error)
	// SumAssignedPeople 现算指定餐桌的占用人数（已分配宾客人数之和）
	SumAssignedPeople(ctx context.Context, tableID string) (int, error)
	// ClearAssignments 批量解除指定餐桌上所有宾客的分配
	ClearAssignments(ctx context.Context, tableID string) error
}

// tableRepo TableRepository 的 GORM 实现
type tableRepo struct {
	db *gorm.DB
}

// NewTableRepo 创建 TableRepository 实例
func NewTableRepo(db *gorm.DB) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, table *model.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepo) GetByID(ctx context.Context, id string) (*model.Table, error) {
	var table model.Table
	err := r.db.WithContext(ctx).
		Preload("Guests").
		Where("table_id = ?", id).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepo) GetByName(ctx context.Context, name string) (*model.Table, error) {
	var table model.Table
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepo) Update(ctx context.Context, table *model.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *tableRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("table_id = ?", id).
		Delete(&model.Table{}).Error
}

func (r *tableRepo) List(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	err := r.db.WithContext(ctx).
		Preload("Guests").
		Order("name").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepo) SumAssignedPeople(ctx context.Context, tableID string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Guest{}).
		Where("table_id = ?", tableID).
		Select("COALESCE(SUM(number_of_people), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *tableRepo) ClearAssignments(ctx context.Context, tableID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Guest{}).
		Where("table_id = ?", tableID).
		Update("table_id", nil).Error
}
