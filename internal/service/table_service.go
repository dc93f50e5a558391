package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
)

// ── 座位模块业务错误 ──

var (
	// ErrTableNotFound 餐桌不存在
	ErrTableNotFound = errors.New("餐桌不存在")
	// ErrTableNameExists 餐桌名称已被占用
	ErrTableNameExists = errors.New("餐桌名称已存在")
)

// CapacityError 分配会导致超员时的拒绝信息
type CapacityError struct {
	TableName string
	Capacity  int
	Projected int // 分配后的预计占用
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("餐桌「%s」容量不足：容量 %d，分配后 %d 人", e.TableName, e.Capacity, e.Projected)
}

// TableService 餐桌与座位分配业务接口
type TableService interface {
	Create(ctx context.Context, req *dto.CreateTableRequest) (*dto.TableResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TableResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTableRequest) (*dto.TableResponse, error)
	// Delete 删除餐桌并解除其上所有宾客的分配，宾客本身保留
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]dto.TableResponse, error)
	// AssignGuest 分配宾客到餐桌；导致超员时整体拒绝，返回 *CapacityError
	AssignGuest(ctx context.Context, req *dto.AssignGuestRequest) (*dto.AssignGuestResponse, error)
	// UnassignGuest 解除宾客的餐桌分配
	UnassignGuest(ctx context.Context, guestID string) error
	// SeatingPlan 座位图：全部餐桌 + 未排桌的已确认宾客
	SeatingPlan(ctx context.Context) (*dto.SeatingPlanResponse, error)
}

type tableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTableService 创建 TableService 实例
func NewTableService(repo *repository.Repository, logger *zap.Logger) TableService {
	return &tableService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *tableService) Create(ctx context.Context, req *dto.CreateTableRequest) (*dto.TableResponse, error) {
	if err := s.checkNameAvailable(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	table := &model.Table{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Description: req.Description,
	}
	if err := s.repo.Table.Create(ctx, table); err != nil {
		s.logger.Error("创建餐桌失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("餐桌已创建",
		zap.String("table_id", table.TableID),
		zap.String("name", table.Name),
		zap.Int("capacity", table.Capacity),
	)
	return toTableResponse(table, false), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *tableService) GetByID(ctx context.Context, id string) (*dto.TableResponse, error) {
	table, err := s.repo.Table.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		s.logger.Error("查询餐桌失败", zap.String("table_id", id), zap.Error(err))
		return nil, err
	}
	return toTableResponse(table, true), nil
}

// ────────────────────── Update ──────────────────────

// Update 更新餐桌；允许将容量调低到当前占用之下，此时餐桌进入超员态，
// 由仪表盘与座位图标红提示，不强制迁移宾客
func (s *tableService) Update(ctx context.Context, id string, req *dto.UpdateTableRequest) (*dto.TableResponse, error) {
	table, err := s.repo.Table.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		s.logger.Error("查询餐桌失败", zap.String("table_id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil && *req.Name != table.Name {
		if err := s.checkNameAvailable(ctx, *req.Name, table.TableID); err != nil {
			return nil, err
		}
		table.Name = *req.Name
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Description != nil {
		table.Description = *req.Description
	}

	guests := table.Guests
	table.Guests = nil
	if err := s.repo.Table.Update(ctx, table); err != nil {
		s.logger.Error("更新餐桌失败", zap.String("table_id", id), zap.Error(err))
		return nil, err
	}
	table.Guests = guests

	return toTableResponse(table, true), nil
}

// ────────────────────── Delete ──────────────────────

func (s *tableService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Table.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		s.logger.Error("查询餐桌失败", zap.String("table_id", id), zap.Error(err))
		return err
	}

	// 解除分配与删除必须同一事务，防止留下指向已删餐桌的宾客
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
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

	if err := txRepo.Table.ClearAssignments(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("解除餐桌分配失败", zap.String("table_id", id), zap.Error(err))
		return err
	}
	if err := txRepo.Table.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除餐桌失败", zap.String("table_id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("餐桌已删除", zap.String("table_id", id))
	return nil
}

// ────────────────────── List ──────────────────────

func (s *tableService) List(ctx context.Context) ([]dto.TableResponse, error) {
	tables, err := s.repo.Table.List(ctx)
	if err != nil {
		s.logger.Error("查询餐桌列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.TableResponse, 0, len(tables))
	for i := range tables {
		resp = append(resp, *toTableResponse(&tables[i], false))
	}
	return resp, nil
}

// ────────────────────── AssignGuest ──────────────────────

func (s *tableService) AssignGuest(ctx context.Context, req *dto.AssignGuestRequest) (*dto.AssignGuestResponse, error) {
	guest, err := s.repo.Guest.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		s.logger.Error("查询宾客失败", zap.String("guest_id", req.GuestID), zap.Error(err))
		return nil, err
	}

	table, err := s.repo.Table.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		s.logger.Error("查询餐桌失败", zap.String("table_id", req.TableID), zap.Error(err))
		return nil, err
	}

	occupancy, err := s.repo.Table.SumAssignedPeople(ctx, table.TableID)
	if err != nil {
		s.logger.Error("统计餐桌占用失败", zap.String("table_id", table.TableID), zap.Error(err))
		return nil, err
	}

	// 重复分配到同一桌：无变化，按成功返回
	if guest.TableID != nil && *guest.TableID == table.TableID {
		return &dto.AssignGuestResponse{
			GuestID:          guest.GuestID,
			GuestName:        guest.FullName(),
			TableID:          table.TableID,
			TableName:        table.Name,
			CurrentOccupancy: occupancy,
			Capacity:         table.Capacity,
		}, nil
	}

	// 超员整体拒绝，不做部分分配
	projected := occupancy + guest.NumberOfPeople
	if projected > table.Capacity {
		return nil, &CapacityError{
			TableName: table.Name,
			Capacity:  table.Capacity,
			Projected: projected,
		}
	}

	guest.TableID = &table.TableID
	guest.Table = nil
	guest.RsvpToken = nil
	if err := s.repo.Guest.Update(ctx, guest); err != nil {
		s.logger.Error("分配宾客失败",
			zap.String("guest_id", guest.GuestID),
			zap.String("table_id", table.TableID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("宾客已分配餐桌",
		zap.String("guest_id", guest.GuestID),
		zap.String("table_id", table.TableID),
		zap.Int("occupancy", projected),
	)
	return &dto.AssignGuestResponse{
		GuestID:          guest.GuestID,
		GuestName:        guest.FullName(),
		TableID:          table.TableID,
		TableName:        table.Name,
		CurrentOccupancy: projected,
		Capacity:         table.Capacity,
	}, nil
}

// ────────────────────── UnassignGuest ──────────────────────

func (s *tableService) UnassignGuest(ctx context.Context, guestID string) error {
	guest, err := s.repo.Guest.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		s.logger.Error("查询宾客失败", zap.String("guest_id", guestID), zap.Error(err))
		return err
	}

	// 未分配时为幂等空操作
	if guest.TableID == nil {
		return nil
	}

	guest.TableID = nil
	guest.Table = nil
	guest.RsvpToken = nil
	if err := s.repo.Guest.Update(ctx, guest); err != nil {
		s.logger.Error("解除分配失败", zap.String("guest_id", guestID), zap.Error(err))
		return err
	}

	s.logger.Info("宾客已移出餐桌", zap.String("guest_id", guestID))
	return nil
}

// ────────────────────── SeatingPlan ──────────────────────

func (s *tableService) SeatingPlan(ctx context.Context) (*dto.SeatingPlanResponse, error) {
	tables, err := s.repo.Table.List(ctx)
	if err != nil {
		s.logger.Error("查询餐桌列表失败", zap.Error(err))
		return nil, err
	}

	unassigned, err := s.repo.Guest.ListUnassignedConfirmed(ctx)
	if err != nil {
		s.logger.Error("查询未排桌宾客失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.SeatingPlanResponse{
		Tables:           make([]dto.TableResponse, 0, len(tables)),
		UnassignedGuests: make([]dto.SeatedGuest, 0, len(unassigned)),
	}
	for i := range tables {
		resp.Tables = append(resp.Tables, *toTableResponse(&tables[i], true))
	}
	for i := range unassigned {
		resp.UnassignedGuests = append(resp.UnassignedGuests, toSeatedGuest(&unassigned[i]))
	}
	return resp, nil
}

// ── 内部辅助方法 ──

// checkNameAvailable 校验餐桌名称唯一；excludeID 用于更新时排除自身
func (s *tableService) checkNameAvailable(ctx context.Context, name, excludeID string) error {
	existing, err := s.repo.Table.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询餐桌名称失败", zap.String("name", name), zap.Error(err))
		return err
	}
	if existing.TableID == excludeID {
		return nil
	}
	return ErrTableNameExists
}

func toTableResponse(t *model.Table, withGuests bool) *dto.TableResponse {
	resp := &dto.TableResponse{
		ID:                  t.TableID,
		Name:                t.Name,
		Capacity:            t.Capacity,
		Description:         t.Description,
		CurrentOccupancy:    t.CurrentOccupancy(),
		AvailableSeats:      t.AvailableSeats(),
		IsOverCapacity:      t.IsOverCapacity(),
		OccupancyPercentage: t.OccupancyPercentage(),
		GuestCount:          len(t.Guests),
		CreatedAt:           t.CreatedAt.Format(timeFormat),
	}
	if withGuests {
		resp.Guests = make([]dto.SeatedGuest, 0, len(t.Guests))
		for i := range t.Guests {
			resp.Guests = append(resp.Guests, toSeatedGuest(&t.Guests[i]))
		}
	}
	return resp
}

func toSeatedGuest(g *model.Guest) dto.SeatedGuest {
	return dto.SeatedGuest{
		ID:             g.GuestID,
		FullName:       g.FullName(),
		NumberOfPeople: g.NumberOfPeople,
		GroupFamily:    g.GroupFamily,
	}
}
