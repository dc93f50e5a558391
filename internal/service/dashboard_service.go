package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
)

// 首页列表的条目上限
const dashboardListLimit = 10

// DashboardService 仪表盘与统计业务接口
type DashboardService interface {
	// Summary 管理端首页汇总：回复进度、座位占用与待办列表
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
	// Stats JSON 统计：宾客、餐桌与分组三个维度
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// ────────────────────── Summary ──────────────────────

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	guests, err := s.repo.Guest.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询宾客失败", zap.Error(err))
		return nil, err
	}
	tables, err := s.repo.Table.List(ctx)
	if err != nil {
		s.logger.Error("查询餐桌失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.DashboardResponse{
		RecentResponses:    []dto.GuestResponse{},
		PendingGuestsList:  []dto.GuestResponse{},
		OverCapacityTables: []dto.TableResponse{},
	}

	var responded []*model.Guest
	for i := range guests {
		g := &guests[i]
		resp.TotalGuests++
		resp.TotalPeople += g.NumberOfPeople
		switch g.Status {
		case model.StatusConfirmed:
			resp.ConfirmedGuests++
			resp.ConfirmedPeople += g.NumberOfPeople
		case model.StatusDeclined:
			resp.DeclinedGuests++
			// 婉拒宾客人数为 0，这里仍按原逻辑累加以保持口径一致
			resp.DeclinedPeople += g.NumberOfPeople
		default:
			resp.PendingGuests++
			resp.PendingPeople += g.NumberOfPeople
			if len(resp.PendingGuestsList) < dashboardListLimit {
				resp.PendingGuestsList = append(resp.PendingGuestsList, briefGuestResponse(g))
			}
		}
		if g.RespondedAt != nil {
			responded = append(responded, g)
		}
	}

	if resp.TotalGuests > 0 {
		respondedCount := resp.ConfirmedGuests + resp.DeclinedGuests
		resp.ConfirmationRate = float64(respondedCount) * 100.0 / float64(resp.TotalGuests)
	}

	// 最近回复按回复时间倒序取前 N 条
	sort.Slice(responded, func(i, j int) bool {
		return responded[i].RespondedAt.After(*responded[j].RespondedAt)
	})
	for _, g := range responded {
		if len(resp.RecentResponses) >= dashboardListLimit {
			break
		}
		resp.RecentResponses = append(resp.RecentResponses, briefGuestResponse(g))
	}

	for i := range tables {
		t := &tables[i]
		resp.TotalTables++
		resp.TotalSeats += t.Capacity
		resp.OccupiedSeats += t.CurrentOccupancy()
		if t.IsOverCapacity() {
			resp.OverCapacityTables = append(resp.OverCapacityTables, *toTableResponse(t, false))
		}
	}
	resp.AvailableSeats = resp.TotalSeats - resp.OccupiedSeats
	if resp.TotalSeats > 0 {
		resp.SeatingOccupancyPct = float64(resp.OccupiedSeats) * 100.0 / float64(resp.TotalSeats)
	}

	return resp, nil
}

// ────────────────────── Stats ──────────────────────

func (s *dashboardService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	guests, err := s.repo.Guest.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询宾客失败", zap.Error(err))
		return nil, err
	}
	tables, err := s.repo.Table.List(ctx)
	if err != nil {
		s.logger.Error("查询餐桌失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.StatsResponse{ByGroup: []dto.GroupStats{}}

	groupIdx := make(map[string]int)
	for i := range guests {
		g := &guests[i]
		resp.Guests.Total++
		resp.Guests.TotalPeople += g.NumberOfPeople
		switch g.Status {
		case model.StatusConfirmed:
			resp.Guests.Confirmed++
			resp.Guests.ConfirmedPeople += g.NumberOfPeople
		case model.StatusDeclined:
			resp.Guests.Declined++
		default:
			resp.Guests.Pending++
		}

		if g.GroupFamily != "" {
			idx, ok := groupIdx[g.GroupFamily]
			if !ok {
				idx = len(resp.ByGroup)
				groupIdx[g.GroupFamily] = idx
				resp.ByGroup = append(resp.ByGroup, dto.GroupStats{Group: g.GroupFamily})
			}
			gs := &resp.ByGroup[idx]
			gs.Count++
			gs.TotalPeople += g.NumberOfPeople
			if g.Status == model.StatusConfirmed {
				gs.Confirmed++
			}
		}
	}
	if resp.Guests.Total > 0 {
		resp.Guests.ConfirmationRate =
			float64(resp.Guests.Confirmed+resp.Guests.Declined) * 100.0 / float64(resp.Guests.Total)
	}

	sort.Slice(resp.ByGroup, func(i, j int) bool {
		return resp.ByGroup[i].Group < resp.ByGroup[j].Group
	})

	for i := range tables {
		t := &tables[i]
		resp.Tables.Total++
		resp.Tables.TotalCapacity += t.Capacity
		resp.Tables.Occupied += t.CurrentOccupancy()
		if t.IsOverCapacity() {
			resp.Tables.OverCapacity++
		}
	}
	resp.Tables.Available = resp.Tables.TotalCapacity - resp.Tables.Occupied

	return resp, nil
}

// briefGuestResponse 仪表盘列表条目，不带令牌与更新时间
func briefGuestResponse(g *model.Guest) dto.GuestResponse {
	resp := dto.GuestResponse{
		ID:             g.GuestID,
		FirstName:      g.FirstName,
		LastName:       g.LastName,
		FullName:       g.FullName(),
		Email:          g.Email,
		GroupFamily:    g.GroupFamily,
		NumberOfPeople: g.NumberOfPeople,
		Status:         string(g.Status),
		CreatedAt:      g.CreatedAt.Format(timeFormat),
	}
	if g.RespondedAt != nil {
		resp.RespondedAt = g.RespondedAt.Format(timeFormat)
	}
	if g.Table != nil {
		resp.Table = &dto.TableBrief{ID: g.Table.TableID, Name: g.Table.Name}
	}
	return resp
}
