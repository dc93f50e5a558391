package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestDashboardService() (DashboardService, *mockStore) {
	store := newMockStore()
	repo := &repository.Repository{
		Guest:     newMockGuestRepo(store),
		Table:     newMockTableRepo(store),
		RsvpToken: newMockRsvpTokenRepo(store),
	}
	svc := NewDashboardService(repo, zap.NewNop())
	return svc, store
}

func seedDashboardData(store *mockStore) {
	// 2 确认（共 5 人）、1 婉拒、1 待回复（2 人）
	g1 := seedGuest(store, "guest-001")
	g1.Status = model.StatusConfirmed
	g1.NumberOfPeople = 2
	t1 := time.Now().Add(-2 * time.Hour)
	g1.RespondedAt = &t1
	g1.GroupFamily = "男方亲友"

	g2 := seedGuest(store, "guest-002")
	g2.Status = model.StatusConfirmed
	g2.NumberOfPeople = 3
	t2 := time.Now().Add(-time.Hour)
	g2.RespondedAt = &t2
	g2.GroupFamily = "女方亲友"

	g3 := seedGuest(store, "guest-003")
	g3.Status = model.StatusDeclined
	g3.NumberOfPeople = 0
	t3 := time.Now().Add(-30 * time.Minute)
	g3.RespondedAt = &t3
	g3.GroupFamily = "男方亲友"

	g4 := seedGuest(store, "guest-004")
	g4.NumberOfPeople = 2

	// 容量 10 的桌，坐了 5 人
	seedTable(store, "table-001", "主桌", 10)
	tid := "table-001"
	g1.TableID = &tid
	g2.TableID = &tid
}

// ── Summary 测试 ──

func TestDashboardService_Summary(t *testing.T) {
	svc, store := setupTestDashboardService()
	seedDashboardData(store)

	result, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}

	if result.TotalGuests != 4 {
		t.Errorf("期望 4 位宾客，实际=%d", result.TotalGuests)
	}
	if result.ConfirmedGuests != 2 || result.ConfirmedPeople != 5 {
		t.Errorf("确认统计不符: guests=%d people=%d", result.ConfirmedGuests, result.ConfirmedPeople)
	}
	if result.DeclinedGuests != 1 || result.PendingGuests != 1 {
		t.Errorf("婉拒/待回复统计不符: declined=%d pending=%d", result.DeclinedGuests, result.PendingGuests)
	}
	// 回复率 = (2+1)/4 = 75%
	if result.ConfirmationRate != 75.0 {
		t.Errorf("期望回复率 75%%，实际=%.1f", result.ConfirmationRate)
	}
	if result.TotalSeats != 10 || result.OccupiedSeats != 5 || result.AvailableSeats != 5 {
		t.Errorf("座位统计不符: total=%d occupied=%d available=%d",
			result.TotalSeats, result.OccupiedSeats, result.AvailableSeats)
	}
	if result.SeatingOccupancyPct != 50.0 {
		t.Errorf("期望座位占用率 50%%，实际=%.1f", result.SeatingOccupancyPct)
	}

	// 最近回复按时间倒序：guest-003 最新
	if len(result.RecentResponses) != 3 {
		t.Fatalf("期望 3 条最近回复，实际=%d", len(result.RecentResponses))
	}
	if result.RecentResponses[0].ID != "guest-003" {
		t.Errorf("最近回复应排在最前，实际=%s", result.RecentResponses[0].ID)
	}

	if len(result.PendingGuestsList) != 1 || result.PendingGuestsList[0].ID != "guest-004" {
		t.Errorf("待回复列表不符: %+v", result.PendingGuestsList)
	}
	if len(result.OverCapacityTables) != 0 {
		t.Error("不应有超员餐桌")
	}
}

func TestDashboardService_Summary_Empty(t *testing.T) {
	svc, _ := setupTestDashboardService()

	result, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("空数据 Summary 应成功: %v", err)
	}
	if result.TotalGuests != 0 || result.ConfirmationRate != 0 || result.SeatingOccupancyPct != 0 {
		t.Errorf("空数据统计应全为零: %+v", result)
	}
}

func TestDashboardService_Summary_OverCapacity(t *testing.T) {
	svc, store := setupTestDashboardService()
	seedTable(store, "table-001", "小桌", 4)
	seedAssignedGuest(store, "guest-001", "table-001", 6)

	result, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if len(result.OverCapacityTables) != 1 {
		t.Fatalf("期望 1 张超员餐桌，实际=%d", len(result.OverCapacityTables))
	}
	if !result.OverCapacityTables[0].IsOverCapacity {
		t.Error("超员标记应为 true")
	}
}

// ── Stats 测试 ──

func TestDashboardService_Stats(t *testing.T) {
	svc, store := setupTestDashboardService()
	seedDashboardData(store)

	result, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}

	if result.Guests.Total != 4 || result.Guests.Confirmed != 2 {
		t.Errorf("宾客统计不符: %+v", result.Guests)
	}
	if result.Tables.Total != 1 || result.Tables.TotalCapacity != 10 || result.Tables.Occupied != 5 {
		t.Errorf("餐桌统计不符: %+v", result.Tables)
	}

	// 分组统计按字典序
	if len(result.ByGroup) != 2 {
		t.Fatalf("期望 2 个分组，实际=%d", len(result.ByGroup))
	}
	first := result.ByGroup[0]
	if first.Group != "女方亲友" || first.Count != 1 || first.Confirmed != 1 {
		t.Errorf("分组统计不符: %+v", first)
	}
	second := result.ByGroup[1]
	if second.Group != "男方亲友" || second.Count != 2 || second.Confirmed != 1 {
		t.Errorf("分组统计不符: %+v", second)
	}
}
