package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestGuestService() (GuestService, *mockStore, *mockMailer) {
	store := newMockStore()
	repo := &repository.Repository{
		Guest:     newMockGuestRepo(store),
		Table:     newMockTableRepo(store),
		RsvpToken: newMockRsvpTokenRepo(store),
	}
	cfg := testConfig()
	mail := &mockMailer{}
	rsvpSvc := NewRsvpService(cfg, repo, mail, zap.NewNop())
	svc := NewGuestService(cfg, repo, rsvpSvc, mail, zap.NewNop())
	return svc, store, mail
}

// ── Create 测试 ──

func TestGuestService_Create_Success(t *testing.T) {
	svc, store, mail := setupTestGuestService()

	result, err := svc.Create(context.Background(), &dto.CreateGuestRequest{
		FirstName:      "伟",
		LastName:       "王",
		Email:          "wei@example.com",
		GroupFamily:    "男方亲友",
		NumberOfPeople: 2,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != string(model.StatusPending) {
		t.Errorf("新宾客应为待回复状态，实际=%s", result.Status)
	}
	if result.FullName != "伟 王" {
		t.Errorf("期望全名，实际=%s", result.FullName)
	}
	if result.InvitationSent != nil {
		t.Error("未请求发送邀请时不应返回 invitation_sent")
	}
	if len(store.guests) != 1 {
		t.Errorf("期望落库 1 位宾客，实际=%d", len(store.guests))
	}
	if len(mail.invitations) != 0 {
		t.Error("未请求发送邀请时不应发邮件")
	}
}

func TestGuestService_Create_WithInvitation(t *testing.T) {
	svc, store, mail := setupTestGuestService()

	result, err := svc.Create(context.Background(), &dto.CreateGuestRequest{
		FirstName:      "伟",
		LastName:       "王",
		Email:          "wei@example.com",
		NumberOfPeople: 2,
		SendInvitation: true,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.InvitationSent == nil || !*result.InvitationSent {
		t.Error("期望 invitation_sent=true")
	}
	if len(mail.invitations) != 1 {
		t.Errorf("期望发送 1 封邀请，实际=%d", len(mail.invitations))
	}
	// 令牌已生成
	found := false
	for _, tok := range store.tokens {
		if tok.GuestID == result.ID {
			found = true
		}
	}
	if !found {
		t.Error("应为新宾客生成令牌")
	}
}

func TestGuestService_Create_InvitationFailureDoesNotFailCreate(t *testing.T) {
	svc, store, mail := setupTestGuestService()
	mail.failSend = true

	result, err := svc.Create(context.Background(), &dto.CreateGuestRequest{
		FirstName:      "伟",
		LastName:       "王",
		Email:          "wei@example.com",
		NumberOfPeople: 2,
		SendInvitation: true,
	})
	if err != nil {
		t.Fatalf("邮件失败不应影响创建: %v", err)
	}
	if result.InvitationSent == nil || *result.InvitationSent {
		t.Error("期望 invitation_sent=false")
	}
	if len(store.guests) != 1 {
		t.Error("宾客应已创建")
	}
}

func TestGuestService_Create_TableNotFound(t *testing.T) {
	svc, _, _ := setupTestGuestService()

	tableID := "missing-table"
	_, err := svc.Create(context.Background(), &dto.CreateGuestRequest{
		FirstName:      "伟",
		LastName:       "王",
		Email:          "wei@example.com",
		NumberOfPeople: 2,
		TableID:        &tableID,
	})
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("期望 ErrTableNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestGuestService_List_Filters(t *testing.T) {
	svc, store, _ := setupTestGuestService()
	g1 := seedGuest(store, "guest-001")
	g1.FirstName = "伟"
	g1.LastName = "王"
	g1.Email = "wei@example.com"
	g1.Status = model.StatusConfirmed
	g1.GroupFamily = "男方亲友"
	g2 := seedGuest(store, "guest-002")
	g2.FirstName = "芳"
	g2.LastName = "李"
	g2.Email = "fang@example.com"
	g2.GroupFamily = "女方亲友"

	// 无筛选：全量 + 筛选选项
	all, err := svc.List(context.Background(), &dto.GuestListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all.List) != 2 {
		t.Errorf("期望 2 位宾客，实际=%d", len(all.List))
	}
	if len(all.Groups) != 2 {
		t.Errorf("期望 2 个分组选项，实际=%v", all.Groups)
	}

	// 按状态筛选
	confirmed, err := svc.List(context.Background(), &dto.GuestListRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(confirmed.List) != 1 || confirmed.List[0].ID != "guest-001" {
		t.Errorf("状态筛选结果不符: %+v", confirmed.List)
	}

	// 搜索邮箱子串
	search, err := svc.List(context.Background(), &dto.GuestListRequest{Search: "fang@"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(search.List) != 1 || search.List[0].ID != "guest-002" {
		t.Errorf("搜索结果不符: %+v", search.List)
	}
}

// ── GetByID 测试 ──

func TestGuestService_GetByID_WithToken(t *testing.T) {
	svc, store, _ := setupTestGuestService()
	seedGuest(store, "guest-001")
	seedToken(store, "tok-1", "sometoken", "guest-001", time.Now().AddDate(0, 0, 15), false)

	result, err := svc.GetByID(context.Background(), "guest-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Token == nil {
		t.Fatal("详情应包含令牌状态")
	}
	if result.Token.Token != "sometoken" {
		t.Errorf("令牌串不符: %s", result.Token.Token)
	}
	if result.Token.RsvpURL != "https://wedding.example.com/rsvp/sometoken" {
		t.Errorf("回执链接不符: %s", result.Token.RsvpURL)
	}
}

func TestGuestService_GetByID_TimestampKeepsOffset(t *testing.T) {
	svc, store, _ := setupTestGuestService()

	// 非 UTC 时区的回复时间，格式化后不应被误标为 UTC
	loc := time.FixedZone("CST", 8*3600)
	respondedAt := time.Date(2026, 9, 15, 20, 30, 0, 0, loc)
	g := seedGuest(store, "guest-001")
	g.Status = model.StatusConfirmed
	g.RespondedAt = &respondedAt

	result, err := svc.GetByID(context.Background(), "guest-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	parsed, err := time.Parse(time.RFC3339, result.RespondedAt)
	if err != nil {
		t.Fatalf("回复时间应为 RFC3339 格式: %v", err)
	}
	if !parsed.Equal(respondedAt) {
		t.Errorf("回复时间应保留原时刻: expected %v, got %v", respondedAt, parsed)
	}
}

func TestGuestService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestGuestService()

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("期望 ErrGuestNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestGuestService_Update_PartialFields(t *testing.T) {
	svc, store, _ := setupTestGuestService()
	seedGuest(store, "guest-001")

	people := 5
	dietary := "海鲜过敏"
	result, err := svc.Update(context.Background(), "guest-001", &dto.UpdateGuestRequest{
		NumberOfPeople:      &people,
		DietaryRestrictions: &dietary,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.NumberOfPeople != 5 || result.DietaryRestrictions != "海鲜过敏" {
		t.Errorf("更新结果不符: %+v", result)
	}
	// 未提供的字段保持不变
	if result.FirstName != "三" {
		t.Errorf("未更新字段被改动: %s", result.FirstName)
	}
}

func TestGuestService_Update_ClearTableAssignment(t *testing.T) {
	svc, store, _ := setupTestGuestService()
	seedTable(store, "table-001", "主桌", 10)
	seedAssignedGuest(store, "guest-001", "table-001", 2)

	// table_id 传空串表示清除分配
	empty := ""
	result, err := svc.Update(context.Background(), "guest-001", &dto.UpdateGuestRequest{
		TableID: &empty,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Table != nil {
		t.Error("分配应已清除")
	}
	if store.guests["guest-001"].TableID != nil {
		t.Error("落库数据应已清除分配")
	}
}

func TestGuestService_Update_AssignTable(t *testing.T) {
	svc, store, _ := setupTestGuestService()
	seedTable(store, "table-001", "主桌", 10)
	seedGuest(store, "guest-001")

	tableID := "table-001"
	result, err := svc.Update(context.Background(), "guest-001", &dto.UpdateGuestRequest{
		TableID: &tableID,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Table == nil || result.Table.ID != "table-001" {
		t.Errorf("分配结果不符: %+v", result.Table)
	}
}

// ── Delete 测试 ──

func TestGuestService_Delete_CascadesToken(t *testing.T) {
	svc, store, _ := setupTestGuestService()
	seedGuest(store, "guest-001")
	seedToken(store, "tok-1", "sometoken", "guest-001", time.Now().AddDate(0, 0, 15), false)

	if err := svc.Delete(context.Background(), "guest-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := store.guests["guest-001"]; ok {
		t.Error("宾客应已删除")
	}
	if len(store.tokens) != 0 {
		t.Error("令牌应随宾客级联删除")
	}
}

func TestGuestService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestGuestService()

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("期望 ErrGuestNotFound，实际: %v", err)
	}
}

// ── ResendInvitation 测试 ──

func TestGuestService_ResendInvitation(t *testing.T) {
	svc, store, mail := setupTestGuestService()
	seedGuest(store, "guest-001")
	seedToken(store, "tok-old", "oldtoken", "guest-001", time.Now().Add(-time.Hour), false)

	if err := svc.ResendInvitation(context.Background(), "guest-001"); err != nil {
		t.Fatalf("ResendInvitation 应成功: %v", err)
	}
	if len(mail.invitations) != 1 {
		t.Errorf("期望 1 封邀请邮件，实际=%d", len(mail.invitations))
	}
	// 旧令牌被替换为新的有效令牌
	for _, tok := range store.tokens {
		if tok.GuestID == "guest-001" {
			if tok.Token == "oldtoken" {
				t.Error("旧令牌应被替换")
			}
			if tok.IsExpired() {
				t.Error("新令牌不应过期")
			}
		}
	}
}
