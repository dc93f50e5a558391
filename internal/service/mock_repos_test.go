package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
)

// ── 共享内存存储 ──
//
// 三个 mock repo 共享同一份数据，以便模拟 Preload 关联加载。

type mockStore struct {
	mu     sync.Mutex
	guests map[string]*model.Guest
	tables map[string]*model.Table
	tokens map[string]*model.RsvpToken // key: TokenID
	seq    int
}

func newMockStore() *mockStore {
	return &mockStore{
		guests: make(map[string]*model.Guest),
		tables: make(map[string]*model.Table),
		tokens: make(map[string]*model.RsvpToken),
	}
}

func (s *mockStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

// ── Mock GuestRepository ──

type mockGuestRepo struct {
	store *mockStore
}

func newMockGuestRepo(store *mockStore) *mockGuestRepo {
	return &mockGuestRepo{store: store}
}

func (m *mockGuestRepo) Create(_ context.Context, guest *model.Guest) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if guest.GuestID == "" {
		guest.GuestID = m.store.nextID("guest")
	}
	guest.CreatedAt = time.Now()
	stored := *guest
	m.store.guests[guest.GuestID] = &stored
	return nil
}

func (m *mockGuestRepo) GetByID(_ context.Context, id string) (*model.Guest, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	stored, ok := m.store.guests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	g := *stored
	m.preload(&g)
	if token := m.findToken(g.GuestID); token != nil {
		t := *token
		g.RsvpToken = &t
	}
	return &g, nil
}

func (m *mockGuestRepo) Update(_ context.Context, guest *model.Guest) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.guests[guest.GuestID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *guest
	stored.Table = nil
	stored.RsvpToken = nil
	m.store.guests[guest.GuestID] = &stored
	return nil
}

func (m *mockGuestRepo) Delete(_ context.Context, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.guests, id)
	// 模拟外键级联删除令牌
	for tid, t := range m.store.tokens {
		if t.GuestID == id {
			delete(m.store.tokens, tid)
		}
	}
	return nil
}

func (m *mockGuestRepo) List(_ context.Context, filters *repository.GuestListFilters) ([]model.Guest, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var result []model.Guest
	for _, stored := range m.store.guests {
		g := *stored
		if filters != nil {
			if filters.Search != "" {
				needle := strings.ToLower(filters.Search)
				hay := strings.ToLower(g.FirstName + " " + g.LastName + " " + g.Email)
				if !strings.Contains(hay, needle) {
					continue
				}
			}
			if filters.Status != "" && g.Status != filters.Status {
				continue
			}
			if filters.TableID != "" && (g.TableID == nil || *g.TableID != filters.TableID) {
				continue
			}
			if filters.Group != "" && g.GroupFamily != filters.Group {
				continue
			}
		}
		m.preload(&g)
		result = append(result, g)
	}
	sortGuests(result)
	return result, nil
}

func (m *mockGuestRepo) ListAll(_ context.Context) ([]model.Guest, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var result []model.Guest
	for _, stored := range m.store.guests {
		g := *stored
		m.preload(&g)
		result = append(result, g)
	}
	sortGuests(result)
	return result, nil
}

func (m *mockGuestRepo) ListUnassignedConfirmed(_ context.Context) ([]model.Guest, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var result []model.Guest
	for _, stored := range m.store.guests {
		if stored.TableID != nil || stored.Status != model.StatusConfirmed {
			continue
		}
		result = append(result, *stored)
	}
	sortGuests(result)
	return result, nil
}

func (m *mockGuestRepo) ListGroups(_ context.Context) ([]string, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	seen := make(map[string]bool)
	var groups []string
	for _, g := range m.store.guests {
		if g.GroupFamily != "" && !seen[g.GroupFamily] {
			seen[g.GroupFamily] = true
			groups = append(groups, g.GroupFamily)
		}
	}
	sort.Strings(groups)
	return groups, nil
}

// preload 模拟 Preload("Table")，调用方需持有锁
func (m *mockGuestRepo) preload(g *model.Guest) {
	if g.TableID != nil {
		if t, ok := m.store.tables[*g.TableID]; ok {
			table := *t
			g.Table = &table
		}
	}
}

// findToken 按宾客查找令牌，调用方需持有锁
func (m *mockGuestRepo) findToken(guestID string) *model.RsvpToken {
	for _, t := range m.store.tokens {
		if t.GuestID == guestID {
			return t
		}
	}
	return nil
}

func sortGuests(guests []model.Guest) {
	sort.Slice(guests, func(i, j int) bool {
		if guests[i].LastName != guests[j].LastName {
			return guests[i].LastName < guests[j].LastName
		}
		return guests[i].FirstName < guests[j].FirstName
	})
}

// ── Mock TableRepository ──

type mockTableRepo struct {
	store *mockStore
}

func newMockTableRepo(store *mockStore) *mockTableRepo {
	return &mockTableRepo{store: store}
}

func (m *mockTableRepo) Create(_ context.Context, table *model.Table) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if table.TableID == "" {
		table.TableID = m.store.nextID("table")
	}
	table.CreatedAt = time.Now()
	stored := *table
	m.store.tables[table.TableID] = &stored
	return nil
}

func (m *mockTableRepo) GetByID(_ context.Context, id string) (*model.Table, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	stored, ok := m.store.tables[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	t := *stored
	m.preloadGuests(&t)
	return &t, nil
}

func (m *mockTableRepo) GetByName(_ context.Context, name string) (*model.Table, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, stored := range m.store.tables {
		if stored.Name == name {
			t := *stored
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTableRepo) Update(_ context.Context, table *model.Table) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.tables[table.TableID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *table
	stored.Guests = nil
	m.store.tables[table.TableID] = &stored
	return nil
}

func (m *mockTableRepo) Delete(_ context.Context, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.tables, id)
	return nil
}

func (m *mockTableRepo) List(_ context.Context) ([]model.Table, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var result []model.Table
	for _, stored := range m.store.tables {
		t := *stored
		m.preloadGuests(&t)
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTableRepo) SumAssignedPeople(_ context.Context, tableID string) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	total := 0
	for _, g := range m.store.guests {
		if g.TableID != nil && *g.TableID == tableID {
			total += g.NumberOfPeople
		}
	}
	return total, nil
}

func (m *mockTableRepo) ClearAssignments(_ context.Context, tableID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, g := range m.store.guests {
		if g.TableID != nil && *g.TableID == tableID {
			g.TableID = nil
		}
	}
	return nil
}

// preloadGuests 模拟 Preload("Guests")，调用方需持有锁
func (m *mockTableRepo) preloadGuests(t *model.Table) {
	t.Guests = nil
	for _, g := range m.store.guests {
		if g.TableID != nil && *g.TableID == t.TableID {
			t.Guests = append(t.Guests, *g)
		}
	}
	sortGuests(t.Guests)
}

// ── Mock RsvpTokenRepository ──

type mockRsvpTokenRepo struct {
	store *mockStore
}

func newMockRsvpTokenRepo(store *mockStore) *mockRsvpTokenRepo {
	return &mockRsvpTokenRepo{store: store}
}

func (m *mockRsvpTokenRepo) Create(_ context.Context, token *model.RsvpToken) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if token.TokenID == "" {
		token.TokenID = m.store.nextID("tok")
	}
	token.CreatedAt = time.Now()
	stored := *token
	stored.Guest = nil
	m.store.tokens[token.TokenID] = &stored
	return nil
}

func (m *mockRsvpTokenRepo) GetByToken(_ context.Context, tokenStr string) (*model.RsvpToken, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, stored := range m.store.tokens {
		if stored.Token == tokenStr {
			t := *stored
			// 模拟 Preload("Guest") 与 Preload("Guest.Table")
			if g, ok := m.store.guests[t.GuestID]; ok {
				guest := *g
				if guest.TableID != nil {
					if table, ok := m.store.tables[*guest.TableID]; ok {
						tb := *table
						guest.Table = &tb
					}
				}
				t.Guest = &guest
			}
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRsvpTokenRepo) GetByGuest(_ context.Context, guestID string) (*model.RsvpToken, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, stored := range m.store.tokens {
		if stored.GuestID == guestID {
			t := *stored
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRsvpTokenRepo) DeleteByGuest(_ context.Context, guestID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for tid, t := range m.store.tokens {
		if t.GuestID == guestID {
			delete(m.store.tokens, tid)
		}
	}
	return nil
}

// Consume 与数据库条件更新语义一致：同一令牌的并发消费至多一个成功
func (m *mockRsvpTokenRepo) Consume(_ context.Context, tokenID string, usedAt time.Time) (int64, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	stored, ok := m.store.tokens[tokenID]
	if !ok || stored.IsUsed {
		return 0, nil
	}
	stored.IsUsed = true
	stored.UsedAt = &usedAt
	return 1, nil
}

// ── Mock Mailer ──

type mockMailer struct {
	mu            sync.Mutex
	invitations   []string // 收件人邮箱
	confirmations []string
	declines      []string
	failSend      bool
}

func (m *mockMailer) SendInvitation(guest *model.Guest, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSend {
		return fmt.Errorf("smtp 不可用")
	}
	m.invitations = append(m.invitations, guest.Email)
	return nil
}

func (m *mockMailer) SendConfirmation(guest *model.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSend {
		return fmt.Errorf("smtp 不可用")
	}
	m.confirmations = append(m.confirmations, guest.Email)
	return nil
}

func (m *mockMailer) SendDecline(guest *model.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSend {
		return fmt.Errorf("smtp 不可用")
	}
	m.declines = append(m.declines, guest.Email)
	return nil
}
