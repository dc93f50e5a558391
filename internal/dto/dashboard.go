package dto

// ── 仪表盘模块 DTO ──

// DashboardResponse 管理端首页汇总
type DashboardResponse struct {
	TotalGuests     int `json:"total_guests"`
	TotalPeople     int `json:"total_people"`
	ConfirmedGuests int `json:"confirmed_guests"`
	ConfirmedPeople int `json:"confirmed_people"`
	DeclinedGuests  int `json:"declined_guests"`
	DeclinedPeople  int `json:"declined_people"`
	PendingGuests   int `json:"pending_guests"`
	PendingPeople   int `json:"pending_people"`

	ConfirmationRate    float64 `json:"confirmation_rate"`
	SeatingOccupancyPct float64 `json:"seating_occupancy_pct"`

	TotalTables   int `json:"total_tables"`
	TotalSeats    int `json:"total_seats"`
	OccupiedSeats int `json:"occupied_seats"`
	AvailableSeats int `json:"available_seats"`

	RecentResponses   []GuestResponse `json:"recent_responses"`
	PendingGuestsList []GuestResponse `json:"pending_guests_list"`
	OverCapacityTables []TableResponse `json:"over_capacity_tables"`
}

// StatsResponse JSON 统计导出
type StatsResponse struct {
	Guests  GuestStats   `json:"guests"`
	Tables  TableStats   `json:"tables"`
	ByGroup []GroupStats `json:"by_group"`
}

// GuestStats 宾客维度统计
type GuestStats struct {
	Total            int     `json:"total"`
	TotalPeople      int     `json:"total_people"`
	Confirmed        int     `json:"confirmed"`
	ConfirmedPeople  int     `json:"confirmed_people"`
	Declined         int     `json:"declined"`
	Pending          int     `json:"pending"`
	ConfirmationRate float64 `json:"confirmation_rate"`
}

// TableStats 餐桌维度统计
type TableStats struct {
	Total         int `json:"total"`
	TotalCapacity int `json:"total_capacity"`
	Occupied      int `json:"occupied"`
	Available     int `json:"available"`
	OverCapacity  int `json:"over_capacity"`
}

// GroupStats 家庭/分组维度统计
type GroupStats struct {
	Group       string `json:"group"`
	Count       int    `json:"count"`
	TotalPeople int    `json:"total_people"`
	Confirmed   int    `json:"confirmed"`
}
