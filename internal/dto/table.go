package dto

// ── 餐桌/座位模块 DTO ──

// CreateTableRequest 创建餐桌请求
type CreateTableRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Capacity    int    `json:"capacity"    binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

// UpdateTableRequest 更新餐桌请求
type UpdateTableRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=100"`
	Capacity    *int    `json:"capacity"    binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// AssignGuestRequest 分配宾客到餐桌
type AssignGuestRequest struct {
	GuestID string `json:"guest_id" binding:"required,uuid"`
	TableID string `json:"table_id" binding:"required,uuid"`
}

// UnassignGuestRequest 从餐桌移除宾客
type UnassignGuestRequest struct {
	GuestID string `json:"guest_id" binding:"required,uuid"`
}

// TableBrief 餐桌简要信息（下拉选项、宾客列表内嵌）
type TableBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TableResponse 餐桌信息响应（占用数值均为现算）
type TableResponse struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Capacity            int          `json:"capacity"`
	Description         string       `json:"description,omitempty"`
	CurrentOccupancy    int          `json:"current_occupancy"`
	AvailableSeats      int          `json:"available_seats"`
	IsOverCapacity      bool         `json:"is_over_capacity"`
	OccupancyPercentage float64      `json:"occupancy_percentage"`
	GuestCount          int          `json:"guest_count"`
	Guests              []SeatedGuest `json:"guests,omitempty"`
	CreatedAt           string       `json:"created_at"`
}

// SeatedGuest 座位图中的宾客条目
type SeatedGuest struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	NumberOfPeople int    `json:"number_of_people"`
	GroupFamily    string `json:"group_family,omitempty"`
}

// AssignGuestResponse 分配结果
type AssignGuestResponse struct {
	GuestID          string `json:"guest_id"`
	GuestName        string `json:"guest_name"`
	TableID          string `json:"table_id"`
	TableName        string `json:"table_name"`
	CurrentOccupancy int    `json:"current_occupancy"`
	Capacity         int    `json:"capacity"`
}

// SeatingPlanResponse 座位图数据（拖拽面板）
type SeatingPlanResponse struct {
	Tables           []TableResponse `json:"tables"`
	UnassignedGuests []SeatedGuest   `json:"unassigned_guests"`
}
