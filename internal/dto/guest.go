package dto

// ── 宾客模块 DTO ──

// CreateGuestRequest 创建宾客请求
type CreateGuestRequest struct {
	FirstName           string  `json:"first_name"           binding:"required,max=100"`
	LastName            string  `json:"last_name"            binding:"required,max=100"`
	Email               string  `json:"email"                binding:"required,email,max=200"`
	GroupFamily         string  `json:"group_family"         binding:"omitempty,max=100"`
	NumberOfPeople      int     `json:"number_of_people"     binding:"required,min=1,max=20"`
	DietaryRestrictions string  `json:"dietary_restrictions" binding:"omitempty,max=500"`
	TableID             *string `json:"table_id"             binding:"omitempty,uuid"`
	// SendInvitation 创建后立即生成令牌并发送邀请邮件
	SendInvitation bool `json:"send_invitation"`
}

// UpdateGuestRequest 更新宾客请求
type UpdateGuestRequest struct {
	FirstName           *string `json:"first_name"           binding:"omitempty,max=100"`
	LastName            *string `json:"last_name"            binding:"omitempty,max=100"`
	Email               *string `json:"email"                binding:"omitempty,email,max=200"`
	GroupFamily         *string `json:"group_family"         binding:"omitempty,max=100"`
	NumberOfPeople      *int    `json:"number_of_people"     binding:"omitempty,min=1,max=20"`
	Status              *string `json:"status"               binding:"omitempty,oneof=pending confirmed declined"`
	DietaryRestrictions *string `json:"dietary_restrictions" binding:"omitempty,max=500"`
	TableID             *string `json:"table_id"             binding:"omitempty,uuid"`
}

// GuestListRequest 宾客列表查询参数
type GuestListRequest struct {
	// Search 对姓名与邮箱做子串匹配
	Search  string `form:"search"  binding:"omitempty,max=200"`
	Status  string `form:"status"  binding:"omitempty,oneof=pending confirmed declined"`
	TableID string `form:"table_id" binding:"omitempty,uuid"`
	Group   string `form:"group"   binding:"omitempty,max=100"`
}

// GuestResponse 宾客信息响应
type GuestResponse struct {
	ID                  string         `json:"id"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	FullName            string         `json:"full_name"`
	Email               string         `json:"email"`
	GroupFamily         string         `json:"group_family,omitempty"`
	NumberOfPeople      int            `json:"number_of_people"`
	Status              string         `json:"status"`
	DietaryRestrictions string         `json:"dietary_restrictions,omitempty"`
	Table               *TableBrief    `json:"table,omitempty"`
	RespondedAt         string         `json:"responded_at,omitempty"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at,omitempty"`
	InvitationSent      *bool          `json:"invitation_sent,omitempty"` // 仅创建/重发时返回
	Token               *TokenResponse `json:"token,omitempty"`           // 仅详情页返回
}

// GuestListResponse 宾客列表响应（含筛选选项）
type GuestListResponse struct {
	List   []GuestResponse `json:"list"`
	Tables []TableBrief    `json:"tables"`
	Groups []string        `json:"groups"`
}

// TokenResponse 宾客详情中的令牌状态
type TokenResponse struct {
	Token               string `json:"token"`
	ExpiresAt           string `json:"expires_at"`
	IsUsed              bool   `json:"is_used"`
	IsExpired           bool   `json:"is_expired"`
	DaysUntilExpiration int    `json:"days_until_expiration"`
	UsedAt              string `json:"used_at,omitempty"`
	RsvpURL             string `json:"rsvp_url"`
}
