package dto

// ── 公开 RSVP 模块 DTO ──

// RSVP 页面状态
const (
	RsvpStateForm             = "form"              // 可填写表单
	RsvpStateAlreadyResponded = "already_responded" // 令牌已使用
	RsvpStateExpired          = "expired"           // 令牌已过期
)

// SubmitRsvpRequest 宾客提交回复
type SubmitRsvpRequest struct {
	Status              string `json:"status"               binding:"required,oneof=confirmed declined"`
	NumberOfPeople      int    `json:"number_of_people"     binding:"omitempty,min=0,max=20"`
	DietaryRestrictions string `json:"dietary_restrictions" binding:"omitempty,max=500"`
}

// RsvpPageResponse GET /rsvp/:token 的页面状态
type RsvpPageResponse struct {
	State               string    `json:"state"`
	Guest               RsvpGuest `json:"guest"`
	NumberOfPeople      int       `json:"number_of_people"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	ExpiresAt           string    `json:"expires_at"`
	DaysUntilExpiration int       `json:"days_until_expiration"`
	RespondedAt         string    `json:"responded_at,omitempty"`
}

// RsvpGuest 公开页面上可见的宾客信息（最小化暴露）
type RsvpGuest struct {
	FullName    string `json:"full_name"`
	GroupFamily string `json:"group_family,omitempty"`
	Status      string `json:"status"`
}

// RsvpResultResponse 提交成功后的确认数据
type RsvpResultResponse struct {
	Guest               RsvpGuest `json:"guest"`
	Status              string    `json:"status"`
	NumberOfPeople      int       `json:"number_of_people"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	RespondedAt         string    `json:"responded_at"`
}
