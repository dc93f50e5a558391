package model

import "time"

// RsvpToken RSVP 令牌表 — 对应 rsvp_tokens
//
// 每位宾客至多存在一条令牌记录（guest_id 唯一索引），重新生成采用
// 先删后插的替换语义。令牌一经使用即为终态，除 is_used/used_at 的
// 消费写入外不再变更；宾客删除时级联删除。
type RsvpToken struct {
	TokenID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"token_id"`
	Token     string     `gorm:"type:varchar(100);not null;uniqueIndex"         json:"token"`
	GuestID   string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"guest_id"`
	ExpiresAt time.Time  `gorm:"not null;index"                                 json:"expires_at"`
	IsUsed    bool       `gorm:"not null;default:false;index"                   json:"is_used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Guest *Guest `gorm:"foreignKey:GuestID;references:GuestID;constraint:OnDelete:CASCADE" json:"guest,omitempty"`
}

// TableName 指定表名
func (RsvpToken) TableName() string { return "rsvp_tokens" }

// IsValid 令牌可用 = 未使用且未过期
func (t *RsvpToken) IsValid() bool {
	return !t.IsUsed && time.Now().Before(t.ExpiresAt)
}

// IsExpired 令牌是否已过期（与已使用无关，供"已过期"页面展示）
func (t *RsvpToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// DaysUntilExpiration 距过期剩余天数，不可用时为 0
func (t *RsvpToken) DaysUntilExpiration() int {
	if !t.IsValid() {
		return 0
	}
	return int(time.Until(t.ExpiresAt).Hours() / 24)
}
