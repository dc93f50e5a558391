package model

import "time"

// ── RSVP 状态 ──

// RsvpStatus 宾客回复状态
type RsvpStatus string

const (
	StatusPending   RsvpStatus = "pending"   // 待回复
	StatusConfirmed RsvpStatus = "confirmed" // 确认出席
	StatusDeclined  RsvpStatus = "declined"  // 婉拒
)

// Valid 判断状态取值是否合法
func (s RsvpStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Guest 宾客表 — 对应 guests
type Guest struct {
	GuestID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"guest_id"`
	FirstName           string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName            string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Email               string     `gorm:"type:varchar(200);not null;index"               json:"email"`
	GroupFamily         string     `gorm:"type:varchar(100);index"                        json:"group_family"`
	NumberOfPeople      int        `gorm:"not null;default:1"                             json:"number_of_people"`
	Status              RsvpStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DietaryRestrictions string     `gorm:"type:varchar(500)"                              json:"dietary_restrictions"`
	TableID             *string    `gorm:"type:uuid;index"                                json:"table_id,omitempty"`
	RespondedAt         *time.Time `json:"responded_at,omitempty"`
	BaseModel

	// 关联
	Table     *Table     `gorm:"foreignKey:TableID;references:TableID;constraint:OnDelete:SET NULL" json:"table,omitempty"`
	RsvpToken *RsvpToken `gorm:"foreignKey:GuestID;references:GuestID"                              json:"rsvp_token,omitempty"`
}

// TableName 指定表名
func (Guest) TableName() string { return "guests" }

// FullName 宾客全名
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
