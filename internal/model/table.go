package model

// Table 餐桌表 — 对应 tables
//
// 占用相关数值（当前占用、剩余座位、超员标记）一律由当前已加载的
// 宾客集合现算，不落库，避免缓存过期问题。
type Table struct {
	TableID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"table_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Capacity    int    `gorm:"not null"                                       json:"capacity"`
	Description string `gorm:"type:varchar(200)"                              json:"description"`
	BaseModel

	// 关联（仅反向引用，餐桌不拥有宾客的生命周期）
	Guests []Guest `gorm:"foreignKey:TableID;references:TableID" json:"guests,omitempty"`
}

// TableName 指定表名
func (Table) TableName() string { return "tables" }

// CurrentOccupancy 当前占用 = 已分配宾客的人数总和
func (t *Table) CurrentOccupancy() int {
	total := 0
	for i := range t.Guests {
		total += t.Guests[i].NumberOfPeople
	}
	return total
}

// AvailableSeats 剩余座位数（超员时为负）
func (t *Table) AvailableSeats() int {
	return t.Capacity - t.CurrentOccupancy()
}

// IsOverCapacity 是否超员
func (t *Table) IsOverCapacity() bool {
	return t.CurrentOccupancy() > t.Capacity
}

// OccupancyPercentage 占用率（百分比）
func (t *Table) OccupancyPercentage() float64 {
	if t.Capacity <= 0 {
		return 0
	}
	return float64(t.CurrentOccupancy()) * 100.0 / float64(t.Capacity)
}
