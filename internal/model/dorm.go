package model

// Dorm 宿舍楼
// Rooms 和 LeftResidents 是冗余计数，由 ledger 在每次写操作中同步维护
type Dorm struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Levels        int    `gorm:"not null" json:"levels"`                   // 楼层数
	Rooms         int    `gorm:"not null;default:0" json:"rooms"`          // 总房间数
	LeftResidents int    `gorm:"not null;default:0" json:"left_residents"` // 空余床位数
	Gender        string `gorm:"type:varchar(10);not null" json:"gender"`  // 楼栋性别
}
