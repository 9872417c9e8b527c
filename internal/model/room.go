package model

// Room 房间，编号约定为 {楼栋}-{楼层}{序号}，如 1-0301
type Room struct {
	ID        string `gorm:"type:varchar(20);primaryKey" json:"id"`
	DormID    uint   `gorm:"not null;index" json:"dorm_id"`
	Level     int    `gorm:"not null" json:"level"`
	Spaces    int    `gorm:"not null" json:"spaces"`             // 床位数
	Residents int    `gorm:"not null;default:0" json:"residents"` // 入住人数（冗余计数）
}
