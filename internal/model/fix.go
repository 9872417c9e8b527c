package model

import "time"

// Fix 报修工单状态，只允许 未处理 -> 已处理
const (
	FixStatusOpen     = "未处理"
	FixStatusResolved = "已处理"
)

// FixCategories 原系统提供的报修类型
var FixCategories = []string{"电工类", "水工类", "瓦工类", "其他"}

// Fix 报修工单
type Fix struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID  string    `gorm:"type:varchar(20);not null;index" json:"student_id"`
	RoomID     string    `gorm:"type:varchar(20);not null;index" json:"room_id"`
	Category   string    `gorm:"type:varchar(20);not null" json:"category"`
	Content    string    `gorm:"type:varchar(100)" json:"content"`
	Picture    string    `gorm:"type:varchar(255)" json:"picture"` // 图片访问路径
	SubmitTime time.Time `gorm:"autoCreateTime" json:"submit_time"`
	Status     string    `gorm:"type:varchar(20);default:未处理" json:"status"`
}
