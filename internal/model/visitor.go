package model

import "time"

// Visitor 访客登记，LeaveTime 为空表示尚未离开
type Visitor struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string     `gorm:"type:varchar(20);not null;index" json:"student_id"`
	RoomID    string     `gorm:"type:varchar(20);not null;index" json:"room_id"`
	Name      string     `gorm:"type:varchar(20);not null" json:"name"`
	Gender    string     `gorm:"type:varchar(10);not null" json:"gender"`
	Phone     string     `gorm:"type:varchar(20);not null" json:"phone"`
	Reason    string     `gorm:"type:varchar(100);not null" json:"reason"`
	VisitTime time.Time  `gorm:"autoCreateTime" json:"visit_time"`
	LeaveTime *time.Time `json:"leave_time"`
}
