package model

import "time"

// Move 转宿申请状态机：未处理 -> 已同意 / 已拒绝，终态不再变化
const (
	MoveStatusPending  = "未处理"
	MoveStatusApproved = "已同意"
	MoveStatusRejected = "已拒绝"
)

// Move 转宿申请
type Move struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID      string    `gorm:"type:varchar(20);not null;index" json:"student_id"`
	OriginalRoomID string    `gorm:"type:varchar(20);not null" json:"original_room_id"`
	TargetRoomID   string    `gorm:"type:varchar(20);not null" json:"target_room_id"`
	Reason         string    `gorm:"type:varchar(100)" json:"reason"`
	SubmitTime     time.Time `gorm:"autoCreateTime" json:"submit_time"`
	Status         string    `gorm:"type:varchar(20);default:未处理" json:"status"`
}
