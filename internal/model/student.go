package model

// Student 学生，主键为学号，始终属于一个房间
type Student struct {
	ID           string `gorm:"type:varchar(20);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(20);not null" json:"name"`
	Age          int    `gorm:"not null" json:"age"`
	Phone        string `gorm:"type:varchar(20);default:12312312312" json:"phone"`
	Major        string `gorm:"type:varchar(20);not null" json:"major"`
	Grade        int    `gorm:"not null" json:"grade"`
	RoomID       string `gorm:"type:varchar(20);not null;index" json:"room_id"`
	PasswordHash string `gorm:"type:varchar(256)" json:"-"`
}
