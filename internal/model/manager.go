package model

// Manager 宿舍管理员，主键为工号，只管理一栋宿舍楼
type Manager struct {
	ID           string `gorm:"type:varchar(20);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(20);not null" json:"name"`
	Gender       string `gorm:"type:varchar(10);not null" json:"gender"`
	Age          int    `gorm:"not null" json:"age"`
	Phone        string `gorm:"type:varchar(20);default:12312312312" json:"phone"`
	DormID       uint   `gorm:"not null;index" json:"dorm_id"`
	PasswordHash string `gorm:"type:varchar(256)" json:"-"`
}
