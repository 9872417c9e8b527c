package room

import (
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetMyRoom 学生查看自己的房间、室友和可申请转入的候选房间
func GetMyRoom(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var student model.Student
	err := database.DB.First(&student, "id = ?", payload.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrUnauthorized)
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var room model.Room
	if err := database.DB.First(&room, "id = ?", student.RoomID).Error; err != nil {
		log.Error("查询学生房间失败", "error", err, "student_id", student.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var roommates []model.Student
	if err := database.DB.Where("room_id = ?", room.ID).Order("id").Find(&roommates).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 候选房间：本楼栋其他有空床的房间
	// 列表允许是旧数据，提交和审批时都会重新校验
	var candidates []model.Room
	if err := database.DB.
		Where("dorm_id = ? AND id <> ? AND spaces - residents > 0", room.DormID, room.ID).
		Order("id").Find(&candidates).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"room":            room,
		"roommates":       roommates,
		"candidate_rooms": candidates,
	})
}
