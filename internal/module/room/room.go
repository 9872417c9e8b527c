package room

import (
	"dormitory-management-system/internal/global/cache"
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/ledger"
	"dormitory-management-system/internal/model"
	"dormitory-management-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// currentManager 取当前登录管理员的数据库记录
func currentManager(c *gin.Context) (*model.Manager, *response.Error) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		return nil, response.ErrUnauthorized
	}
	var manager model.Manager
	err := database.DB.First(&manager, "id = ?", payload.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrUnauthorized
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &manager, nil
}

// managedRoom 取房间并校验归属当前管理员的楼栋
// 越权访问一律报资源不存在，不泄露房间归属
func managedRoom(c *gin.Context, roomID string) (*model.Room, *response.Error) {
	manager, e := currentManager(c)
	if e != nil {
		return nil, e
	}
	var room model.Room
	err := database.DB.First(&room, "id = ?", roomID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("房间不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if room.DormID != manager.DormID {
		return nil, response.ErrNotFound.WithTips("房间不存在")
	}
	return &room, nil
}

// GetRoomInfo 房间详情：房间信息 + 住宿学生
func GetRoomInfo(c *gin.Context) {
	room, e := managedRoom(c, c.Param("room_id"))
	if e != nil {
		response.Fail(c, e)
		return
	}

	var students []model.Student
	if err := database.DB.Where("room_id = ?", room.ID).Order("id").Find(&students).Error; err != nil {
		log.Error("查询房间学生失败", "error", err, "room_id", room.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"room":     room,
		"students": students,
	})
}

// RoomInsertRequest 新增房间请求体
type RoomInsertRequest struct {
	ID     string `json:"id" binding:"required,max=20"`
	Level  int    `json:"level" binding:"required"`
	Spaces int    `json:"spaces" binding:"required"`
}

// InsertRoom 在自己管理的楼栋新增房间
func InsertRoom(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	var req RoomInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定新增房间请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	room := &model.Room{
		ID:     req.ID,
		DormID: manager.DormID,
		Level:  req.Level,
		Spaces: req.Spaces,
	}
	if e := ledger.AddRoom(database.DB, room); e != nil {
		log.Warn("新增房间失败", "room_id", req.ID, "error", e)
		response.Fail(c, e)
		return
	}
	cache.InvalidateDormSummaries(c.Request.Context())

	log.Info("新增房间成功", "room_id", room.ID, "dorm_id", manager.DormID)
	response.Success(c, room)
}

// RoomUpdateRequest 修改房间请求体
type RoomUpdateRequest struct {
	ID     string `json:"id" binding:"required,max=20"`
	Level  int    `json:"level" binding:"required"`
	Spaces int    `json:"spaces" binding:"required"`
}

// UpdateRoom 修改房间号、楼层或床位数
func UpdateRoom(c *gin.Context) {
	room, e := managedRoom(c, c.Param("room_id"))
	if e != nil {
		response.Fail(c, e)
		return
	}

	var req RoomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定修改房间请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if e := ledger.UpdateRoom(database.DB, room.ID, req.ID, req.Level, req.Spaces); e != nil {
		log.Warn("修改房间失败", "room_id", room.ID, "error", e)
		response.Fail(c, e)
		return
	}
	cache.InvalidateDormSummaries(c.Request.Context())

	log.Info("修改房间成功", "room_id", req.ID)
	response.Success(c, nil)
}

// DeleteRoom 删除空房间
func DeleteRoom(c *gin.Context) {
	room, e := managedRoom(c, c.Param("room_id"))
	if e != nil {
		response.Fail(c, e)
		return
	}

	if e := ledger.DeleteRoom(database.DB, room.ID); e != nil {
		log.Warn("删除房间失败", "room_id", room.ID, "error", e)
		response.Fail(c, e)
		return
	}
	cache.InvalidateDormSummaries(c.Request.Context())

	log.Info("删除房间成功", "room_id", room.ID)
	response.Success(c, nil)
}

// StudentInsertRequest 添加学生请求体，初始密码为 12345678
type StudentInsertRequest struct {
	ID    string `json:"id" binding:"required,max=20"`
	Name  string `json:"name" binding:"required,max=20"`
	Age   int    `json:"age" binding:"required"`
	Phone string `json:"phone" binding:"required,len=11"`
	Major string `json:"major" binding:"required,max=20"`
	Grade int    `json:"grade" binding:"required"`
}

// InsertStudent 把学生添加到自己楼栋的房间
func InsertStudent(c *gin.Context) {
	room, e := managedRoom(c, c.Param("room_id"))
	if e != nil {
		response.Fail(c, e)
		return
	}

	var req StudentInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定添加学生请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	hash, err := tools.PasswordHash(tools.DefaultPassword)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	student := &model.Student{
		ID:           req.ID,
		Name:         req.Name,
		Age:          req.Age,
		Phone:        req.Phone,
		Major:        req.Major,
		Grade:        req.Grade,
		RoomID:       room.ID,
		PasswordHash: hash,
	}
	if e := ledger.AddStudent(database.DB, student); e != nil {
		log.Warn("添加学生失败", "student_id", req.ID, "room_id", room.ID, "error", e)
		response.Fail(c, e)
		return
	}
	cache.InvalidateDormSummaries(c.Request.Context())

	log.Info("添加学生成功", "student_id", student.ID, "room_id", room.ID)
	response.Success(c, student)
}

// DeleteStudent 删除自己楼栋的学生，级联删除其报修、访客和转宿记录
func DeleteStudent(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	studentID := c.Param("student_id")
	var student model.Student
	err := database.DB.First(&student, "id = ?", studentID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("学生不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 归属校验走学生当前房间
	var room model.Room
	if err := database.DB.First(&room, "id = ?", student.RoomID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if room.DormID != manager.DormID {
		response.Fail(c, response.ErrNotFound.WithTips("学生不存在"))
		return
	}

	if e := ledger.DeleteStudent(database.DB, studentID); e != nil {
		log.Warn("删除学生失败", "student_id", studentID, "error", e)
		response.Fail(c, e)
		return
	}
	cache.InvalidateDormSummaries(c.Request.Context())

	log.Info("删除学生成功", "student_id", studentID, "room_id", room.ID)
	response.Success(c, nil)
}
