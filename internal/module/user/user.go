package user

import (
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"
	"dormitory-management-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoginRequest 登录请求体
// Manager 为 true 时按工号查管理员表，否则按学号查学生表
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=20"`
	Password string `json:"password" binding:"required,min=8,max=150"`
	Manager  bool   `json:"manager"`
}

// Login 处理学生/管理员登录请求
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var (
		name         string
		passwordHash string
		roleID       int
	)
	if req.Manager {
		var manager model.Manager
		err := database.DB.Where("id = ?", req.Username).First(&manager).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Warn("管理员不存在", "manager_id", req.Username)
			response.Fail(c, response.ErrInvalidPassword)
			return
		case err != nil:
			log.Error("数据库查询失败", "error", err, "manager_id", req.Username)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		name = manager.Name
		passwordHash = manager.PasswordHash
		roleID = jwt.RoleManager
	} else {
		var student model.Student
		err := database.DB.Where("id = ?", req.Username).First(&student).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Warn("学生不存在", "student_id", req.Username)
			response.Fail(c, response.ErrInvalidPassword)
			return
		case err != nil:
			log.Error("数据库查询失败", "error", err, "student_id", req.Username)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		name = student.Name
		passwordHash = student.PasswordHash
		roleID = jwt.RoleStudent
	}

	// 验证密码
	if !tools.PasswordCompare(req.Password, passwordHash) {
		log.Warn("密码错误", "user_id", req.Username)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功", "user_id", req.Username, "role_id", roleID)

	// 还在用初始密码时提醒修改
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID: req.Username,
			RoleID: roleID,
		}),
		"user_id":          req.Username,
		"name":             name,
		"role_id":          roleID,
		"default_password": req.Password == tools.DefaultPassword,
	})
}

// SettingsRequest 个人设置请求体，密码为空表示不修改
type SettingsRequest struct {
	Phone    string `json:"phone" binding:"required,len=11"`
	Password string `json:"password" binding:"omitempty,min=8,max=150"`
}

// UpdateSettings 修改自己的电话和密码
func UpdateSettings(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定设置请求失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := map[string]any{"phone": req.Phone}
	if req.Password != "" {
		hash, err := tools.PasswordHash(req.Password)
		if err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		updates["password_hash"] = hash
	}

	var target any = &model.Student{}
	if payload.RoleID == jwt.RoleManager {
		target = &model.Manager{}
	}

	// 写入相同值时 MySQL 报 0 行受影响，存在性要单独查
	var count int64
	if err := database.DB.Model(target).Where("id = ?", payload.UserID).Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	}

	if err := database.DB.Model(target).Where("id = ?", payload.UserID).Updates(updates).Error; err != nil {
		log.Error("保存设置失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("设置已保存", "user_id", payload.UserID)
	response.Success(c, nil)
}
