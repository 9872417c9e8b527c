package visitor

import (
	"time"

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

// currentStudent 取当前登录学生的数据库记录
func currentStudent(c *gin.Context) (*model.Student, *response.Error) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		return nil, response.ErrUnauthorized
	}
	var student model.Student
	err := database.DB.First(&student, "id = ?", payload.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrUnauthorized
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &student, nil
}

// VisitorInsertRequest 访客登记请求体
type VisitorInsertRequest struct {
	Name      string    `json:"name" binding:"required,max=20"`
	Gender    string    `json:"gender" binding:"required,oneof=男 女"`
	Phone     string    `json:"phone" binding:"required,len=11"`
	Reason    string    `json:"reason" binding:"required,max=100"`
	VisitTime time.Time `json:"visit_time" binding:"required"`
}

// InsertVisitor 学生登记来访客人，房间号取学生当前房间
func InsertVisitor(c *gin.Context) {
	student, e := currentStudent(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	var req VisitorInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定访客登记请求失败", "error", err, "student_id", student.ID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	visitor := &model.Visitor{
		StudentID: student.ID,
		RoomID:    student.RoomID,
		Name:      req.Name,
		Gender:    req.Gender,
		Phone:     req.Phone,
		Reason:    req.Reason,
		VisitTime: req.VisitTime,
	}
	if err := database.DB.Create(visitor).Error; err != nil {
		log.Error("保存访客记录失败", "error", err, "student_id", student.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("访客已登记", "visitor_id", visitor.ID, "student_id", student.ID)
	response.Success(c, visitor)
}

// GetMyVisitors 学生分页查询自己的访客记录
func GetMyVisitors(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	page, pageSize := tools.PageParams(c)
	base := database.DB.Model(&model.Visitor{}).Where("student_id = ?", payload.UserID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var visitors []model.Visitor
	if err := base.Order("visit_time DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&visitors).Error; err != nil {
		log.Error("查询访客记录失败", "error", err, "student_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.PageSuccess(c, visitors, total, page, pageSize)
}

// VisitorLeaveRequest 访客离开请求体
type VisitorLeaveRequest struct {
	VisitorID int `json:"visitor_id" binding:"required"`
}

// CheckoutVisitor 登记访客离开，只能操作自己的访客记录
func CheckoutVisitor(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req VisitorLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定访客离开请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if e := ledger.CheckoutVisitor(database.DB, req.VisitorID, payload.UserID); e != nil {
		log.Warn("登记访客离开失败", "visitor_id", req.VisitorID, "error", e)
		response.Fail(c, e)
		return
	}

	log.Info("访客已登记离开", "visitor_id", req.VisitorID, "student_id", payload.UserID)
	response.Success(c, nil)
}
