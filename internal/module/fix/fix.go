package fix

import (
	"mime/multipart"
	"slices"
	"strconv"

	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/httpclient"
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/pictureBed"
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

// FixInsertRequest 报修请求体
// @example multipart form-data: category=电工类, content=xxx, picture=file
type FixInsertRequest struct {
	Category string                `form:"category" binding:"required"`
	Content  string                `form:"content" binding:"required,max=100"`
	Picture  *multipart.FileHeader `form:"picture" binding:"omitempty"`
}

// InsertFix 学生提交报修工单，图片保存后记录访问路径
func InsertFix(c *gin.Context) {
	student, e := currentStudent(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	// 绑定 multipart form-data
	var req FixInsertRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Error("绑定报修请求失败", "error", err, "student_id", student.ID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !slices.Contains(model.FixCategories, req.Category) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("报修类型错误"))
		return
	}

	// 图片保存失败不拦提交，工单照常入库
	var pictureURL string
	if req.Picture != nil {
		url, err := pictureBed.FromConfig().SaveImage(c.Request.Context(), req.Picture)
		if err != nil {
			log.Error("报修图片保存失败", "error", err, "student_id", student.ID)
		} else {
			pictureURL = url
		}
	}

	fix := &model.Fix{
		StudentID: student.ID,
		RoomID:    student.RoomID,
		Category:  req.Category,
		Content:   req.Content,
		Picture:   pictureURL,
		Status:    model.FixStatusOpen,
	}
	if err := database.DB.Create(fix).Error; err != nil {
		log.Error("保存报修工单失败", "error", err, "student_id", student.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 推送给后勤报修系统
	httpclient.NotifyRepair(fix)

	log.Info("报修已提交", "fix_id", fix.ID, "student_id", student.ID, "room_id", fix.RoomID)
	response.Success(c, fix)
}

// GetMyFixes 学生分页查询自己的报修记录
func GetMyFixes(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	page, pageSize := tools.PageParams(c)
	base := database.DB.Model(&model.Fix{}).Where("student_id = ?", payload.UserID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var fixes []model.Fix
	if err := base.Order("submit_time DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&fixes).Error; err != nil {
		log.Error("查询报修记录失败", "error", err, "student_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.PageSuccess(c, fixes, total, page, pageSize)
}

// ListFixes 管理员分页查询本楼栋的报修工单，按工单房间归属过滤
func ListFixes(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	page, pageSize := tools.PageParams(c)
	base := database.DB.Model(&model.Fix{}).
		Joins("JOIN room ON room.id = fix.room_id").
		Where("room.dorm_id = ?", manager.DormID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var fixes []model.Fix
	if err := base.Order("fix.submit_time DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&fixes).Error; err != nil {
		log.Error("查询报修列表失败", "error", err, "dorm_id", manager.DormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.PageSuccess(c, fixes, total, page, pageSize)
}

// GetFixInfo 报修详情：学生只能看自己的工单，管理员只能看本楼栋学生的工单
func GetFixInfo(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	fixID, err := strconv.Atoi(c.Param("fix_id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("报修编号格式错误"))
		return
	}

	var fix model.Fix
	err = database.DB.First(&fix, "id = ?", fixID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("报修记录不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var student model.Student
	if err := database.DB.First(&student, "id = ?", fix.StudentID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if payload.RoleID == jwt.RoleManager {
		// 管理员按学生当前所在房间校验归属
		manager, e := currentManager(c)
		if e != nil {
			response.Fail(c, e)
			return
		}
		var room model.Room
		if err := database.DB.First(&room, "id = ?", student.RoomID).Error; err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		if room.DormID != manager.DormID {
			response.Fail(c, response.ErrNotFound.WithTips("报修记录不存在"))
			return
		}
	} else if fix.StudentID != payload.UserID {
		response.Fail(c, response.ErrNotFound.WithTips("报修记录不存在"))
		return
	}

	response.Success(c, map[string]interface{}{
		"fix":     fix,
		"student": student,
	})
}

// FixResolveRequest 处理报修请求体
type FixResolveRequest struct {
	FixID int `json:"fix_id" binding:"required"`
}

// ResolveFix 管理员标记报修已处理
func ResolveFix(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	var req FixResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定处理报修请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if e := ledger.ResolveFix(database.DB, req.FixID, manager.DormID); e != nil {
		log.Warn("处理报修失败", "fix_id", req.FixID, "error", e)
		response.Fail(c, e)
		return
	}

	log.Info("报修已处理", "fix_id", req.FixID, "manager_id", manager.ID)
	response.Success(c, nil)
}
