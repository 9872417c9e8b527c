package move

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

// MoveSubmitRequest 转宿申请请求体
type MoveSubmitRequest struct {
	TargetRoomID string `json:"target_room_id" binding:"required,max=20"`
	Reason       string `json:"reason" binding:"required,max=100"`
}

// SubmitMove 学生提交转宿申请
func SubmitMove(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req MoveSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定转宿申请失败", "error", err, "student_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	move, e := ledger.SubmitMove(database.DB, payload.UserID, req.TargetRoomID, req.Reason)
	if e != nil {
		log.Warn("提交转宿申请失败", "student_id", payload.UserID, "error", e)
		response.Fail(c, e)
		return
	}

	log.Info("转宿申请已提交", "student_id", payload.UserID, "move_id", move.ID)
	response.Success(c, move)
}

// GetMyMoves 学生查询自己的转宿申请记录
func GetMyMoves(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var moves []model.Move
	if err := database.DB.Where("student_id = ?", payload.UserID).
		Order("submit_time DESC").Find(&moves).Error; err != nil {
		log.Error("查询转宿记录失败", "error", err, "student_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, moves)
}

// ListMoves 管理员分页查询本楼栋学生的转宿申请
// 楼栋归属按学生当前所在房间判断
func ListMoves(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	page, pageSize := tools.PageParams(c)
	base := database.DB.Model(&model.Move{}).
		Joins("JOIN student ON student.id = move.student_id").
		Joins("JOIN room ON room.id = student.room_id").
		Where("room.dorm_id = ?", manager.DormID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var moves []model.Move
	if err := base.Order("move.submit_time DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&moves).Error; err != nil {
		log.Error("查询转宿申请列表失败", "error", err, "dorm_id", manager.DormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.PageSuccess(c, moves, total, page, pageSize)
}

// MoveReviewRequest 审批请求体，approve 为 true 同意，否则拒绝
type MoveReviewRequest struct {
	MoveID  int   `json:"move_id" binding:"required"`
	Approve *bool `json:"approve" binding:"required"`
}

// ReviewMove 管理员审批转宿申请
// 同意时重新校验目标房间容量，容量不足申请保持未处理
func ReviewMove(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	var req MoveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定审批请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if *req.Approve {
		if e := ledger.ApproveMove(database.DB, req.MoveID, manager.DormID); e != nil {
			log.Warn("同意转宿失败", "move_id", req.MoveID, "error", e)
			response.Fail(c, e)
			return
		}
		// 两个房间的入住人数都变了
		cache.InvalidateDormSummaries(c.Request.Context())
		log.Info("转宿申请已同意", "move_id", req.MoveID)
	} else {
		if e := ledger.RejectMove(database.DB, req.MoveID, manager.DormID); e != nil {
			log.Warn("拒绝转宿失败", "move_id", req.MoveID, "error", e)
			response.Fail(c, e)
			return
		}
		log.Info("转宿申请已拒绝", "move_id", req.MoveID)
	}

	response.Success(c, nil)
}
