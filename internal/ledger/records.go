package ledger

import (
	"time"

	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ResolveFix 管理员处理报修工单，只允许 未处理 -> 已处理
// 归属按报修学生当前所在房间判断
func ResolveFix(db *gorm.DB, fixID int, managerDormID uint) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		var fix model.Fix
		err := tx.First(&fix, "id = ?", fixID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return response.ErrNotFound.WithTips("报修记录不存在")
		case err != nil:
			return response.ErrDatabase.WithOrigin(err)
		}

		student, e := firstStudent(tx, fix.StudentID)
		if e != nil {
			return e
		}
		room, e := firstRoom(tx, student.RoomID)
		if e != nil {
			return e
		}
		if room.DormID != managerDormID {
			return response.ErrForbidden
		}
		if fix.Status != model.FixStatusOpen {
			return response.ErrFixResolved
		}

		if err := tx.Model(&model.Fix{}).Where("id = ?", fix.ID).
			UpdateColumn("status", model.FixStatusResolved).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
}

// CheckoutVisitor 登记访客离开，只有接待学生本人可操作，离开时间不可逆
func CheckoutVisitor(db *gorm.DB, visitorID int, studentID string) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		var visitor model.Visitor
		err := tx.First(&visitor, "id = ?", visitorID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return response.ErrNotFound.WithTips("访客记录不存在")
		case err != nil:
			return response.ErrDatabase.WithOrigin(err)
		}

		if visitor.StudentID != studentID {
			return response.ErrForbidden
		}
		if visitor.LeaveTime != nil {
			return response.ErrVisitorLeft
		}

		now := time.Now()
		if err := tx.Model(&model.Visitor{}).Where("id = ?", visitor.ID).
			UpdateColumn("leave_time", now).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
}
