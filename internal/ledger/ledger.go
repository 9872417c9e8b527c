// Package ledger 维护入住台账：房间 residents、宿舍楼 rooms/left_residents
// 三个冗余计数与学生-房间分配表的一致性，以及转宿申请的状态流转。
//
// 每个写操作在单个数据库事务内完成，任一步失败整体回滚，计数不会出现
// 半更新。失败以 *response.Error 显式返回，由调用方转换为响应。
//
// 已知并发窗口：容量检查与计数自增在同一事务内执行但未对房间行加锁，
// 两个并发请求可能同时通过检查，使 residents 超过 spaces。
package ledger

import (
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// run 在事务中执行 fn，保留其返回的业务错误
func run(db *gorm.DB, fn func(tx *gorm.DB) *response.Error) *response.Error {
	var opErr *response.Error
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if e := fn(tx); e != nil {
			opErr = e
			return e
		}
		return nil
	})
	if txErr != nil && opErr == nil {
		return response.ErrDatabase.WithOrigin(txErr)
	}
	return opErr
}

func firstDorm(tx *gorm.DB, id uint) (*model.Dorm, *response.Error) {
	var dorm model.Dorm
	err := tx.First(&dorm, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("宿舍楼不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &dorm, nil
}

func firstRoom(tx *gorm.DB, id string) (*model.Room, *response.Error) {
	var room model.Room
	err := tx.First(&room, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("房间不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &room, nil
}

func firstStudent(tx *gorm.DB, id string) (*model.Student, *response.Error) {
	var student model.Student
	err := tx.First(&student, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("学生不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &student, nil
}

// addResidents 调整房间入住人数及所属楼栋的空余床位数
func addResidents(tx *gorm.DB, room *model.Room, delta int) *response.Error {
	if err := tx.Model(&model.Room{}).Where("id = ?", room.ID).
		UpdateColumn("residents", gorm.Expr("residents + ?", delta)).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if err := tx.Model(&model.Dorm{}).Where("id = ?", room.DormID).
		UpdateColumn("left_residents", gorm.Expr("left_residents - ?", delta)).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// AddStudent 把学生添加到房间，要求至少剩一个床位
// 调用方负责填好 PasswordHash
func AddStudent(db *gorm.DB, student *model.Student) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		room, e := firstRoom(tx, student.RoomID)
		if e != nil {
			return e
		}
		if room.Spaces-room.Residents < 1 {
			return response.ErrRoomFull
		}

		var count int64
		if err := tx.Model(&model.Student{}).Where("id = ?", student.ID).Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return response.ErrDuplicate.WithTips("学号已存在")
		}

		if err := tx.Create(student).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return addResidents(tx, room, 1)
	})
}

// DeleteStudent 删除学生并级联删除其报修、访客和转宿记录
func DeleteStudent(db *gorm.DB, studentID string) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		student, e := firstStudent(tx, studentID)
		if e != nil {
			return e
		}
		room, e := firstRoom(tx, student.RoomID)
		if e != nil {
			return e
		}

		for _, m := range []any{&model.Fix{}, &model.Visitor{}, &model.Move{}} {
			if err := tx.Where("student_id = ?", studentID).Delete(m).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		if err := tx.Delete(&model.Student{}, "id = ?", studentID).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return addResidents(tx, room, -1)
	})
}

// AddRoom 新增房间并更新楼栋计数
func AddRoom(db *gorm.DB, room *model.Room) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		dorm, e := firstDorm(tx, room.DormID)
		if e != nil {
			return e
		}

		var count int64
		if err := tx.Model(&model.Room{}).Where("id = ?", room.ID).Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return response.ErrDuplicate.WithTips("房间号已存在")
		}
		if room.Level < 1 || room.Level > dorm.Levels {
			return response.ErrInvalidLevel
		}
		if room.Spaces < 1 {
			return response.ErrInvalidSpaces
		}

		room.Residents = 0
		if err := tx.Create(room).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Model(&model.Dorm{}).Where("id = ?", dorm.ID).
			Updates(map[string]any{
				"rooms":          gorm.Expr("rooms + ?", 1),
				"left_residents": gorm.Expr("left_residents + ?", room.Spaces),
			}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
}

// DeleteRoom 删除空房间并级联删除该房间的报修记录
func DeleteRoom(db *gorm.DB, roomID string) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		room, e := firstRoom(tx, roomID)
		if e != nil {
			return e
		}
		if room.Residents > 0 {
			return response.ErrRoomOccupied
		}

		if err := tx.Where("room_id = ?", roomID).Delete(&model.Fix{}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Delete(&model.Room{}, "id = ?", roomID).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Model(&model.Dorm{}).Where("id = ?", room.DormID).
			Updates(map[string]any{
				"rooms":          gorm.Expr("rooms - ?", 1),
				"left_residents": gorm.Expr("left_residents - ?", room.Spaces),
			}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
}

// UpdateRoom 修改房间号、楼层或床位数
// 床位数不能小于当前入住人数；改房间号时同步修正所有外键引用
func UpdateRoom(db *gorm.DB, roomID, newID string, newLevel, newSpaces int) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		room, e := firstRoom(tx, roomID)
		if e != nil {
			return e
		}
		dorm, e := firstDorm(tx, room.DormID)
		if e != nil {
			return e
		}
		if newLevel < 1 || newLevel > dorm.Levels {
			return response.ErrInvalidLevel
		}
		if newSpaces < 1 {
			return response.ErrInvalidSpaces
		}
		if newSpaces < room.Residents {
			return response.ErrSpacesTooSmall
		}

		if newID != roomID {
			var count int64
			if err := tx.Model(&model.Room{}).Where("id = ?", newID).Count(&count).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
			if count > 0 {
				return response.ErrDuplicate.WithTips("房间号已存在")
			}
		}

		if err := tx.Model(&model.Room{}).Where("id = ?", roomID).
			Updates(map[string]any{
				"id":     newID,
				"level":  newLevel,
				"spaces": newSpaces,
			}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}

		if newID != roomID {
			// 历史转宿记录保留原房间号，其余引用全部改指新房间号
			for _, m := range []any{&model.Student{}, &model.Fix{}, &model.Visitor{}} {
				if err := tx.Model(m).Where("room_id = ?", roomID).
					UpdateColumn("room_id", newID).Error; err != nil {
					return response.ErrDatabase.WithOrigin(err)
				}
			}
		}

		if delta := newSpaces - room.Spaces; delta != 0 {
			if err := tx.Model(&model.Dorm{}).Where("id = ?", room.DormID).
				UpdateColumn("left_residents", gorm.Expr("left_residents + ?", delta)).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		return nil
	})
}

// SubmitMove 学生提交转宿申请
// 同一学生只能有一条未处理申请；目标房间必须是本楼栋且当时有空床
func SubmitMove(db *gorm.DB, studentID, targetRoomID, reason string) (*model.Move, *response.Error) {
	var move *model.Move
	e := run(db, func(tx *gorm.DB) *response.Error {
		var pending int64
		if err := tx.Model(&model.Move{}).
			Where("student_id = ? AND status = ?", studentID, model.MoveStatusPending).
			Count(&pending).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if pending > 0 {
			return response.ErrMovePending
		}

		student, e := firstStudent(tx, studentID)
		if e != nil {
			return e
		}
		if targetRoomID == student.RoomID {
			return response.ErrInvalidRequest.WithTips("不能申请当前所在房间")
		}
		current, e := firstRoom(tx, student.RoomID)
		if e != nil {
			return e
		}
		target, e := firstRoom(tx, targetRoomID)
		if e != nil {
			return e
		}
		if target.DormID != current.DormID {
			return response.ErrInvalidRequest.WithTips("只能申请本楼栋的房间")
		}
		// 提交时的床位检查只是初筛，审批时会重新校验
		if target.Spaces-target.Residents < 1 {
			return response.ErrRoomFull
		}

		move = &model.Move{
			StudentID:      studentID,
			OriginalRoomID: student.RoomID,
			TargetRoomID:   targetRoomID,
			Reason:         reason,
			Status:         model.MoveStatusPending,
		}
		if err := tx.Create(move).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if e != nil {
		return nil, e
	}
	return move, nil
}

// pendingMoveForManager 取出未处理申请并校验管理员权限
// 权限按学生当前所在房间判断，而不是申请里记录的原房间
func pendingMoveForManager(tx *gorm.DB, moveID int, managerDormID uint) (*model.Move, *model.Student, *model.Room, *response.Error) {
	var move model.Move
	err := tx.First(&move, "id = ?", moveID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, nil, response.ErrNotFound.WithTips("转宿申请不存在")
	case err != nil:
		return nil, nil, nil, response.ErrDatabase.WithOrigin(err)
	}

	student, e := firstStudent(tx, move.StudentID)
	if e != nil {
		return nil, nil, nil, e
	}
	current, e := firstRoom(tx, student.RoomID)
	if e != nil {
		return nil, nil, nil, e
	}
	if current.DormID != managerDormID {
		return nil, nil, nil, response.ErrForbidden
	}
	if move.Status != model.MoveStatusPending {
		return nil, nil, nil, response.ErrMoveResolved
	}
	return &move, student, current, nil
}

// ApproveMove 同意转宿：重新校验目标房间容量，容量不足时申请保持未处理
func ApproveMove(db *gorm.DB, moveID int, managerDormID uint) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		move, student, current, e := pendingMoveForManager(tx, moveID, managerDormID)
		if e != nil {
			return e
		}
		target, e := firstRoom(tx, move.TargetRoomID)
		if e != nil {
			return e
		}
		if target.Spaces-target.Residents < 1 {
			return response.ErrRoomFull.WithTips("目标房间床位不足")
		}

		if err := tx.Model(&model.Move{}).Where("id = ?", move.ID).
			UpdateColumn("status", model.MoveStatusApproved).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Model(&model.Student{}).Where("id = ?", student.ID).
			UpdateColumn("room_id", target.ID).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if e := addResidents(tx, target, 1); e != nil {
			return e
		}
		return addResidents(tx, current, -1)
	})
}

// RejectMove 拒绝转宿，仅改申请状态
func RejectMove(db *gorm.DB, moveID int, managerDormID uint) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		move, _, _, e := pendingMoveForManager(tx, moveID, managerDormID)
		if e != nil {
			return e
		}
		if err := tx.Model(&model.Move{}).Where("id = ?", move.ID).
			UpdateColumn("status", model.MoveStatusRejected).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
}

// Recount 按实际行数重算全部冗余计数，用于种子数据导入或计数修复
func Recount(db *gorm.DB) *response.Error {
	return run(db, func(tx *gorm.DB) *response.Error {
		if err := tx.Exec(
			"UPDATE room SET residents = (SELECT COUNT(*) FROM student WHERE student.room_id = room.id)",
		).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Exec(
			"UPDATE dorm SET rooms = (SELECT COUNT(*) FROM room WHERE room.dorm_id = dorm.id), " +
				"left_residents = (SELECT COALESCE(SUM(spaces - residents), 0) FROM room WHERE room.dorm_id = dorm.id)",
		).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
}
