package ledger

import (
	"testing"

	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"
	"dormitory-management-system/test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	return test.NewMockDB(t)
}

func roomRows(id string, dormID uint, level, spaces, residents int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "dorm_id", "level", "spaces", "residents"}).
		AddRow(id, dormID, level, spaces, residents)
}

func studentRows(id, roomID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "age", "phone", "major", "grade", "room_id", "password_hash"}).
		AddRow(id, "测试学生", 20, "13800000000", "计算机", 2022, roomID, "")
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestAddStudentIncrementsResidents(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 2))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `student`").
		WillReturnRows(countRows(0))
	mock.ExpectExec("INSERT INTO `student`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `room` SET `residents`=residents \\+ \\?").
		WithArgs(1, "1-0301").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `dorm` SET `left_residents`=left_residents - \\?").
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := AddStudent(db, &model.Student{
		ID: "20220099", Name: "新生", Age: 18,
		Phone: "13800000001", Major: "软件工程", Grade: 2022,
		RoomID: "1-0301",
	})
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStudentRoomFull(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 4))
	mock.ExpectRollback()

	e := AddStudent(db, &model.Student{ID: "20220100", RoomID: "1-0301"})
	require.NotNil(t, e)
	require.Equal(t, response.ErrRoomFull.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStudentDuplicateID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 2))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `student`").
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	e := AddStudent(db, &model.Student{ID: "20220099", RoomID: "1-0301"})
	require.NotNil(t, e)
	require.Equal(t, response.ErrDuplicate.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStudentCascades(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180001", "1-0201"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0201", 1, 2, 4, 3))
	mock.ExpectExec("DELETE FROM `fix`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `visitor`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `move`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `student`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `room` SET `residents`=residents \\+ \\?").
		WithArgs(-1, "1-0201").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `dorm` SET `left_residents`=left_residents - \\?").
		WithArgs(-1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := DeleteStudent(db, "20180001")
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRoomChecksLevelAndSpaces(t *testing.T) {
	db, mock := newMockDB(t)

	dormRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "levels", "rooms", "left_residents", "gender"}).
			AddRow(1, 6, 30, 40, "男")
	}

	// 楼层超限
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `dorm`").WillReturnRows(dormRow())
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `room`").WillReturnRows(countRows(0))
	mock.ExpectRollback()

	e := AddRoom(db, &model.Room{ID: "1-0701", DormID: 1, Level: 7, Spaces: 4})
	require.NotNil(t, e)
	require.Equal(t, response.ErrInvalidLevel.Code, e.Code)

	// 床位数非法
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `dorm`").WillReturnRows(dormRow())
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `room`").WillReturnRows(countRows(0))
	mock.ExpectRollback()

	e = AddRoom(db, &model.Room{ID: "1-0102", DormID: 1, Level: 1, Spaces: 0})
	require.NotNil(t, e)
	require.Equal(t, response.ErrInvalidSpaces.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRoomUpdatesDormCounters(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "levels", "rooms", "left_residents", "gender"}).
			AddRow(1, 6, 30, 40, "男"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `room`").WillReturnRows(countRows(0))
	mock.ExpectExec("INSERT INTO `room`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `dorm` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := AddRoom(db, &model.Room{ID: "1-0601", DormID: 1, Level: 6, Spaces: 4})
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomOccupied(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 2))
	mock.ExpectRollback()

	e := DeleteRoom(db, "1-0301")
	require.NotNil(t, e)
	require.Equal(t, response.ErrRoomOccupied.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomCascadesFixes(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 0))
	mock.ExpectExec("DELETE FROM `fix`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `room`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `dorm` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := DeleteRoom(db, "1-0301")
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoomSpacesTooSmall(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 3))
	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "levels", "rooms", "left_residents", "gender"}).
			AddRow(1, 6, 30, 40, "男"))
	mock.ExpectRollback()

	e := UpdateRoom(db, "1-0301", "1-0301", 3, 2)
	require.NotNil(t, e)
	require.Equal(t, response.ErrSpacesTooSmall.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoomInvalidLevel(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0301", 1, 3, 4, 3))
	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "levels", "rooms", "left_residents", "gender"}).
			AddRow(1, 6, 30, 40, "男"))
	mock.ExpectRollback()

	// 楼层改到楼栋层数之外，和新增房间同样拦下
	e := UpdateRoom(db, "1-0301", "1-0301", 7, 4)
	require.NotNil(t, e)
	require.Equal(t, response.ErrInvalidLevel.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitMoveDuplicatePending(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `move`").
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	move, e := SubmitMove(db, "20180002", "1-0501", "离实验室更近")
	require.Nil(t, move)
	require.NotNil(t, e)
	require.Equal(t, response.ErrMovePending.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitMoveCreatesPending(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `move`").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180002", "1-0201"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0201", 1, 2, 4, 4))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0501", 1, 5, 4, 3))
	mock.ExpectExec("INSERT INTO `move`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	move, e := SubmitMove(db, "20180002", "1-0501", "离实验室更近")
	require.Nil(t, e)
	require.Equal(t, 7, move.ID)
	require.Equal(t, model.MoveStatusPending, move.Status)
	require.Equal(t, "1-0201", move.OriginalRoomID)
	require.Equal(t, "1-0501", move.TargetRoomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func moveRows(id int, studentID, original, target, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "original_room_id", "target_room_id", "reason", "status"}).
		AddRow(id, studentID, original, target, "换宿舍", status)
}

func TestApproveMoveSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `move`").
		WillReturnRows(moveRows(3, "20180002", "1-0201", "1-0501", model.MoveStatusPending))
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180002", "1-0201"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0201", 1, 2, 4, 2))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0501", 1, 5, 4, 3))
	mock.ExpectExec("UPDATE `move` SET `status`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `student` SET `room_id`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `room` SET `residents`=residents \\+ \\?").
		WithArgs(1, "1-0501").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `dorm` SET `left_residents`=left_residents - \\?").
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `room` SET `residents`=residents \\+ \\?").
		WithArgs(-1, "1-0201").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `dorm` SET `left_residents`=left_residents - \\?").
		WithArgs(-1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := ApproveMove(db, 3, 1)
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMoveTargetFullStaysPending(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `move`").
		WillReturnRows(moveRows(3, "20180002", "1-0201", "1-0501", model.MoveStatusPending))
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180002", "1-0201"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0201", 1, 2, 4, 2))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0501", 1, 5, 4, 4))
	mock.ExpectRollback()

	e := ApproveMove(db, 3, 1)
	require.NotNil(t, e)
	require.Equal(t, response.ErrRoomFull.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMoveAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `move`").
		WillReturnRows(moveRows(3, "20180002", "1-0201", "1-0501", model.MoveStatusApproved))
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180002", "1-0501"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0501", 1, 5, 4, 4))
	mock.ExpectRollback()

	e := ApproveMove(db, 3, 1)
	require.NotNil(t, e)
	require.Equal(t, response.ErrMoveResolved.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMoveWrongDorm(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `move`").
		WillReturnRows(moveRows(3, "20180002", "1-0201", "1-0501", model.MoveStatusPending))
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180002", "1-0201"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0201", 1, 2, 4, 2))
	mock.ExpectRollback()

	// 2 号楼管理员动不了 1 号楼学生的申请
	e := ApproveMove(db, 3, 2)
	require.NotNil(t, e)
	require.Equal(t, response.ErrForbidden.Code, e.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectMoveOnlyChangesStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `move`").
		WillReturnRows(moveRows(4, "20180002", "1-0201", "1-0501", model.MoveStatusPending))
	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRows("20180002", "1-0201"))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(roomRows("1-0201", 1, 2, 4, 2))
	mock.ExpectExec("UPDATE `move` SET `status`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := RejectMove(db, 4, 1)
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE room SET residents").
		WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectExec("UPDATE dorm SET rooms").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.Nil(t, Recount(db))
	require.NoError(t, mock.ExpectationsWereMet())
}
