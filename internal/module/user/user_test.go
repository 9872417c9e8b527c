package user

import (
	"os"
	"testing"

	"dormitory-management-system/config"
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/test"
	"dormitory-management-system/tools"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Init()
	(&ModuleUser{}).Init()
	os.Exit(m.Run())
}

func studentRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := tools.PasswordHash(password)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "name", "room_id", "password_hash"}).
		AddRow("20180001", "张三", "1-0201", hash)
}

func TestLoginStudentSuccess(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRow(t, "my-password1"))

	resp := test.DoRequest(t, Login, LoginRequest{Username: "20180001", Password: "my-password1"})
	test.NoError(t, resp)

	data := resp.Data.(map[string]any)
	require.NotEmpty(t, data["token"])
	require.Equal(t, "张三", data["name"])
	require.Equal(t, false, data["default_password"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginDefaultPasswordFlag(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRow(t, tools.DefaultPassword))

	resp := test.DoRequest(t, Login, LoginRequest{Username: "20180001", Password: tools.DefaultPassword})
	test.NoError(t, resp)
	require.Equal(t, true, resp.Data.(map[string]any)["default_password"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `student`").
		WillReturnRows(studentRow(t, "my-password1"))

	resp := test.DoRequest(t, Login, LoginRequest{Username: "20180001", Password: "wrong-password"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	// 用户不存在时返回与密码错误相同的提示
	mock.ExpectQuery("SELECT (.+) FROM `manager`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "dorm_id", "password_hash"}))

	resp := test.DoRequest(t, Login, LoginRequest{Username: "M999", Password: "my-password1", Manager: true})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginBadRequest(t *testing.T) {
	resp := test.DoRequest(t, Login, map[string]any{"username": "20180001", "password": "short"})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}

func TestUpdateSettings(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `student`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `student` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload := &jwt.Claims{Payload: jwt.Payload{UserID: "20180001", RoleID: jwt.RoleStudent}}
	resp := test.DoAuthedRequest(t, UpdateSettings, payload,
		SettingsRequest{Phone: "13800000002", Password: "new-password1"})
	test.NoError(t, resp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsManagerTable(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `manager`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `manager` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload := &jwt.Claims{Payload: jwt.Payload{UserID: "M001", RoleID: jwt.RoleManager}}
	resp := test.DoAuthedRequest(t, UpdateSettings, payload, SettingsRequest{Phone: "13800000003"})
	test.NoError(t, resp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsUnchangedValues(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	// 提交与库里相同的电话，MySQL 报 0 行受影响，仍然算保存成功
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `student`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `student` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	payload := &jwt.Claims{Payload: jwt.Payload{UserID: "20180001", RoleID: jwt.RoleStudent}}
	resp := test.DoAuthedRequest(t, UpdateSettings, payload, SettingsRequest{Phone: "13800000002"})
	test.NoError(t, resp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsUserGone(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `student`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	payload := &jwt.Claims{Payload: jwt.Payload{UserID: "20189999", RoleID: jwt.RoleStudent}}
	resp := test.DoAuthedRequest(t, UpdateSettings, payload, SettingsRequest{Phone: "13800000002"})
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsBadPhone(t *testing.T) {
	payload := &jwt.Claims{Payload: jwt.Payload{UserID: "20180001", RoleID: jwt.RoleStudent}}
	resp := test.DoAuthedRequest(t, UpdateSettings, payload, map[string]any{"phone": "123"})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}

func TestUpdateSettingsUnauthorized(t *testing.T) {
	resp := test.DoRequest(t, UpdateSettings, SettingsRequest{Phone: "13800000002"})
	test.ErrorEqual(t, response.ErrUnauthorized, resp)
}
