package dorm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"dormitory-management-system/config"
	"dormitory-management-system/internal/global/cache"
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Init()
	(&ModuleDorm{}).Init()
	os.Exit(m.Run())
}

// doGetRequest 以 GET 调用 handler，可带路径参数
func doGetRequest(t *testing.T, handlerFunc gin.HandlerFunc, params gin.Params) (resp response.ResponseBody) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	c.Params = params
	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

func dormRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "levels", "rooms", "left_residents", "gender"})
	for i := 1; i <= n; i++ {
		rows.AddRow(i, 6, 30, 40, "男")
	}
	return rows
}

func TestListDormsPagination(t *testing.T) {
	cache.Client = nil
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(dormRows(7))

	resp := doGetRequest(t, ListDorms, nil)
	test.NoError(t, resp)

	data := resp.Data.(map[string]any)
	require.Equal(t, float64(7), data["total"])
	require.Len(t, data["list"], 5)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListDormsUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Client.Close()
		cache.Client = nil
	})

	db, mock := test.NewMockDB(t)
	database.DB = db

	// 首次走数据库并回填缓存
	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(dormRows(3))

	resp := doGetRequest(t, ListDorms, nil)
	test.NoError(t, resp)
	require.Equal(t, float64(3), resp.Data.(map[string]any)["total"])

	// 第二次命中缓存，不再查库
	resp = doGetRequest(t, ListDorms, nil)
	test.NoError(t, resp)
	require.Equal(t, float64(3), resp.Data.(map[string]any)["total"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDormInfo(t *testing.T) {
	cache.Client = nil
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(dormRows(1))
	mock.ExpectQuery("SELECT (.+) FROM `manager`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "dorm_id"}).
			AddRow("M001", "王管理", 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `room`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM `room`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "dorm_id", "level", "spaces", "residents"}).
			AddRow("1-0101", 1, 1, 4, 3).
			AddRow("1-0102", 1, 1, 4, 4))

	resp := doGetRequest(t, GetDormInfo, gin.Params{{Key: "dorm_id", Value: "1"}})
	test.NoError(t, resp)

	data := resp.Data.(map[string]any)
	require.NotNil(t, data["dorm"])
	require.Len(t, data["managers"], 1)
	rooms := data["rooms"].(map[string]any)
	require.Equal(t, float64(2), rooms["total"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDormInfoBadID(t *testing.T) {
	resp := doGetRequest(t, GetDormInfo, gin.Params{{Key: "dorm_id", Value: "abc"}})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestGetDormInfoNotFound(t *testing.T) {
	cache.Client = nil
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `dorm`").
		WillReturnRows(dormRows(0))

	resp := doGetRequest(t, GetDormInfo, gin.Params{{Key: "dorm_id", Value: "9"}})
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
