package tools

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPasswordHashCompare(t *testing.T) {
	hash, err := PasswordHash(DefaultPassword)
	require.NoError(t, err)
	require.NotEqual(t, DefaultPassword, hash)

	require.True(t, PasswordCompare(DefaultPassword, hash))
	require.False(t, PasswordCompare("wrong-password", hash))
	require.False(t, PasswordCompare(DefaultPassword, "not-a-hash"))
}

func pageContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/list?"+query, nil)
	return c
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	page, size := PageParams(pageContext(t, ""))
	require.Equal(t, 1, page)
	require.Equal(t, DefaultPageSize, size)

	page, size = PageParams(pageContext(t, "page=3&page_size=10"))
	require.Equal(t, 3, page)
	require.Equal(t, 10, size)

	// 非法值回退默认
	page, size = PageParams(pageContext(t, "page=0&page_size=-1"))
	require.Equal(t, 1, page)
	require.Equal(t, DefaultPageSize, size)

	page, size = PageParams(pageContext(t, "page=abc&page_size=1000"))
	require.Equal(t, 1, page)
	require.Equal(t, DefaultPageSize, size)
}

func TestExportToExcel(t *testing.T) {
	type row struct {
		ID     string `excel:"学号"`
		Name   string `excel:"姓名"`
		Hidden string `excel:"-"`
		Grade  int    `excel:"年级"`
	}

	f := excelize.NewFile()
	defer f.Close()

	err := ExportToExcel(f, "Sheet1", []row{
		{ID: "20180001", Name: "张三", Hidden: "x", Grade: 2018},
		{ID: "20180002", Name: "李四", Hidden: "y", Grade: 2018},
	})
	require.NoError(t, err)

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"学号", "姓名", "年级"},
		{"20180001", "张三", "2018"},
		{"20180002", "李四", "2018"},
	}, got)
}

func TestExportToExcelRejectsNonSlice(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.Error(t, ExportToExcel(f, "Sheet1", "not a slice"))
}

func TestExportToExcelEmptySlice(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, ExportToExcel(f, "Sheet1", []struct{}{}))
}
