package response

import (
	"errors"
	"net/http"
	"runtime/debug"

	"dormitory-management-system/config"
	"dormitory-management-system/internal/global/logger"

	"github.com/gin-gonic/gin"
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// PageData 分页响应数据
type PageData struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	List     any   `json:"list"`
}

// Success 返回成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, ResponseBody{
		Code: 200,
		Msg:  "success",
		Data: data,
	})
}

// PageSuccess 返回分页成功响应
func PageSuccess(c *gin.Context, list any, total int64, page, pageSize int) {
	Success(c, PageData{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     list,
	})
}

// Fail 返回失败响应；非 *Error 的错误一律按数据库错误兜底
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrDatabase.WithOrigin(err)
	}

	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
	}
	// 原始错误只在 debug 模式下露出
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.JSON(http.StatusOK, body)
}

// Recovery 捕获 handler 中的 panic，转换为统一错误响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		logger.New("Recovery").Error("panic recovered",
			"panic", r,
			"path", c.Request.URL.Path,
			"stack", string(debug.Stack()),
		)
		Fail(c, ErrDatabase)
		c.Abort()
	}
}
