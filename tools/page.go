package tools

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize 列表默认每页条数
const DefaultPageSize = 5

// PageParams 解析 page 和 page_size 查询参数，非法值回退默认
func PageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	return
}
