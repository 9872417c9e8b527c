package dorm

import (
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (d *ModuleDorm) InitRouter(r *gin.RouterGroup) {
	dormGroup := r.Group("/dorm").Use(middleware.Auth(jwt.RoleStudent))
	{
		// 宿舍楼列表
		dormGroup.GET("/list", ListDorms)
		// 宿舍楼详情：管理员名单 + 房间列表
		dormGroup.GET("/:dorm_id", GetDormInfo)
	}
}
