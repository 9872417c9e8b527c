package user

import (
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	// 定义用户模块的路由组，所有用户相关端点以 /user 为前缀
	userGroup := r.Group("/user")

	// 登录端点，匿名访问
	userGroup.POST("/login", Login)

	// 个人设置：修改电话和密码，学生和管理员通用
	userGroup.PUT("/settings", middleware.Auth(jwt.RoleStudent), UpdateSettings)
}
