package visitor

import (
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (v *ModuleVisitor) InitRouter(r *gin.RouterGroup) {
	visitorGroup := r.Group("/visitor").Use(middleware.Auth(jwt.RoleStudent))
	{
		// 访客登记端点
		visitorGroup.POST("/insert", InsertVisitor)
		// 查询自己访客记录端点
		visitorGroup.GET("/my-list", GetMyVisitors)
		// 访客离开登记端点
		visitorGroup.POST("/leave", CheckoutVisitor)
	}
}
