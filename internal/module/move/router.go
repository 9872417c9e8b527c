package move

import (
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMove) InitRouter(r *gin.RouterGroup) {
	moveGroup := r.Group("/move")

	studentGroup := moveGroup.Group("").Use(middleware.Auth(jwt.RoleStudent))
	{
		// 提交转宿申请端点
		studentGroup.POST("/submit", SubmitMove)
		// 查询自己所有转宿申请端点
		studentGroup.GET("/my-list", GetMyMoves)
	}

	managerGroup := moveGroup.Group("").Use(middleware.Auth(jwt.RoleManager))
	{
		// 本楼栋转宿申请列表端点
		managerGroup.GET("/list", ListMoves)
		// 审批转宿申请端点
		managerGroup.POST("/review", ReviewMove)
	}
}
