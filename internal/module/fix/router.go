package fix

import (
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (f *ModuleFix) InitRouter(r *gin.RouterGroup) {
	fixGroup := r.Group("/fix")

	studentGroup := fixGroup.Group("").Use(middleware.Auth(jwt.RoleStudent))
	{
		// 提交报修端点（multipart，可附图片）
		studentGroup.POST("/insert", InsertFix)
		// 查询自己报修记录端点
		studentGroup.GET("/my-list", GetMyFixes)
		// 报修详情端点，学生只能看自己的，管理员只能看本楼栋的
		studentGroup.GET("/:fix_id", GetFixInfo)
	}

	managerGroup := fixGroup.Group("").Use(middleware.Auth(jwt.RoleManager))
	{
		// 本楼栋报修列表端点
		managerGroup.GET("/list", ListFixes)
		// 处理报修端点
		managerGroup.POST("/resolve", ResolveFix)
		// 导出本楼栋报修列表端点
		managerGroup.GET("/export", ExportFixes)
	}
}
