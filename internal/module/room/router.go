package room

import (
	"dormitory-management-system/internal/global/jwt"
	"dormitory-management-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleRoom) InitRouter(r *gin.RouterGroup) {
	roomGroup := r.Group("/room")

	studentGroup := roomGroup.Group("").Use(middleware.Auth(jwt.RoleStudent))
	{
		// 查看自己的房间、室友和可转入的候选房间
		studentGroup.GET("/my", GetMyRoom)
	}

	managerGroup := roomGroup.Group("").Use(middleware.Auth(jwt.RoleManager))
	{
		// 房间详情端点
		managerGroup.GET("/:room_id", GetRoomInfo)
		// 新增房间端点
		managerGroup.POST("/insert", InsertRoom)
		// 修改房间端点
		managerGroup.PUT("/update/:room_id", UpdateRoom)
		// 删除房间端点
		managerGroup.DELETE("/delete/:room_id", DeleteRoom)
		// 向房间添加学生端点
		managerGroup.POST("/:room_id/student", InsertStudent)
		// 导出房间住宿名单端点
		managerGroup.GET("/:room_id/roster/export", ExportRoster)
	}

	// 删除学生挂在 /student 前缀下
	r.Group("/student").Use(middleware.Auth(jwt.RoleManager)).
		DELETE("/delete/:student_id", DeleteStudent)
}
