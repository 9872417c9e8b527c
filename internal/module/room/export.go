package room

import (
	"fmt"

	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"
	"dormitory-management-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type rosterRow struct {
	StudentID string `excel:"学号"`
	Name      string `excel:"姓名"`
	Age       int    `excel:"年龄"`
	Phone     string `excel:"电话"`
	Major     string `excel:"专业"`
	Grade     int    `excel:"年级"`
}

// ExportRoster 导出房间住宿名单为 xlsx
func ExportRoster(c *gin.Context) {
	room, e := managedRoom(c, c.Param("room_id"))
	if e != nil {
		response.Fail(c, e)
		return
	}

	var students []model.Student
	if err := database.DB.Where("room_id = ?", room.ID).Order("id").Find(&students).Error; err != nil {
		log.Error("查询住宿名单失败", "error", err, "room_id", room.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]rosterRow, 0, len(students))
	for _, s := range students {
		rows = append(rows, rosterRow{
			StudentID: s.ID,
			Name:      s.Name,
			Age:       s.Age,
			Phone:     s.Phone,
			Major:     s.Major,
			Grade:     s.Grade,
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, "Sheet1", rows); err != nil {
		log.Error("生成名单表格失败", "error", err, "room_id", room.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := tools.SendExcel(c, f, fmt.Sprintf("%s-住宿名单.xlsx", room.ID)); err != nil {
		log.Error("发送名单表格失败", "error", err, "room_id", room.ID)
	}
}
