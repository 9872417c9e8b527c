package fix

import (
	"fmt"

	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"
	"dormitory-management-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type fixRow struct {
	ID         int    `excel:"报修编号"`
	StudentID  string `excel:"学号"`
	RoomID     string `excel:"房间号"`
	Category   string `excel:"类别"`
	Content    string `excel:"内容"`
	SubmitTime string `excel:"提交时间"`
	Status     string `excel:"状态"`
}

// ExportFixes 导出本楼栋全部报修工单为 xlsx
func ExportFixes(c *gin.Context) {
	manager, e := currentManager(c)
	if e != nil {
		response.Fail(c, e)
		return
	}

	var fixes []model.Fix
	if err := database.DB.Model(&model.Fix{}).
		Joins("JOIN room ON room.id = fix.room_id").
		Where("room.dorm_id = ?", manager.DormID).
		Order("fix.submit_time DESC").Find(&fixes).Error; err != nil {
		log.Error("查询报修列表失败", "error", err, "dorm_id", manager.DormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]fixRow, 0, len(fixes))
	for _, f := range fixes {
		rows = append(rows, fixRow{
			ID:         f.ID,
			StudentID:  f.StudentID,
			RoomID:     f.RoomID,
			Category:   f.Category,
			Content:    f.Content,
			SubmitTime: f.SubmitTime.Format("2006-01-02 15:04"),
			Status:     f.Status,
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, "Sheet1", rows); err != nil {
		log.Error("生成报修表格失败", "error", err, "dorm_id", manager.DormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := tools.SendExcel(c, f, fmt.Sprintf("%d号楼-报修记录.xlsx", manager.DormID)); err != nil {
		log.Error("发送报修表格失败", "error", err, "dorm_id", manager.DormID)
	}
}
