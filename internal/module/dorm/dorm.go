package dorm

import (
	"strconv"

	"dormitory-management-system/internal/global/cache"
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/response"
	"dormitory-management-system/internal/model"
	"dormitory-management-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// loadSummaries 读取全部宿舍楼概览，优先走缓存
// 楼栋数量很小，整表缓存后在内存里分页
func loadSummaries(c *gin.Context) ([]model.Dorm, *response.Error) {
	var dorms []model.Dorm
	if cache.GetDormSummaries(c.Request.Context(), &dorms) {
		return dorms, nil
	}

	if err := database.DB.Order("id").Find(&dorms).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	cache.SetDormSummaries(c.Request.Context(), dorms)
	return dorms, nil
}

// ListDorms 分页查询宿舍楼列表
func ListDorms(c *gin.Context) {
	page, pageSize := tools.PageParams(c)

	dorms, e := loadSummaries(c)
	if e != nil {
		log.Error("查询宿舍楼列表失败", "error", e)
		response.Fail(c, e)
		return
	}

	total := int64(len(dorms))
	start := (page - 1) * pageSize
	if start > len(dorms) {
		start = len(dorms)
	}
	end := start + pageSize
	if end > len(dorms) {
		end = len(dorms)
	}

	response.PageSuccess(c, dorms[start:end], total, page, pageSize)
}

// GetDormInfo 查询宿舍楼详情：楼栋概览、管理员名单和分页的房间列表
func GetDormInfo(c *gin.Context) {
	dormID, err := strconv.Atoi(c.Param("dorm_id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("楼栋编号格式错误"))
		return
	}

	var dorm model.Dorm
	err = database.DB.First(&dorm, "id = ?", dormID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("宿舍楼不存在"))
		return
	case err != nil:
		log.Error("查询宿舍楼失败", "error", err, "dorm_id", dormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var managers []model.Manager
	if err := database.DB.Where("dorm_id = ?", dormID).Find(&managers).Error; err != nil {
		log.Error("查询管理员名单失败", "error", err, "dorm_id", dormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	page, pageSize := tools.PageParams(c)
	var total int64
	if err := database.DB.Model(&model.Room{}).Where("dorm_id = ?", dormID).Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var rooms []model.Room
	if err := database.DB.Where("dorm_id = ?", dormID).Order("id").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rooms).Error; err != nil {
		log.Error("查询房间列表失败", "error", err, "dorm_id", dormID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"dorm":     dorm,
		"managers": managers,
		"rooms": response.PageData{
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			List:     rooms,
		},
	})
}
