package httpclient

import (
	"dormitory-management-system/config"
	"dormitory-management-system/internal/global/logger"
)

// NotifyRepair 向后勤报修系统推送新工单
// 异步发送，失败只记日志，不影响工单提交本身
func NotifyRepair(payload any) {
	url := config.Get().Webhook.RepairURL
	if url == "" || Client == nil {
		return
	}
	go func() {
		log := logger.New("Webhook")
		resp, err := Client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(url)
		if err != nil {
			log.Warn("报修工单推送失败", "error", err)
			return
		}
		if resp.IsError() {
			log.Warn("报修工单推送被拒绝", "status", resp.StatusCode())
		}
	}()
}
