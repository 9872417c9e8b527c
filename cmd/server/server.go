package server

import (
	"fmt"
	"log/slog"

	"dormitory-management-system/config"
	"dormitory-management-system/internal/global/cache"
	"dormitory-management-system/internal/global/database"
	"dormitory-management-system/internal/global/httpclient"
	"dormitory-management-system/internal/global/logger"
	"dormitory-management-system/internal/global/middleware"
	"dormitory-management-system/internal/module"
	"dormitory-management-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	database.Init()

	cache.Init()

	httpclient.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	// 本地保存的报修图片走静态路径，S3 模式下 URL 直接指向对象存储
	if !config.Get().S3.Enable {
		r.Static(config.Get().Upload.BaseURL, config.Get().Upload.Dir)
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
