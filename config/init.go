package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var config Config

// Get 获取全局配置，必须先调用 Init
func Get() *Config {
	return &config
}

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		// 允许没有配置文件，全部走环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
	} else if err := v.Unmarshal(&config); err != nil {
		panic(err)
	}

	if err := envconfig.Process("dms", &config); err != nil {
		panic(err)
	}

	applyDefaults()
}

func applyDefaults() {
	if config.Mode == "" {
		config.Mode = ModeDebug
	}
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.Prefix == "" {
		config.Prefix = "api"
	}
	if config.Upload.Dir == "" {
		config.Upload.Dir = "./upload/fix"
	}
	if config.Upload.BaseURL == "" {
		config.Upload.BaseURL = "/static/fix"
	}
	if config.JWT.AccessSecret == "" {
		config.JWT.AccessSecret = "dev"
	}
	if config.JWT.AccessExpire <= 0 {
		config.JWT.AccessExpire = 72 * 3600
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}
