package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host    string `envconfig:"HOST"`
	Port    string `envconfig:"PORT"`
	Domain  string `envconfig:"DOMAIN"`
	Prefix  string `envconfig:"PREFIX"`
	Mode    Mode   `envconfig:"MODE"`
	Upload  Upload
	Mysql   Mysql
	Redis   Redis
	JWT     JWT
	Log     Log     `mapstructure:"Log"`
	S3      S3      `mapstructure:"S3"`
	Webhook Webhook `mapstructure:"Webhook"`
}

type Upload struct {
	Dir     string `envconfig:"UPLOAD_DIR" mapstructure:"dir"`           // 报修图片保存目录
	BaseURL string `envconfig:"UPLOAD_BASE_URL" mapstructure:"base_url"` // 图片访问基础URL
}

type S3 struct {
	Enable          bool   `mapstructure:"enable"`
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}

type Webhook struct {
	// RepairURL 后勤报修系统的回调地址，为空时不推送
	RepairURL string `envconfig:"REPAIR_URL" mapstructure:"repair_url"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}
