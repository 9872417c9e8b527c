package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dormitory-management-system/config"
	"dormitory-management-system/internal/global/logger"

	"github.com/redis/go-redis/v9"
)

// Client 为 nil 时表示缓存不可用，所有读写退化为直查数据库
var Client *redis.Client

var log *slog.Logger

// dormSummaryKey 缓存全部宿舍楼的概览（楼栋数量很小，整表缓存）
const dormSummaryKey = "dorm:summary:all"

// summaryTTL 概览缓存有效期，所有写操作也会主动失效
const summaryTTL = 5 * time.Minute

func Init() {
	log = logger.New("Cache")
	cfg := config.Get().Redis
	if cfg.Host == "" {
		log.Warn("Redis 未配置，宿舍概览缓存关闭")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// 连不上只降级，不拦启动
		log.Warn("Redis 连接失败，宿舍概览缓存关闭", "error", err)
		return
	}
	Client = client
}

// GetDormSummaries 读取宿舍概览缓存，未命中或缓存不可用时返回 false
func GetDormSummaries(ctx context.Context, dest any) bool {
	if Client == nil {
		return false
	}
	raw, err := Client.Get(ctx, dormSummaryKey).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn("宿舍概览缓存损坏，已丢弃", "error", err)
		Client.Del(ctx, dormSummaryKey)
		return false
	}
	return true
}

// SetDormSummaries 写入宿舍概览缓存，失败只记日志
func SetDormSummaries(ctx context.Context, v any) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := Client.Set(ctx, dormSummaryKey, raw, summaryTTL).Err(); err != nil {
		log.Warn("写入宿舍概览缓存失败", "error", err)
	}
}

// InvalidateDormSummaries 在任何改变房间或入住人数的操作后调用
func InvalidateDormSummaries(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Del(ctx, dormSummaryKey).Err(); err != nil {
		log.Warn("失效宿舍概览缓存失败", "error", err)
	}
}
