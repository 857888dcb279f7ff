package config

import (
	"os"
	"strconv"
	"time"
)

// Config tenantli-inspect（检查报告组装服务）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Env string // development | production
	API struct {
		BaseURL string // tenantli 后端 API 地址
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Upload UploadConfig
}

// UploadConfig 上传重试策略（照片/文件上传共用）
type UploadConfig struct {
	Retries int           // 每个文件的最大尝试次数
	Backoff time.Duration // 线性退避基数（第 n 次失败后等待 n*Backoff）
	Timeout time.Duration // 单次尝试超时
}

// 默认 API 地址按环境选择，可用 API_BASE_URL 覆盖
const (
	devAPIBase  = "http://localhost:5050"
	prodAPIBase = "https://api.tenantli.ai"
)

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Env = getEnv("APP_ENV", "development")

	base := prodAPIBase
	if cfg.Env == "development" {
		base = devAPIBase
	}
	cfg.API.BaseURL = getEnv("API_BASE_URL", base)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// 上传重试策略（默认：3 次尝试、退避 attempt 秒、单次 30s 超时）
	cfg.Upload.Retries = parseInt(getEnv("UPLOAD_RETRIES", "3"), 3)
	cfg.Upload.Backoff = time.Duration(parseInt(getEnv("UPLOAD_BACKOFF_SECONDS", "1"), 1)) * time.Second
	cfg.Upload.Timeout = time.Duration(parseInt(getEnv("UPLOAD_TIMEOUT_SECONDS", "30"), 30)) * time.Second

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
