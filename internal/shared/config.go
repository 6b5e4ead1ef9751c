package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	AuditsDir     string
	PhotosDir     string
	ChecklistPath string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	ExportWorkers int
	UploadRPS     int
	CacheTTL      time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		AuditsDir:     env("AUDITS_DIR", "audits"),
		PhotosDir:     env("PHOTOS_DIR", "photos"),
		ChecklistPath: env("CHECKLIST_PATH", "master_checklist_template.json"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		ExportWorkers: atoi("EXPORT_WORKERS", 4),
		UploadRPS:     atoi("UPLOAD_RPS", 5),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
