package config

import (
	"log"
	"os"
	"strconv"
)

// App holds the process configuration, loaded once at startup.
var App *Config

type Config struct {
	Port        string
	ShareBucket string
	// upper bound for multipart uploads (plan images + attachments), in MB
	MaxUploadMB int
}

func Load() {
	App = &Config{
		Port:        getEnv("PORT", "3000"),
		ShareBucket: os.Getenv("EXPORT_SHARE_BUCKET"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 50),
	}
	log.Printf("config loaded: port=%s share_bucket=%q max_upload=%dMB",
		App.Port, App.ShareBucket, App.MaxUploadMB)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
