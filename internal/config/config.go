package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	DataDir     string
	Storage     string // "file" or "redis"
	RedisAddr   string
	HTTPTimeout time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	home, _ := os.UserHomeDir()
	cfg := Config{
		APIBaseURL:  getenv("KHANA_API_URL", "http://localhost:3000"),
		DataDir:     getenv("KHANA_DATA_DIR", filepath.Join(home, ".khana")),
		Storage:     getenv("KHANA_STORAGE", "file"),
		RedisAddr:   getenv("KHANA_REDIS_ADDR", "localhost:6379"),
		HTTPTimeout: 15 * time.Second,
	}
	if v := os.Getenv("KHANA_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	log.Printf("[config] KHANA_API_URL=%s", cfg.APIBaseURL)
	log.Printf("[config] KHANA_DATA_DIR=%s", cfg.DataDir)
	log.Printf("[config] KHANA_STORAGE=%s", cfg.Storage)
	return cfg
}
