package config

import (
	"fmt"
	"os"
)

type Config struct {
	AppEnv        string
	Port          string
	DBPath        string
	UploadsDir    string
	SessionSecret string
	AdminUser     string
	AdminPass     string
	LogLevel      string
	LogFormat     string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "app.db"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		AdminUser:     getEnv("ADMIN_USER", "admin"),
		AdminPass:     getEnv("ADMIN_PASS", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.SessionSecret == "" {
		if cfg.AppEnv == "production" {
			return nil, fmt.Errorf("SESSION_SECRET is required in production")
		}
		cfg.SessionSecret = "dev-secret-change-me"
	}

	if cfg.AdminPass == "" {
		if cfg.AppEnv == "production" {
			return nil, fmt.Errorf("ADMIN_PASS is required in production")
		}
		cfg.AdminPass = "admin"
	}

	if cfg.AdminUser == "" {
		return nil, fmt.Errorf("ADMIN_USER must not be empty")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
