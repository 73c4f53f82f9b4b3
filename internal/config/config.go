package config

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	defaultMigrationsURL = "file://migrations"
	defaultSessionTTL    = 24 * time.Hour
)

type Config struct {
	ServerAddr     string
	DatabaseURL    string
	RedisURL       string
	StaticDir      string
	UploadDir      string
	MigrationsURL  string
	AllowedOrigins []string
	SessionTTL     time.Duration
}

func NewConfig(serverAddr, databaseURL, redisURL, staticDir string, allowedOrigins []string, sessionTTL time.Duration) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL cannot be empty")
	}
	if staticDir == "" {
		return nil, fmt.Errorf("static dir cannot be empty")
	}

	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	return &Config{
		ServerAddr:     serverAddr,
		DatabaseURL:    databaseURL,
		RedisURL:       redisURL,
		StaticDir:      staticDir,
		UploadDir:      filepath.Join(staticDir, "uploads"),
		MigrationsURL:  defaultMigrationsURL,
		AllowedOrigins: allowedOrigins,
		SessionTTL:     sessionTTL,
	}, nil
}
