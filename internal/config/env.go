package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr    string
	GinMode    string
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string
	JWTSecret  string
	HoldWindow time.Duration
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "railbook"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	// Seat holds expire back to free after this window.
	holdWindow := 10 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("HOLD_WINDOW")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			holdWindow = d
		}
	}

	return Env{
		AppAddr:    appAddr,
		GinMode:    ginMode,
		DBUser:     dbUser,
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     dbHost,
		DBName:     dbName,
		JWTSecret:  secret,
		HoldWindow: holdWindow,
	}
}

// JWTSecret returns the signing key for auth tokens.
func JWTSecret() []byte {
	return []byte(LoadEnv().JWTSecret)
}
