package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBAddr     string
	DBName     string

	JWTSecret string
}

func LoadEnv() Env {
	return Env{
		AppAddr:    getenv("APP_ADDR", ":8080"),
		GinMode:    getenv("GIN_MODE", ""),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBAddr:     getenv("DB_ADDR", "127.0.0.1:3306"),
		DBName:     getenv("DB_NAME", "trip_budget"),
		JWTSecret:  getenv("JWT_SECRET", "dev-secret-change-me"),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
