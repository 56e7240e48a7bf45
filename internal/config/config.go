package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	GinMode        string
	Port           string
	ImagesDir      string
	SendgridAPIKey string
	FromEmail      string
	AppName        string
}

func Load() *Config {
	// .env is optional; deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "taskuser"),
		DBPassword:     getEnv("DB_PASSWORD", "taskpassword"),
		DBName:         getEnv("DB_NAME", "task_management"),
		JWTSecret:      getEnv("JWT_SECRET", "default-secret-key-change-me"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		Port:           getEnv("PORT", "8080"),
		ImagesDir:      getEnv("IMG_PATH", "images"),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@localhost"),
		AppName:        getEnv("APP_NAME", "Task Management System"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
