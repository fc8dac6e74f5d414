package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	JWTSecret     string
	GinMode       string
	AppEnv        string
	BrevoAPIKey   string
	EmailFrom     string
	EmailFromName string
	FrontendURL   string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "4000"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "comfortzone"),
		DBPassword:    getEnv("DB_PASSWORD", "comfortzone"),
		DBName:        getEnv("DB_NAME", "comfortzone"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		AppEnv:        getEnv("APP_ENV", "development"),
		BrevoAPIKey:   getEnv("BREVO_API_KEY", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "no-reply@comfortzone.app"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "ComfortZone"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
