package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the API server reads from the environment.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret string

	StripeSecretKey string
	StripeAPIURL    string
	Currency        string

	RedisAddr string

	PlunkAPIKey string
	PlunkFrom   string
	PlunkAPIURL string

	AppURL   string
	LogLevel string
}

// Load reads config from the environment, loading .env first if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBName:          getenv("DB_NAME", "homefix"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripeAPIURL:    getenv("STRIPE_API_URL", "https://api.stripe.com/v1"),
		Currency:        getenv("CURRENCY", "usd"),
		RedisAddr:       getenv("REDIS_ADDR", "127.0.0.1:6379"),
		PlunkAPIKey:     os.Getenv("PLUNK_API_KEY"),
		PlunkFrom:       os.Getenv("PLUNK_FROM"),
		PlunkAPIURL:     getenv("PLUNK_API_URL", "https://api.useplunk.com/v1/send"),
		AppURL:          getenv("APP_URL", "http://localhost:3000"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
