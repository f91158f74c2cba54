package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	AppPort string
	HOST    string

	// Database
	DatabaseURL string

	// JWT settings
	JWTSecret string

	// Signup policy: only institution addresses may register
	AllowedEmailDomain string

	// Uploads
	UploadDir string

	// CORS settings
	CORSAllowOrigins string
	CORSAllowMethods string
	CORSAllowHeaders string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		AppPort:     getEnv("PORT", "5000"),
		HOST:        getEnv("HOST", "0.0.0.0"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "kjei.edu.in"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		CORSAllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		CORSAllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}

	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
