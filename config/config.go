package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	DBDriver   string // postgres or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	MailProvider   string // smtp or sendgrid
	EmailSender    string
	EmailFromName  string
	Password       string // SMTP Password
	SMTPHost       string
	SMTPPort       string
	SendgridAPIKey string

	EmailRetryCron   string
	EmailMaxAttempts int

	PaymentMode string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "4000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "coursehub"),
		DBPort:     getEnv("DB_PORT", "5432"),
		SQLitePath: getEnv("SQLITE_PATH", "coursehub.db"),

		MailProvider:   getEnv("MAIL_PROVIDER", "smtp"),
		EmailSender:    getEnv("EMAIL_SENDER", "defaultSecret"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "CourseHub"),
		Password:       getEnv("PASSWORD", "defaultSecret"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		EmailRetryCron:   getEnv("EMAIL_RETRY_CRON", "*/5 * * * *"),
		EmailMaxAttempts: getEnvInt("EMAIL_MAX_ATTEMPTS", 5),

		PaymentMode: getEnv("PAYMENT_MODE", "mock"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MailProvider == "sendgrid" && AppConfig.SendgridAPIKey == "" {
		log.Println("Warning: MAIL_PROVIDER is sendgrid but SENDGRID_API_KEY is empty.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
