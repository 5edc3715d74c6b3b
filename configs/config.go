package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DevMode  bool
	DBDriver string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	PaymentAPIURL string
	PaymentAPIKey string
	WebhookSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	CartTTL time.Duration
}

func LoadConfig() *Config {
	// .env is optional outside local dev
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8000"),
		DevMode:  getEnv("APP_ENV", "dev") == "dev",
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "brewhub.db"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    24 * time.Hour,

		PaymentAPIURL: getEnv("PAYMENT_API_URL", "https://api.payment.example.com"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),
		WebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", "whsec-changeme"),

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getEnv("MAIL_FROM", "no-reply@brewhub.local"),

		CartTTL: 30 * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
