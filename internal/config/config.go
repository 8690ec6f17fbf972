package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

const defaultJWTSecret = "dev-secret-change-me"

// Config holds every setting the processes read from the environment.
type Config struct {
	Port     string
	LogLevel string

	DBDriver      string
	DatabaseURL   string
	DBMaxAttempts int

	JWTSecret   string
	JWTTTL      time.Duration
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string
	KafkaTopic   string

	LoginRatePerSec float64
	LoginBurst      int

	TelegramToken string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.Log.Info("No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:     getEnv("PORT", "4000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabaseURL:   getEnv("DATABASE_URL", "fitness.db"),
		DBMaxAttempts: getEnvInt("DB_MAX_ATTEMPTS", 15),

		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:      getEnvDuration("JWT_TTL", 72*time.Hour),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8080"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:4000/auth/google/callback"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "fitness-events"),

		LoginRatePerSec: getEnvFloat("LOGIN_RATE_PER_SEC", 1),
		LoginBurst:      getEnvInt("LOGIN_BURST", 5),

		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}
	if cfg.JWTSecret == defaultJWTSecret {
		utils.Log.Warn("JWT_SECRET is not set, signing tokens with the development secret")
	}
	return cfg
}

// GoogleEnabled reports whether both OAuth credentials are configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// splitList turns "a:9092, b:9092" into a slice, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
