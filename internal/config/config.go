package config

import (
	"os"
	"strconv"
	"time"

	"study_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// AI generation
	AIBaseURL   string
	AIAPIKey    string
	AIModel     string
	AITimeout   time.Duration

	// Redis rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Per-user limit on generation requests
	GenerateRateLimit  int
	GenerateRateWindow int
}

// Load reads configuration from the environment (.env is honored in dev).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	aiKey := os.Getenv("OPENAI_API_KEY")
	if aiKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, study generation will fail")
	}

	aiModel := os.Getenv("OPENAI_MODEL")
	if aiModel == "" {
		aiModel = "gpt-3.5-turbo"
	}

	aiTimeout := 60 * time.Second
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			aiTimeout = time.Duration(n) * time.Second
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	genLimit := 10
	if v := os.Getenv("GENERATE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			genLimit = n
		}
	}

	genWindow := 60
	if v := os.Getenv("GENERATE_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			genWindow = n
		}
	}

	return &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		JWTSecret:          jwtSecret,
		AIBaseURL:          os.Getenv("OPENAI_BASE_URL"),
		AIAPIKey:           aiKey,
		AIModel:            aiModel,
		AITimeout:          aiTimeout,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		GenerateRateLimit:  genLimit,
		GenerateRateWindow: genWindow,
	}
}
