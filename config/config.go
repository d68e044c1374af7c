package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	ServerPort         string
	JWTSecret          string
	JWTExpiration      time.Duration
	DatabaseDir        string
	DatabaseFile       string
	AdminEmail         string
	AdminPassword      string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	SeedFormFields     bool
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := strings.TrimPrefix(getEnv("SERVER_PORT", "8080"), ":")
	jwtSecret := getEnv("JWT_SECRET", "")
	jwtExpHoursStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	dbDir := getEnv("DATABASE_DIRECTORY", "data")
	dbFile := getEnv("DATABASE_FILE", "forms.db")
	adminEmail := getEnv("ADMIN_EMAIL", "admin@example.com")
	adminPassword := getEnv("ADMIN_PASSWORD", "")
	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	rateLimitStr := getEnv("RATE_LIMIT_PER_MINUTE", "60")
	seedStr := getEnv("SEED_FORM_FIELDS", "true")

	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable must be set")
	}
	if adminPassword == "" {
		return nil, errors.New("ADMIN_PASSWORD environment variable must be set")
	}

	jwtExpHours, err := strconv.Atoi(jwtExpHoursStr)
	if err != nil || jwtExpHours <= 0 {
		customLog.Warnf("Invalid JWT_EXPIRATION_HOURS '%s'. Using default 24h. Error: %v", jwtExpHoursStr, err)
		jwtExpHours = 24
	}

	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil || rateLimit < 0 {
		customLog.Warnf("Invalid RATE_LIMIT_PER_MINUTE '%s'. Using default 60. Error: %v", rateLimitStr, err)
		rateLimit = 60
	}

	seed, err := strconv.ParseBool(seedStr)
	if err != nil {
		customLog.Warnf("Invalid SEED_FORM_FIELDS '%s'. Seeding stays enabled.", seedStr)
		seed = true
	}

	cfg := &Config{
		ServerPort:         port,
		JWTSecret:          jwtSecret,
		JWTExpiration:      time.Hour * time.Duration(jwtExpHours),
		DatabaseDir:        dbDir,
		DatabaseFile:       dbFile,
		AdminEmail:         adminEmail,
		AdminPassword:      adminPassword,
		CORSAllowedOrigins: splitList(origins),
		RateLimitPerMinute: rateLimit,
		SeedFormFields:     seed,
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, JWT Exp: %v, DB: %s/%s",
		cfg.ServerPort, cfg.JWTExpiration, cfg.DatabaseDir, cfg.DatabaseFile)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
