package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	GeminiAPIKey    string
	GeminiModel     string
	ForecastWorkers int
	SnapshotTTL     time.Duration
}

// AppConfig holds the application-wide configuration
var AppConfig Config

const (
	defaultPort        = "3000"
	defaultGeminiModel = "gemini-2.5-flash-lite"
	defaultWorkers     = 4
	defaultSnapshotTTL = 5 * time.Minute
)

// Load reads .env (if present) and the environment into AppConfig.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	AppConfig = cfg
	return cfg, nil
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:            getenv("PORT"),
		DatabaseURL:     getenv("DATABASE_URL"),
		JWTSecret:       getenv("JWT_SECRET"),
		GeminiAPIKey:    getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL"),
		ForecastWorkers: defaultWorkers,
		SnapshotTTL:     defaultSnapshotTTL,
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}

	if v := getenv("FORECAST_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("FORECAST_WORKERS must be a positive integer, got %q", v)
		}
		cfg.ForecastWorkers = n
	}
	if v := getenv("SNAPSHOT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("SNAPSHOT_TTL must be a non-negative duration, got %q", v)
		}
		cfg.SnapshotTTL = d
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%s is not set", strings.Join(missing, ", "))
	}
	return cfg, nil
}
