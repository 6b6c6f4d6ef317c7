package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings. Game tunables live in
// constants.go; only deployment concerns come from the environment.
type Config struct {
	ListenAddr    string
	DataFile      string
	DatabaseURL   string // optional Postgres snapshot mirror
	RedisURL      string // optional Redis leaderboard
	SaveInterval  time.Duration
	SweepInterval time.Duration
}

// LoadConfig reads .env if present and falls back to defaults.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DataFile:      getEnv("DATA_FILE", DefaultDataFile),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SaveInterval:  getEnvDuration("SAVE_INTERVAL_SECONDS", DefaultSaveInterval),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL_SECONDS", ChallengeSweepInterval),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return time.Duration(secs) * time.Second
}
