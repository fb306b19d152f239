package infra

import (
	"context"
	"os"
	"strconv"
)

// Config carries every recognised simulation option. Values come from
// the process environment; defaults describe a short demo run.
type Config struct {
	HTTPPort         string
	MetricsPort      string
	AircraftCount    int
	RuntimeSeconds   int
	MinSendMillis    int
	MaxSendMillis    int
	ChannelCapacity  int
	LogPath          string
	ProgressEvery    int
	PopTimeoutMillis int
	LogFlushEvery    int
}

func LoadConfig() Config {
	cfg := Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		MetricsPort:      getEnv("METRICS_PORT", "2112"),
		AircraftCount:    getEnvInt("AIRCRAFT_COUNT", 5),
		RuntimeSeconds:   getEnvInt("RUNTIME_SECONDS", 12),
		MinSendMillis:    getEnvInt("MIN_SEND_MS", 120),
		MaxSendMillis:    getEnvInt("MAX_SEND_MS", 500),
		ChannelCapacity:  getEnvInt("CHANNEL_CAPACITY", 1000),
		LogPath:          getEnv("LOG_CSV", "atm_log.csv"),
		ProgressEvery:    getEnvInt("PROGRESS_EVERY", 50),
		PopTimeoutMillis: getEnvInt("POP_TIMEOUT_MS", 500),
		LogFlushEvery:    getEnvInt("LOG_FLUSH_EVERY", 32),
	}

	// Zero aircraft is a valid (degenerate) run; negative is not.
	if cfg.AircraftCount < 0 {
		cfg.AircraftCount = 0
	}
	if cfg.RuntimeSeconds < 0 {
		cfg.RuntimeSeconds = 0
	}

	return cfg
}

func LogConfig(ctx context.Context, logger *Logger, cfg Config) {
	logger.Printf(ctx, "HTTP_PORT=%s", cfg.HTTPPort)
	logger.Printf(ctx, "METRICS_PORT=%s", emptyFallback(cfg.MetricsPort, "(disabled)"))
	logger.Printf(ctx, "AIRCRAFT_COUNT=%d", cfg.AircraftCount)
	logger.Printf(ctx, "RUNTIME_SECONDS=%d", cfg.RuntimeSeconds)
	logger.Printf(ctx, "MIN_SEND_MS=%d", cfg.MinSendMillis)
	logger.Printf(ctx, "MAX_SEND_MS=%d", cfg.MaxSendMillis)
	logger.Printf(ctx, "CHANNEL_CAPACITY=%d", cfg.ChannelCapacity)
	logger.Printf(ctx, "LOG_CSV=%s", cfg.LogPath)
	logger.Printf(ctx, "PROGRESS_EVERY=%d", cfg.ProgressEvery)
	logger.Printf(ctx, "POP_TIMEOUT_MS=%d", cfg.PopTimeoutMillis)
	logger.Printf(ctx, "LOG_FLUSH_EVERY=%d", cfg.LogFlushEvery)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func emptyFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
