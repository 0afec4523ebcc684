package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	ZoneCount       int
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Tick loop: how often the runner advances an active scenario and by
	// how many simulated hours per tick.
	TickInterval  time.Duration
	TickStepHours float64

	// Default wind conditions applied at startup.
	WindSpeedMS      float64
	WindDirectionDeg float64

	// Kafka snapshot publishing configuration.
	KafkaBrokers       []string
	KafkaSnapshotTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	zoneCount, err := parseIntEnv("ZONE_COUNT", 5)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	tickInterval, err := parseDurationEnv("TICK_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}

	tickStep, err := parseFloatEnv("TICK_STEP_HOURS", 0.1)
	if err != nil {
		return nil, err
	}

	windSpeed, err := parseFloatEnv("WIND_SPEED_MS", 0)
	if err != nil {
		return nil, err
	}

	windDirection, err := parseFloatEnv("WIND_DIRECTION_DEG", 0)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		ZoneCount:       zoneCount,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		TickInterval:  tickInterval,
		TickStepHours: tickStep,

		WindSpeedMS:      windSpeed,
		WindDirectionDeg: windDirection,

		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSnapshotTopic: envOrDefault("KAFKA_SNAPSHOT_TOPIC", "scenario-snapshots"),
		KafkaEnabled:       kafkaEnabled,
	}

	if cfg.ZoneCount <= 0 {
		return nil, errors.New("ZONE_COUNT must be positive")
	}
	if cfg.TickInterval <= 0 {
		return nil, errors.New("TICK_INTERVAL must be positive")
	}
	// Linear decay is only valid for small steps; anything above one
	// simulated hour per tick would make decay go non-physical.
	if cfg.TickStepHours <= 0 || cfg.TickStepHours > 1.0 {
		return nil, errors.New("TICK_STEP_HOURS must be in (0, 1.0]")
	}
	if cfg.WindSpeedMS < 0 {
		return nil, errors.New("WIND_SPEED_MS must be non-negative")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SNAPSHOT_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(value string) []string {
	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
