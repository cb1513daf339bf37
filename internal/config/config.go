package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Workbook settings. When WorkbookFile is set the server loads the
	// tabular store from it at boot; otherwise it starts from the seeded
	// default tab layout.
	WorkbookFile string

	// Bounds for the in-process fallback and backup lists.
	FallbackCapacity int
	BackupCapacity   int

	// Demo-mode timers.
	FeedPollInterval time.Duration
	AlertDisplayTTL  time.Duration

	// DemoMode runs the session container, alert queue, and feed poller
	// in-process and exposes their read endpoints.
	DemoMode          bool
	SimulationEnabled bool

	// Kafka event publishing (enabled when KAFKA_BROKERS is set).
	KafkaBrokers     []string
	KafkaAlertsTopic string
	KafkaEnabled     bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	pollInterval, err := parsePositiveDuration("FEED_POLL_INTERVAL", "8s")
	if err != nil {
		return nil, err
	}

	displayTTL, err := parsePositiveDuration("ALERT_DISPLAY_TTL", "8s")
	if err != nil {
		return nil, err
	}

	var brokers []string
	kafkaEnabled := false
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
		kafkaEnabled = len(brokers) > 0
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WorkbookFile: os.Getenv("WORKBOOK_FILE"),

		FallbackCapacity: parsePositiveInt("FALLBACK_CAPACITY", 100),
		BackupCapacity:   parsePositiveInt("BACKUP_CAPACITY", 50),

		FeedPollInterval: pollInterval,
		AlertDisplayTTL:  displayTTL,

		DemoMode:          os.Getenv("DEMO_MODE") == "true",
		SimulationEnabled: os.Getenv("SIMULATION_ENABLED") == "true",

		KafkaBrokers:     brokers,
		KafkaAlertsTopic: sharedcfg.EnvOrDefault("KAFKA_ALERTS_TOPIC", "disaster-alert-submissions"),
		KafkaEnabled:     kafkaEnabled,
	}

	if cfg.SimulationEnabled && !cfg.DemoMode {
		return nil, errors.New("SIMULATION_ENABLED requires DEMO_MODE=true")
	}
	if cfg.KafkaEnabled && cfg.KafkaAlertsTopic == "" {
		return nil, errors.New("KAFKA_ALERTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(name, fallback string) (time.Duration, error) {
	raw := sharedcfg.EnvOrDefault(name, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return d, nil
}

func parsePositiveInt(name string, fallback int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
