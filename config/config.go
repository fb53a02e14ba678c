package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the Nature Remo access token.
const APIKeyEnv = "NATURE_REMO_API_KEY"

// DefaultBaseURL is the Nature Remo cloud API endpoint.
const DefaultBaseURL = "https://api.nature.global"

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Remo       RemoConfig       `yaml:"remo"`
	Poller     PollerConfig     `yaml:"poller"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int `yaml:"port"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// SettleDelayMillis is how long the page waits after a successful
	// command before re-reading state from the vendor.
	SettleDelayMillis int `yaml:"settle_delay_millis"`
	// HistoryTTLSeconds bounds how long a sent air-con button is trusted
	// over the vendor's reported settings.
	HistoryTTLSeconds int `yaml:"history_ttl_seconds"`

	CacheTTL    time.Duration `yaml:"-"`
	SettleDelay time.Duration `yaml:"-"`
	HistoryTTL  time.Duration `yaml:"-"`
}

// RemoConfig holds the vendor API configuration.
type RemoConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
}

// PollerConfig controls the background poll used for metrics and status events.
type PollerConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
}

// MQTTConfig holds the broker settings. An empty Broker disables publishing.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// WorkerPoolConfig holds the configuration for the event worker pool.
type WorkerPoolConfig struct {
	Size      int `yaml:"size"`
	QueueSize int `yaml:"queue_size"`
}

// Enabled reports whether an MQTT broker is configured.
func (m MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

// Load reads the configuration from the given path. A missing file is not an
// error: defaults and the environment are enough to run the dashboard.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("could not load .env: %v", err)
	}

	var cfg Config
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("config file %s not found; using defaults", path)
		cfg.Poller.Enabled = true
	default:
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Remo.APIKey = key
	}
	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			cfg.Server.Port = n
		} else {
			log.Printf("ignoring invalid PORT %q", p)
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Server.SettleDelayMillis <= 0 {
		cfg.Server.SettleDelayMillis = 1000
	}
	cfg.Server.SettleDelay = time.Duration(cfg.Server.SettleDelayMillis) * time.Millisecond

	if cfg.Server.HistoryTTLSeconds <= 0 {
		cfg.Server.HistoryTTLSeconds = 600
	}
	cfg.Server.HistoryTTL = time.Duration(cfg.Server.HistoryTTLSeconds) * time.Second

	if cfg.Remo.BaseURL == "" {
		cfg.Remo.BaseURL = DefaultBaseURL
	}
	if cfg.Remo.TimeoutSeconds <= 0 {
		cfg.Remo.TimeoutSeconds = 30
	}
	cfg.Remo.Timeout = time.Duration(cfg.Remo.TimeoutSeconds) * time.Second

	if cfg.Poller.IntervalSeconds <= 0 {
		cfg.Poller.IntervalSeconds = 60
	}
	cfg.Poller.Interval = time.Duration(cfg.Poller.IntervalSeconds) * time.Second

	if cfg.MQTT.Port <= 0 {
		cfg.MQTT.Port = 1883
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "remo-dashboard"
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = "remo"
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	if cfg.WorkerPool.QueueSize <= 0 {
		cfg.WorkerPool.QueueSize = 64
	}
}
