package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	CORS      CORSConfig      `yaml:"cors"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type ServerConfig struct {
	Port            int    `yaml:"port"`
	ServiceName     string `yaml:"service_name"`
	StaticDir       string `yaml:"static_dir"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_sec"`
}

type ArtifactsConfig struct {
	PipelinePath  string `yaml:"pipeline_path"`
	ReferencePath string `yaml:"reference_path"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins"`
}

// RedisConfig leaves URL empty to disable the live prediction feed.
type RedisConfig struct {
	URL     string `yaml:"url"`
	Channel string `yaml:"channel"`
}

type LogConfig struct {
	Mode     string `yaml:"mode"`
	FilePath string `yaml:"file_path"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func (s ServerConfig) ShutdownGrace() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			ServiceName:     "LaptopGenius API",
			StaticDir:       "frontend",
			ShutdownTimeout: 10,
		},
		Artifacts: ArtifactsConfig{
			PipelinePath:  "artifacts/pipe.json",
			ReferencePath: "artifacts/df.csv",
		},
		CORS: CORSConfig{
			AllowedOrigins: "*",
		},
		Redis: RedisConfig{
			Channel: "laptopgenius:predictions",
		},
		Log: LogConfig{
			Mode: "development",
		},
		Tracing: TracingConfig{
			SampleRatio: 1.0,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// named by CONFIG_PATH, and environment variables (a local .env is loaded
// first when present). Later sources win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := getEnv("CONFIG_PATH", ""); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	serverPort, err := getIntEnv("SERVER_PORT", cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	shutdown, err := getIntEnv("SHUTDOWN_TIMEOUT_SEC", cfg.Server.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SEC: %w", err)
	}
	ratio, err := getFloatEnv("OTEL_SAMPLER_RATIO", cfg.Tracing.SampleRatio)
	if err != nil {
		return fmt.Errorf("invalid OTEL_SAMPLER_RATIO: %w", err)
	}

	cfg.Server.Port = serverPort
	cfg.Server.ShutdownTimeout = shutdown
	cfg.Server.ServiceName = getEnv("SERVICE_NAME", cfg.Server.ServiceName)
	cfg.Server.StaticDir = getEnv("STATIC_DIR", cfg.Server.StaticDir)

	cfg.Artifacts.PipelinePath = getEnv("PIPELINE_PATH", cfg.Artifacts.PipelinePath)
	cfg.Artifacts.ReferencePath = getEnv("REFERENCE_PATH", cfg.Artifacts.ReferencePath)

	cfg.CORS.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)

	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.Channel = getEnv("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.Log.Mode = getEnv("LOG_MODE", cfg.Log.Mode)
	cfg.Log.FilePath = getEnv("LOG_FILE_PATH", cfg.Log.FilePath)

	cfg.Tracing.Enabled = getBoolEnv("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.Insecure = getBoolEnv("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)
	cfg.Tracing.SampleRatio = ratio

	return nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Artifacts.PipelinePath) == "" {
		return errors.New("pipeline artifact path is required")
	}
	if strings.TrimSpace(c.Artifacts.ReferencePath) == "" {
		return errors.New("reference artifact path is required")
	}
	if c.Redis.URL != "" && strings.TrimSpace(c.Redis.Channel) == "" {
		return errors.New("redis channel is required when REDIS_URL is set")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}
	if c.Server.ShutdownTimeout < 0 {
		c.Server.ShutdownTimeout = 0
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getFloatEnv(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

func getBoolEnv(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
