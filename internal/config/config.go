package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath: переменная окружения с путём к YAML конфигурации
const EnvConfigPath = "NETHEO_CONFIG"

// Config корневая структура конфигурации приложения.
// Приоритет значений: YAML → переменные окружения → значения по умолчанию.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Report    ReportConfig    `yaml:"report"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
}

// CatalogConfig указывает на YAML каталог растений.
// Пустой путь означает встроенный каталог.
type CatalogConfig struct {
	Path string `yaml:"path" env:"NETHEO_CATALOG"`
}

// ReportConfig управляет выгрузкой документации по растениям
type ReportConfig struct {
	Enabled      bool   `yaml:"enabled" env:"NETHEO_REPORT_ENABLED"`
	OutputDir    string `yaml:"output_dir" env:"NETHEO_REPORT_DIR"`
	TemplatePath string `yaml:"template" env:"NETHEO_REPORT_TEMPLATE"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port" env:"NETHEO_REST_PORT"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"NETHEO_LOG_LEVEL"`
	Dir   string `yaml:"dir" env:"NETHEO_LOG_DIR"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" env:"NETHEO_OTEL_ENABLED"`
	ServiceName string `yaml:"service_name" env:"NETHEO_OTEL_SERVICE"`
}

// EventBusConfig: пустой URL: шина в памяти, иначе NATS JetStream.
type EventBusConfig struct {
	URL        string `yaml:"url" env:"NETHEO_NATS_URL"`
	Stream     string `yaml:"stream" env:"NETHEO_NATS_STREAM"`
	Retention  int    `yaml:"retention_hours" env:"NETHEO_NATS_RETENTION_HOURS"`
	BufferSize int    `yaml:"buffer_size" env:"NETHEO_BUS_BUFFER"`
}

// GetRESTPort возвращает порт REST API или 8088 по умолчанию
func (s *ServerConfig) GetRESTPort() int {
	if s.RESTPort > 0 {
		return s.RESTPort
	}
	return 8088
}

// Load читает YAML файл конфигурации, применяет переменные окружения и
// значения по умолчанию. Если path == "", берётся NETHEO_CONFIG; если и он
// пуст, используется конфигурация по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию без файла и переменных окружения
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "docs/plants"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "netheopoiesis"
	}
	if c.EventBus.Stream == "" {
		c.EventBus.Stream = "NETHEO_EVENTS"
	}
	if c.EventBus.Retention <= 0 {
		c.EventBus.Retention = 24
	}
	if c.EventBus.BufferSize <= 0 {
		c.EventBus.BufferSize = 256
	}
}

// Validate проверяет согласованность значений и возвращает все ошибки сразу
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Server.RESTPort < 0 || c.Server.RESTPort > 65535 {
		errs = append(errs, fmt.Errorf("server.rest_port %d out of range", c.Server.RESTPort))
	}
	if c.Report.Enabled && strings.TrimSpace(c.Report.OutputDir) == "" {
		errs = append(errs, errors.New("report.output_dir is required when report is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
