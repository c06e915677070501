package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервера карты.
type Config struct {
	Map      MapConfig      `yaml:"map"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Log      LogConfig      `yaml:"log"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type MapConfig struct {
	Name        string  `yaml:"name"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Seed        int64   `yaml:"seed"`
	WaterLevel  int     `yaml:"water_level"`
	TreeDensity float64 `yaml:"tree_density"`
}

type StorageConfig struct {
	Path     string `yaml:"path"`
	Compress bool   `yaml:"compress"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

// URL пустой - используется шина в памяти
type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Buffer    int    `yaml:"buffer"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // пусто - только консоль
}

// TracingConfig - экспорт спанов OpenTelemetry по OTLP/HTTP
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"` // host:port коллектора
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Name:       "park",
			Width:      64,
			Height:     64,
			Seed:       1,
			WaterLevel: 2,
		},
		Storage: StorageConfig{
			Path:     "data",
			Compress: true,
		},
		EventBus: EventBusConfig{
			Stream:    "PARK",
			Retention: 24,
			Buffer:    1024,
		},
		Log: LogConfig{Level: "INFO"},
	}
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "PARK_REST_PORT", 8088)
}

// RetentionDuration возвращает срок хранения событий JetStream
func (e *EventBusConfig) RetentionDuration() time.Duration {
	return time.Duration(e.Retention) * time.Hour
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", берётся ENV PARK_CONFIG; если и он пуст - возвращаются умолчания.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("PARK_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
