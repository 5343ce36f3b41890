// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"roadrisk/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	DBPath    string `envconfig:"DB_PATH" default:"roadrisk.db" validate:"required"`
	BatchSize int    `envconfig:"BATCH_SIZE" default:"200" validate:"min=1"`

	// Coordinate admission bounding box. Defaults admit the whole world;
	// deployments narrow it to their city or region.
	BBoxMinLat float64 `envconfig:"BBOX_MIN_LAT" default:"-90"`
	BBoxMaxLat float64 `envconfig:"BBOX_MAX_LAT" default:"90"`
	BBoxMinLon float64 `envconfig:"BBOX_MIN_LON" default:"-180"`
	BBoxMaxLon float64 `envconfig:"BBOX_MAX_LON" default:"180"`

	// Kafka sink for admitted records. No brokers means no sink.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"admitted-accident-records"`

	// Mapbox geocoding configuration.
	MapboxToken     string        `envconfig:"MAPBOX_TOKEN"`
	MapboxEnabled   bool          `envconfig:"MAPBOX_ENABLED" default:"false"`
	MapboxTimeout   time.Duration `envconfig:"MAPBOX_TIMEOUT" default:"5s" validate:"gt=0"`
	MapboxCacheSize int           `envconfig:"MAPBOX_CACHE_SIZE" default:"1000" validate:"min=1"`
}

// Load reads .env (when present) and the environment, applying defaults and
// validating the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if cfg.BBoxMinLat >= cfg.BBoxMaxLat || cfg.BBoxMinLon >= cfg.BBoxMaxLon {
		return nil, errors.New("bounding box min must be strictly less than max")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return &cfg, nil
}

// Bounds returns the configured admission bounding box.
func (c *Config) Bounds() domain.BoundingBox {
	return domain.BoundingBox{
		MinLat: c.BBoxMinLat,
		MaxLat: c.BBoxMaxLat,
		MinLon: c.BBoxMinLon,
		MaxLon: c.BBoxMaxLon,
	}
}

// SinkEnabled reports whether a Kafka sink is configured.
func (c *Config) SinkEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
