package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		HTTP      HTTP      `envPrefix:"HTTP_"`
		Logger    Logger    `envPrefix:"LOGGER_"`
		Telemetry Telemetry `envPrefix:"TELEMETRY_"`
		Source    Source    `envPrefix:"SOURCE_"`
		Platform  Platform  `envPrefix:"PLATFORM_"`
		Cache     Cache     `envPrefix:"CACHE_"`
		Redis     Redis     `envPrefix:"REDIS_"`
		Prefetch  Prefetch  `envPrefix:"PREFETCH_"`
	}

	HTTP struct {
		Server  Server        `envPrefix:"SERVER_"`
		Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	}

	Server struct {
		Port         string        `env:"PORT,required"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	}

	Logger struct {
		Level string `env:"LEVEL,required"`
	}

	Telemetry struct {
		Enabled        bool   `env:"ENABLED" envDefault:"false"`
		ServiceName    string `env:"SERVICE_NAME" envDefault:"guide-helper-mapcore"`
		ServiceVersion string `env:"SERVICE_VERSION" envDefault:"1.0.0"`
		Environment    string `env:"ENVIRONMENT" envDefault:"production"`
		OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"otel-collector.observability.svc.cluster.local:4317"`
	}

	// Source describes where tiles come from. Parameters are "key=value" pairs
	// applied in the listed order.
	Source struct {
		Name        string   `env:"NAME" envDefault:"osm"`
		Kind        string   `env:"KIND" envDefault:"raster"`
		URLTemplate string   `env:"URL_TEMPLATE" envDefault:"https://tile.openstreetmap.org/{z}/{x}/{y}.png"`
		Parameters  []string `env:"PARAMETERS" envSeparator:","`
		OfflineMode bool     `env:"OFFLINE_MODE" envDefault:"false"`
		TileSize    int      `env:"TILE_SIZE" envDefault:"256"`
		Coalesce    bool     `env:"COALESCE" envDefault:"false"`
	}

	Platform struct {
		Timeout   time.Duration `env:"TIMEOUT" envDefault:"30s"`
		UserAgent string        `env:"USER_AGENT" envDefault:"GuideHelper/1.0 (https://github.com/jaennil/guide_helper)"`
		Referer   string        `env:"REFERER" envDefault:""`
	}

	Cache struct {
		Type        string `env:"TYPE" envDefault:"memory"`
		Namespace   string `env:"NAMESPACE" envDefault:""`
		MemoryTiles int    `env:"MEMORY_TILES" envDefault:"2000"`
		Dir         string `env:"DIR" envDefault:"./tile-cache"`
		SQLitePath  string `env:"SQLITE_PATH" envDefault:"file:cache.db?cache=shared"`
	}

	Redis struct {
		Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
		Password string        `env:"PASSWORD" envDefault:""`
		DB       int           `env:"DB" envDefault:"0"`
		TTL      time.Duration `env:"TTL" envDefault:"24h"`
	}

	Prefetch struct {
		Concurrency int `env:"CONCURRENCY" envDefault:"8"`
		MaxTiles    int `env:"MAX_TILES" envDefault:"256"`
	}
)

func New() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("NOTICE: .env file not found or cannot be loaded: %v\n", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
