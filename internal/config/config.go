package config

import (
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the gateway. Values are read from
// environment variables; a local .env file is honored when present.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Fogis   FogisConfig
	Metrics MetricsConfig
}

// FogisConfig controls how the upstream client authenticates and connects.
// Username and password are required unless session cookies are injected at
// the library level.
type FogisConfig struct {
	BaseURL     string        `env:"FOGIS_BASE_URL" envDefault:"https://fogis.svenskfotboll.se/mdk"`
	Username    string        `env:"FOGIS_USERNAME"`
	Password    string        `env:"FOGIS_PASSWORD"`
	HTTPTimeout time.Duration `env:"FOGIS_HTTP_TIMEOUT" envDefault:"30s"`
}

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Port         string `env:"METRICS_PORT" envDefault:"9090"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"fogis-api-gateway"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtlpInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
