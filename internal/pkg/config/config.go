package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`

	// DataDir and MediaDir default to subdirectories of ~/.civic-connect
	// when left empty; resolution happens at composition time.
	DataDir  string `env:"CIVIC_DATA_DIR"`
	MediaDir string `env:"CIVIC_MEDIA_DIR"`

	PollInterval   time.Duration `env:"CIVIC_POLL_INTERVAL,    default=5s"`
	SeedSampleData bool          `env:"CIVIC_SEED_SAMPLE_DATA, default=true"`

	Geocoder GeocoderConfig
}

type GeocoderConfig struct {
	BaseURL string        `env:"GEOCODER_URL,     default=https://nominatim.openstreetmap.org"`
	Timeout time.Duration `env:"GEOCODER_TIMEOUT, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
