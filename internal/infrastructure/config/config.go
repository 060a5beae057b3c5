package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/hohoindia/event-client/internal/infrastructure/storage"
)

type Config struct {
	// APIBaseURL includes the /api prefix, matching the backend contract.
	APIBaseURL  string        `env:"EVENT_API_URL,     default=http://localhost:5000/api"`
	Timeout     time.Duration `env:"EVENT_API_TIMEOUT, default=10s"`
	TokenPath   string        `env:"EVENT_TOKEN_PATH"`
	DownloadDir string        `env:"EVENT_DOWNLOAD_DIR, default=."`
	LogLevel    string        `env:"LOG_LEVEL,  default=info"`
	LogPretty   bool          `env:"LOG_PRETTY, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
// An empty EVENT_TOKEN_PATH falls back to the user config directory.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.TokenPath == "" {
		path, err := storage.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg.TokenPath = path
	}
	return &cfg, nil
}
