package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SQLite SQLiteConfig
	Files  FilesConfig
}

type SQLiteConfig struct {
	Path string `env:"DB_PATH, default=messages.db"`
}

type FilesConfig struct {
	// Dir is the directory uploaded attachments are written to; it is served
	// statically under the /files prefix.
	Dir string `env:"FILES_DIR, default=files"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
