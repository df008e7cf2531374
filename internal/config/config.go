// Package config loads client configuration from a .env file and the
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL includes the engine's path prefix.
	APIBaseURL string `env:"GUERRAS_API_URL" envDefault:"http://localhost:8000/api"`
	// TokenFile persists the bearer token between runs. Empty disables
	// persistence; unset picks a per-user default.
	TokenFile string `env:"GUERRAS_TOKEN_FILE"`
	// LogFile receives the client logs; the terminal itself is owned by
	// the alternate screen.
	LogFile string `env:"GUERRAS_LOG_FILE"`
	// SkipIntro jumps past the narrative screen, for development.
	SkipIntro bool `env:"GUERRAS_SKIP_INTRO" envDefault:"false"`
}

func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is not an error

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	if _, set := os.LookupEnv("GUERRAS_TOKEN_FILE"); !set {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.TokenFile = filepath.Join(dir, "guerras-clon", "token")
		}
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(os.TempDir(), "guerras-clon.log")
	}
	return cfg, nil
}
