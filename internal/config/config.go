package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mush1e/drunken-diver/internal/converter"
)

// Config controls the diver CLI and the diverart service.
type Config struct {
	Addr           string
	Width          int
	Digest         converter.Digest
	Color          converter.ColorMode
	MaxUploadBytes int64
	StreamInterval time.Duration
}

// Options returns the converter settings carried by the config.
func (c Config) Options() converter.Options {
	return converter.Options{Width: c.Width, Digest: c.Digest, MaxUpload: c.MaxUploadBytes}
}

// Load reads configuration from the environment, after filling it in from
// the nearest .env file. Variables already set win over the file.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	width, err := intEnvStrict("DIVER_WIDTH", 16)
	if err != nil {
		return Config{}, err
	}
	maxUploadMB, err := intEnvStrict("DIVER_MAX_UPLOAD_MB", 64)
	if err != nil {
		return Config{}, err
	}
	intervalMS, err := intEnvStrict("DIVER_STREAM_INTERVAL_MS", 100)
	if err != nil {
		return Config{}, err
	}
	digest, err := converter.ParseDigest(envOr("DIVER_DIGEST", "sha256"))
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid DIVER_DIGEST: %w", err)
	}
	color, err := converter.ParseColorMode(envOr("DIVER_COLOR", "auto"))
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid DIVER_COLOR: %w", err)
	}

	cfg := Config{
		Addr:           envOr("DIVER_ADDR", ":8080"),
		Width:          width,
		Digest:         digest,
		Color:          color,
		MaxUploadBytes: int64(maxUploadMB) << 20,
		StreamInterval: time.Duration(intervalMS) * time.Millisecond,
	}
	if cfg.Width <= 0 {
		return Config{}, errors.New("config: DIVER_WIDTH must be greater than 0")
	}
	if maxUploadMB <= 0 {
		return Config{}, errors.New("config: DIVER_MAX_UPLOAD_MB must be greater than 0")
	}
	if intervalMS <= 0 {
		return Config{}, errors.New("config: DIVER_STREAM_INTERVAL_MS must be greater than 0")
	}
	return cfg, nil
}

// loadDotEnv walks up from the working directory and loads the first .env
// it finds.
func loadDotEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("config: reading %s: %w", envPath, err)
			}
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOr(key, fallback string) string {
	if v := trimmedEnv(key); v != "" {
		return v
	}
	return fallback
}

func intEnvStrict(key string, fallback int) (int, error) {
	value := trimmedEnv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return parsed, nil
}
