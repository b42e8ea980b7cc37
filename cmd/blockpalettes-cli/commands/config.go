package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"blockpalettes/internal/components/configutil"
	"blockpalettes/pkg/telemetry"
)

const defaultConfigName = "blockpalettes.json5"

type Config struct {
	BaseUrl          string           `json:"base_url"`
	TimeoutSeconds   int              `json:"timeout_seconds"`
	UserAgent        string           `json:"user_agent"`
	CloudflareBypass bool             `json:"cloudflare_bypass"`
	Telemetry        telemetry.Config `json:"telemetry"`
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// loadConfig reads `path` when one was given. Otherwise it looks for
// blockpalettes.json5 from the working directory upwards, and not finding one
// is not an error.
func loadConfig(path string) (Config, error) {
	if path != "" {
		cfg, err := configutil.ReadConfig[Config](path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}

	cfg, err := configutil.ReadRecursively[Config](defaultConfigName)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "name", defaultConfigName)
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
