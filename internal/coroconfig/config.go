// Package coroconfig loads cmd/corowaitdemo's configuration, adapted from
// the teacher module's internal/util config store: a TOML file, overridden
// by COROWAIT__-prefixed environment variables, overridden in turn by CLI
// flags. Lower layers are read first so later layers win.
package coroconfig

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Demo holds the settings cmd/corowaitdemo needs: which driver and DSN to
// bridge through corowait, and how long the synthetic await should sleep
// for when no DSN is configured.
type Demo struct {
	Driver       string `toml:"driver"`
	DSN          string `toml:"dsn"`
	SleepMillis  int    `toml:"sleep_millis"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
	RequireAwait bool   `toml:"require_await"`
}

func defaults() Demo {
	return Demo{
		Driver:      "sqlite3",
		DSN:         "",
		SleepMillis: 50,
		LogLevel:    "info",
	}
}

// Load builds a Demo from, in increasing precedence: path (if it exists),
// COROWAIT__ environment variables, then explicit overrides (normally CLI
// flags already parsed by the caller).
func Load(path string, overrides Demo, overridden map[string]bool) (Demo, error) {
	cfg := defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Demo{}, err
			}
		}
	}

	applyEnv(&cfg)
	applyOverrides(&cfg, overrides, overridden)
	return cfg, nil
}

func applyEnv(cfg *Demo) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], "COROWAIT__") {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], "COROWAIT__"))
		value := pair[1]

		switch key {
		case "driver":
			cfg.Driver = value
		case "dsn":
			cfg.DSN = value
		case "sleep_millis":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.SleepMillis = n
			}
		case "log_level":
			cfg.LogLevel = value
		case "log_file":
			cfg.LogFile = value
		case "require_await":
			if b, err := strconv.ParseBool(value); err == nil {
				cfg.RequireAwait = b
			}
		}
	}
}

func applyOverrides(cfg *Demo, overrides Demo, overridden map[string]bool) {
	if overridden["driver"] {
		cfg.Driver = overrides.Driver
	}
	if overridden["dsn"] {
		cfg.DSN = overrides.DSN
	}
	if overridden["sleep_millis"] {
		cfg.SleepMillis = overrides.SleepMillis
	}
	if overridden["log_level"] {
		cfg.LogLevel = overrides.LogLevel
	}
	if overridden["log_file"] {
		cfg.LogFile = overrides.LogFile
	}
	if overridden["require_await"] {
		cfg.RequireAwait = overrides.RequireAwait
	}
}
