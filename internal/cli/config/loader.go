package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// settingsKey is used to store the loaded Settings in context.
type settingsKey struct{}

// Load loads tool settings from defaults, environment variables and
// flags. Precedence (highest to lowest): flags > env vars > defaults.
// Environment variables use the PYMSDL_ prefix (PYMSDL_PROJECT_DIR,
// PYMSDL_INTERPRETER, ...).
func Load(flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"project_dir": ".",
		"config_file": DefaultConfigFile,
		"interpreter": DefaultInterpreter,
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Environment variables (PYMSDL_ prefix)
	// Transform: PYMSDL_PROJECT_DIR -> project_dir
	if err := k.Load(env.Provider("PYMSDL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PYMSDL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 3. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI uses --config for brevity; the struct key is config_file.
			if key == "config" {
				return "config_file", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	abs, err := filepath.Abs(s.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve project directory: %w", err)
	}
	s.ProjectDir = abs
	if !filepath.IsAbs(s.ConfigFile) {
		s.ConfigFile = filepath.Join(s.ProjectDir, s.ConfigFile)
	}

	return &s, nil
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// SettingsKey returns the context key used for storing the settings.
func SettingsKey() interface{} {
	return settingsKey{}
}

// GetSettings retrieves the settings from the command context, or
// defaults when none were loaded.
func GetSettings(ctx context.Context) *Settings {
	if s, ok := ctx.Value(settingsKey{}).(*Settings); ok {
		return s
	}
	s, err := Load(nil)
	if err != nil {
		return &Settings{ProjectDir: ".", ConfigFile: DefaultConfigFile, Interpreter: DefaultInterpreter}
	}
	return s
}
