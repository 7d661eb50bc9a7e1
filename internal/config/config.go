package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPath            = "ednsctl.toml"
	DefaultListen          = "127.0.0.1:9053"
	DefaultOutput          = "text"
	DefaultLogLevel        = "info"
	DefaultMaxMessageBytes = 65535
)

// Config is the ednsctl runtime configuration.
type Config struct {
	LogLevel        string   `toml:"log_level"`
	Output          string   `toml:"output"`
	Listen          string   `toml:"listen"`
	CorsOrigins     []string `toml:"cors_origins"`
	MaxMessageBytes int      `toml:"max_message_bytes"`
}

func Default() Config {
	return Config{
		LogLevel:        DefaultLogLevel,
		Output:          DefaultOutput,
		Listen:          DefaultListen,
		CorsOrigins:     []string{"http://localhost:3000"},
		MaxMessageBytes: DefaultMaxMessageBytes,
	}
}

// Load overlays the keys present in path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("max_message_bytes") {
		cfg.MaxMessageBytes = raw.MaxMessageBytes
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output must be text, json or yaml: %q", cfg.Output)
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		return fmt.Errorf("listen is required")
	}
	if cfg.MaxMessageBytes <= 0 {
		return fmt.Errorf("max_message_bytes must be positive: %d", cfg.MaxMessageBytes)
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
