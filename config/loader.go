package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Built-in endpoint and output defaults. A missing config file is not an
// error; the tool runs against the public API out of the box.
const (
	DefaultEventsURL  = "https://www.drivebc.ca/api/events/"
	DefaultFerriesURL = "https://www.drivebc.ca/api/ferries/"

	defaultTimeoutMS    = 30000
	defaultOutputDir    = "exports"
	defaultLiveFilename = "drivebc_events.kml"
	defaultPort         = 16181
	defaultRefreshMS    = 60000
)

// Default returns the configuration used when no config file is present.
func Default() AppConfig {
	cfg := AppConfig{}
	applyDefaults(&cfg)
	return cfg
}

// Load reads and validates configuration from path. An empty path tries
// config.yml and falls back to defaults when the file does not exist; an
// explicit path must exist.
func Load(path string) (AppConfig, error) {
	explicit := path != ""
	if path == "" {
		path = "config.yml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Sources.EventsURL == "" {
		cfg.Sources.EventsURL = DefaultEventsURL
	}
	if cfg.Sources.FerriesURL == "" {
		cfg.Sources.FerriesURL = DefaultFerriesURL
	}
	if cfg.Sources.TimeoutMS == 0 {
		cfg.Sources.TimeoutMS = defaultTimeoutMS
	}
	if cfg.Converter.IncludeFerries == nil {
		enabled := true
		cfg.Converter.IncludeFerries = &enabled
	}
	if cfg.Converter.OnFetchFailure == "" {
		cfg.Converter.OnFetchFailure = "skip"
	}
	if cfg.Converter.GeometryPolicy == "" {
		cfg.Converter.GeometryPolicy = "drop"
	}
	if cfg.Output.Mode == "" {
		cfg.Output.Mode = "export"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
	if cfg.Output.Filename == "" {
		cfg.Output.Filename = defaultLiveFilename
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.RefreshIntervalMS == 0 {
		cfg.Server.RefreshIntervalMS = defaultRefreshMS
	}
}
