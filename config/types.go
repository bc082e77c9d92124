package config

// SourcesConfig names the upstream DriveBC endpoints.
type SourcesConfig struct {
	EventsURL  string `yaml:"eventsURL" validate:"omitempty,url"`
	FerriesURL string `yaml:"ferriesURL" validate:"omitempty,url"`
	TimeoutMS  int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ConverterConfig contains converter-specific configuration.
// IncludeFerries is a pointer so an absent key can default to enabled
// while an explicit false still disables the source.
type ConverterConfig struct {
	IncludeFerries *bool  `yaml:"includeFerries"`
	OnFetchFailure string `yaml:"onFetchFailure" validate:"omitempty,oneof=skip abort"`
	GeometryPolicy string `yaml:"geometryPolicy" validate:"omitempty,oneof=drop metadataOnly"`
}

// FerriesEnabled reports whether the ferries source is fetched.
func (c ConverterConfig) FerriesEnabled() bool {
	return c.IncludeFerries == nil || *c.IncludeFerries
}

// OutputConfig controls where and how the KML file is written.
// Mode "live" writes a fixed filename for automatic map-layer refresh;
// "export" writes a timestamped file per run.
type OutputConfig struct {
	Mode     string `yaml:"mode" validate:"omitempty,oneof=live export"`
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"`
}

// ServerConfig contains serve-mode configuration.
type ServerConfig struct {
	Port              int `yaml:"port" validate:"gte=0"`
	RefreshIntervalMS int `yaml:"refreshIntervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Sources   SourcesConfig   `yaml:"sources"`
	Converter ConverterConfig `yaml:"converter"`
	Output    OutputConfig    `yaml:"output"`
	Server    ServerConfig    `yaml:"server"`
}
