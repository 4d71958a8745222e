package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			Dir:            "",
			Noninteractive: false,
			Quiet:          false,
			Protect: Protect{
				Names:    []string{},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
		Logging: Logging{
			Enabled: true,
			Level:   "info",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
