package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Path to the property data file (CSV or SQLite database)
	DataPath string `env:"DATA_PATH" envDefault:"data/properties.csv"`

	// Path to the SQLite database used for imports and preferences
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/properties.db"`

	// Maximum number of properties returned by a search
	SearchLimit int `env:"SEARCH_LIMIT" envDefault:"10"`

	// Enable debug-level logging
	DebugMode bool `env:"DEBUG_MODE" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
