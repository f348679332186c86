// Package config loads CLI defaults from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries the environment-provided defaults for the pfp command.
// Flags override these per invocation.
type Config struct {
	StorePath    string  `envconfig:"STORE_PATH" default:"./pfp-data"`
	StoreBackend string  `envconfig:"STORE_BACKEND" default:"filesystem"`
	Format       string  `envconfig:"FORMAT" default:"png"`
	Size         int     `envconfig:"SIZE" default:"1024"`
	Quality      float64 `envconfig:"QUALITY" default:"0.92"`
}

// Load reads PFP_-prefixed environment variables into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("pfp", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
