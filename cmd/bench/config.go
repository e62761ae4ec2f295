package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the parameters of a headless benchmark run.
type Config struct {
	Steps int     // ticks per run
	Dt    float64 // fixed elapsed seconds per tick
	Seed  uint64  // world PRNG seed, fixed so runs are reproducible

	// Populations lists the flock sizes to benchmark, one run each.
	Populations []int

	// World dimensions shared by every run.
	WorldWidth  float64
	WorldHeight float64
}

// DefaultConf are the default benchmark parameters.
var DefaultConf = &Config{
	Steps:       1000,
	Dt:          1.0 / 60,
	Seed:        42,
	Populations: []int{500, 1000, 2000, 5000},
	WorldWidth:  1280,
	WorldHeight: 720,
}

// ParseConfig decodes a TOML file over the defaults.
func ParseConfig(path string) (*Config, error) {
	conf := *DefaultConf
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if conf.Steps <= 0 || conf.Dt < 0 || len(conf.Populations) == 0 {
		return nil, fmt.Errorf("%s: steps must be positive, dt non-negative, populations non-empty", path)
	}
	return &conf, nil
}
