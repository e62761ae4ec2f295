package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrInvalidConfig marks configuration errors detected at construction.
	ErrInvalidConfig = errors.New("invalid simulation config")
	// ErrInvalidTick marks a bad per-tick input (negative or non-finite dt).
	ErrInvalidTick = errors.New("invalid tick input")
)

// Config holds the world dimensions and the tuning constants shared by every
// boid. It is read at construction time only; changing the rules of a running
// world means building a new one.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	InitialPopulation int `json:"initialPopulation"`
	PopulationStep    int `json:"populationStep"` // grow/shrink increment
	MinPopulation     int `json:"minPopulation"`  // shrink below this is a no-op

	// Flocking behavior
	SpeedLimit      float64 `json:"speedLimit"`      // pixels per second
	VisualRange     float64 `json:"visualRange"`     // cohesion/alignment radius, also the grid cell size
	MinDistance     float64 `json:"minDistance"`     // separation radius
	AvoidFactor     float64 `json:"avoidFactor"`     // separation strength
	CenteringFactor float64 `json:"centeringFactor"` // cohesion strength
	MatchingFactor  float64 `json:"matchingFactor"`  // alignment strength

	// Boundary and obstacle steering
	TurnFactor     float64 `json:"turnFactor"`     // edge turning strength
	EdgeBuffer     float64 `json:"edgeBuffer"`     // distance from an edge at which turning starts
	ObstacleRadius float64 `json:"obstacleRadius"` // repulsion radius around the obstacle point
}

// DefaultConfig returns the reference tuning: a 1280x720 world with 500 boids.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:        1280,
		WorldHeight:       720,
		InitialPopulation: 500,
		PopulationStep:    100,
		MinPopulation:     100,
		SpeedLimit:        400.0,
		VisualRange:       32.0,
		MinDistance:       16.0,
		AvoidFactor:       0.5,
		CenteringFactor:   0.05,
		MatchingFactor:    0.1,
		TurnFactor:        16.0,
		EdgeBuffer:        40.0,
		ObstacleRadius:    20.0,
	}
}

// Validate reports the first configuration error, wrapped in ErrInvalidConfig.
// A failed validation is fatal to construction; the caller must not proceed
// with a half-built world.
func (c *Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world dimensions must be positive, got %gx%g",
			ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.VisualRange <= 0:
		return fmt.Errorf("%w: visual range must be positive, got %g",
			ErrInvalidConfig, c.VisualRange)
	case c.SpeedLimit <= 0:
		return fmt.Errorf("%w: speed limit must be positive, got %g",
			ErrInvalidConfig, c.SpeedLimit)
	case c.InitialPopulation < 0:
		return fmt.Errorf("%w: initial population must not be negative, got %d",
			ErrInvalidConfig, c.InitialPopulation)
	case c.PopulationStep <= 0:
		return fmt.Errorf("%w: population step must be positive, got %d",
			ErrInvalidConfig, c.PopulationStep)
	case c.MinPopulation < 0:
		return fmt.Errorf("%w: minimum population must not be negative, got %d",
			ErrInvalidConfig, c.MinPopulation)
	case c.MinDistance < 0 || c.EdgeBuffer < 0 || c.ObstacleRadius < 0:
		return fmt.Errorf("%w: radii and buffers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate against the schema
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct, on top of the defaults so omitted keys keep
	// their reference values.
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
