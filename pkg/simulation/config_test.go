package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"negative height", func(c *Config) { c.WorldHeight = -1 }},
		{"zero visual range", func(c *Config) { c.VisualRange = 0 }},
		{"negative speed limit", func(c *Config) { c.SpeedLimit = -400 }},
		{"negative population", func(c *Config) { c.InitialPopulation = -5 }},
		{"zero population step", func(c *Config) { c.PopulationStep = 0 }},
		{"negative min distance", func(c *Config) { c.MinDistance = -1 }},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", c.name, err)
		}
	}
}

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "worldWidth": {"type": "number", "exclusiveMinimum": 0},
    "worldHeight": {"type": "number", "exclusiveMinimum": 0},
    "initialPopulation": {"type": "integer", "minimum": 0},
    "speedLimit": {"type": "number", "exclusiveMinimum": 0}
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.json", testSchema)
	configFile := writeFile(t, dir, "config.json", `{
		"worldWidth": 800,
		"worldHeight": 600,
		"initialPopulation": 250
	}`)

	cfg, err := LoadConfig(configFile, schemaFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WorldWidth != 800 || cfg.WorldHeight != 600 {
		t.Errorf("expected 800x600 world, got %gx%g", cfg.WorldWidth, cfg.WorldHeight)
	}
	if cfg.InitialPopulation != 250 {
		t.Errorf("expected population 250, got %d", cfg.InitialPopulation)
	}
	// Omitted keys keep their defaults.
	if cfg.SpeedLimit != DefaultConfig().SpeedLimit {
		t.Errorf("expected default speed limit, got %g", cfg.SpeedLimit)
	}
}

func TestLoadConfig_SchemaRejects(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.json", testSchema)
	configFile := writeFile(t, dir, "config.json", `{"worldWidth": -100}`)

	if _, err := LoadConfig(configFile, schemaFile); err == nil {
		t.Fatal("expected schema validation failure, got nil")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.json", testSchema)

	if _, err := LoadConfig(filepath.Join(dir, "nope.json"), schemaFile); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}
