package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/simulation"
)

func main() {
	var (
		configFile = flag.String("config", "", "path to a JSON config file (defaults apply if empty)")
		schemaFile = flag.String("schema", "config/boids.schema.json", "path to the JSON schema used to validate -config")
		seed       = flag.Uint64("seed", 0, "PRNG seed; 0 derives one from the clock")
	)
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		loaded, err := simulation.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	game, err := NewGame(cfg, *seed)
	if err != nil {
		log.Fatalf("creating game: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
