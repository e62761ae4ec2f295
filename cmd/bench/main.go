// Command bench runs the simulation headless at a fixed time step and
// reports throughput for a range of population sizes.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "path to a TOML benchmark config (defaults apply if empty)")
	flag.Parse()

	conf := DefaultConf
	if *configFile != "" {
		parsed, err := ParseConfig(*configFile)
		if err != nil {
			log.Fatalf("loading benchmark config: %v", err)
		}
		conf = parsed
	}

	fmt.Printf("boids bench: %d steps at dt=%gs, world %gx%g, seed %d\n",
		conf.Steps, conf.Dt, conf.WorldWidth, conf.WorldHeight, conf.Seed)

	// Obstacle parked far outside the world so repulsion never fires and
	// runs measure the plain flocking pipeline.
	obstacle := geometry.Vector2D{X: -1e6, Y: -1e6}

	for _, population := range conf.Populations {
		cfg := simulation.DefaultConfig()
		cfg.WorldWidth = conf.WorldWidth
		cfg.WorldHeight = conf.WorldHeight
		cfg.InitialPopulation = population

		world, err := simulation.NewWorld(cfg, conf.Seed)
		if err != nil {
			log.Fatalf("population %d: %v", population, err)
		}
		if _, err := world.Step(0, obstacle, simulation.CmdStart); err != nil {
			log.Fatalf("population %d: %v", population, err)
		}

		start := time.Now()
		for i := 0; i < conf.Steps; i++ {
			if _, err := world.Step(conf.Dt, obstacle, simulation.CmdNone); err != nil {
				log.Fatalf("population %d, step %d: %v", population, i, err)
			}
		}
		elapsed := time.Since(start)

		ticksPerSec := float64(conf.Steps) / elapsed.Seconds()
		nsPerBoid := float64(elapsed.Nanoseconds()) / float64(conf.Steps*population)
		fmt.Printf("%6d boids: %8.1f ticks/s  %8.1f ns/boid-tick  (total %v)\n",
			population, ticksPerSec, nsPerBoid, elapsed.Round(time.Millisecond))
	}
}
