// Command worldgen demonstrates the generation library: it takes a
// seed and a handful of shape parameters, runs the pipeline once, and
// prints a summary plus an ASCII chunk dump. It is not part of the
// library's core contract — just a thin external consumer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"worldforge/pkg/terrain"
	"worldforge/pkg/worldgen"
)

func main() {
	seed := flag.Uint("seed", 12345, "world seed")
	renderDistance := flag.Int("render-distance", 3, "chunk render distance (1-8)")
	waterLevel := flag.Int("water-level", 4, "water level")
	steepness := flag.Int("steepness", 2, "max slope between adjacent tiles")
	continuity := flag.Int("continuity", 5, "height-continuity bias")
	cityCount := flag.Int("cities", 4, "target city count")
	minAreaSize := flag.Int("min-area", 24, "minimum buildable site area")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	entry := logrus.NewEntry(logger)

	cfg := terrain.GenerationConfig{
		Seed:           uint32(*seed),
		RenderDistance: *renderDistance,
		WaterLevel:     *waterLevel,
		Steepness:      *steepness,
		Continuity:     *continuity,
		MaxHeight:      terrain.MaxHeightDefault,
		ChunkSize:      terrain.ChunkSize,
	}

	gen := worldgen.NewWorldGenerator(cfg, entry)
	world, err := gen.Generate(*cityCount, *minAreaSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "worldgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed=%d render-distance=%d water-level=%d\n", cfg.Seed, cfg.RenderDistance, cfg.WaterLevel)
	for _, c := range world.Cities {
		fmt.Printf("  city %-10s pop=%-4d roads=%-4d buildings=%-4d at (%d,%d)\n",
			c.Name, c.TotalPopulation, len(c.Roads.Tiles), len(c.Buildings), c.CenterX, c.CenterZ)
	}
	fmt.Println(world.Debug())
}
