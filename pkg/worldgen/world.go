// Package worldgen ties terrain synthesis, site selection, city
// orchestration, and environmental scatter into one top-level pipeline.
package worldgen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"worldforge/internal/city"
	"worldforge/pkg/terrain"
)

// GeneratedWorld is the top-level output handed to an external
// renderer: terrain, every city, and environmental scatter. Named
// distinctly from terrain.World (the terrain-only chunk map) to keep
// the two compositional layers unambiguous.
type GeneratedWorld struct {
	Terrain *terrain.World
	Cities  []city.GeneratedCity
	Forests []Forest
	Trees   []Tree
}

// WorldGenerator runs the full pipeline: terrain → sites → cities →
// forests → trees.
type WorldGenerator struct {
	config terrain.GenerationConfig
	logger *logrus.Entry
}

// NewWorldGenerator returns a generator for the given configuration. A
// nil logger is legal.
func NewWorldGenerator(cfg terrain.GenerationConfig, logger *logrus.Entry) *WorldGenerator {
	return &WorldGenerator{config: cfg, logger: logger}
}

func (g *WorldGenerator) logf(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Warnf(format, args...)
	}
}

// Generate runs the complete pipeline and returns the resulting world.
// targetCityCount and minAreaSize are the SiteFinder parameters; city
// sizes are drawn uniformly from {Small, Medium, Large} per site.
func (g *WorldGenerator) Generate(targetCityCount, minAreaSize int) (*GeneratedWorld, error) {
	if err := g.config.Normalize(); err != nil {
		return nil, err
	}

	world, err := terrain.NewTerrainGenerator(g.config, g.logger)
	if err != nil {
		return nil, err
	}
	world.Generate()

	bounds := g.config.Bounds()
	collision := terrain.NewCollisionService(world, bounds)
	finder := terrain.NewSiteFinder(collision, g.logger)

	siteRNG := terrain.Derive(g.config.Seed, 0xC1770001)
	sites := finder.Find(targetCityCount, minAreaSize, bounds, siteRNG)
	if len(sites) < targetCityCount {
		g.logf("worldgen: proceeding with %d/%d sites", len(sites), targetCityCount)
	}

	catalog := city.NewBuildingCatalog()
	names := city.NewCityNameRegistry()
	cityGen := city.NewCityGenerator(collision, catalog, names, g.logger)

	sizeRNG := terrain.Derive(g.config.Seed, 0xC1770002)
	cities := make([]city.GeneratedCity, 0, len(sites))
	for _, site := range sites {
		size := city.CitySize(sizeRNG.ChooseIndex(3))
		generated, err := cityGen.GenerateCity(site.X, site.Z, size, map[string]bool{}, g.config.Seed)
		if err != nil {
			// A config error here is a programmer error (an internal
			// size value going out of range), not a recoverable
			// generation condition, so it escapes the pipeline.
			return nil, err
		}
		cities = append(cities, generated)
	}

	forestRNG := terrain.Derive(g.config.Seed, 0xF0E57001)
	forests := buildForests(world, bounds, len(cities), forestRNG)

	treeRNG := terrain.Derive(g.config.Seed, 0x7EE50001)
	trees := scatterTrees(world, bounds, forests, treeRNG)

	return &GeneratedWorld{Terrain: world, Cities: cities, Forests: forests, Trees: trees}, nil
}

// Debug renders an ASCII dump of the center chunk's tile grid, followed
// by a city/forest/tree summary line.
func (gw *GeneratedWorld) Debug() string {
	out := ""
	if chunk, ok := gw.Terrain.ChunkAt(0, 0); ok {
		out += debugChunk(chunk)
	}
	out += "\n"
	out += summaryLine(gw)
	return out
}

func debugChunk(chunk *terrain.Chunk) string {
	symbols := map[terrain.TileType]byte{
		terrain.TileWater:    '~',
		terrain.TileSand:     '.',
		terrain.TileGrass:    ',',
		terrain.TileHill:     '^',
		terrain.TileMountain: 'M',
		terrain.TilePeak:     '#',
	}
	out := ""
	for z := 0; z < terrain.ChunkSize; z++ {
		row := make([]byte, terrain.ChunkSize)
		for x := 0; x < terrain.ChunkSize; x++ {
			row[x] = symbols[chunk.Grid[z][x].TileType]
		}
		out += string(row) + "\n"
	}
	return out
}

func summaryLine(gw *GeneratedWorld) string {
	totalPop := 0
	for _, c := range gw.Cities {
		totalPop += c.TotalPopulation
	}
	return fmt.Sprintf("cities=%d population=%d forests=%d trees=%d",
		len(gw.Cities), totalPop, len(gw.Forests), len(gw.Trees))
}
