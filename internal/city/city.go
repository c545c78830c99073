package city

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"worldforge/pkg/terrain"
)

// GeneratedCity is the full record one CityGenerator invocation
// produces.
type GeneratedCity struct {
	ID               string
	Name             string
	CenterX, CenterZ int
	Roads            *RoadNetwork
	Buildings        []Building
	TotalPopulation  int
}

// CityGenerator orchestrates one city: target population, road growth,
// building placement, and naming, with a fallback record on any
// internal failure so the world's city list length stays predictable.
type CityGenerator struct {
	catalog   *BuildingCatalog
	names     *CityNameRegistry
	roads     *RoadNetworkBuilder
	buildings *BuildingPlacer
	collision *terrain.CollisionService
	logger    *logrus.Entry
}

// NewCityGenerator wires a generator from its component services. A nil
// logger is legal.
func NewCityGenerator(collision *terrain.CollisionService, catalog *BuildingCatalog, names *CityNameRegistry, logger *logrus.Entry) *CityGenerator {
	return &CityGenerator{
		catalog:   catalog,
		names:     names,
		roads:     NewRoadNetworkBuilder(collision, logger),
		buildings: NewBuildingPlacer(catalog, collision, logger),
		collision: collision,
		logger:    logger,
	}
}

// GenerateCity orchestrates one city's target population, road growth,
// building placement, and naming. It never returns an error for a
// mid-pipeline failure — that span is wrapped so any panic from a
// programmer-error path (an empty catalog filter, for instance)
// converts into a fallback city instead of escaping across the core
// boundary. This is the one place in the package that leans on
// recover() as orchestration-level last resort, not everyday control
// flow.
func (g *CityGenerator) GenerateCity(cx, cz int, size CitySize, existing map[string]bool, seed uint32) (GeneratedCity, error) {
	if size != Small && size != Medium && size != Large {
		return GeneratedCity{}, ErrUnknownSize
	}
	if existing == nil {
		return GeneratedCity{}, ErrMalformedExistingNames
	}
	if !g.collision.Bounds.Contains(cx, cz) {
		return GeneratedCity{}, ErrOutOfBoundsCenter
	}

	city, failed := g.attempt(cx, cz, size, existing, seed)
	if failed {
		return g.fallbackCity(cx, cz, existing, seed), nil
	}
	return city, nil
}

func (g *CityGenerator) attempt(cx, cz int, size CitySize, existing map[string]bool, seed uint32) (result GeneratedCity, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			if g.logger != nil {
				g.logger.Warnf("city: generation failed at (%d,%d), falling back: %v", cx, cz, r)
			}
			failed = true
		}
	}()

	rng := terrain.Derive(seed, hashCoords(cx, cz))

	targetPop := g.catalog.GenerateTargetPopulation(size, rng)
	network := g.roads.Build(cx, cz, size, rng)
	if len(network.Tiles) == 0 && g.logger != nil {
		g.logger.Warnf("city: empty road network at (%d,%d)", cx, cz)
	}

	state := terrain.NewPlacementState()
	for key := range network.Tiles {
		state.Roads[key] = true
	}
	for _, dz := range network.DeadEnds {
		state.DeadEnds = append(state.DeadEnds, dz)
	}

	placement := g.buildings.Place(network, targetPop, rng, state)
	if float64(placement.TotalPopulation) < 0.5*float64(targetPop) && g.logger != nil {
		g.logger.Warnf("city: population shortfall at (%d,%d): %d of target %d", cx, cz, placement.TotalPopulation, targetPop)
	}

	name := g.names.GenerateUniqueName(existing, rng)
	id := fmt.Sprintf("city_%s_%s_%d", shortHash(name), posHash(cx, cz), rng.NextInt(1000, 9999))

	return GeneratedCity{
		ID:              id,
		Name:            name,
		CenterX:         cx,
		CenterZ:         cz,
		Roads:           network,
		Buildings:       placement.Buildings,
		TotalPopulation: placement.TotalPopulation,
	}, false
}

// fallbackCity returns the minimal well-formed record guaranteed on
// failure: empty roads/buildings, population 0, a fresh unique name,
// coordinates preserved.
func (g *CityGenerator) fallbackCity(cx, cz int, existing map[string]bool, seed uint32) GeneratedCity {
	rng := terrain.Derive(seed, hashCoords(cx, cz)^0x5bd1e995)
	name := g.names.GenerateUniqueName(existing, rng)
	id := fmt.Sprintf("city_%s_%s_fallback", shortHash(name), posHash(cx, cz))
	return GeneratedCity{
		ID:      id,
		Name:    name,
		CenterX: cx,
		CenterZ: cz,
		Roads:   newRoadNetwork(),
	}
}

// hashCoords derives a 32-bit discriminator from a tile coordinate
// using the spatial-hash constants common to chunked world generators,
// so a city's PRNG stream is reproducible from its position alone.
func hashCoords(x, z int) uint32 {
	return uint32(x)*73856093 ^ uint32(z)*19349663
}

// shortHash and posHash format stable, human-scannable id fragments —
// not security hashes, just deterministic label fragments.
func shortHash(s string) string {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return fmt.Sprintf("%06x", h&0xFFFFFF)
}

func posHash(x, z int) string {
	return fmt.Sprintf("%x", hashCoords(x, z)&0xFFFF)
}
