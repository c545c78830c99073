package city

import (
	"github.com/sirupsen/logrus"

	"worldforge/pkg/terrain"
)

// Building is one placed building footprint.
type Building struct {
	X, Z int
	Type BuildingType
}

// PlacementResult is what BuildingPlacer.Place returns: the buildings
// actually placed and their summed population. Partial success (fewer
// buildings than the target population implies) is reported here, not
// raised as an error — the orchestrator decides what ratio is usable.
type PlacementResult struct {
	Buildings       []Building
	TotalPopulation int
}

// BuildingPlacer fills road-adjacent tiles with buildings until a
// target population is met or the candidate space is exhausted.
type BuildingPlacer struct {
	catalog   *BuildingCatalog
	collision *terrain.CollisionService
	logger    *logrus.Entry
}

// NewBuildingPlacer builds a placer against the given catalog and
// collision service.
func NewBuildingPlacer(catalog *BuildingCatalog, collision *terrain.CollisionService, logger *logrus.Entry) *BuildingPlacer {
	return &BuildingPlacer{catalog: catalog, collision: collision, logger: logger}
}

// Place grows a building set along network until totalPopulation ≥
// targetPop or every shuffled candidate origin has been tried. state
// must already have every network road tile marked in Roads (and the
// network's dead ends in DeadEnds); Build grows the network into a
// private state of its own, so callers build this one from the returned
// network. Buildings are appended to it.
func (p *BuildingPlacer) Place(network *RoadNetwork, targetPop int, rng *terrain.RNG, state *terrain.PlacementState) PlacementResult {
	candidates := p.candidateOrigins(network, state)
	terrain.Shuffle(rng, candidates)

	result := PlacementResult{}
	for _, origin := range candidates {
		if result.TotalPopulation >= targetPop {
			break
		}
		bt, ok := p.pickType(targetPop-result.TotalPopulation, rng)
		if !ok {
			continue
		}
		if !p.tryPlace(origin, bt, state, &result) {
			continue
		}
	}

	if result.TotalPopulation < targetPop && p.logger != nil {
		p.logger.Warnf("buildings: placed population %d, short of target %d", result.TotalPopulation, targetPop)
	}
	return result
}

// candidateOrigins enumerates, for every road tile in growth-insertion
// order, every orthogonal neighbor that is not itself a road, deduped.
func (p *BuildingPlacer) candidateOrigins(network *RoadNetwork, state *terrain.PlacementState) [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, key := range network.order {
		for _, n := range p.collision.GetAdjacentPositions(key[0], key[1]) {
			if state.Roads[n] || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// pickType weights toward larger building types when plenty of
// population remains to place, and toward smaller ones as the target
// is approached.
func (p *BuildingPlacer) pickType(remaining int, rng *terrain.RNG) (BuildingType, bool) {
	if remaining >= 40 && rng.NextBoolean(0.3) {
		filtered := p.catalog.FilterByPopulation(20, 45)
		if len(filtered) > 0 {
			return filtered[rng.ChooseIndex(len(filtered))], true
		}
	}
	filtered := p.catalog.FilterByPopulation(8, 30)
	if len(filtered) == 0 {
		return BuildingType{}, false
	}
	return filtered[rng.ChooseIndex(len(filtered))], true
}

// tryPlace validates bt's footprint anchored at origin and, on success,
// commits it to state and result.
func (p *BuildingPlacer) tryPlace(origin [2]int, bt BuildingType, state *terrain.PlacementState, result *PlacementResult) bool {
	x, z := origin[0], origin[1]

	if p.collision.IsAdjacentToRoad(x, z, state) && p.collision.WouldBlockRoadExtension(x, z, state) {
		return false
	}

	footprint := footprintTiles(x, z, bt.Width, bt.Depth)
	for _, t := range footprint {
		if c := p.collision.CanPlaceBuilding(t[0], t[1], state); c.HasCollision {
			return false
		}
	}
	if c := p.collision.ValidateBuildingTerrain(x, z, bt.Width, bt.Depth); c.HasCollision {
		return false
	}
	if !footprintAdjacentToRoad(p.collision, footprint, state) {
		return false
	}

	for _, t := range footprint {
		state.Buildings[t] = true
	}
	result.Buildings = append(result.Buildings, Building{X: x, Z: z, Type: bt})
	result.TotalPopulation += bt.Population
	return true
}

func footprintTiles(x, z, width, depth int) [][2]int {
	out := make([][2]int, 0, width*depth)
	for dz := 0; dz < depth; dz++ {
		for dx := 0; dx < width; dx++ {
			out = append(out, [2]int{x + dx, z + dz})
		}
	}
	return out
}

// footprintAdjacentToRoad reports whether at least one footprint tile
// is orthogonally adjacent to a road tile — every building must front
// a road.
func footprintAdjacentToRoad(collision *terrain.CollisionService, footprint [][2]int, state *terrain.PlacementState) bool {
	for _, t := range footprint {
		if collision.IsAdjacentToRoad(t[0], t[1], state) {
			return true
		}
	}
	return false
}
