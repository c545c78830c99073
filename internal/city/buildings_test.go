package city

import (
	"testing"

	"worldforge/pkg/terrain"
)

func buildNetworkAndState(t *testing.T, collision *terrain.CollisionService, seed uint32) (*RoadNetwork, *terrain.PlacementState) {
	t.Helper()
	builder := NewRoadNetworkBuilder(collision, nil)
	network := builder.Build(0, 0, Large, terrain.NewRNG(seed))
	state := terrain.NewPlacementState()
	for key := range network.Tiles {
		state.Roads[key] = true
	}
	return network, state
}

func TestBuildingLegality(t *testing.T) {
	collision := flatCollisionService(t, 9)
	network, state := buildNetworkAndState(t, collision, 9)
	catalog := NewBuildingCatalog()
	placer := NewBuildingPlacer(catalog, collision, nil)

	result := placer.Place(network, 300, terrain.NewRNG(1234), state)
	if len(result.Buildings) == 0 {
		t.Fatal("expected at least one building to be placed on open flat terrain")
	}

	occupied := make(map[[2]int]bool)
	for _, b := range result.Buildings {
		footprint := footprintTiles(b.X, b.Z, b.Type.Width, b.Type.Depth)
		for _, t2 := range footprint {
			if occupied[t2] {
				t.Fatalf("building %+v overlaps another building at %v", b, t2)
			}
			if network.Tiles[t2] != nil {
				t.Fatalf("building %+v overlaps a road tile at %v", b, t2)
			}
			occupied[t2] = true
		}
		if c := collision.ValidateBuildingTerrain(b.X, b.Z, b.Type.Width, b.Type.Depth); c.HasCollision {
			t.Errorf("building %+v fails terrain validation: %+v", b, c)
		}
		if !footprintAdjacentToRoad(collision, footprint, state) {
			t.Errorf("building %+v has no road-adjacent tile", b)
		}
	}
}

func TestPopulationAccounting(t *testing.T) {
	collision := flatCollisionService(t, 11)
	network, state := buildNetworkAndState(t, collision, 11)
	catalog := NewBuildingCatalog()
	placer := NewBuildingPlacer(catalog, collision, nil)

	result := placer.Place(network, 250, terrain.NewRNG(55), state)
	sum := 0
	for _, b := range result.Buildings {
		sum += b.Type.Population
	}
	if sum != result.TotalPopulation {
		t.Errorf("TotalPopulation = %d, want sum of building populations %d", result.TotalPopulation, sum)
	}
}

func TestCandidateOriginsExcludeRoadTiles(t *testing.T) {
	collision := flatCollisionService(t, 3)
	network, state := buildNetworkAndState(t, collision, 3)
	catalog := NewBuildingCatalog()
	placer := NewBuildingPlacer(catalog, collision, nil)

	for _, origin := range placer.candidateOrigins(network, state) {
		if state.Roads[origin] {
			t.Errorf("candidate origin %v is itself a road tile", origin)
		}
	}
}
