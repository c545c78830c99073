package city

import (
	"testing"

	"worldforge/pkg/terrain"
)

// flatCollisionService returns a collision service over a flat,
// all-land terrain world large enough for road/building tests.
func flatCollisionService(t *testing.T, seed uint32) *terrain.CollisionService {
	t.Helper()
	cfg := terrain.GenerationConfig{
		Seed: seed, RenderDistance: 3, WaterLevel: 0, Steepness: 0,
		Continuity: 10, MaxHeight: 10, ChunkSize: terrain.ChunkSize,
	}
	w, err := terrain.NewTerrainGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewTerrainGenerator: %v", err)
	}
	w.Generate()
	return terrain.NewCollisionService(w, cfg.Bounds())
}
