package city

import (
	"testing"

	"worldforge/pkg/terrain"
)

func TestFilterByPopulation(t *testing.T) {
	cat := NewBuildingCatalog()
	got := cat.FilterByPopulation(20, 45)
	if len(got) == 0 {
		t.Fatal("expected at least one building type in [20,45]")
	}
	for _, bt := range got {
		if bt.Population < 20 || bt.Population > 45 {
			t.Errorf("FilterByPopulation(20,45) returned %+v out of range", bt)
		}
	}
}

func TestSelectRandomByPopulationPanicsOnEmptyFilter(t *testing.T) {
	cat := NewBuildingCatalog()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an impossible population range")
		}
	}()
	cat.SelectRandomByPopulation(terrain.NewRNG(1), 10000, 20000)
}

func TestGenerateTargetPopulationRanges(t *testing.T) {
	cat := NewBuildingCatalog()
	cases := []struct {
		size     CitySize
		lo, hi   int
	}{
		{Small, 150, 300},
		{Medium, 300, 500},
		{Large, 500, 800},
	}
	for _, c := range cases {
		rng := terrain.NewRNG(uint32(c.size) + 1)
		for i := 0; i < 100; i++ {
			got := cat.GenerateTargetPopulation(c.size, rng)
			if got < c.lo || got > c.hi {
				t.Fatalf("GenerateTargetPopulation(%v) = %d, out of [%d,%d]", c.size, got, c.lo, c.hi)
			}
		}
	}
}

func TestCitySizeMaxDepth(t *testing.T) {
	if Small.maxDepth() != 2 || Medium.maxDepth() != 3 || Large.maxDepth() != 4 {
		t.Error("tier maxDepth values do not match the expected 2/3/4")
	}
}
