package city

import "worldforge/pkg/terrain"

// CitySize is a population tier, mapping to a target-population range.
type CitySize int

const (
	Small CitySize = iota
	Medium
	Large
)

func (s CitySize) String() string {
	switch s {
	case Small:
		return "Small"
	case Medium:
		return "Medium"
	case Large:
		return "Large"
	default:
		return "Unknown"
	}
}

// populationRange returns the inclusive [lo, hi] target-population
// range for a tier.
func (s CitySize) populationRange() (int, int) {
	switch s {
	case Small:
		return 150, 300
	case Medium:
		return 300, 500
	case Large:
		return 500, 800
	default:
		return 150, 300
	}
}

// maxDepth is the branching depth limit for a tier's road network.
func (s CitySize) maxDepth() int {
	switch s {
	case Small:
		return 2
	case Medium:
		return 3
	case Large:
		return 4
	default:
		return 2
	}
}

// BuildingType is an immutable catalog entry: a population contribution
// and a footprint.
type BuildingType struct {
	ID         string
	Name       string
	Population int
	Width      int
	Depth      int
}

// BuildingCatalog is the static, immutable set of BuildingTypes spanning
// small house, medium house, townhouse, apartment, and large apartment.
type BuildingCatalog struct {
	types []BuildingType
}

var defaultBuildingTypes = []BuildingType{
	{ID: "house_small", Name: "Small House", Population: 8, Width: 1, Depth: 1},
	{ID: "house_medium", Name: "Medium House", Population: 16, Width: 2, Depth: 1},
	{ID: "townhouse", Name: "Townhouse", Population: 20, Width: 2, Depth: 2},
	{ID: "apartment", Name: "Apartment Block", Population: 30, Width: 2, Depth: 3},
	{ID: "apartment_large", Name: "Large Apartment Block", Population: 45, Width: 3, Depth: 3},
}

// NewBuildingCatalog returns a catalog over the built-in building
// types.
func NewBuildingCatalog() *BuildingCatalog {
	return &BuildingCatalog{types: defaultBuildingTypes}
}

// GetAll returns every catalog entry.
func (c *BuildingCatalog) GetAll() []BuildingType {
	return c.types
}

// SelectRandom returns a uniformly random catalog entry.
func (c *BuildingCatalog) SelectRandom(rng *terrain.RNG) BuildingType {
	return c.types[rng.ChooseIndex(len(c.types))]
}

// FilterByPopulation returns every entry whose Population lies in
// [lo, hi] inclusive.
func (c *BuildingCatalog) FilterByPopulation(lo, hi int) []BuildingType {
	var out []BuildingType
	for _, t := range c.types {
		if t.Population >= lo && t.Population <= hi {
			out = append(out, t)
		}
	}
	return out
}

// SelectRandomByPopulation returns a uniformly random entry from
// FilterByPopulation(lo, hi). It panics if the filter is empty — callers
// must check first.
func (c *BuildingCatalog) SelectRandomByPopulation(rng *terrain.RNG, lo, hi int) BuildingType {
	filtered := c.FilterByPopulation(lo, hi)
	if len(filtered) == 0 {
		panic("city: SelectRandomByPopulation called with an empty filter")
	}
	return filtered[rng.ChooseIndex(len(filtered))]
}

// GenerateTargetPopulation draws a target population uniformly from the
// tier's inclusive range.
func (c *BuildingCatalog) GenerateTargetPopulation(size CitySize, rng *terrain.RNG) int {
	lo, hi := size.populationRange()
	return rng.NextIntInclusive(lo, hi)
}
