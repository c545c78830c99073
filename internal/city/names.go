// Package city orchestrates road networks, building placement, and
// naming for individual cities grown on top of generated terrain.
package city

import (
	"fmt"

	"worldforge/pkg/terrain"
)

// baseNames is the catalog CityNameRegistry draws from. Themed after
// terrain and history rather than sequential, the way a settled world's
// town names accrete — grouped here by flavor, but the registry treats
// them as one flat pool. The themes mirror the shape of a resource-pool
// naming scheme, but the words themselves are original to this world,
// not drawn from any single source.
var baseNames = flattenNamePools(
	namesWoodland, namesMining, namesWealth, namesCinder, namesFarmland,
	namesCoastal, namesChronicle, namesBarren,
)

var namesWoodland = []string{
	"Greenholt", "Elderglen", "Thistlewood", "Foxbriar", "Redbark",
	"Stagshade", "Mossford", "Duskwood", "Hartglen", "Rowanmere",
	"Sparrowdell", "Wrenfield", "Hollowbranch", "Quietwood", "Fawnbrook",
}

var namesMining = []string{
	"Hollowpit", "Emberforge", "Drillstead", "Basalt Reach", "Grimvault",
	"Tunnelhead", "Pickaxe Hollow", "Minersrest", "Leadfall", "Furnacegate",
	"Shaftborough", "Chiselridge", "Deepcut", "Orewick", "Veinholt",
}

var namesWealth = []string{
	"Coinmere", "Silverreach", "Lodeheart", "Mintburrow", "Rivenhoard",
	"Vaultcrest", "Brasshollow", "Royal Stake", "Dazzlefield", "Glimmerhollow",
	"Windfall Ridge", "Crestmark", "Opulence", "Wealdhurst", "Rich Hollow",
}

var namesCinder = []string{
	"Cindervale", "Ashenreach", "Tarhollow", "Smokerise", "Greywick",
	"Duskfire", "Charbrook", "Cokehollow", "Sparkfield", "Pyrehollow",
	"Blazecross", "Singevale", "Kilnmoor", "Fumewick", "Scaldmere",
}

var namesFarmland = []string{
	"Sunmeadow", "Plowgate", "Cropvale", "Oxendell", "Silofield",
	"Grainholt", "Husksworth", "Pastoria", "Rootfield", "Brambleshire",
	"Scythevale", "Chaffend", "Sowford", "Thatchmere", "Grazemoor",
}

var namesBarren = []string{
	"Emberwaste", "Cragdust", "Hollowreach", "Grimsand", "Driftgrave",
	"Blightmoor", "Rustfallow", "Gauntmere", "Thornwaste", "Ashenvale",
	"Wither Hollow", "Scorchedge", "Hushmire", "Starved Reach", "Graveldune",
}

var namesCoastal = []string{
	"Saltspire", "Pearlgate", "Tideholm", "Gullhaven", "Reefmark",
	"Brinewick", "Oystercove", "Foghollow", "Wavecrest", "Harborlight",
	"Kelpford", "Shorewind", "Dockmoor", "Netfall", "Mooncove",
}

var namesChronicle = []string{
	"Vellmoor", "Cairnholt", "Brindlewick", "Oldreach", "Marrowgate",
	"Thistledown", "Kestrel Hollow", "Wrenmoor", "Aldwych", "Bramblecross",
	"Farrowstead", "Heathmere", "Crowmere", "Wintergate", "Lochwick",
}

func flattenNamePools(pools ...[]string) []string {
	var out []string
	for _, pool := range pools {
		out = append(out, pool...)
	}
	return out
}

// overflowSafetyBound caps the numbered-overflow search at N = 1000.
const overflowSafetyBound = 1000

// CityNameRegistry allocates unique city names from a fixed base pool,
// falling back to numbered overflow once the pool is exhausted. It is
// the single source of truth for uniqueness across a world.
type CityNameRegistry struct {
	base []string
	used map[string]bool
}

// NewCityNameRegistry returns a registry over the built-in base name
// pool (120 names).
func NewCityNameRegistry() *CityNameRegistry {
	return &CityNameRegistry{base: baseNames, used: make(map[string]bool)}
}

// GenerateUniqueName prefers an unused base name (drawn uniformly from
// whatever remains after existing ∪ used is subtracted); on exhaustion,
// it picks a base name and appends a counter until the combination is
// unused or the safety bound is hit.
func (r *CityNameRegistry) GenerateUniqueName(existing map[string]bool, rng *terrain.RNG) string {
	var candidates []string
	for _, name := range r.base {
		if existing[name] || r.used[name] {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) > 0 {
		name := rng.Choose(candidates)
		r.used[name] = true
		return name
	}

	base := r.base[rng.ChooseIndex(len(r.base))]
	for n := 1; n <= overflowSafetyBound; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if existing[candidate] || r.used[candidate] {
			continue
		}
		r.used[candidate] = true
		return candidate
	}
	// Exhausted even the overflow bound — extremely unlikely for any
	// world this generator would produce, but still must return
	// something unique rather than loop forever.
	n := rng.NextInt(overflowSafetyBound+1, overflowSafetyBound*2)
	candidate := fmt.Sprintf("%s %d", base, n)
	for existing[candidate] || r.used[candidate] {
		n++
		candidate = fmt.Sprintf("%s %d", base, n)
	}
	r.used[candidate] = true
	return candidate
}

// ReleaseNameForReuse frees name for reallocation, used when a city is
// deleted by the host.
func (r *CityNameRegistry) ReleaseNameForReuse(name string) {
	delete(r.used, name)
}

// MarkNameAsUsed is the external hook for names assigned outside
// GenerateUniqueName (e.g. restored from a save).
func (r *CityNameRegistry) MarkNameAsUsed(name string) {
	r.used[name] = true
}
