package terrain

import "github.com/sirupsen/logrus"

// CityStartPoint is a candidate seed tile for city generation, along
// with the size of the buildable component it sits in.
type CityStartPoint struct {
	X, Z     int
	AreaSize int
}

// SiteFinder locates connected buildable land components large enough
// to host a city, via the same BFS-flood-fill shape this corpus's map
// processor uses to find water bodies — retargeted here to land.
type SiteFinder struct {
	collision *CollisionService
	logger    *logrus.Entry
}

// NewSiteFinder builds a finder against the given collision service.
func NewSiteFinder(collision *CollisionService, logger *logrus.Entry) *SiteFinder {
	return &SiteFinder{collision: collision, logger: logger}
}

// Find returns up to targetCount CityStartPoints within bounds, each the
// seed of a connected component of at least minAreaSize buildable tiles,
// sorted by descending area. Returning fewer sites than requested is a
// valid outcome: the attempt budget (100·targetCount) bounds runtime on
// hostile maps.
func (f *SiteFinder) Find(targetCount, minAreaSize int, bounds Bounds, rng *RNG) []CityStartPoint {
	if targetCount <= 0 {
		return nil
	}
	globallyChecked := make(map[[2]int]bool)
	var results []CityStartPoint

	budget := 100 * targetCount
	width := bounds.MaxX - bounds.MinX + 1
	depth := bounds.MaxZ - bounds.MinZ + 1
	if width <= 0 || depth <= 0 {
		return nil
	}

	for attempt := 0; attempt < budget && len(results) < targetCount; attempt++ {
		x := bounds.MinX + rng.NextInt(0, width)
		z := bounds.MinZ + rng.NextInt(0, depth)
		if globallyChecked[[2]int{x, z}] {
			continue
		}
		if f.collision.World.IsWaterAt(x, z) {
			globallyChecked[[2]int{x, z}] = true
			continue
		}
		component := f.floodFill(x, z, bounds, globallyChecked)
		if len(component) >= minAreaSize {
			results = append(results, CityStartPoint{X: x, Z: z, AreaSize: len(component)})
		}
	}

	sortSitesByAreaDesc(results)

	if len(results) < targetCount && f.logger != nil {
		f.logger.Warnf("sitefinder: found only %d/%d sites (minAreaSize=%d)", len(results), targetCount, minAreaSize)
	}
	return results
}

// floodFill runs a BFS from (x, z), admitting a neighbor iff it is not
// water and passable from the current tile, adding every visited tile
// to globallyChecked regardless of the component's eventual size.
func (f *SiteFinder) floodFill(x, z int, bounds Bounds, globallyChecked map[[2]int]bool) []([2]int) {
	start := [2]int{x, z}
	visited := map[[2]int]bool{start: true}
	globallyChecked[start] = true
	queue := [][2]int{start}
	component := []([2]int){start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range f.collision.GetAdjacentPositions(cur[0], cur[1]) {
			if visited[n] {
				continue
			}
			if !bounds.Contains(n[0], n[1]) {
				continue
			}
			globallyChecked[n] = true
			if f.collision.IsBuildableLand(cur[0], cur[1], n[0], n[1]) {
				visited[n] = true
				component = append(component, n)
				queue = append(queue, n)
			}
		}
	}
	return component
}

// sortSitesByAreaDesc sorts by AreaSize descending with a stable
// insertion sort; site lists are small, so this avoids pulling in
// sort.Slice for a handful of elements.
func sortSitesByAreaDesc(sites []CityStartPoint) {
	for i := 1; i < len(sites); i++ {
		v := sites[i]
		j := i - 1
		for j >= 0 && sites[j].AreaSize < v.AreaSize {
			sites[j+1] = sites[j]
			j--
		}
		sites[j+1] = v
	}
}
