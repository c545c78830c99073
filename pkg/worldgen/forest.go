package worldgen

import "worldforge/pkg/terrain"

// TreeType is a scattered tree's species.
type TreeType int

const (
	TreeOak TreeType = iota
	TreePine
	TreeBirch
	TreeWillow
)

func (t TreeType) String() string {
	switch t {
	case TreeOak:
		return "oak"
	case TreePine:
		return "pine"
	case TreeBirch:
		return "birch"
	case TreeWillow:
		return "willow"
	default:
		return "unknown"
	}
}

// Forest is a connected group of same-height, forest-eligible tiles.
type Forest struct {
	ID          int
	Tiles       [][2]int
	TreeDensity float64
}

// Tree is one scattered tree outside any forest.
type Tree struct {
	ID             int
	X, Z           int
	Type           TreeType
	HeightOfGround int
}

// isForestEligible reports whether a tile type can seed or join a
// forest group.
func isForestEligible(tt terrain.TileType) bool {
	return tt == terrain.TileGrass || tt == terrain.TileHill || tt == terrain.TileMountain
}

// minForestGroupSize is the smallest connected, same-height run of
// eligible tiles that counts as a forest.
const minForestGroupSize = 6

// findForestGroups walks every tile in bounds, grouping same-height,
// same-eligible-type orthogonal runs via BFS, and returns every
// component whose size is at least minForestGroupSize, in scan order
// (z outer, x inner) for determinism.
func findForestGroups(w *terrain.World, bounds terrain.Bounds) [][][2]int {
	visited := make(map[[2]int]bool)
	var groups [][][2]int

	for z := bounds.MinZ; z <= bounds.MaxZ; z++ {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			start := [2]int{x, z}
			if visited[start] {
				continue
			}
			tt := w.TileTypeAt(x, z)
			if !isForestEligible(tt) {
				visited[start] = true
				continue
			}
			h := w.GetHeightAt(x, z)
			group := floodSameHeight(w, bounds, start, tt, h, visited)
			if len(group) >= minForestGroupSize {
				groups = append(groups, group)
			}
		}
	}
	return groups
}

func floodSameHeight(w *terrain.World, bounds terrain.Bounds, start [2]int, tt terrain.TileType, height int, visited map[[2]int]bool) [][2]int {
	visited[start] = true
	queue := [][2]int{start}
	group := [][2]int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range orderedNeighbors(cur[0], cur[1]) {
			if visited[n] || !bounds.Contains(n[0], n[1]) {
				continue
			}
			if w.TileTypeAt(n[0], n[1]) == tt && w.GetHeightAt(n[0], n[1]) == height {
				visited[n] = true
				group = append(group, n)
				queue = append(queue, n)
			}
		}
	}
	return group
}

func orderedNeighbors(x, z int) [4][2]int {
	return [4][2]int{{x + 1, z}, {x - 1, z}, {x, z + 1}, {x, z - 1}}
}

// buildForests samples up to 2·cityCount of the eligible groups without
// replacement (Fisher-Yates via rng), each contributing a Forest whose
// Tiles are the group's first minForestGroupSize members.
func buildForests(w *terrain.World, bounds terrain.Bounds, cityCount int, rng *terrain.RNG) []Forest {
	groups := findForestGroups(w, bounds)
	terrain.Shuffle(rng, groups)

	limit := 2 * cityCount
	if limit > len(groups) {
		limit = len(groups)
	}

	forests := make([]Forest, 0, limit)
	for i := 0; i < limit; i++ {
		tiles := append([][2]int(nil), groups[i][:minForestGroupSize]...)
		forests = append(forests, Forest{ID: i, Tiles: tiles, TreeDensity: rng.NextFloat()})
	}
	return forests
}

// scatterTrees rolls a 1/3 chance of carrying trees on every
// non-water, non-sand, non-peak tile outside a forest: 0–3 trees, or
// 0–2 on mountain.
func scatterTrees(w *terrain.World, bounds terrain.Bounds, forests []Forest, rng *terrain.RNG) []Tree {
	inForest := make(map[[2]int]bool)
	for _, f := range forests {
		for _, t := range f.Tiles {
			inForest[t] = true
		}
	}

	var trees []Tree
	nextID := 0
	for z := bounds.MinZ; z <= bounds.MaxZ; z++ {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			if inForest[[2]int{x, z}] {
				continue
			}
			tt := w.TileTypeAt(x, z)
			if tt == terrain.TileWater || tt == terrain.TileSand || tt == terrain.TilePeak {
				continue
			}
			if !rng.NextBoolean(1.0 / 3.0) {
				continue
			}
			maxCount := 3
			if tt == terrain.TileMountain {
				maxCount = 2
			}
			count := rng.NextIntInclusive(0, maxCount)
			height := w.GetHeightAt(x, z)
			for i := 0; i < count; i++ {
				trees = append(trees, Tree{
					ID:             nextID,
					X:              x,
					Z:              z,
					Type:           TreeType(rng.ChooseIndex(4)),
					HeightOfGround: height,
				})
				nextID++
			}
		}
	}
	return trees
}
