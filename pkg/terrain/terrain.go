package terrain

import (
	"github.com/sirupsen/logrus"
)

// World is a mapping (chunkX, chunkZ) → Chunk covering a square spiral
// of chunks of radius derived from Config.RenderDistance. It owns the
// water level, steepness, continuity, and master seed that produced it.
type World struct {
	Config GenerationConfig
	chunks map[chunkKey]*Chunk

	logger *logrus.Entry
}

// NewTerrainGenerator validates cfg, normalizes its clamped fields, and
// returns an empty World ready for Generate. A nil logger is legal.
func NewTerrainGenerator(cfg GenerationConfig, logger *logrus.Entry) (*World, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &World{Config: cfg, chunks: make(map[chunkKey]*Chunk), logger: logger}, nil
}

func (w *World) logf(format string, args ...interface{}) {
	if w.logger != nil {
		w.logger.Warnf(format, args...)
	}
}

func (w *World) debugf(format string, args ...interface{}) {
	if w.logger != nil && w.logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		w.logger.Debugf(format, args...)
	}
}

// Generate runs the chunked WFC pipeline over the configured spiral and
// returns the receiver for chaining.
func (w *World) Generate() *World {
	rng := NewRNG(w.Config.Seed)
	order := spiralChunkOrder(w.Config.ChunkRadius())
	firstCell := true
	for _, cc := range order {
		chunk := newChunk(cc[0], cc[1], w.Config.MaxHeight)
		w.applySeamConstraints(chunk)
		w.collapseChunk(chunk, rng, &firstCell)
		w.classifyChunk(chunk)
		chunk.NeighborsResolved = true
		w.chunks[chunkKey{cc[0], cc[1]}] = chunk
		w.debugf("collapsed chunk (%d,%d)", cc[0], cc[1])
	}
	return w
}

// spiralChunkOrder returns chunk coordinates in outward-square-spiral
// order starting at (0,0), covering every chunk with |x|,|z| ≤ radius.
func spiralChunkOrder(radius int) [][2]int {
	coords := [][2]int{{0, 0}}
	if radius <= 0 {
		return coords
	}
	seen := map[[2]int]bool{{0, 0}: true}
	x, z := 0, 0
	dirs := [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} // E, S, W, N
	dirIdx := 0
	for steps := 1; steps <= 2*radius+1; steps++ {
		for leg := 0; leg < 2; leg++ {
			dx, dz := dirs[dirIdx][0], dirs[dirIdx][1]
			for s := 0; s < steps; s++ {
				x += dx
				z += dz
				if abs(x) <= radius && abs(z) <= radius && !seen[[2]int{x, z}] {
					seen[[2]int{x, z}] = true
					coords = append(coords, [2]int{x, z})
				}
			}
			dirIdx = (dirIdx + 1) % 4
		}
	}
	return coords
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// applySeamConstraints intersects every boundary cell's possible
// heights against each already-collapsed neighbor chunk, so adjacent
// chunks meet at a consistent seam.
func (w *World) applySeamConstraints(chunk *Chunk) {
	neighborOffsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, off := range neighborOffsets {
		nb, ok := w.chunks[chunkKey{chunk.ChunkX + off[0], chunk.ChunkZ + off[1]}]
		if !ok {
			continue
		}
		w.constrainFromNeighbor(chunk, nb, off)
	}
}

// constrainFromNeighbor restricts chunk's boundary cells facing nb by
// the steepness bound against nb's already-collapsed boundary heights.
func (w *World) constrainFromNeighbor(chunk, nb *Chunk, off [2]int) {
	steep := w.Config.Steepness
	size := ChunkSize
	for i := 0; i < size; i++ {
		var myX, myZ, nbX, nbZ int
		switch {
		case off[0] == 1: // neighbor to the east; my east edge (x=size-1) borders nb's west edge (x=0)
			myX, myZ = size-1, i
			nbX, nbZ = 0, i
		case off[0] == -1:
			myX, myZ = 0, i
			nbX, nbZ = size-1, i
		case off[1] == 1:
			myX, myZ = i, size-1
			nbX, nbZ = i, 0
		default: // off[1] == -1
			myX, myZ = i, 0
			nbX, nbZ = i, size-1
		}
		nbCell := nb.Grid[nbZ][nbX]
		if !nbCell.Collapsed {
			continue
		}
		myCell := chunk.Grid[myZ][myX]
		if myCell.Collapsed {
			continue
		}
		for h := range myCell.PossibleHeights {
			if abs(h-nbCell.Height) > steep {
				delete(myCell.PossibleHeights, h)
			}
		}
	}
}

// collapseChunk runs the S·S-iteration collapse loop against one chunk,
// including the world's first-cell override.
func (w *World) collapseChunk(chunk *Chunk, rng *RNG, firstCell *bool) {
	size := ChunkSize
	total := size * size
	for iter := 0; iter < total; iter++ {
		if *firstCell && chunk.ChunkX == 0 && chunk.ChunkZ == 0 {
			*firstCell = false
			cx, cz := size/2, size/2
			w.forceCollapse(chunk, cx, cz, w.Config.WaterLevel+2)
			continue
		}
		x, z, found := w.pickMinEntropyCell(chunk)
		if !found {
			break
		}
		cell := chunk.Grid[z][x]
		if len(cell.PossibleHeights) == 0 {
			h := w.contradictionFallback(chunk, x, z)
			w.logf("terrain: contradiction at chunk (%d,%d) cell (%d,%d), falling back to height %d",
				chunk.ChunkX, chunk.ChunkZ, x, z, h)
			w.forceCollapse(chunk, x, z, h)
			continue
		}
		h := w.weightedChoice(chunk, x, z, cell, rng)
		w.forceCollapse(chunk, x, z, h)
	}
	// Step 4: anything left uncollapsed defaults to height 0.
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			cell := chunk.Grid[z][x]
			if !cell.Collapsed {
				w.forceCollapse(chunk, x, z, 0)
			}
		}
	}
}

// pickMinEntropyCell finds the lowest-entropy non-collapsed cell.
// Among the cells tied at that minimum entropy, it prefers one adjacent
// to an already-collapsed cell (in-chunk or in a resolved neighbor
// chunk), falling back to the full min-entropy set if none qualify.
// Ties are broken by fixed row-major scan order, itself part of the
// deterministic contract.
func (w *World) pickMinEntropyCell(chunk *Chunk) (int, int, bool) {
	size := ChunkSize
	minEntropy := -1
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			cell := chunk.Grid[z][x]
			if cell.Collapsed {
				continue
			}
			if minEntropy == -1 || cell.Entropy() < minEntropy {
				minEntropy = cell.Entropy()
			}
		}
	}
	if minEntropy == -1 {
		return -1, -1, false
	}

	fallbackX, fallbackZ := -1, -1
	haveFallback := false
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			cell := chunk.Grid[z][x]
			if cell.Collapsed || cell.Entropy() != minEntropy {
				continue
			}
			if !haveFallback {
				fallbackX, fallbackZ, haveFallback = x, z, true
			}
			if w.adjacentToCollapsed(chunk, x, z) {
				return x, z, true
			}
		}
	}
	return fallbackX, fallbackZ, haveFallback
}

func (w *World) adjacentToCollapsed(chunk *Chunk, x, z int) bool {
	size := ChunkSize
	for _, n := range orderedAdjacent(x, z) {
		nx, nz := n[0], n[1]
		if nx >= 0 && nx < size && nz >= 0 && nz < size {
			if chunk.Grid[nz][nx].Collapsed {
				return true
			}
			continue
		}
		// cross-chunk neighbor
		ncx, ncz := chunk.ChunkX, chunk.ChunkZ
		lx, lz := nx, nz
		if nx < 0 {
			ncx--
			lx = size - 1
		} else if nx >= size {
			ncx++
			lx = 0
		}
		if nz < 0 {
			ncz--
			lz = size - 1
		} else if nz >= size {
			ncz++
			lz = 0
		}
		if nb, ok := w.chunks[chunkKey{ncx, ncz}]; ok && nb.Grid[lz][lx].Collapsed {
			return true
		}
	}
	return false
}

// weightedChoice picks among a cell's still-possible heights, weighted
// toward continuity with its collapsed neighbors:
// weight(h) = 1 + Σ over collapsed 4-neighbors of
// max(0, continuity − |h − neighborHeight| + 1)².
func (w *World) weightedChoice(chunk *Chunk, x, z int, cell *WFGridCell, rng *RNG) int {
	neighborHeights := w.collapsedNeighborHeights(chunk, x, z)
	heights := make([]int, 0, len(cell.PossibleHeights))
	for h := range cell.PossibleHeights {
		heights = append(heights, h)
	}
	sortInts(heights)

	weights := make([]float64, len(heights))
	total := 0.0
	for i, h := range heights {
		weight := 1.0
		for _, nh := range neighborHeights {
			d := w.Config.Continuity - abs(h-nh) + 1
			if d > 0 {
				weight += float64(d * d)
			}
		}
		weights[i] = weight
		total += weight
	}
	draw := rng.NextFloat() * total
	acc := 0.0
	for i, wt := range weights {
		acc += wt
		if draw < acc {
			return heights[i]
		}
	}
	return heights[len(heights)-1]
}

func (w *World) collapsedNeighborHeights(chunk *Chunk, x, z int) []int {
	size := ChunkSize
	var out []int
	for _, n := range orderedAdjacent(x, z) {
		nx, nz := n[0], n[1]
		if nx >= 0 && nx < size && nz >= 0 && nz < size {
			if c := chunk.Grid[nz][nx]; c.Collapsed {
				out = append(out, c.Height)
			}
			continue
		}
		ncx, ncz := chunk.ChunkX, chunk.ChunkZ
		lx, lz := nx, nz
		if nx < 0 {
			ncx--
			lx = size - 1
		} else if nx >= size {
			ncx++
			lx = 0
		}
		if nz < 0 {
			ncz--
			lz = size - 1
		} else if nz >= size {
			ncz++
			lz = 0
		}
		if nb, ok := w.chunks[chunkKey{ncx, ncz}]; ok {
			if c := nb.Grid[lz][lx]; c.Collapsed {
				out = append(out, c.Height)
			}
		}
	}
	return out
}

// contradictionFallback recovers from an empty possibility set: the
// integer mean of collapsed in-chunk neighbors' heights, or
// waterLevel+1 if none are collapsed yet.
func (w *World) contradictionFallback(chunk *Chunk, x, z int) int {
	size := ChunkSize
	sum, n := 0, 0
	for _, nb := range orderedAdjacent(x, z) {
		nx, nz := nb[0], nb[1]
		if nx < 0 || nx >= size || nz < 0 || nz >= size {
			continue
		}
		if c := chunk.Grid[nz][nx]; c.Collapsed {
			sum += c.Height
			n++
		}
	}
	if n == 0 {
		return w.Config.WaterLevel + 1
	}
	return sum / n
}

// forceCollapse assigns height to (x,z), marks it collapsed, and
// intersects every non-collapsed 4-neighbor's possible heights with the
// steepness bound.
func (w *World) forceCollapse(chunk *Chunk, x, z, height int) {
	height = clamp(height, 0, w.Config.MaxHeight)
	cell := chunk.Grid[z][x]
	cell.Collapsed = true
	cell.Height = height
	cell.PossibleHeights = nil

	size := ChunkSize
	steep := w.Config.Steepness
	for _, n := range orderedAdjacent(x, z) {
		nx, nz := n[0], n[1]
		if nx < 0 || nx >= size || nz < 0 || nz >= size {
			continue
		}
		nc := chunk.Grid[nz][nx]
		if nc.Collapsed {
			continue
		}
		for h := range nc.PossibleHeights {
			if abs(h-height) > steep {
				delete(nc.PossibleHeights, h)
			}
		}
	}
}

// classifyChunk assigns tileType to every collapsed cell from its
// height and the world's water level.
func (w *World) classifyChunk(chunk *Chunk) {
	size := ChunkSize
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			cell := chunk.Grid[z][x]
			cell.TileType = ClassifyTile(cell.Height, w.Config.WaterLevel)
		}
	}
}

// sortInts sorts in place with a simple insertion sort — grids are at
// most maxHeight+1 wide, so this never needs sort.Ints's overhead.
func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}

// Chunks returns the generated chunk map. Callers must not mutate it;
// terrain chunks are written once during Generate and read-only after.
func (w *World) Chunks() map[[2]int]*Chunk {
	out := make(map[[2]int]*Chunk, len(w.chunks))
	for k, v := range w.chunks {
		out[[2]int{k.X, k.Z}] = v
	}
	return out
}

// GetHeightAt returns the height at world tile (x, z). Tiles outside
// any generated chunk are treated as water (height == waterLevel).
func (w *World) GetHeightAt(x, z int) int {
	key, lx, lz := tileToChunk(x, z)
	chunk, ok := w.chunks[key]
	if !ok {
		return w.Config.WaterLevel
	}
	return chunk.Grid[lz][lx].Height
}

// IsWaterAt reports whether the tile at (x, z) is water. Unresolved
// tiles are treated as water.
func (w *World) IsWaterAt(x, z int) bool {
	key, lx, lz := tileToChunk(x, z)
	chunk, ok := w.chunks[key]
	if !ok {
		return true
	}
	return chunk.Grid[lz][lx].TileType == TileWater
}

// TileTypeAt returns the classified tile type at (x, z).
func (w *World) TileTypeAt(x, z int) TileType {
	key, lx, lz := tileToChunk(x, z)
	chunk, ok := w.chunks[key]
	if !ok {
		return TileWater
	}
	return chunk.Grid[lz][lx].TileType
}

// ChunkAt returns the chunk at chunk coordinates (cx, cz), if generated.
func (w *World) ChunkAt(cx, cz int) (*Chunk, bool) {
	c, ok := w.chunks[chunkKey{cx, cz}]
	return c, ok
}
