package terrain

// PlacementState is the mutable view of what's already been placed that
// a collision query checks against — road tiles so far for one city,
// building footprints so far for one city. CollisionService itself is
// stateless; state flows in per call, the way this corpus's map
// generator threads a territory-in-progress through each placement
// check rather than owning it.
type PlacementState struct {
	Roads     map[[2]int]bool
	DeadEnds  [][2]int
	Buildings map[[2]int]bool
}

// NewPlacementState returns an empty state ready for one city's road and
// building placement.
func NewPlacementState() *PlacementState {
	return &PlacementState{Roads: make(map[[2]int]bool), Buildings: make(map[[2]int]bool)}
}

// CollisionService answers bounds/water/slope/overlap/adjacency queries
// against a generated World and a configured bounds rectangle. It holds
// no placement state of its own.
type CollisionService struct {
	World  *World
	Bounds Bounds
}

// NewCollisionService builds a service bound to world and the given map
// bounds.
func NewCollisionService(world *World, bounds Bounds) *CollisionService {
	return &CollisionService{World: world, Bounds: bounds}
}

// CanPlaceRoad reports whether a road tile may be placed at (x, z)
// given state.
func (s *CollisionService) CanPlaceRoad(x, z int, state *PlacementState) Collision {
	if !s.Bounds.Contains(x, z) {
		return collide(CollisionBounds, "out of map bounds")
	}
	if s.World.IsWaterAt(x, z) {
		return collide(CollisionWater, "tile is water")
	}
	if state != nil && state.Roads[[2]int{x, z}] {
		return collide(CollisionRoad, "tile already has a road")
	}
	return Ok
}

// CanPlaceBuilding reports whether a building tile may occupy (x, z)
// given state and the buildings placed so far.
func (s *CollisionService) CanPlaceBuilding(x, z int, state *PlacementState) Collision {
	if !s.Bounds.Contains(x, z) {
		return collide(CollisionBounds, "out of map bounds")
	}
	if s.World.IsWaterAt(x, z) {
		return collide(CollisionWater, "tile is water")
	}
	if state != nil && state.Roads[[2]int{x, z}] {
		return collide(CollisionRoad, "tile occupied by a road")
	}
	if state != nil && state.Buildings[[2]int{x, z}] {
		return collide(CollisionBuilding, "tile occupied by another building")
	}
	return Ok
}

// ValidateBuildingTerrain checks a width×depth footprint anchored at
// (x, z): the four corners must have max-min height ≤ 1 and none may be
// water.
func (s *CollisionService) ValidateBuildingTerrain(x, z, width, depth int) Collision {
	corners := [4][2]int{
		{x, z},
		{x + width - 1, z},
		{x, z + depth - 1},
		{x + width - 1, z + depth - 1},
	}
	minH, maxH := 0, 0
	for i, c := range corners {
		if s.World.IsWaterAt(c[0], c[1]) {
			return collide(CollisionWater, "footprint corner is water")
		}
		h := s.World.GetHeightAt(c[0], c[1])
		if i == 0 {
			minH, maxH = h, h
			continue
		}
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	if maxH-minH > 1 {
		return collide(CollisionTerrain, "footprint is not flat enough")
	}
	return Ok
}

// IsPassable reports whether moving from a to b crosses a slope of at
// most one unit.
func (s *CollisionService) IsPassable(ax, az, bx, bz int) bool {
	return abs(s.World.GetHeightAt(ax, az)-s.World.GetHeightAt(bx, bz)) <= 1
}

// IsBuildableLand reports whether `to` is dry land reachable from `from`
// by a passable step.
func (s *CollisionService) IsBuildableLand(fromX, fromZ, toX, toZ int) bool {
	return !s.World.IsWaterAt(toX, toZ) && s.IsPassable(fromX, fromZ, toX, toZ)
}

// CheckRoadOverlap walks the integer tiles of the segment start→end
// (straight or diagonal, by max-delta interpolation) and returns the
// first collision encountered, else Ok.
func (s *CollisionService) CheckRoadOverlap(start, end [2]int, state *PlacementState) Collision {
	for _, t := range walkSegment(start, end) {
		if c := s.CanPlaceRoad(t[0], t[1], state); c.HasCollision {
			return c
		}
	}
	return Ok
}

// ValidateRoadSegment is a bounds check plus CheckRoadOverlap.
func (s *CollisionService) ValidateRoadSegment(start, end [2]int, state *PlacementState) Collision {
	if !s.Bounds.Contains(start[0], start[1]) || !s.Bounds.Contains(end[0], end[1]) {
		return collide(CollisionBounds, "segment endpoint out of bounds")
	}
	return s.CheckRoadOverlap(start, end, state)
}

// walkSegment returns every integer tile from start to end inclusive,
// stepping by sign(dx)/sign(dz) each tick (max-delta interpolation), so
// both straight and diagonal segments are covered one tile at a time.
func walkSegment(start, end [2]int) [][2]int {
	dx := end[0] - start[0]
	dz := end[1] - start[1]
	steps := abs(dx)
	if abs(dz) > steps {
		steps = abs(dz)
	}
	if steps == 0 {
		return [][2]int{start}
	}
	sx, sz := sign(dx), sign(dz)
	out := make([][2]int, 0, steps+1)
	x, z := start[0], start[1]
	out = append(out, [2]int{x, z})
	for i := 0; i < steps; i++ {
		x += sx
		z += sz
		out = append(out, [2]int{x, z})
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// WouldBlockRoadExtension reports whether some dead end in state lies
// orthogonally within Euclidean distance ≤ 2 of (x, z).
func (s *CollisionService) WouldBlockRoadExtension(x, z int, state *PlacementState) bool {
	if state == nil {
		return false
	}
	for _, d := range state.DeadEnds {
		dx := d[0] - x
		dz := d[1] - z
		if (dx == 0 || dz == 0) && dx*dx+dz*dz <= 4 {
			return true
		}
	}
	return false
}

// IsAdjacentToRoad checks the four orthogonal neighbors of (x, z) for an
// existing road tile.
func (s *CollisionService) IsAdjacentToRoad(x, z int, state *PlacementState) bool {
	if state == nil {
		return false
	}
	for _, n := range s.GetAdjacentPositions(x, z) {
		if state.Roads[n] {
			return true
		}
	}
	return false
}

// GetAdjacentPositions returns the four orthogonal neighbors of (x, z)
// in the fixed order E, W, S, N that the determinism contract requires.
func (s *CollisionService) GetAdjacentPositions(x, z int) [4][2]int {
	return [4][2]int{
		{x + 1, z},
		{x - 1, z},
		{x, z + 1},
		{x, z - 1},
	}
}
