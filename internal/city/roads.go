package city

import (
	"github.com/sirupsen/logrus"

	"worldforge/pkg/terrain"
)

// Road direction bits: a canonical {N=1, E=2, S=4, W=8} bitset so the
// renderer can choose mesh orientation without re-deriving it.
const (
	BitNorth uint8 = 1
	BitEast  uint8 = 2
	BitSouth uint8 = 4
	BitWest  uint8 = 8
)

func directionBit(d terrain.Direction) uint8 {
	switch d {
	case terrain.North:
		return BitNorth
	case terrain.East:
		return BitEast
	case terrain.South:
		return BitSouth
	case terrain.West:
		return BitWest
	}
	return 0
}

// RoadTile is one placed road tile and its connection bitset.
type RoadTile struct {
	X, Z           int
	Connections    uint8
	IsIntersection bool
	IsCorner       bool
	IsDeadEnd      bool
}

// RoadNetwork is the complete set of road tiles grown for one city.
type RoadNetwork struct {
	Tiles         map[[2]int]*RoadTile
	Intersections [][2]int
	DeadEnds      [][2]int
	Corners       [][2]int

	order []([2]int)
}

// newRoadNetwork returns an empty network.
func newRoadNetwork() *RoadNetwork {
	return &RoadNetwork{Tiles: make(map[[2]int]*RoadTile)}
}

func (n *RoadNetwork) tile(x, z int) *RoadTile {
	return n.Tiles[[2]int{x, z}]
}

func (n *RoadNetwork) place(x, z int) *RoadTile {
	key := [2]int{x, z}
	if t, ok := n.Tiles[key]; ok {
		return t
	}
	t := &RoadTile{X: x, Z: z}
	n.Tiles[key] = t
	n.order = append(n.order, key)
	return t
}

// connect records a mutual connection between (ax,az) and (bx,bz),
// which must be orthogonal neighbors in direction dir (from a to b).
func (n *RoadNetwork) connect(ax, az, bx, bz int, dir terrain.Direction) {
	a := n.tile(ax, az)
	b := n.tile(bx, bz)
	if a == nil || b == nil {
		return
	}
	a.Connections |= directionBit(dir)
	b.Connections |= directionBit(dir.Opposite())
}

// finalize derives IsIntersection/IsCorner/IsDeadEnd for every tile
// from its final Connections bitmask, and populates the canonical
// output lists in growth-insertion order — the one deterministic order
// available, since map iteration order is not stable.
func (n *RoadNetwork) finalize() {
	for _, key := range n.order {
		t := n.Tiles[key]
		count := bitCount(t.Connections)
		t.IsDeadEnd = count == 1
		t.IsIntersection = count >= 3
		t.IsCorner = count == 2 && !isOppositePair(t.Connections)
		switch {
		case t.IsIntersection:
			n.Intersections = append(n.Intersections, key)
		case t.IsDeadEnd:
			n.DeadEnds = append(n.DeadEnds, key)
		case t.IsCorner:
			n.Corners = append(n.Corners, key)
		}
	}
}

func bitCount(b uint8) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

func isOppositePair(b uint8) bool {
	return b == (BitNorth|BitSouth) || b == (BitEast|BitWest)
}

// roadTier bundles the tier-dependent growth parameters: branching
// depth, block spacing, and max arm length all scale with city size.
type roadTier struct {
	maxDepth     int
	blockSpacing int
	maxArmLength int
}

func tierFor(size CitySize) roadTier {
	switch size {
	case Medium:
		return roadTier{maxDepth: size.maxDepth(), blockSpacing: 4, maxArmLength: 16}
	case Large:
		return roadTier{maxDepth: size.maxDepth(), blockSpacing: 5, maxArmLength: 22}
	default:
		return roadTier{maxDepth: size.maxDepth(), blockSpacing: 3, maxArmLength: 12}
	}
}

// growthArm is one frontier entry in the FIFO growth queue.
type growthArm struct {
	x, z              int
	dir               terrain.Direction
	depth             int
	length            int
	sinceIntersection int
}

// RoadNetworkBuilder grows an orthogonal road network from a city
// center under collision and slope constraints, generalizing this
// corpus's frontier-based territory growth from "grow a blob" to "grow
// a branching grid."
type RoadNetworkBuilder struct {
	collision *terrain.CollisionService
	logger    *logrus.Entry
}

// NewRoadNetworkBuilder builds against the given collision service.
func NewRoadNetworkBuilder(collision *terrain.CollisionService, logger *logrus.Entry) *RoadNetworkBuilder {
	return &RoadNetworkBuilder{collision: collision, logger: logger}
}

// Build grows a road network from (cx, cz) for the given tier. A
// builder that cannot place the initial intersection returns an empty
// network and logs a warning.
func (b *RoadNetworkBuilder) Build(cx, cz int, size CitySize, rng *terrain.RNG) *RoadNetwork {
	network := newRoadNetwork()
	state := terrain.NewPlacementState()

	if c := b.collision.CanPlaceRoad(cx, cz, state); c.HasCollision {
		if b.logger != nil {
			b.logger.Warnf("roads: cannot place initial intersection at (%d,%d): %s", cx, cz, c.Kind)
		}
		return network
	}
	network.place(cx, cz)
	state.Roads[[2]int{cx, cz}] = true

	tier := tierFor(size)
	var queue []growthArm
	for _, dir := range []terrain.Direction{terrain.North, terrain.East, terrain.South, terrain.West} {
		queue = append(queue, growthArm{x: cx, z: cz, dir: dir, depth: 0})
	}

	for len(queue) > 0 {
		arm := queue[0]
		queue = queue[1:]
		b.growArm(arm, network, state, tier, rng, &queue)
	}

	b.recordDeadEnds(network, state)
	network.finalize()
	return network
}

// growArm extends one arm by a single tile, handling block/terminate/
// branch transitions and pushing any resulting arms onto queue.
func (b *RoadNetworkBuilder) growArm(arm growthArm, network *RoadNetwork, state *terrain.PlacementState, tier roadTier, rng *terrain.RNG, queue *[]growthArm) {
	dx, dz := arm.dir.Delta()
	nx, nz := arm.x+dx, arm.z+dz

	if c := b.collision.CanPlaceRoad(nx, nz, state); c.HasCollision {
		return
	}
	if !b.collision.IsPassable(arm.x, arm.z, nx, nz) {
		return
	}

	network.place(nx, nz)
	network.connect(arm.x, arm.z, nx, nz, arm.dir)
	state.Roads[[2]int{nx, nz}] = true

	newLength := arm.length + 1
	newSince := arm.sinceIntersection + 1

	if arm.depth >= tier.maxDepth || newLength > tier.maxArmLength {
		return
	}

	if newSince >= tier.blockSpacing {
		*queue = append(*queue, growthArm{x: nx, z: nz, dir: arm.dir, depth: arm.depth, length: newLength})

		if arm.depth+1 <= tier.maxDepth {
			p1, p2 := perpendicular(arm.dir)
			if rng.NextBoolean(0.5) {
				p1, p2 = p2, p1
			}
			for _, d := range [2]terrain.Direction{p1, p2} {
				*queue = append(*queue, growthArm{x: nx, z: nz, dir: d, depth: arm.depth + 1, length: 0})
			}
		}
		return
	}

	*queue = append(*queue, growthArm{x: nx, z: nz, dir: arm.dir, depth: arm.depth, length: newLength, sinceIntersection: newSince})
}

// perpendicular returns the two directions orthogonal to dir, in a
// fixed order (E/W before N/S) so only the PRNG draw governs which
// branches first.
func perpendicular(dir terrain.Direction) (terrain.Direction, terrain.Direction) {
	switch dir {
	case terrain.North, terrain.South:
		return terrain.East, terrain.West
	default:
		return terrain.North, terrain.South
	}
}

// recordDeadEnds appends every tile with exactly one connection bit (a
// dead end by definition) to state.DeadEnds. Build calls it on its own
// private PlacementState, which it does not return; callers that need
// dead ends for WouldBlockRoadExtension copy RoadNetwork.DeadEnds into
// their own state, as CityGenerator does.
func (b *RoadNetworkBuilder) recordDeadEnds(network *RoadNetwork, state *terrain.PlacementState) {
	for _, key := range network.order {
		t := network.Tiles[key]
		if bitCount(t.Connections) == 1 {
			state.DeadEnds = append(state.DeadEnds, key)
		}
	}
}
