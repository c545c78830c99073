package terrain

import "testing"

func TestClassifyTileBands(t *testing.T) {
	water := 5
	cases := []struct {
		height int
		want   TileType
	}{
		{5, TileWater},
		{0, TileWater},
		{6, TileSand},
		{7, TileGrass},
		{8, TileGrass},
		{10, TileHill},
		{11, TileHill},
		{15, TileMountain},
		{16, TileMountain},
		{22, TilePeak},
		{23, TilePeak},
		{100, TilePeak},
	}
	for _, c := range cases {
		if got := ClassifyTile(c.height, water); got != c.want {
			t.Errorf("ClassifyTile(%d, %d) = %v, want %v", c.height, water, got, c.want)
		}
	}
}

func TestDirectionDeltaAndOpposite(t *testing.T) {
	for _, d := range []Direction{North, East, South, West} {
		dx, dz := d.Delta()
		odx, odz := d.Opposite().Delta()
		if dx != -odx || dz != -odz {
			t.Errorf("direction %v and its opposite %v do not cancel", d, d.Opposite())
		}
	}
}

func TestTileToChunkRoundTrip(t *testing.T) {
	cases := [][2]int{{0, 0}, {7, 7}, {8, 0}, {-1, 0}, {-8, -8}, {-9, 5}}
	for _, c := range cases {
		key, lx, lz := tileToChunk(c[0], c[1])
		if lx < 0 || lx >= ChunkSize || lz < 0 || lz >= ChunkSize {
			t.Fatalf("tileToChunk(%d,%d) local offset out of range: (%d,%d)", c[0], c[1], lx, lz)
		}
		gotX := key.X*ChunkSize + lx
		gotZ := key.Z*ChunkSize + lz
		if gotX != c[0] || gotZ != c[1] {
			t.Errorf("tileToChunk(%d,%d) round-trip failed: got (%d,%d)", c[0], c[1], gotX, gotZ)
		}
	}
}

func TestOrderedAdjacentFixedOrder(t *testing.T) {
	got := orderedAdjacent(2, 3)
	want := [4][2]int{{3, 3}, {1, 3}, {2, 4}, {2, 2}}
	if got != want {
		t.Errorf("orderedAdjacent(2,3) = %v, want %v", got, want)
	}
}
