package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridLevel(rows ...string) *Level {
	lvl := &Level{Width: len(rows[0]), Height: len(rows), TileSize: 10, LayerMeta: []LayerMeta{{Physics: true}}}
	layer := make([]int, 0, lvl.Width*lvl.Height)
	for _, row := range rows {
		for _, c := range row {
			if c == '#' {
				layer = append(layer, 1)
			} else {
				layer = append(layer, 0)
			}
		}
	}
	lvl.Layers = [][]int{layer}
	return lvl
}

func TestCollisionWorldTiles(t *testing.T) {
	cw := NewCollisionWorld(gridLevel(
		"#####",
		"#...#",
		"#.#.#",
		"#...#",
		"#####",
	))

	assert.True(t, cw.IsPositionCollidable(5, 5))
	assert.False(t, cw.IsPositionCollidable(15, 15))
	assert.True(t, cw.IsPositionCollidable(25, 25))
	assert.False(t, cw.IsPositionCollidable(35, 35))
	assert.True(t, cw.IsPositionCollidable(45, 25))

	w, h := cw.Bounds()
	assert.Equal(t, 50.0, w)
	assert.Equal(t, 50.0, h)
}

func TestCollisionWorldMergesRows(t *testing.T) {
	cw := NewCollisionWorld(gridLevel(
		"###",
		"###",
		"...",
	))
	require.Len(t, cw.Boxes(), 1)
	assert.Equal(t, 30.0, cw.Boxes()[0].R)
	assert.Equal(t, 20.0, cw.Boxes()[0].T)
}

func TestCollisionWorldOutOfBoundsIsSolid(t *testing.T) {
	cw := NewCollisionWorld(gridLevel("...", "..."))
	assert.True(t, cw.IsPositionCollidable(-1, 5))
	assert.True(t, cw.IsPositionCollidable(5, -0.5))
	assert.True(t, cw.IsPositionCollidable(30, 5))
	assert.False(t, cw.IsPositionCollidable(15, 5))
}

func TestCollisionWorldIgnoresNonPhysicsLayers(t *testing.T) {
	lvl := gridLevel("###")
	lvl.LayerMeta = []LayerMeta{{Physics: false}}
	cw := NewCollisionWorld(lvl)
	assert.False(t, cw.IsPositionCollidable(15, 5))
}

func TestCollisionWorldObjects(t *testing.T) {
	lvl := gridLevel("..........", "..........", "..........", "..........", "..........")
	lvl.Objects = []Object{
		{Type: "rect", X: 10, Y: 10, W: 20, H: 10},
		{Type: "polygon", X: 60, Y: 10, Points: []Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 15, Y: 30}}},
	}
	cw := NewCollisionWorld(lvl)

	assert.True(t, cw.IsPositionCollidable(20, 15))
	assert.False(t, cw.IsPositionCollidable(20, 25))
	assert.True(t, cw.IsPositionCollidable(75, 15))
	assert.False(t, cw.IsPositionCollidable(62, 35))
}

func TestLoadEmbeddedArena(t *testing.T) {
	lvl, err := LoadLevelFromFS("arena.json")
	require.NoError(t, err)
	assert.Equal(t, 40, lvl.Width)
	require.NotNil(t, lvl.PlayerSpawn)
	assert.NotEmpty(t, lvl.Spawns)

	cw := NewCollisionWorld(lvl)
	assert.False(t, cw.IsPositionCollidable(lvl.PlayerSpawn.X, lvl.PlayerSpawn.Y))
	assert.True(t, cw.IsPositionCollidable(16, 16))
}

func TestParseRejectsEmptyLevel(t *testing.T) {
	_, err := Parse([]byte(`{"width": 0, "height": 3}`))
	assert.Error(t, err)
	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestLoadAddsExtension(t *testing.T) {
	lvl, err := Load("arena")
	require.NoError(t, err)
	assert.Equal(t, 30, lvl.Height)

	_, err = Load("missing")
	assert.Error(t, err)
}
