package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultTileSize = 32

type Level struct {
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	TileSize    int          `json:"tile_size"`
	Layers      [][]int      `json:"layers"`
	LayerMeta   []LayerMeta  `json:"layer_meta,omitempty"`
	Objects     []Object     `json:"objects,omitempty"`
	Spawns      []SpawnPoint `json:"spawns,omitempty"`
	PlayerSpawn *Point       `json:"player_spawn,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is a free-form collider placed in the map editor. Type is "rect"
// (X, Y, W, H) or "polygon" (Points, relative to X, Y).
type Object struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	Points []Point `json:"points,omitempty"`
}

// SpawnPoint is an enemy placement. Name keeps the map's label (e.g.
// "Demon4"); Type is the factory tag.
type SpawnPoint struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PixelSize returns the map size in pixels.
func (l *Level) PixelSize() (float64, float64) {
	ts := l.tileSize()
	return float64(l.Width * ts), float64(l.Height * ts)
}

func (l *Level) tileSize() int {
	if l.TileSize <= 0 {
		return DefaultTileSize
	}
	return l.TileSize
}

func (l *Level) hasPhysics(layer int) bool {
	return layer < len(l.LayerMeta) && l.LayerMeta[layer].Physics
}

// Parse decodes a level document and rejects empty maps.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level has invalid size %dx%d", lvl.Width, lvl.Height)
	}
	return &lvl, nil
}

// LoadLevelFromFS reads an embedded level.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Load prefers a level file on disk and falls back to the embedded copy. The
// .json extension is optional.
func Load(name string) (*Level, error) {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if data, err := os.ReadFile(filepath.Join("levels", name)); err == nil {
		return Parse(data)
	}
	return LoadLevelFromFS(name)
}
