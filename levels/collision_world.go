package levels

import (
	"github.com/jakecoffman/cp"
)

const collisionTypeSolid cp.CollisionType = 1

// CollisionWorld answers "is this pixel solid" for AI and player movement.
// Static geometry lives in a chipmunk space that is never stepped.
type CollisionWorld struct {
	level *Level
	space *cp.Space

	width  float64
	height float64
	boxes  []cp.BB
}

func NewCollisionWorld(level *Level) *CollisionWorld {
	cw := &CollisionWorld{level: level, space: cp.NewSpace()}
	if level != nil {
		cw.width, cw.height = level.PixelSize()
	}
	cw.buildTiles()
	cw.buildObjects()
	return cw
}

// IsPositionCollidable reports whether (x, y) is inside solid geometry.
// Anything outside the map counts as solid.
func (cw *CollisionWorld) IsPositionCollidable(x, y float64) bool {
	if cw == nil || cw.space == nil {
		return false
	}
	if x < 0 || y < 0 || x >= cw.width || y >= cw.height {
		return true
	}
	info := cw.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}

// Bounds returns the map size in pixels.
func (cw *CollisionWorld) Bounds() (float64, float64) {
	return cw.width, cw.height
}

// Boxes returns the merged tile rectangles, for debug drawing.
func (cw *CollisionWorld) Boxes() []cp.BB {
	return cw.boxes
}

func (cw *CollisionWorld) buildTiles() {
	lvl := cw.level
	if lvl == nil {
		return
	}
	ts := lvl.tileSize()
	for layerIdx, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height || !lvl.hasPhysics(layerIdx) {
			continue
		}
		// Greedy merge: widen each run of solid tiles, then grow it downward
		// while every tile in the next row is solid too.
		processed := make([]bool, lvl.Width*lvl.Height)
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				idx := y*lvl.Width + x
				if processed[idx] {
					continue
				}
				if layer[idx] == 0 {
					processed[idx] = true
					continue
				}

				w := 1
				for x+w < lvl.Width {
					idx2 := y*lvl.Width + x + w
					if processed[idx2] || layer[idx2] == 0 {
						break
					}
					w++
				}

				h := 1
			heightLoop:
				for y+h < lvl.Height {
					for xi := x; xi < x+w; xi++ {
						idx2 := (y+h)*lvl.Width + xi
						if processed[idx2] || layer[idx2] == 0 {
							break heightLoop
						}
					}
					h++
				}

				x0 := float64(x * ts)
				y0 := float64(y * ts)
				bb := cp.BB{L: x0, B: y0, R: x0 + float64(w*ts), T: y0 + float64(h*ts)}
				cw.addBox(bb)

				for yy := y; yy < y+h; yy++ {
					for xx := x; xx < x+w; xx++ {
						processed[yy*lvl.Width+xx] = true
					}
				}
			}
		}
	}
}

func (cw *CollisionWorld) buildObjects() {
	if cw.level == nil {
		return
	}
	for _, obj := range cw.level.Objects {
		switch obj.Type {
		case "rect":
			if obj.W <= 0 || obj.H <= 0 {
				continue
			}
			cw.addBox(cp.BB{L: obj.X, B: obj.Y, R: obj.X + obj.W, T: obj.Y + obj.H})
		case "polygon":
			if len(obj.Points) < 3 {
				continue
			}
			verts := make([]cp.Vector, 0, len(obj.Points))
			for _, p := range obj.Points {
				verts = append(verts, cp.Vector{X: obj.X + p.X, Y: obj.Y + p.Y})
			}
			// The hull fixes winding, which editors do not guarantee.
			shape := cp.NewPolyShape(cw.space.StaticBody, len(verts), verts, cp.NewTransformIdentity(), 0)
			shape.SetCollisionType(collisionTypeSolid)
			cw.space.AddShape(shape)
		}
	}
}

func (cw *CollisionWorld) addBox(bb cp.BB) {
	shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionTypeSolid)
	cw.space.AddShape(shape)
	cw.boxes = append(cw.boxes, bb)
}
