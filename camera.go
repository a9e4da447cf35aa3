package main

import (
	"math"
	"math/rand/v2"
)

// Camera follows a world point, clamped to the level, and shakes on demand.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64

	shakeMag   float64
	shakeTimer float64
	shakeDur   float64
	jitter     func() float64
}

// NewCamera creates a camera for the given logical screen size.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		smooth:  0.15,
		jitter:  func() float64 { return rand.Float64()*2 - 1 },
	}
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	if f < 0 {
		f = 0
	}
	c.smooth = f
}

// Shake starts a shake. A weaker shake never cuts a stronger one short.
func (c *Camera) Shake(magnitude, duration float64) {
	if magnitude <= 0 || duration <= 0 {
		return
	}
	if c.shakeTimer > 0 && c.shakeMag > magnitude {
		return
	}
	c.shakeMag = magnitude
	c.shakeTimer = duration
	c.shakeDur = duration
}

// Shaking reports whether a shake is still running.
func (c *Camera) Shaking() bool { return c.shakeTimer > 0 }

// ViewTopLeft returns the world-space top-left of the current view, shake
// included.
func (c *Camera) ViewTopLeft() (float64, float64) {
	x := c.PosX - float64(c.screenW)/2.0
	y := c.PosY - float64(c.screenH)/2.0
	if c.shakeTimer > 0 {
		// linear falloff over the shake
		m := c.shakeMag * c.shakeTimer / c.shakeDur
		x += math.Round(c.jitter() * m)
		y += math.Round(c.jitter() * m)
	}
	return x, y
}

// Update moves the camera toward the target and runs down any shake.
func (c *Camera) Update(dt, targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.PosX = math.Round(c.PosX)
	c.PosY = math.Round(c.PosY)
	c.clampToWorld()

	if c.shakeTimer > 0 {
		c.shakeTimer = math.Max(0, c.shakeTimer-dt)
	}
}

// SnapTo immediately centers the camera on (x, y), clamped to the world.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = math.Round(x)
	c.PosY = math.Round(y)
	c.clampToWorld()
}

func (c *Camera) clampToWorld() {
	halfW := float64(c.screenW) / 2.0
	halfH := float64(c.screenH) / 2.0
	if c.worldW > 0 {
		if c.worldW-halfW < halfW {
			// world smaller than view: center on world
			c.PosX = c.worldW / 2.0
		} else {
			c.PosX = clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH-halfH < halfH {
			c.PosY = c.worldH / 2.0
		} else {
			c.PosY = clamp(c.PosY, halfH, c.worldH-halfH)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
