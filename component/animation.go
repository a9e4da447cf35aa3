package component

import (
	"errors"
	"fmt"
)

// ErrMissingClip is returned when a clip table lacks a tag some state plays.
var ErrMissingClip = errors.New("component: missing animation clip")

// Clip describes one animation: how many frames, how long each is shown and
// whether it wraps. Non-looping clips hold their last frame.
type Clip struct {
	Frames    int
	FrameTime float64
	Loop      bool
}

// ClipSet maps animation tags (idle, move, attack1, death, ...) to clips.
type ClipSet map[string]Clip

// Require verifies that every tag is present with at least one frame.
func (cs ClipSet) Require(tags ...string) error {
	for _, tag := range tags {
		c, ok := cs[tag]
		if !ok || c.Frames <= 0 {
			return fmt.Errorf("%w %q", ErrMissingClip, tag)
		}
	}
	return nil
}

// Animator plays clips from a ClipSet against wall-clock dt.
type Animator struct {
	Clips   ClipSet
	Current string
	Frame   int

	timer float64
}

// NewAnimator creates an animator over clips. Nothing plays until Play.
func NewAnimator(clips ClipSet) *Animator {
	return &Animator{Clips: clips}
}

// Play switches to tag and restarts it from frame zero. Playing the tag that
// is already current does nothing unless restart is set.
func (a *Animator) Play(tag string, restart bool) {
	if a == nil {
		return
	}
	if a.Current == tag && !restart {
		return
	}
	a.Current = tag
	a.Frame = 0
	a.timer = 0
}

// Update advances the current clip.
func (a *Animator) Update(dt float64) {
	if a == nil {
		return
	}
	clip, ok := a.Clips[a.Current]
	if !ok || clip.Frames <= 0 {
		return
	}
	ft := clip.FrameTime
	if ft <= 0 {
		ft = 0.2
	}
	a.timer += dt
	for a.timer >= ft {
		a.timer -= ft
		if a.Frame < clip.Frames-1 {
			a.Frame++
			continue
		}
		if clip.Loop {
			a.Frame = 0
			continue
		}
		a.timer = 0
		break
	}
}

// Finished reports whether a non-looping clip sits on its last frame.
func (a *Animator) Finished() bool {
	if a == nil {
		return false
	}
	clip, ok := a.Clips[a.Current]
	if !ok || clip.Loop {
		return false
	}
	return a.Frame >= clip.Frames-1
}
