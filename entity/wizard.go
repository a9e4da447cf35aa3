package entity

import (
	"math"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/prefabs"
)

// Fireball is a wizard projectile. It flies in a straight line and ignores
// level geometry.
type Fireball struct {
	Pos      common.Vec2
	Vel      common.Vec2
	Lifetime float64
}

// wizardBehavior attacks at range: no contact damage, one fireball per
// attack instance.
type wizardBehavior struct {
	spec      prefabs.FireballSpec
	fireballs []*Fireball
}

func (*wizardBehavior) Kind() Kind { return KindWizard }

func (*wizardBehavior) Intercept(e *Enemy, amount float64, parried bool) (float64, bool) {
	return amount, false
}

func (*wizardBehavior) AttackDamage(*Enemy) float64 { return 0 }

func (w *wizardBehavior) OnAttackStart(e *Enemy, target Target) {
	e.env.play(e.spec.AttackSound)
	if target == nil || !target.Alive() {
		return
	}
	delta := target.Position().Sub(e.Pos)
	if math.Abs(delta.X) > math.Abs(delta.Y)*0.5 {
		if delta.X >= 0 {
			e.PatrolDirection = 0
		} else {
			e.PatrolDirection = math.Pi
		}
	}
	w.fireballs = append(w.fireballs, &Fireball{
		Pos:      e.Pos,
		Vel:      delta.Normalized().Scale(w.spec.Speed),
		Lifetime: w.spec.Lifetime,
	})
	e.env.emit(component.CombatEvent{Type: component.EventProjectile, SourceID: e.ID, Pos: e.Pos})
}

func (w *wizardBehavior) Update(e *Enemy, dt float64, target Target) {
	damage := w.spec.Damage + w.spec.DamagePerLevel*float64(e.Level)
	kept := w.fireballs[:0]
	for _, fb := range w.fireballs {
		fb.Pos = fb.Pos.Add(fb.Vel.Scale(dt))
		fb.Lifetime -= dt

		if target != nil && target.Alive() && common.Dist(fb.Pos, target.Position()) <= w.spec.HitRadius {
			if target.IsDashing() {
				target.ShowDodgeText()
			} else {
				target.TakeDamage(damage)
			}
			continue
		}
		if fb.Lifetime <= 0 || w.outOfBounds(fb.Pos) {
			continue
		}
		kept = append(kept, fb)
	}
	for i := len(kept); i < len(w.fireballs); i++ {
		w.fireballs[i] = nil
	}
	w.fireballs = kept
}

func (w *wizardBehavior) outOfBounds(p common.Vec2) bool {
	lo, hi := w.spec.BoundsMin, w.spec.BoundsMax
	return p.X < lo || p.X > hi || p.Y < lo || p.Y > hi
}

// Fireballs returns the live projectiles of a wizard, or nil for other kinds.
func (e *Enemy) Fireballs() []*Fireball {
	if w, ok := e.Behavior.(*wizardBehavior); ok {
		return w.fireballs
	}
	return nil
}
