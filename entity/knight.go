package entity

import (
	"math"

	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/prefabs"
)

// knightBehavior adds random blocking and punishes parried hits.
type knightBehavior struct {
	block prefabs.BlockSpec
}

func (knightBehavior) Kind() Kind { return KindKnight }

// Intercept resamples the block roll on every hit that is not a parry. A
// stunned knight still rolls, and a successful block ends the stun.
func (k knightBehavior) Intercept(e *Enemy, amount float64, parried bool) (float64, bool) {
	if parried {
		mult := k.block.ParryMultiplier
		if mult <= 0 {
			mult = 1.5
		}
		return math.Floor(amount * mult), false
	}
	if !e.Blocking && e.env.float64() < k.block.Chance {
		e.change(StateBlock, nil)
		return 0, true
	}
	return amount, false
}

func (knightBehavior) AttackDamage(e *Enemy) float64 { return e.spec.Damage.At(e.Level) }

func (knightBehavior) OnAttackStart(e *Enemy, target Target) { e.env.play(e.spec.AttackSound) }

func (knightBehavior) Update(*Enemy, float64, Target) {}

type knightBlockState struct {
	e     *Enemy
	block prefabs.BlockSpec
	timer float64
}

func (s *knightBlockState) Enter(any) {
	e := s.e
	s.timer = 0
	// a block breaks a stun
	e.Stunned = false
	e.StunTimer = 0
	e.Blocking = true
	e.Anim.Play("defend", true)
	e.env.play(s.block.Sound)
	e.env.emit(component.CombatEvent{Type: component.EventBlocked, SourceID: e.ID, TargetID: e.ID, Pos: e.Pos, Text: s.block.Text})
}
func (s *knightBlockState) Exit() { s.e.Blocking = false }
func (s *knightBlockState) Update(dt float64, t Target) {
	s.timer += dt
	if s.timer >= s.block.Duration {
		s.e.routeAfter(t)
	}
}
