package entity

import (
	"math"

	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/prefabs"
)

type enemyIdleState struct {
	e        *Enemy
	duration float64
}

// enemyPatrolState walks a cardinal heading. Demons roll a heading on enter
// and rest after duration; knights keep theirs, re-roll every retarget
// seconds and never rest.
type enemyPatrolState struct {
	e             *Enemy
	anim          string
	rerollOnEnter bool
	duration      float64
	retarget      float64
}

type enemyChaseState struct {
	e         *Enemy
	anim      string
	loseRange float64
	optimal   float64
	tolerance float64
	backOff   bool
}

type enemyAttackState struct {
	e        *Enemy
	tags     []string
	window   prefabs.WindowSpec
	dodge    *prefabs.WindowSpec
	breakOff bool
}

type enemyHurtState struct {
	e        *Enemy
	duration float64
	stunAnim string
	timer    float64
}

type enemyDeathState struct{ e *Enemy }

func (s *enemyIdleState) Enter(any) {
	s.e.PatrolTimer = 0
	s.e.Anim.Play("idle", false)
}
func (s *enemyIdleState) Exit() {}
func (s *enemyIdleState) Update(dt float64, t Target) {
	e := s.e
	if e.distanceTo(t) <= e.DetectionRange {
		e.change(StateChase, nil)
		return
	}
	e.PatrolTimer += dt
	if e.PatrolTimer >= s.duration {
		e.change(StatePatrol, nil)
	}
}

func (s *enemyPatrolState) Enter(any) {
	e := s.e
	e.PatrolTimer = 0
	if s.rerollOnEnter {
		e.PatrolDirection = randomCardinal(e.env)
	}
	e.Anim.Play(s.anim, false)
}
func (s *enemyPatrolState) Exit() {}
func (s *enemyPatrolState) Update(dt float64, t Target) {
	e := s.e
	if e.distanceTo(t) <= e.DetectionRange {
		e.change(StateChase, nil)
		return
	}

	e.PatrolTimer += dt
	if s.retarget > 0 && e.PatrolTimer >= s.retarget {
		e.PatrolTimer = 0
		e.PatrolDirection = randomCardinal(e.env)
	}

	speed := e.EffectiveSpeed()
	if speed > 0 {
		dx := math.Cos(e.PatrolDirection) * speed * dt
		dy := math.Sin(e.PatrolDirection) * speed * dt
		if !e.moveBy(dx, dy) {
			e.PatrolDirection = randomCardinal(e.env)
		}
	}

	if s.duration > 0 && e.PatrolTimer >= s.duration {
		e.change(StateIdle, nil)
	}
}

func (s *enemyChaseState) Enter(any) { s.e.Anim.Play(s.anim, false) }
func (s *enemyChaseState) Exit()     {}
func (s *enemyChaseState) Update(dt float64, t Target) {
	e := s.e
	d := e.distanceTo(t)
	if d > e.DetectionRange*s.loseRange {
		e.change(e.baseline, nil)
		return
	}
	if d <= e.AttackRange && e.cooldownReady() {
		e.change(StateAttack, t)
		return
	}

	delta := t.Position().Sub(e.Pos)
	if delta.X >= 0 {
		e.PatrolDirection = 0
	} else {
		e.PatrolDirection = math.Pi
	}

	dir := delta.Normalized()
	speed := e.EffectiveChaseSpeed()
	switch {
	case d > s.optimal+s.tolerance:
		e.moveBy(dir.X*speed*dt, dir.Y*speed*dt)
	case s.backOff && d < s.optimal-s.tolerance:
		e.moveBy(-dir.X*speed*0.5*dt, -dir.Y*speed*0.5*dt)
	}
}

func (s *enemyAttackState) Enter(params any) {
	t, _ := params.(Target)
	s.start(t)
}
func (s *enemyAttackState) Exit() { s.e.HasDealtDamage = false }

func (s *enemyAttackState) start(t Target) {
	e := s.e
	e.HasDealtDamage = false
	e.AttackTimer = 0
	e.LastAttackTime = 0
	e.AttackTag = "attack"
	if len(s.tags) > 0 {
		e.AttackTag = s.tags[e.env.intN(len(s.tags))]
	}
	e.Anim.Play(e.AttackTag, true)
	e.Behavior.OnAttackStart(e, t)
}

func (s *enemyAttackState) Update(dt float64, t Target) {
	e := s.e
	e.AttackTimer += dt
	d := e.distanceTo(t)

	if s.breakOff && d > e.AttackRange*1.5 {
		e.change(StateChase, nil)
		return
	}

	if !e.HasDealtDamage && d <= e.AttackRange && s.window.Contains(e.AttackTimer) {
		e.HasDealtDamage = true
		dmg := e.Behavior.AttackDamage(e)
		switch {
		case t.IsInParryWindow():
			t.SuccessfulParry()
			e.showParryText()
			e.Stun()
			return
		case dmg <= 0:
			// ranged attackers hit through projectiles only
		case t.IsDashing():
			t.ShowDodgeText()
		default:
			t.TakeDamage(dmg)
		}
	}

	if s.dodge != nil && !e.HasDealtDamage && d <= e.AttackRange*1.5 &&
		s.dodge.Contains(e.AttackTimer) && t.IsDashing() {
		e.HasDealtDamage = true
		t.ShowDodgeText()
	}

	if e.AttackTimer >= e.AttackDuration {
		if d <= e.AttackRange && e.cooldownReady() {
			s.start(t)
			return
		}
		e.change(StateChase, nil)
	}
}

func (e *Enemy) showParryText() {
	if e.spec.ParryText == "" {
		return
	}
	e.env.emit(component.CombatEvent{Type: component.EventParried, SourceID: PlayerID, TargetID: e.ID, Pos: e.Pos, Text: e.spec.ParryText})
}

func (s *enemyHurtState) Enter(any) {
	s.timer = 0
	if s.e.Stunned && s.stunAnim != "" {
		s.e.Anim.Play(s.stunAnim, true)
		return
	}
	s.e.Anim.Play("hurt", true)
}
func (s *enemyHurtState) Exit() {}
func (s *enemyHurtState) Update(dt float64, t Target) {
	e := s.e
	if e.Stunned {
		e.StunTimer += dt
		if e.StunTimer < e.StunDuration {
			return
		}
		e.Stunned = false
		e.StunTimer = 0
		e.routeAfter(t)
		return
	}
	s.timer += dt
	if s.timer >= s.duration {
		e.routeAfter(t)
	}
}

func (s *enemyDeathState) Enter(any)             { s.e.Anim.Play("death", true) }
func (s *enemyDeathState) Exit()                 {}
func (s *enemyDeathState) Update(float64, Target) {}
