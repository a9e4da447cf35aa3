package entity

import "github.com/milk9111/emberfall/common"

type playerIdleState struct{ p *Player }

type playerWalkState struct{ p *Player }

type playerAttackState struct{ p *Player }

type playerDashState struct {
	p   *Player
	dir common.Vec2
}

type playerParryState struct{ p *Player }

func (s *playerIdleState) Enter(any) {
	s.p.Moving = false
	s.p.Anim.Play("idle", false)
}
func (s *playerIdleState) Exit() {}
func (s *playerIdleState) Update(dt float64, in Intent) {
	if s.p.nextAction(in) {
		return
	}
	if in.moving() {
		s.p.change(PlayerWalk, nil)
	}
}

func (s *playerWalkState) Enter(any) {
	s.p.Moving = true
	s.p.Anim.Play("walk", false)
}
func (s *playerWalkState) Exit() { s.p.Moving = false }
func (s *playerWalkState) Update(dt float64, in Intent) {
	p := s.p
	if p.nextAction(in) {
		return
	}
	if !in.moving() {
		p.change(PlayerIdle, nil)
		return
	}

	// vertical input is read last and wins the facing
	if in.MoveX < 0 {
		p.Direction = DirLeft
	} else if in.MoveX > 0 {
		p.Direction = DirRight
	}
	if in.MoveY < 0 {
		p.Direction = DirUp
	} else if in.MoveY > 0 {
		p.Direction = DirDown
	}

	v := common.Vec2{X: in.MoveX, Y: in.MoveY}.Normalized().Scale(p.spec.Speed * dt)
	slide(p.env, &p.Pos, v.X, v.Y)
}

func (s *playerAttackState) Enter(any) {
	p := s.p
	p.Attacking = true
	p.HasDealtDamage = false
	p.AttackTimer = 0
	p.Anim.Play("attack", true)
	p.env.play(p.spec.Attack.Sound)
}
func (s *playerAttackState) Exit() {
	s.p.Attacking = false
	s.p.AttackCooldown = s.p.spec.Attack.Cooldown
}
func (s *playerAttackState) Update(dt float64, in Intent) {
	s.p.AttackTimer += dt
	if s.p.AttackTimer >= s.p.spec.Attack.Duration {
		s.p.change(PlayerIdle, nil)
	}
}

func (s *playerDashState) Enter(params any) {
	p := s.p
	dir := common.Vec2{}
	if dp, ok := params.(DashParams); ok {
		dir = common.Vec2{X: dp.DX, Y: dp.DY}.Normalized()
	}
	if dir == (common.Vec2{}) {
		dir = p.Direction.Vec()
	}
	s.dir = dir
	p.Dashing = true
	p.DashTimer = 0
	p.DashCooldown = p.spec.Dash.Cooldown
	p.Anim.Play("dash", true)
	p.env.play(p.spec.DashSound)
}
func (s *playerDashState) Exit() { s.p.Dashing = false }
func (s *playerDashState) Update(dt float64, in Intent) {
	p := s.p
	p.DashTimer += dt
	step := s.dir.Scale(p.spec.Dash.Speed * dt)
	if !slide(p.env, &p.Pos, step.X, step.Y) {
		p.change(PlayerIdle, nil)
		return
	}
	if p.DashTimer >= p.spec.Dash.Duration {
		p.change(PlayerIdle, nil)
	}
}

func (s *playerParryState) Enter(any) {
	s.p.Parrying = true
	s.p.ParryTimer = 0
	s.p.ParryCooldown = s.p.spec.Parry.Cooldown
	s.p.Anim.Play("parry", true)
}
func (s *playerParryState) Exit() { s.p.Parrying = false }
func (s *playerParryState) Update(dt float64, in Intent) {
	p := s.p
	p.ParryTimer += dt
	if p.ParryTimer < p.spec.Parry.Duration {
		return
	}
	if !p.env.anyStunned() {
		p.env.play(p.spec.Parry.WhiffSound)
	}
	p.change(PlayerIdle, nil)
}
