package entity

import (
	"math"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/fsm"
	"github.com/milk9111/emberfall/prefabs"
)

// PlayerID is the event source/target id reserved for the player.
const PlayerID = 0

// Direction is the player's 4-way facing.
type Direction int

const (
	DirDown Direction = iota
	DirLeft
	DirRight
	DirUp
)

// Vec returns the unit vector for the facing.
func (d Direction) Vec() common.Vec2 {
	switch d {
	case DirLeft:
		return common.Vec2{X: -1}
	case DirRight:
		return common.Vec2{X: 1}
	case DirUp:
		return common.Vec2{Y: -1}
	default:
		return common.Vec2{Y: 1}
	}
}

// Intent is one frame of player input, already decoded from keys.
type Intent struct {
	MoveX, MoveY float64
	Attack       bool
	Dash         bool
	Parry        bool
}

func (in Intent) moving() bool { return in.MoveX != 0 || in.MoveY != 0 }

// PlayerStateName names a state of the player machine.
type PlayerStateName string

const (
	PlayerIdle   PlayerStateName = "idle"
	PlayerWalk   PlayerStateName = "walk"
	PlayerAttack PlayerStateName = "attack"
	PlayerDash   PlayerStateName = "dash"
	PlayerParry  PlayerStateName = "parry"
)

// DashParams is the Enter payload of the dash state.
type DashParams struct {
	DX, DY float64
}

// Target is what enemy attacks and projectiles need from the player.
type Target interface {
	Position() common.Vec2
	Alive() bool
	IsInParryWindow() bool
	IsDashing() bool
	TakeDamage(amount float64) bool
	SuccessfulParry()
	ShowDodgeText()
}

// Player is the sword-wielding hero driven by Intent each tick.
type Player struct {
	Pos       common.Vec2
	Health    *component.Health
	Direction Direction

	// DamageMultiplier scales incoming damage (difficulty).
	DamageMultiplier float64
	// AttackDamage is the base damage of one sword hit.
	AttackDamage float64

	Attacking      bool
	Dashing        bool
	Parrying       bool
	Moving         bool
	HasDealtDamage bool

	AttackTimer float64
	DashTimer   float64
	ParryTimer  float64

	AttackCooldown float64
	DashCooldown   float64
	ParryCooldown  float64
	ImmunityTimer  float64

	Anim *component.Animator

	spec *prefabs.PlayerSpec
	env  *Env
	fsm  *fsm.Machine[PlayerStateName, Intent]
}

var playerClips = []string{"idle", "walk", "attack", "dash", "parry"}

// NewPlayer builds a player at (x, y) in Idle.
func NewPlayer(spec *prefabs.PlayerSpec, env *Env, x, y float64) (*Player, error) {
	clips := clipSet(spec.Clips)
	if err := clips.Require(playerClips...); err != nil {
		return nil, err
	}
	p := &Player{
		Pos:              common.Vec2{X: x, Y: y},
		Health:           component.NewHealth(spec.Health),
		DamageMultiplier: 1,
		Anim:             component.NewAnimator(clips),
		spec:             spec,
		env:              env,
		fsm:              fsm.New[PlayerStateName, Intent](),
	}
	p.fsm.Add(PlayerIdle, &playerIdleState{p: p})
	p.fsm.Add(PlayerWalk, &playerWalkState{p: p})
	p.fsm.Add(PlayerAttack, &playerAttackState{p: p})
	p.fsm.Add(PlayerDash, &playerDashState{p: p})
	p.fsm.Add(PlayerParry, &playerParryState{p: p})
	p.change(PlayerIdle, nil)
	return p, nil
}

func (p *Player) change(name PlayerStateName, params any) {
	if err := p.fsm.Change(name, params); err != nil {
		p.env.log().WithError(err).Error("player state change")
		panic(err)
	}
}

// State returns the current state name.
func (p *Player) State() PlayerStateName { return p.fsm.Current() }

// Update advances timers, then the state machine.
func (p *Player) Update(dt float64, in Intent) {
	if !p.Alive() {
		return
	}
	p.AttackCooldown = math.Max(0, p.AttackCooldown-dt)
	p.DashCooldown = math.Max(0, p.DashCooldown-dt)
	p.ParryCooldown = math.Max(0, p.ParryCooldown-dt)
	p.ImmunityTimer = math.Max(0, p.ImmunityTimer-dt)

	p.fsm.Update(dt, in)
	p.Anim.Update(dt)
}

func (p *Player) Position() common.Vec2 { return p.Pos }

func (p *Player) Alive() bool { return p != nil && p.Health.IsAlive() }

func (p *Player) IsDashing() bool { return p.Dashing }

// IsInParryWindow is true during the early part of a parry, the window's
// last instant included.
func (p *Player) IsInParryWindow() bool {
	return p.Parrying && p.ParryTimer <= p.spec.Parry.Window
}

// TakeDamage applies a hit scaled by DamageMultiplier and rounded. Hits
// during the immunity window or after death are ignored. Returns true on the
// killing hit.
func (p *Player) TakeDamage(amount float64) bool {
	if p.ImmunityTimer > 0 || !p.Alive() {
		return false
	}
	dmg := math.Round(amount * p.DamageMultiplier)
	died := p.Health.ApplyDamage(dmg)
	p.ImmunityTimer = p.spec.ImmunityTime

	p.env.emit(component.CombatEvent{Type: component.EventDamageApplied, TargetID: PlayerID, Damage: dmg, Pos: p.Pos})
	p.env.emit(component.CombatEvent{
		Type:           component.EventCameraShake,
		TargetID:       PlayerID,
		ShakeMagnitude: p.spec.HitShake.Magnitude,
		ShakeDuration:  p.spec.HitShake.Duration,
	})
	if died {
		p.env.emit(component.CombatEvent{Type: component.EventDeath, TargetID: PlayerID, Pos: p.Pos})
		p.env.log().Info("player died")
	}
	return died
}

// StartParry enters the parry state even while the cooldown runs.
func (p *Player) StartParry() {
	if !p.Alive() {
		return
	}
	p.change(PlayerParry, nil)
}

// SuccessfulParry ends the parry early and returns to Idle.
func (p *Player) SuccessfulParry() {
	p.change(PlayerIdle, nil)
	p.env.emit(component.CombatEvent{
		Type:           component.EventCameraShake,
		TargetID:       PlayerID,
		ShakeMagnitude: p.spec.ParryShake.Magnitude,
		ShakeDuration:  p.spec.ParryShake.Duration,
	})
}

func (p *Player) ShowDodgeText() {
	p.env.emit(component.CombatEvent{Type: component.EventDodged, TargetID: PlayerID, Pos: p.Pos, Text: p.spec.DodgeText})
}

func (p *Player) Heal(amount float64) { p.Health.Heal(amount) }

// Reset revives the player at (x, y) with cleared timers.
func (p *Player) Reset(x, y float64) {
	p.Pos = common.Vec2{X: x, Y: y}
	p.Health.Revive()
	p.AttackCooldown, p.DashCooldown, p.ParryCooldown, p.ImmunityTimer = 0, 0, 0, 0
	p.Direction = DirDown
	p.change(PlayerIdle, nil)
}

// nextAction starts attack, dash or parry when requested and off cooldown.
func (p *Player) nextAction(in Intent) bool {
	switch {
	case in.Attack && p.AttackCooldown <= 0:
		p.change(PlayerAttack, nil)
	case in.Dash && p.DashCooldown <= 0:
		p.change(PlayerDash, DashParams{DX: in.MoveX, DY: in.MoveY})
	case in.Parry && p.ParryCooldown <= 0:
		p.change(PlayerParry, nil)
	default:
		return false
	}
	return true
}

func clipSet(specs map[string]prefabs.ClipSpec) component.ClipSet {
	cs := make(component.ClipSet, len(specs))
	for tag, c := range specs {
		cs[tag] = component.Clip{Frames: c.Frames, FrameTime: c.FrameTime, Loop: c.Loop}
	}
	return cs
}
