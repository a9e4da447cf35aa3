package component

import "math"

const (
	// FrostbiteHitThreshold is the number of ice hits on a frozen target that
	// turns the freeze into frostbite.
	FrostbiteHitThreshold = 3

	DefaultSlowMultiplier = 0.5
)

// DamageOverTime is a burn-like effect ticking DPS once per whole second.
type DamageOverTime struct {
	Active   bool
	Duration float64
	Timer    float64
	DPS      float64
}

// Slow scales movement speed while active.
type Slow struct {
	Active          bool
	Duration        float64
	Timer           float64
	SpeedMultiplier float64
}

// Freeze immobilizes while active and counts ice hits taken while frozen.
type Freeze struct {
	Active   bool
	Duration float64
	Timer    float64
	HitCount int
}

// StatusEffects holds four independent effect slots.
type StatusEffects struct {
	Burn      DamageOverTime
	Slow      Slow
	Freeze    Freeze
	Frostbite DamageOverTime
}

// NewStatusEffects returns inactive slots with default magnitudes.
func NewStatusEffects() StatusEffects {
	return StatusEffects{
		Burn:      DamageOverTime{DPS: 2},
		Slow:      Slow{SpeedMultiplier: DefaultSlowMultiplier},
		Frostbite: DamageOverTime{DPS: 10},
	}
}

// StatusTick reports damage dealt by a status effect during one Update.
type StatusTick struct {
	Burn      float64
	Frostbite float64
}

// Total returns the summed damage of the tick.
func (t StatusTick) Total() float64 { return t.Burn + t.Frostbite }

func (s *StatusEffects) ApplyBurn(dps, duration float64) {
	s.Burn = DamageOverTime{Active: true, Duration: duration, DPS: dps}
}

func (s *StatusEffects) ApplyFrostbite(dps, duration float64) {
	s.Frostbite = DamageOverTime{Active: true, Duration: duration, DPS: dps}
}

func (s *StatusEffects) ApplySlow(duration float64) {
	s.Slow.Active = true
	s.Slow.Duration = duration
	s.Slow.Timer = 0
	if s.Slow.SpeedMultiplier <= 0 {
		s.Slow.SpeedMultiplier = DefaultSlowMultiplier
	}
}

func (s *StatusEffects) ApplyFreeze(duration float64) {
	s.Freeze.Active = true
	s.Freeze.Duration = duration
	s.Freeze.Timer = 0
}

// IceHit applies an ice hit: freezes a thawed target, otherwise refreshes the
// freeze and counts the hit. Reaching the threshold applies frostbite and
// resets the counter; escalated reports that case.
func (s *StatusEffects) IceHit(freezeDuration, frostbiteDPS, frostbiteDuration float64) (escalated bool) {
	if !s.Freeze.Active {
		s.ApplyFreeze(freezeDuration)
		return false
	}
	s.Freeze.HitCount++
	s.Freeze.Timer = 0
	if s.Freeze.HitCount >= FrostbiteHitThreshold {
		s.ApplyFrostbite(frostbiteDPS, frostbiteDuration)
		s.Freeze.HitCount = 0
		return true
	}
	return false
}

// SpeedFactor is the multiplier applied to base movement speed: zero while
// frozen regardless of slow, the slow multiplier while slowed, else one.
func (s *StatusEffects) SpeedFactor() float64 {
	if s.Freeze.Active {
		return 0
	}
	if s.Slow.Active {
		return s.Slow.SpeedMultiplier
	}
	return 1
}

// Update advances every active effect by dt and returns the damage that
// became due. Damage-over-time effects tick once per whole-second boundary
// crossed during the frame.
func (s *StatusEffects) Update(dt float64) StatusTick {
	var tick StatusTick
	tick.Burn = s.Burn.advance(dt)
	tick.Frostbite = s.Frostbite.advance(dt)

	if s.Slow.Active {
		s.Slow.Timer += dt
		if s.Slow.Timer >= s.Slow.Duration {
			s.Slow.Active = false
		}
	}

	if s.Freeze.Active {
		s.Freeze.Timer += dt
		if s.Freeze.Timer >= s.Freeze.Duration {
			s.Freeze.Active = false
			s.Freeze.HitCount = 0
		}
	}
	return tick
}

// Clear deactivates every effect.
func (s *StatusEffects) Clear() {
	s.Burn.Active = false
	s.Slow.Active = false
	s.Freeze.Active = false
	s.Freeze.HitCount = 0
	s.Frostbite.Active = false
}

func (d *DamageOverTime) advance(dt float64) float64 {
	if !d.Active {
		return 0
	}
	d.Timer += dt
	var dmg float64
	if math.Floor(d.Timer) > math.Floor(d.Timer-dt) {
		dmg = d.DPS
	}
	if d.Timer >= d.Duration {
		d.Active = false
	}
	return dmg
}
