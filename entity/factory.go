package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/fsm"
	"github.com/milk9111/emberfall/prefabs"
)

var typeAliases = map[string]string{
	"evilwizard":  "wizard",
	"evil_wizard": "wizard",
}

// Options tweak a single spawn.
type Options struct {
	// Level fixes the enemy level; zero rolls one inside the spec range.
	Level            int
	IgnoreCollisions bool
}

// Factory builds enemies from tuning. It hands out entity ids.
type Factory struct {
	enemies map[string]prefabs.EnemySpec
	env     *Env
	nextID  int
}

// NewFactory returns a factory over spec. Ids start right after PlayerID.
func NewFactory(spec *prefabs.EnemiesSpec, env *Env) *Factory {
	f := &Factory{enemies: map[string]prefabs.EnemySpec{}, env: env, nextID: PlayerID + 1}
	if spec != nil {
		f.SetSpec(spec)
	}
	return f
}

// SetSpec swaps the tuning used for future spawns.
func (f *Factory) SetSpec(spec *prefabs.EnemiesSpec) {
	m := make(map[string]prefabs.EnemySpec, len(spec.Enemies))
	for tag, s := range spec.Enemies {
		m[strings.ToLower(tag)] = s
	}
	f.enemies = m
}

// Resolve maps a type tag to its canonical key and spec.
func (f *Factory) Resolve(typ string) (string, prefabs.EnemySpec, error) {
	key := strings.ToLower(strings.TrimSpace(typ))
	if alias, ok := typeAliases[key]; ok {
		key = alias
	}
	spec, ok := f.enemies[key]
	if !ok {
		return "", prefabs.EnemySpec{}, fmt.Errorf("%w %q", ErrUnknownEnemyType, typ)
	}
	return key, spec, nil
}

// Create builds an enemy of the given type at (x, y). The enemy starts
// in its kind's resting state.
func (f *Factory) Create(typ string, x, y float64, opts Options) (*Enemy, error) {
	key, spec, err := f.Resolve(typ)
	if err != nil {
		return nil, err
	}
	kind := Kind(spec.Kind)

	clips := clipSet(spec.Clips)
	if err := clips.Require(requiredClips(kind, spec)...); err != nil {
		return nil, fmt.Errorf("enemy %s: %w", key, err)
	}

	level := opts.Level
	if level <= 0 {
		level = spec.MinLevel
		if spec.MaxLevel > spec.MinLevel {
			level += f.env.intN(spec.MaxLevel - spec.MinLevel + 1)
		}
	}

	specCopy := spec
	e := &Enemy{
		ID:               f.nextID,
		Type:             key,
		Kind:             kind,
		Level:            level,
		Pos:              common.Vec2{X: x, Y: y},
		Health:           component.NewHealth(spec.Health.At(level)),
		XPDrop:           spec.XP.At(level),
		Speed:            spec.Speed,
		ChaseSpeed:       spec.ChaseSpeed,
		AttackRange:      spec.AttackRange,
		DetectionRange:   spec.DetectionRange,
		AttackDuration:   spec.AttackDuration,
		AttackCooldown:   spec.AttackCooldown,
		Status:           component.NewStatusEffects(),
		StunDuration:     spec.StunDuration,
		PatrolDirection:  randomCardinal(f.env),
		PatrolDuration:   spec.PatrolDuration,
		IgnoreCollisions: opts.IgnoreCollisions,
		Anim:             component.NewAnimator(clips),
		spec:             &specCopy,
		env:              f.env,
		fsm:              fsm.New[EnemyStateName, Target](),
	}
	if spec.Elements.SlowMultiplier > 0 {
		e.Status.Slow.SpeedMultiplier = spec.Elements.SlowMultiplier
	}
	f.nextID++

	switch kind {
	case KindKnight:
		if spec.Block == nil {
			return nil, fmt.Errorf("enemy %s: knight needs a block section", key)
		}
		e.Behavior = knightBehavior{block: *spec.Block}
	case KindWizard:
		if spec.Fireball == nil {
			return nil, fmt.Errorf("enemy %s: wizard needs a fireball section", key)
		}
		e.Behavior = &wizardBehavior{spec: *spec.Fireball}
	case KindMelee:
		e.Behavior = meleeBehavior{}
	default:
		return nil, fmt.Errorf("%w %q (kind %q)", ErrUnknownEnemyType, typ, spec.Kind)
	}

	registerStates(e, &specCopy)
	e.change(e.baseline, nil)
	e.logger().WithField("level", level).Debug("spawned")
	return e, nil
}

func requiredClips(kind Kind, spec prefabs.EnemySpec) []string {
	switch kind {
	case KindKnight:
		return append([]string{"walk", "run", "defend", "hurt", "death"}, spec.AttackTags...)
	default:
		return []string{"idle", "move", "attack", "hurt", "death"}
	}
}

func registerStates(e *Enemy, spec *prefabs.EnemySpec) {
	lose := spec.LoseRangeFactor
	if lose <= 0 {
		lose = 1.5
	}
	hurt := &enemyHurtState{e: e, duration: spec.HurtDuration}
	attack := &enemyAttackState{e: e, tags: spec.AttackTags, window: spec.DamageWindow, dodge: spec.DodgeWindow}

	if e.Kind == KindKnight {
		e.baseline = StatePatrol
		e.fsm.Add(StatePatrol, &enemyPatrolState{e: e, anim: "walk", retarget: spec.RetargetInterval})
		e.fsm.Add(StateChase, &enemyChaseState{e: e, anim: "run", loseRange: lose, optimal: spec.OptimalDistance})
		e.fsm.Add(StateBlock, &knightBlockState{e: e, block: *spec.Block})
		hurt.stunAnim = "defend"
	} else {
		e.baseline = StateIdle
		attack.breakOff = true
		e.fsm.Add(StateIdle, &enemyIdleState{e: e, duration: spec.IdleDuration})
		e.fsm.Add(StatePatrol, &enemyPatrolState{e: e, anim: "move", rerollOnEnter: true, duration: spec.PatrolDuration})
		e.fsm.Add(StateChase, &enemyChaseState{
			e: e, anim: "move", loseRange: lose,
			optimal: spec.OptimalDistance, tolerance: spec.DistanceTolerance, backOff: spec.BackOff,
		})
	}
	e.fsm.Add(StateAttack, attack)
	e.fsm.Add(StateHurt, hurt)
	e.fsm.Add(StateDeath, &enemyDeathState{e: e})
}
