package progression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/entity"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
)

// ErrUnknownMode is returned for a difficulty name missing from the tuning.
var ErrUnknownMode = errors.New("progression: unknown difficulty mode")

// Tracker owns the player's level, XP, sword damage and chosen element.
type Tracker struct {
	Level    int
	XP       float64
	XPToNext float64
	Damage   float64
	Element  component.Element
	ModeName string

	// OnMilestone fires once for every milestone level crossed by a level-up.
	OnMilestone func(level int)
	// OnLevelUp fires after each level gained.
	OnLevelUp func(level int)

	spec   *prefabs.DifficultySpec
	mode   prefabs.ModeSpec
	player *entity.Player
	log    *logrus.Entry
}

// New creates a level-1 tracker in the named mode; an empty name selects the
// tuning default.
func New(spec *prefabs.DifficultySpec, mode string) (*Tracker, error) {
	t := &Tracker{
		Level:    1,
		XPToNext: spec.StartXPToNext,
		spec:     spec,
		log:      logger.For("progression"),
	}
	if mode == "" {
		mode = spec.Default
	}
	if err := t.SetMode(mode); err != nil {
		return nil, err
	}
	t.Damage = t.mode.BaseDamage
	return t, nil
}

// Mode returns the active mode tuning.
func (t *Tracker) Mode() prefabs.ModeSpec { return t.mode }

// SetMode switches difficulty. Damage keeps the levels already earned.
func (t *Tracker) SetMode(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	m, ok := t.spec.Modes[key]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownMode, name)
	}
	t.ModeName = key
	t.mode = m
	t.Damage = m.BaseDamage + m.DamagePerLevel*float64(t.Level-1)
	if t.player != nil {
		t.ApplyMode(t.player)
	}
	return nil
}

// ApplyMode pushes the mode onto p: max health (current health is clamped,
// not refilled), incoming damage multiplier and sword damage. The tracker
// keeps p as its heal target for level-ups.
func (t *Tracker) ApplyMode(p *entity.Player) {
	t.player = p
	if p == nil {
		return
	}
	p.Health.SetMaxHP(t.mode.MaxHealth)
	p.DamageMultiplier = t.mode.DamageTaken
	if p.DamageMultiplier <= 0 {
		p.DamageMultiplier = 1
	}
	p.AttackDamage = t.Damage
}

// SelectElement records the ability chosen from a chest.
func (t *Tracker) SelectElement(el component.Element) {
	t.Element = el
	t.log.WithField("element", el).Info("element selected")
}

// ChestReward grants the chest XP bonus.
func (t *Tracker) ChestReward() int { return t.GainXP(t.spec.ChestXP) }

// GainXP adds XP and applies every level-up it pays for; the remainder
// carries over. Returns the number of levels gained.
func (t *Tracker) GainXP(amount float64) int {
	if amount <= 0 {
		return 0
	}
	t.XP += amount
	gained := 0
	for t.XPToNext > 0 && t.XP >= t.XPToNext {
		t.XP -= t.XPToNext
		old := t.Level
		t.Level++
		gained++

		t.Damage += t.mode.DamagePerLevel
		t.XPToNext = math.Floor(t.XPToNext * t.mode.XPGrowth)
		if t.player != nil {
			t.player.Heal(t.mode.HealPerLevel)
			t.player.AttackDamage = t.Damage
		}
		t.log.WithFields(logrus.Fields{"level": t.Level, "damage": t.Damage}).Info("level up")

		if t.OnLevelUp != nil {
			t.OnLevelUp(t.Level)
		}
		for _, m := range t.spec.Milestones {
			if old < m && t.Level >= m && t.OnMilestone != nil {
				t.OnMilestone(t.Level)
			}
		}
	}
	return gained
}
