package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/entity"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
	"github.com/milk9111/emberfall/progression"
)

// Roster is the read side of the world the combat system works on.
type Roster interface {
	Player() *entity.Player
	Enemies() []*entity.Enemy
}

// Hit describes one enemy struck by a player swing.
type Hit struct {
	EnemyID int
	Damage  float64
	Crit    bool
	Parry   bool
	Element component.Element
	Killed  bool
}

// CombatSystem resolves player swings against the roster and drives the
// parry feedback banner. It owns no entities.
type CombatSystem struct {
	Kills int

	roster   Roster
	progress *progression.Tracker
	sfx      entity.SFXPlayer
	spec     *prefabs.PlayerSpec
	log      *logrus.Entry

	feedbackActive bool
	feedbackTimer  float64
}

// NewCombatSystem wires the system and subscribes it to enemy parry
// successes on events.
func NewCombatSystem(roster Roster, spec *prefabs.PlayerSpec, progress *progression.Tracker, sfx entity.SFXPlayer, events *component.CombatEventEmitter) *CombatSystem {
	c := &CombatSystem{
		roster:   roster,
		progress: progress,
		sfx:      sfx,
		spec:     spec,
		log:      logger.For("combat"),
	}
	events.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventParrySuccess {
			c.ShowParrySuccess()
		}
	})
	return c
}

// Reset starts a new run on progress: kills and the banner are cleared.
func (c *CombatSystem) Reset(progress *progression.Tracker) {
	c.progress = progress
	c.Kills = 0
	c.feedbackActive = false
	c.feedbackTimer = 0
}

// Update advances the feedback banner and lands the player's swing once per
// attack while the attack timer is inside the active window.
func (c *CombatSystem) Update(dt float64) {
	if c.feedbackActive {
		c.feedbackTimer += dt
		if c.feedbackTimer >= c.spec.Parry.FeedbackDuration {
			c.feedbackActive = false
			c.feedbackTimer = 0
		}
	}

	p := c.roster.Player()
	if !p.Alive() || !p.Attacking || p.HasDealtDamage {
		return
	}
	if c.spec.Attack.ActiveWindow.Contains(p.AttackTimer) {
		c.PerformAttack()
		p.HasDealtDamage = true
	}
}

// PerformAttack strikes every live enemy within sword range.
func (c *CombatSystem) PerformAttack() []Hit {
	p := c.roster.Player()
	if !p.Alive() {
		return nil
	}
	atk := c.spec.Attack
	parry := p.Parrying && p.IsInParryWindow()
	el := component.ElementNone
	if c.progress != nil {
		el = c.progress.Element
	}

	var hits []Hit
	for _, e := range c.roster.Enemies() {
		if e == nil || e.Dead() || common.Dist(p.Pos, e.Pos) > atk.Range {
			continue
		}
		hit := Hit{EnemyID: e.ID, Damage: p.AttackDamage, Element: el, Parry: parry}
		if e.Stunned {
			hit.Damage *= atk.StunMultiplier
			hit.Crit = true
		}
		if parry {
			hit.Damage *= atk.ParryMultiplier
			c.activateFeedback()
		}
		if c.sfx != nil && atk.HitSound.Name != "" {
			c.sfx.PlaySFX(atk.HitSound.Name, atk.HitSound.Volume)
		}

		hit.Killed = e.TakeDamage(hit.Damage, el, parry)
		if hit.Killed {
			c.Kills++
			if c.progress != nil {
				c.progress.GainXP(e.XPDrop)
			}
			c.log.WithFields(logrus.Fields{"enemy": e.ID, "type": e.Type, "xp": e.XPDrop}).Debug("enemy killed")
		}
		hits = append(hits, hit)
	}
	return hits
}

// ShowParrySuccess restarts the banner and plays the parry sound.
func (c *CombatSystem) ShowParrySuccess() {
	c.activateFeedback()
	if c.sfx != nil && c.spec.Parry.SuccessSound.Name != "" {
		c.sfx.PlaySFX(c.spec.Parry.SuccessSound.Name, c.spec.Parry.SuccessSound.Volume)
	}
}

func (c *CombatSystem) activateFeedback() {
	c.feedbackActive = true
	c.feedbackTimer = 0
}

// Feedback returns the banner text and its remaining opacity in [0, 1].
// ok is false when no banner is showing.
func (c *CombatSystem) Feedback() (text string, alpha float64, ok bool) {
	if !c.feedbackActive {
		return "", 0, false
	}
	d := c.spec.Parry.FeedbackDuration
	if d <= 0 {
		return c.spec.Parry.FeedbackText, 1, true
	}
	return c.spec.Parry.FeedbackText, common.Clamp(1-c.feedbackTimer/d, 0, 1), true
}
