package system

import (
	"github.com/milk9111/emberfall/entity"
)

// TutorialStep is one lesson of the opening tutorial.
type TutorialStep int

const (
	TutorialMove TutorialStep = iota
	TutorialAttack
	TutorialDash
	TutorialParry
	TutorialKill
	TutorialDone
)

// TutorialXP is paid when the tutorial ends, finished or skipped.
const TutorialXP = 100

const (
	tutorialEnemyType   = "flying_demon"
	tutorialEnemyOffset = 100

	// the world freezes while the lesson demon's attack timer is inside
	// this range
	parryPromptFrom = 0.25
	parryPromptTo   = 0.35
)

// Tutorial walks a new player through the basic moves against a single demon
// before the arena fills.
type Tutorial struct {
	Step TutorialStep
	// Enemy is the lesson demon, spawned once the dash is done.
	Enemy *entity.Enemy
	// Frozen is set while the world waits for the parry press.
	Frozen bool

	// up, left, down, right
	moved [4]bool
}

// Active is false for a nil or finished tutorial.
func (t *Tutorial) Active() bool { return t != nil && t.Step < TutorialDone }

// Moved reports which of up, left, down and right were pressed so far.
func (t *Tutorial) Moved() [4]bool { return t.moved }

func (t *Tutorial) recordMove(in entity.Intent) {
	if in.MoveY < 0 {
		t.moved[0] = true
	}
	if in.MoveX < 0 {
		t.moved[1] = true
	}
	if in.MoveY > 0 {
		t.moved[2] = true
	}
	if in.MoveX > 0 {
		t.moved[3] = true
	}
}

// Prompt returns the heading and instruction lines of the current step.
func (t *Tutorial) Prompt() (string, []string) {
	if !t.Active() {
		return "", nil
	}
	switch t.Step {
	case TutorialMove:
		return "TUTORIAL: Movement", []string{
			"Press W to move up",
			"Press A to move left",
			"Press S to move down",
			"Press D to move right",
		}
	case TutorialAttack:
		return "TUTORIAL: Attack", []string{"Press SPACE or left click to attack"}
	case TutorialDash:
		return "TUTORIAL: Dash", []string{"Hold a direction and press SHIFT to dash"}
	case TutorialParry:
		if t.Frozen {
			return "PRESS K TO PARRY!", []string{"Perfect timing!"}
		}
		return "TUTORIAL: Parry", []string{
			"Get close to the enemy and wait for it to attack",
			"When everything stops, press K to parry!",
		}
	default:
		return "TUTORIAL: Kill Enemy", []string{"Now finish the stunned enemy for bonus XP!"}
	}
}

// StartTutorial clears the roster and begins the tutorial. Restart replays
// it from the first step.
func (w *World) StartTutorial() {
	w.tutorial = true
	w.enemies = nil
	w.chestSpawned, w.chestOpened = false, false
	w.Tutorial = &Tutorial{}
	w.log.Info("tutorial started")
}

// SkipTutorial ends the tutorial at once. The lesson demon leaves and the
// completion XP is paid as if it had been finished.
func (w *World) SkipTutorial() {
	t := w.Tutorial
	if !t.Active() {
		return
	}
	if t.Enemy != nil {
		w.RemoveEnemy(t.Enemy)
		t.Enemy = nil
	}
	w.log.Info("tutorial skipped")
	w.completeTutorial()
}

func (w *World) completeTutorial() {
	t := w.Tutorial
	t.Step = TutorialDone
	t.Frozen = false
	w.log.WithField("xp", TutorialXP).Info("tutorial complete")
	w.Progress.GainXP(TutorialXP)
	w.SpawnEnemies()
}

// holdForParry reports whether the world is frozen for the parry prompt. A
// parry press during the freeze lands the parry and stuns the demon.
func (w *World) holdForParry(in entity.Intent) bool {
	t := w.Tutorial
	if !t.Frozen {
		return false
	}
	if !in.Parry {
		return true
	}
	t.Frozen = false
	t.Step = TutorialKill
	w.player.StartParry()
	if t.Enemy != nil {
		t.Enemy.Stun()
	}
	return true
}

// advanceTutorial checks the current step against what happened this tick.
func (w *World) advanceTutorial(in entity.Intent) {
	t := w.Tutorial
	p := w.player
	switch t.Step {
	case TutorialMove:
		t.recordMove(in)
		if t.moved == [4]bool{true, true, true, true} {
			t.Step = TutorialAttack
		}
	case TutorialAttack:
		if p.Attacking {
			t.Step = TutorialDash
		}
	case TutorialDash:
		if p.Dashing {
			t.Step = TutorialParry
			w.spawnTutorialEnemy()
		}
	case TutorialParry:
		e := t.Enemy
		switch {
		case e == nil || e.Dead():
			w.completeTutorial()
		case e.Stunned:
			t.Step = TutorialKill
		case e.State() == entity.StateAttack && !e.HasDealtDamage &&
			e.AttackTimer > parryPromptFrom && e.AttackTimer < parryPromptTo:
			t.Frozen = true
		}
	case TutorialKill:
		if t.Enemy == nil || t.Enemy.Dead() {
			w.completeTutorial()
		}
	}
}

func (w *World) spawnTutorialEnemy() {
	p := w.player.Pos
	e, err := w.Factory.Create(tutorialEnemyType, p.X+tutorialEnemyOffset, p.Y, entity.Options{Level: 1})
	if err != nil {
		// with no demon the parry step completes on the next tick
		w.log.WithError(err).Error("tutorial enemy")
		return
	}
	e.StartPatrol()
	w.Tutorial.Enemy = e
	w.AddEnemy(e)
}
