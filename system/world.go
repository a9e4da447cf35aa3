package system

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/entity"
	"github.com/milk9111/emberfall/levels"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
	"github.com/milk9111/emberfall/progression"
)

// SFXEvent is a sound request queued for the host.
type SFXEvent struct {
	Name   string
	Volume float64
}

// World owns the level, the player, the enemy roster and the systems that
// act on them, and fixes the order they run in each tick.
type World struct {
	Level     *levels.Level
	Collision *levels.CollisionWorld
	Tuning    *prefabs.Tuning
	Env       *entity.Env
	Factory   *entity.Factory
	Combat    *CombatSystem
	Progress  *progression.Tracker
	Spawner   *Spawner

	// Tutorial is nil unless StartTutorial was called.
	Tutorial *Tutorial
	// OnLevelUp fires after each level gained in the current run.
	OnLevelUp func(level int)

	player  *entity.Player
	enemies []*entity.Enemy
	sfx     []SFXEvent
	log     *logrus.Entry

	tutorial     bool
	chestSpawned bool
	chestOpened  bool
}

// NewWorld loads tuning and the named level and builds a world on them.
func NewWorld(levelName, mode string) (*World, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelName, err)
	}
	return NewWorldFrom(lvl, tuning, mode)
}

// NewWorldFrom builds a world from an already loaded level and tuning. The
// player stands on the level's player spawn and the first wave is spawned.
func NewWorldFrom(lvl *levels.Level, tuning *prefabs.Tuning, mode string) (*World, error) {
	if lvl == nil {
		return nil, fmt.Errorf("world: level is nil")
	}
	w := &World{
		Level:     lvl,
		Collision: levels.NewCollisionWorld(lvl),
		Tuning:    tuning,
		log:       logger.For("world"),
	}
	w.Env = entity.NewEnv(w.Collision, w)
	w.Env.AnyStunned = w.AnyStunned

	x, y := w.playerSpawn()
	player, err := entity.NewPlayer(tuning.Player, w.Env, x, y)
	if err != nil {
		return nil, fmt.Errorf("world: player: %w", err)
	}
	w.player = player
	if err := w.newProgress(mode); err != nil {
		return nil, err
	}

	w.Factory = entity.NewFactory(tuning.Enemies, w.Env)
	w.Spawner, err = NewSpawner(w.Factory, DefaultSpawnScript)
	if err != nil {
		return nil, err
	}
	w.Combat = NewCombatSystem(w, tuning.Player, w.Progress, w, w.Env.Events)
	w.SpawnEnemies()
	return w, nil
}

// newProgress starts a level-1 tracker in mode, applies it to the player and
// hooks its level-ups to the world.
func (w *World) newProgress(mode string) error {
	progress, err := progression.New(w.Tuning.Difficulty, mode)
	if err != nil {
		return err
	}
	progress.ApplyMode(w.player)
	progress.OnMilestone = func(level int) {
		if w.Tutorial.Active() {
			return
		}
		w.log.WithField("level", level).Info("reinforcements")
		w.SpawnEnemies()
	}
	progress.OnLevelUp = func(level int) {
		if w.OnLevelUp != nil {
			w.OnLevelUp(level)
		}
	}
	w.Progress = progress
	if w.Combat != nil {
		w.Combat.Reset(progress)
	}
	return nil
}

func (w *World) playerSpawn() (float64, float64) {
	if w.Level.PlayerSpawn != nil {
		return w.Level.PlayerSpawn.X, w.Level.PlayerSpawn.Y
	}
	pw, ph := w.Level.PixelSize()
	return pw / 2, ph / 2
}

// Player returns the player.
func (w *World) Player() *entity.Player { return w.player }

// Enemies returns the live roster, including enemies still playing their
// death clip.
func (w *World) Enemies() []*entity.Enemy { return w.enemies }

// Events returns the shared combat event emitter.
func (w *World) Events() *component.CombatEventEmitter { return w.Env.Events }

// AddEnemy puts an externally created enemy on the roster.
func (w *World) AddEnemy(e *entity.Enemy) { w.enemies = append(w.enemies, e) }

// RemoveEnemy takes e off the roster without killing it.
func (w *World) RemoveEnemy(e *entity.Enemy) {
	w.enemies = slices.DeleteFunc(w.enemies, func(x *entity.Enemy) bool { return x == e })
}

// SpawnEnemies fills every allowed, unoccupied spawn point for the current
// player level. Returns how many enemies were created.
func (w *World) SpawnEnemies() int {
	spawned := w.Spawner.Spawn(w.Level.Spawns, w.enemies, w.Progress.Level)
	w.enemies = append(w.enemies, spawned...)
	return len(spawned)
}

// Step advances one tick: player, then combat, then every enemy, then the
// reaping of finished corpses. While the tutorial waits for its parry press
// nothing moves.
func (w *World) Step(dt float64, in entity.Intent) {
	tut := w.Tutorial
	if tut.Active() && w.holdForParry(in) {
		return
	}

	// the parry lesson pins the player and forbids swings
	pinned := tut.Active() && tut.Step == TutorialParry
	pos, dir := w.player.Pos, w.player.Direction
	if pinned {
		in.Attack = false
	}
	w.player.Update(dt, in)
	if pinned {
		w.player.Pos, w.player.Direction = pos, dir
	}

	w.Combat.Update(dt)
	for _, e := range w.enemies {
		e.Update(dt, w.player)
	}
	if tut.Active() {
		w.advanceTutorial(in)
	}
	w.Reap()

	if !w.Tutorial.Active() {
		w.chestSpawned = true
	}
}

// Reap drops enemies whose death clip has finished. Returns how many were
// removed.
func (w *World) Reap() int {
	kept := w.enemies[:0]
	removed := 0
	for _, e := range w.enemies {
		if e.ReadyForRemoval() {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.enemies); i++ {
		w.enemies[i] = nil
	}
	w.enemies = kept
	return removed
}

// AnyStunned reports whether a live enemy is stunned.
func (w *World) AnyStunned() bool {
	for _, e := range w.enemies {
		if !e.Dead() && e.Stunned {
			return true
		}
	}
	return false
}

// GameOver is true once the player died.
func (w *World) GameOver() bool { return !w.player.Alive() }

// Victory is true once the tutorial is over, the chest has been offered and
// the roster is empty with the player still standing.
func (w *World) Victory() bool {
	return w.player.Alive() && !w.Tutorial.Active() && w.chestSpawned && len(w.enemies) == 0
}

// ChestPending reports a chest that was offered and not opened yet. The
// chest appears on the first tick after the tutorial, or at once without one.
func (w *World) ChestPending() bool { return w.chestSpawned && !w.chestOpened }

// OpenChest selects an element and grants the chest XP.
func (w *World) OpenChest(el component.Element) {
	w.chestOpened = true
	w.Progress.SelectElement(el)
	w.Progress.ChestReward()
}

// Restart begins a new run. The player is revived at the spawn, progression
// and kills start over, and the arena or the tutorial is set up again.
func (w *World) Restart() {
	x, y := w.playerSpawn()
	w.player.Reset(x, y)
	if err := w.newProgress(w.Progress.ModeName); err != nil {
		w.log.WithError(err).Error("restart progression")
	}
	w.enemies = nil
	w.chestSpawned, w.chestOpened = false, false
	if w.tutorial {
		w.StartTutorial()
		return
	}
	w.SpawnEnemies()
}

// PlaySFX queues a sound for the host.
func (w *World) PlaySFX(name string, volume float64) {
	w.sfx = append(w.sfx, SFXEvent{Name: name, Volume: volume})
}

// DrainSFX returns and clears the queued sounds.
func (w *World) DrainSFX() []SFXEvent {
	out := w.sfx
	w.sfx = nil
	return out
}

// HandleChanges reloads tuning or spawn rules after prefab files changed on
// disk. New tuning applies to future spawns.
func (w *World) HandleChanges(changes []prefabs.Change) error {
	var tuning, script bool
	for _, c := range changes {
		switch c.Kind {
		case prefabs.ChangeTuning:
			tuning = true
		case prefabs.ChangeScript:
			script = true
		}
	}
	if tuning {
		t, err := prefabs.LoadTuning()
		if err != nil {
			return err
		}
		w.Tuning = t
		w.Factory.SetSpec(t.Enemies)
		w.log.Info("tuning reloaded")
	}
	if script {
		if err := w.Spawner.Reload(); err != nil {
			return err
		}
		w.log.Info("spawn rules reloaded")
	}
	return nil
}
