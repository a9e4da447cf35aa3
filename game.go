package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/input"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
	"github.com/milk9111/emberfall/system"
)

const tickDT = 1.0 / 60.0

type menuKind int

const (
	menuNone menuKind = iota
	menuPause
	menuChest
)

type soundPlayer interface {
	PlaySFX(name string, volume float64)
}

// Game hosts the world in ebiten: it feeds input in, plays queued sounds,
// reloads prefabs as they change on disk and draws everything.
type Game struct {
	world   *system.World
	input   inputSource
	camera  *Camera
	sfx     soundPlayer
	watcher *prefabs.Watcher

	texts floatingTexts
	debug bool
	quit  bool

	menu menuKind
	ui   *ebitenui.UI

	// announced is set once the end of the run was logged.
	announced bool

	log *logrus.Entry
}

type inputSource interface {
	Update()
	Current() input.Snapshot
}

// NewGame wires a world into the host. sfx and watcher may be nil.
func NewGame(world *system.World, in inputSource, sfx soundPlayer, watcher *prefabs.Watcher, debug bool) *Game {
	g := &Game{
		world:   world,
		input:   in,
		camera:  NewCamera(common.BaseWidth, common.BaseHeight),
		sfx:     sfx,
		watcher: watcher,
		debug:   debug,
		log:     logger.For("game"),
	}
	g.camera.SetWorldBounds(world.Level.PixelSize())
	p := world.Player().Pos
	g.camera.SnapTo(p.X, p.Y)
	world.Events().Subscribe(g.onCombatEvent)
	world.OnLevelUp = g.onLevelUp
	return g
}

func (g *Game) onLevelUp(level int) {
	g.texts.levelUp(level, g.world.Player().Pos)
}

func (g *Game) onCombatEvent(evt component.CombatEvent) {
	if evt.Type == component.EventCameraShake {
		g.camera.Shake(evt.ShakeMagnitude, evt.ShakeDuration)
		return
	}
	g.texts.fromEvent(evt)
}

func (g *Game) Update() error {
	g.input.Update()
	return g.tick(tickDT, g.input.Current())
}

func (g *Game) tick(dt float64, in input.Snapshot) error {
	g.reloadPrefabs()
	if in.Quit || g.quit {
		return ebiten.Termination
	}
	if in.ToggleDebug {
		g.debug = !g.debug
	}

	if g.menu != menuNone {
		if in.Pause && g.menu == menuPause {
			g.closeMenu()
			return nil
		}
		if g.ui != nil {
			g.ui.Update()
		}
		return nil
	}
	if in.Pause {
		g.openMenu(menuPause)
		return nil
	}

	if g.world.GameOver() || g.world.Victory() {
		g.announceEnd()
		if in.Restart {
			g.restart()
		}
		g.playSounds()
		g.texts.Update(dt)
		return nil
	}

	if in.Skip && g.world.Tutorial.Active() {
		g.world.SkipTutorial()
	}
	if in.Interact && g.world.ChestPending() {
		g.openMenu(menuChest)
		return nil
	}

	// element keys are a debug shortcut; chests pick elements in play
	if g.debug && in.Element != component.ElementNone {
		g.world.Progress.SelectElement(in.Element)
	}

	g.world.Step(dt, in.Intent())
	g.playSounds()

	p := g.world.Player().Pos
	g.camera.Update(dt, p.X, p.Y)
	g.texts.Update(dt)
	return nil
}

func (g *Game) announceEnd() {
	if g.announced {
		return
	}
	g.announced = true
	g.log.WithFields(logrus.Fields{
		"victory": g.world.Victory(),
		"level":   g.world.Progress.Level,
		"kills":   g.world.Combat.Kills,
	}).Info("run over")
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	changes := g.watcher.Drain()
	if len(changes) == 0 {
		return
	}
	if err := g.world.HandleChanges(changes); err != nil {
		g.log.WithError(err).Warn("prefab reload failed")
	}
}

func (g *Game) playSounds() {
	for _, s := range g.world.DrainSFX() {
		if g.sfx != nil {
			g.sfx.PlaySFX(s.Name, s.Volume)
		}
	}
}

func (g *Game) openMenu(kind menuKind) {
	g.menu = kind
	g.ui = nil
}

func (g *Game) closeMenu() {
	g.menu = menuNone
	g.ui = nil
}

// menuUI builds the open menu's widgets on first draw.
func (g *Game) menuUI() *ebitenui.UI {
	if g.ui != nil || g.menu == menuNone {
		return g.ui
	}
	switch g.menu {
	case menuPause:
		g.ui = NewPauseUI(g)
	case menuChest:
		g.ui = NewChestUI(g)
	}
	return g.ui
}

// openChest applies the chest reward.
func (g *Game) openChest(el component.Element) {
	g.world.OpenChest(el)
	g.log.WithFields(logrus.Fields{"element": el, "level": g.world.Progress.Level}).Info("chest opened")
	g.closeMenu()
}

func (g *Game) restart() {
	g.world.Restart()
	g.texts = nil
	g.closeMenu()
	g.announced = false
	p := g.world.Player().Pos
	g.camera.SnapTo(p.X, p.Y)
	g.log.Info("restarted")
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
