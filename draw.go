package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/emberfall/entity"
	"github.com/milk9111/emberfall/prefabs"
	"github.com/milk9111/emberfall/system"
)

const (
	playerRadius   = 12
	enemyRadius    = 14
	fireballRadius = 6
	healthBarW     = 32
)

var (
	background = color.NRGBA{R: 0x1b, G: 0x1b, B: 0x22, A: 0xff}
	popupFace  = ebtext.NewGoXFace(basicfont.Face7x13)
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	camX, camY := g.camera.ViewTopLeft()

	for _, bb := range g.world.Collision.Boxes() {
		x, y := float32(bb.L-camX), float32(bb.B-camY)
		vector.DrawFilledRect(screen, x, y, float32(bb.R-bb.L), float32(bb.T-bb.B), colornames.Darkslategray, false)
	}

	for _, e := range g.world.Enemies() {
		g.drawEnemy(screen, e, camX, camY)
	}
	g.drawPlayer(screen, camX, camY)

	for _, t := range g.texts {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(t.Pos.X-camX, t.Pos.Y-camY-24)
		op.ColorScale.ScaleWithColor(t.Color)
		op.ColorScale.ScaleAlpha(float32(t.Alpha()))
		op.PrimaryAlign = ebtext.AlignCenter
		ebtext.Draw(screen, t.Text, popupFace, op)
	}

	g.drawHUD(screen)

	if ui := g.menuUI(); ui != nil {
		ui.Draw(screen)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, camX, camY float64) {
	p := g.world.Player()
	x, y := float32(p.Pos.X-camX), float32(p.Pos.Y-camY)

	clr := specColor(g.world.Tuning.Player.Color, colornames.Gold)
	switch {
	case !p.Alive():
		clr = colornames.Dimgray
	case p.Dashing:
		clr = colornames.Lightyellow
	case p.ImmunityTimer > 0 && int(p.ImmunityTimer*20)%2 == 0:
		clr = colornames.White
	}
	vector.DrawFilledCircle(screen, x, y, playerRadius, clr, true)

	// facing tick
	d := p.Direction.Vec()
	vector.StrokeLine(screen, x, y, x+float32(d.X*playerRadius*1.6), y+float32(d.Y*playerRadius*1.6), 2, colornames.Black, true)

	if p.Parrying {
		ring := colornames.Skyblue
		if p.IsInParryWindow() {
			ring = colornames.Aqua
		}
		vector.StrokeCircle(screen, x, y, playerRadius+6, 2, ring, true)
	}
	if p.Attacking {
		atk := g.world.Tuning.Player.Attack
		swing := color.Color(colornames.Lightgray)
		if atk.ActiveWindow.Contains(p.AttackTimer) {
			swing = colornames.Orange
		}
		vector.StrokeCircle(screen, x, y, float32(atk.Range), 1, swing, true)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, string(p.State()), int(x)-16, int(y)+playerRadius+4)
	}
}

func (g *Game) drawEnemy(screen *ebiten.Image, e *entity.Enemy, camX, camY float64) {
	x, y := float32(e.Pos.X-camX), float32(e.Pos.Y-camY)

	clr := specColor(e.Spec().Color, colornames.Firebrick)
	switch {
	case e.Dead():
		clr = colornames.Dimgray
	case e.Status.Freeze.Active:
		clr = colornames.Lightcyan
	case e.Stunned:
		clr = colornames.Yellow
	}
	vector.DrawFilledCircle(screen, x, y, enemyRadius, clr, true)
	if e.Blocking {
		vector.StrokeCircle(screen, x, y, enemyRadius+4, 3, colornames.Silver, true)
	}
	if e.Status.Burn.Active {
		vector.StrokeCircle(screen, x, y, enemyRadius+2, 2, colornames.Orangered, true)
	}

	for _, fb := range e.Fireballs() {
		vector.DrawFilledCircle(screen, float32(fb.Pos.X-camX), float32(fb.Pos.Y-camY), fireballRadius, colornames.Orange, true)
	}

	if e.Dead() {
		return
	}
	bx, by := x-healthBarW/2, y-enemyRadius-8
	vector.DrawFilledRect(screen, bx, by, healthBarW, 4, colornames.Darkred, false)
	vector.DrawFilledRect(screen, bx, by, float32(healthBarW*e.Health.Ratio()), 4, colornames.Limegreen, false)

	if g.debug {
		vector.StrokeCircle(screen, x, y, float32(e.AttackRange), 1, colornames.Red, true)
		vector.StrokeCircle(screen, x, y, float32(e.DetectionRange), 1, colornames.Darkorange, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s L%d %s", e.Type, e.Level, e.State()), int(x)-24, int(y)+enemyRadius+4)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.world.Player()
	pr := g.world.Progress
	element := string(pr.Element)
	if element == "" {
		element = "none"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %.0f/%.0f  Lv %d  XP %.0f/%.0f  Dmg %.0f  Element %s  Kills %d  [%s]",
		p.Health.Current, p.Health.Max, pr.Level, pr.XP, pr.XPToNext, pr.Damage, element, g.world.Combat.Kills, pr.ModeName), 8, 8)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  enemies %d", ebiten.ActualFPS(), len(g.world.Enemies())), 8, 24)
	}

	if text, alpha, ok := g.world.Combat.Feedback(); ok && alpha > 0.1 {
		ebitenutil.DebugPrintAt(screen, text, screen.Bounds().Dx()/2-len(text)*3, 60)
	}
	g.drawTutorial(screen)
	if g.world.ChestPending() {
		msg := "A chest appeared - press F to open it"
		ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()/2-len(msg)*3, screen.Bounds().Dy()-40)
	}

	var msg string
	switch {
	case g.world.GameOver():
		msg = "YOU DIED - press R to restart"
	case g.world.Victory():
		msg = fmt.Sprintf("VICTORY! Level %d, %d kills - press R to play again", pr.Level, g.world.Combat.Kills)
	}
	if msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()/2-len(msg)*3, screen.Bounds().Dy()/2)
	}
}

func (g *Game) drawTutorial(screen *ebiten.Image) {
	tut := g.world.Tutorial
	title, lines := tut.Prompt()
	if title == "" {
		return
	}
	cx := float64(screen.Bounds().Dx()) / 2
	y := 40.0
	titleColor := color.Color(colornames.White)
	if tut.Frozen {
		y = float64(screen.Bounds().Dy()) / 2
		titleColor = colornames.Blueviolet
	}
	drawCentered(screen, title, cx, y, titleColor)

	moved := tut.Moved()
	for i, line := range lines {
		clr := color.Color(colornames.Gold)
		if tut.Step == system.TutorialMove {
			clr = colornames.White
			if moved[i] {
				clr = colornames.Lime
			}
		}
		drawCentered(screen, line, cx, y+float64(16*(i+1)), clr)
	}

	skip := "Press T to skip the tutorial"
	ebitenutil.DebugPrintAt(screen, skip, screen.Bounds().Dx()-len(skip)*6-8, screen.Bounds().Dy()-20)
}

func drawCentered(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = ebtext.AlignCenter
	ebtext.Draw(screen, s, popupFace, op)
}

func specColor(c *prefabs.YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
