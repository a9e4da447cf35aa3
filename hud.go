package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/entity"
)

const (
	floatingTextLife  = 0.8
	floatingTextSpeed = 40.0
)

type floatingText struct {
	Text  string
	Pos   common.Vec2
	Color color.Color
	TTL   float64
}

// Alpha fades the text out over its life.
func (f floatingText) Alpha() float64 { return common.Clamp(f.TTL/floatingTextLife, 0, 1) }

// floatingTexts is the pool of world-space popups spawned by combat events.
type floatingTexts []floatingText

func (ft *floatingTexts) add(text string, pos common.Vec2, clr color.Color) {
	if text == "" {
		return
	}
	*ft = append(*ft, floatingText{Text: text, Pos: pos, Color: clr, TTL: floatingTextLife})
}

// Update rises and expires popups.
func (ft *floatingTexts) Update(dt float64) {
	kept := (*ft)[:0]
	for _, f := range *ft {
		f.TTL -= dt
		if f.TTL <= 0 {
			continue
		}
		f.Pos.Y -= floatingTextSpeed * dt
		kept = append(kept, f)
	}
	*ft = kept
}

// fromEvent turns a combat event into a popup. Returns false for events
// that show nothing.
func (ft *floatingTexts) fromEvent(evt component.CombatEvent) bool {
	switch evt.Type {
	case component.EventDamageApplied:
		clr := color.Color(colornames.White)
		switch {
		case evt.TargetID == entity.PlayerID:
			clr = colornames.Red
		case evt.Crit:
			clr = colornames.Gold
		case evt.Element != component.ElementNone:
			clr = elementColor(evt.Element)
		}
		ft.add(fmt.Sprintf("%.0f", evt.Damage), evt.Pos, clr)
	case component.EventBlocked, component.EventParried, component.EventDodged:
		ft.add(evt.Text, evt.Pos, colornames.Lightskyblue)
	case component.EventStunned:
		ft.add("STUNNED", evt.Pos, colornames.Yellow)
	default:
		return false
	}
	return true
}

func (ft *floatingTexts) levelUp(level int, pos common.Vec2) {
	ft.add(fmt.Sprintf("LEVEL %d!", level), pos, colornames.Gold)
}

func elementColor(el component.Element) color.Color {
	switch el {
	case component.ElementFire:
		return colornames.Orangered
	case component.ElementIce:
		return colornames.Lightcyan
	case component.ElementWater:
		return colornames.Dodgerblue
	}
	return colornames.White
}
