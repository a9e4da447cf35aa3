package component

import "github.com/milk9111/emberfall/common"

// Element is the player's selected elemental ability applied on hit.
type Element string

const (
	ElementNone  Element = ""
	ElementFire  Element = "fire"
	ElementIce   Element = "ice"
	ElementWater Element = "water"
)

// ParseElement maps a config or key name to an Element.
func ParseElement(s string) (Element, bool) {
	switch Element(s) {
	case ElementNone, ElementFire, ElementIce, ElementWater:
		return Element(s), true
	}
	return ElementNone, false
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
	EventBlocked       CombatEventType = "blocked"
	EventDodged        CombatEventType = "dodged"
	EventParried       CombatEventType = "parried"
	EventParrySuccess  CombatEventType = "parry_success"
	EventStunned       CombatEventType = "stunned"
	EventCameraShake   CombatEventType = "camera_shake"
	EventProjectile    CombatEventType = "projectile_spawned"
)

// CombatEvent is emitted during combat resolution. Renderers turn these into
// floating text, flashes and camera shake.
type CombatEvent struct {
	Type     CombatEventType
	SourceID int
	TargetID int
	Damage   float64
	Crit     bool
	Element  Element
	Pos      common.Vec2
	Text     string

	ShakeMagnitude float64
	ShakeDuration  float64
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter allows components to emit combat events.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe appends a handler.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
