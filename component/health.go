package component

// Health is a reusable health component for any entity that can take damage.
// Current always stays within [0, Max]; reaching zero marks the owner dead
// exactly once.
type Health struct {
	Max     float64
	Current float64
	Dead    bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount. Returns true only on the call that killed the
// owner. Damage after death is ignored.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current <= 0 {
		h.Dead = true
		return true
	}
	return false
}

// Heal restores health up to Max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Ratio returns Current/Max in [0, 1].
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// SetMaxHP sets the maximum health value and clamps Current if needed.
func (h *Health) SetMaxHP(v float64) {
	if h == nil {
		return
	}
	h.Max = v
	if h.Max <= 0 {
		h.Max = 1
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Revive resets the component to full health.
func (h *Health) Revive() {
	if h == nil {
		return
	}
	h.Dead = false
	h.Current = h.Max
}
