package entity

// meleeBehavior is the plain demon: contact damage, no interception.
type meleeBehavior struct{}

func (meleeBehavior) Kind() Kind { return KindMelee }

func (meleeBehavior) Intercept(e *Enemy, amount float64, parried bool) (float64, bool) {
	return amount, false
}

func (meleeBehavior) AttackDamage(e *Enemy) float64 { return e.spec.Damage.At(e.Level) }

func (meleeBehavior) OnAttackStart(e *Enemy, target Target) { e.env.play(e.spec.AttackSound) }

func (meleeBehavior) Update(*Enemy, float64, Target) {}
