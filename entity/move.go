package entity

import (
	"math"

	"github.com/milk9111/emberfall/common"
)

const moveEpsilon = 1e-6

// stepAxes commits each axis of the move independently. An axis whose
// displacement is negligible does not count as having moved.
func stepAxes(env *Env, pos *common.Vec2, dx, dy float64) (movedX, movedY bool) {
	if math.Abs(dx) > moveEpsilon && !env.blocked(pos.X+dx, pos.Y) {
		pos.X += dx
		movedX = true
	}
	if math.Abs(dy) > moveEpsilon && !env.blocked(pos.X, pos.Y+dy) {
		pos.Y += dy
		movedY = true
	}
	return movedX, movedY
}

// slide tries the combined move first, then x alone, then y alone. full is
// false whenever the combined move was blocked.
func slide(env *Env, pos *common.Vec2, dx, dy float64) (full bool) {
	if !env.blocked(pos.X+dx, pos.Y+dy) {
		pos.X += dx
		pos.Y += dy
		return true
	}
	if math.Abs(dx) > moveEpsilon && !env.blocked(pos.X+dx, pos.Y) {
		pos.X += dx
		return false
	}
	if math.Abs(dy) > moveEpsilon && !env.blocked(pos.X, pos.Y+dy) {
		pos.Y += dy
	}
	return false
}

func randomCardinal(env *Env) float64 {
	return common.CardinalAngles[env.intN(len(common.CardinalAngles))]
}
