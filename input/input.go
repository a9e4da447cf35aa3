package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/entity"
)

// stickDeadZone is the gamepad axis magnitude below which the stick is idle.
const stickDeadZone = 0.3

// Snapshot is one frame of raw device state. Action fields are edge
// triggered (true only on the frame the key went down).
type Snapshot struct {
	Left, Right, Up, Down bool
	StickX, StickY        float64

	Attack bool
	Dash   bool
	Parry  bool

	Element     component.Element
	Interact    bool
	Skip        bool
	Restart     bool
	Pause       bool
	ToggleDebug bool
	Quit        bool
}

// Intent folds keys and stick into the player's movement and actions. The
// stick overrides keys on any axis it pushes past the dead zone.
func (s Snapshot) Intent() entity.Intent {
	var in entity.Intent
	if s.Left {
		in.MoveX--
	}
	if s.Right {
		in.MoveX++
	}
	if s.Up {
		in.MoveY--
	}
	if s.Down {
		in.MoveY++
	}
	if s.StickX < -stickDeadZone {
		in.MoveX = -1
	} else if s.StickX > stickDeadZone {
		in.MoveX = 1
	}
	if s.StickY < -stickDeadZone {
		in.MoveY = -1
	} else if s.StickY > stickDeadZone {
		in.MoveY = 1
	}
	in.Attack = s.Attack
	in.Dash = s.Dash
	in.Parry = s.Parry
	return in
}

// Input polls keyboard, mouse and the first gamepad once per frame.
type Input struct {
	Snapshot
}

func New() *Input { return &Input{} }

// Current returns the last polled snapshot.
func (i *Input) Current() Snapshot { return i.Snapshot }

// Update reads the devices into the snapshot.
func (i *Input) Update() {
	s := Snapshot{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),

		Attack: inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyJ) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Dash: inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft),
		Parry: inpututil.IsKeyJustPressed(ebiten.KeyK) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),

		Interact:    inpututil.IsKeyJustPressed(ebiten.KeyF),
		Skip:        inpututil.IsKeyJustPressed(ebiten.KeyT),
		Restart:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		Pause:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleDebug: inpututil.IsKeyJustPressed(ebiten.KeyF3),
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		s.Element = component.ElementFire
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		s.Element = component.ElementIce
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		s.Element = component.ElementWater
	}

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		s.StickX = ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		s.StickY = ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		// A attacks, X dashes, right bumper parries
		s.Attack = s.Attack || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		s.Dash = s.Dash || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		s.Parry = s.Parry || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontTopRight)
		s.Pause = s.Pause || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.Snapshot = s
}
