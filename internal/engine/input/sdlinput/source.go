package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/input"
	"github.com/Faultbox/campfire/internal/logger"
)

// scancodes maps each control key to its SDL scancode.
var scancodes = [input.NumKeys]sdl.Scancode{
	input.KeyW:        sdl.SCANCODE_W,
	input.KeyA:        sdl.SCANCODE_A,
	input.KeyS:        sdl.SCANCODE_S,
	input.KeyD:        sdl.SCANCODE_D,
	input.KeyRight:    sdl.SCANCODE_RIGHT,
	input.KeySpace:    sdl.SCANCODE_SPACE,
	input.KeyLeftCtrl: sdl.SCANCODE_LCTRL,
	input.KeyR:        sdl.SCANCODE_R,
	input.KeyEscape:   sdl.SCANCODE_ESCAPE,
	input.KeyF12:      sdl.SCANCODE_F12,
}

// SDLSource reads keyboard, mouse and the first game controller through
// SDL. SDL must be initialized with INIT_GAMECONTROLLER for pads to show up.
type SDLSource struct {
	DeadZone float32

	log       *zap.Logger
	pad       *sdl.GameController
	relative  bool
	suspended bool
}

// NewSDLSource creates a source and opens the first controller, if any.
func NewSDLSource(deadZone float32) *SDLSource {
	s := &SDLSource{
		DeadZone: deadZone,
		log:      logger.Named("input"),
	}
	s.OpenGamepad()
	return s
}

// Keys returns the current state of the control keys.
func (s *SDLSource) Keys() input.KeyState {
	return keyState(sdl.GetKeyboardState())
}

// keyState picks the control keys out of an SDL keyboard array.
func keyState(raw []uint8) input.KeyState {
	var ks input.KeyState
	for k, sc := range scancodes {
		ks[k] = int(sc) < len(raw) && raw[sc] != 0
	}
	return ks
}

// Pointer returns deltas in relative mode and the cursor position otherwise.
// The relative accumulator is drained in both modes so the first captured
// frame starts from zero.
func (s *SDLSource) Pointer() input.PointerState {
	dx, dy, state := sdl.GetRelativeMouseState()
	if s.relative {
		return input.PointerState{X: dx, Y: dy, Primary: state&sdl.Button(sdl.BUTTON_LEFT) != 0}
	}
	x, y, state := sdl.GetMouseState()
	return input.PointerState{X: x, Y: y, Primary: state&sdl.Button(sdl.BUTTON_LEFT) != 0}
}

// SetRelativeMode hides and locks the cursor while relative.
func (s *SDLSource) SetRelativeMode(relative bool) {
	s.relative = relative
	sdl.SetRelativeMouseMode(relative)
}

// Gamepad returns the first controller, or a disconnected state while
// suspended or when none is attached.
func (s *SDLSource) Gamepad() input.GamepadState {
	if s.suspended || s.pad == nil || !s.pad.Attached() {
		return input.GamepadState{}
	}
	return input.GamepadState{
		Connected:      true,
		Back:           s.pad.Button(sdl.CONTROLLER_BUTTON_BACK) != 0,
		LeftStickPress: s.pad.Button(sdl.CONTROLLER_BUTTON_LEFTSTICK) != 0,
		LeftX:          input.ApplyDeadZone(input.AxisValue(s.pad.Axis(sdl.CONTROLLER_AXIS_LEFTX)), s.DeadZone),
		// SDL reports stick down as positive.
		LeftY: -input.ApplyDeadZone(input.AxisValue(s.pad.Axis(sdl.CONTROLLER_AXIS_LEFTY)), s.DeadZone),
	}
}

// OpenGamepad opens the first attached controller if none is open.
func (s *SDLSource) OpenGamepad() {
	if s.pad != nil && s.pad.Attached() {
		return
	}
	s.CloseGamepad()
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if pad := sdl.GameControllerOpen(i); pad != nil {
			s.pad = pad
			s.log.Info("gamepad connected", zap.String("name", pad.Name()))
			return
		}
	}
}

// CloseGamepad releases the open controller.
func (s *SDLSource) CloseGamepad() {
	if s.pad != nil {
		s.pad.Close()
		s.pad = nil
		s.log.Info("gamepad disconnected")
	}
}

// Suspend stops reporting the gamepad, while the window is inactive.
func (s *SDLSource) Suspend() { s.suspended = true }

// Resume reports the gamepad again.
func (s *SDLSource) Resume() { s.suspended = false }

// Close releases the controller and the cursor.
func (s *SDLSource) Close() {
	s.CloseGamepad()
	if s.relative {
		s.SetRelativeMode(false)
	}
}
