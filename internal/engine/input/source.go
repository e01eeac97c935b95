package input

// Key is a physical key the controls read. Backends map their own key codes
// onto these.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyRight
	KeySpace
	KeyLeftCtrl
	KeyR
	KeyEscape
	KeyF12

	NumKeys
)

// KeyState is a snapshot of the keys the controls read.
type KeyState [NumKeys]bool

// NewKeyState returns a snapshot with the given keys held.
func NewKeyState(held ...Key) KeyState {
	var ks KeyState
	for _, k := range held {
		if k >= 0 && k < NumKeys {
			ks[k] = true
		}
	}
	return ks
}

// Down reports whether k is held.
func (k KeyState) Down(key Key) bool {
	return key >= 0 && key < NumKeys && k[key]
}

// PointerState is the mouse as seen in the current capture mode. In
// relative mode X and Y are the movement since the previous sample, in
// absolute mode they are the cursor position.
type PointerState struct {
	X, Y    int32
	Primary bool
}

// GamepadState is the first connected controller.
type GamepadState struct {
	Connected      bool
	Back           bool
	LeftStickPress bool
	// Left stick in [-1, 1] after the dead zone, Y up positive.
	LeftX, LeftY float32
}

// Source reads raw device state once per frame.
type Source interface {
	Keys() KeyState
	Pointer() PointerState
	Gamepad() GamepadState
	SetRelativeMode(relative bool)
}

// DefaultDeadZone is the stick magnitude below which input is ignored.
const DefaultDeadZone = 0.24

// AxisValue maps a signed 16-bit stick reading to [-1, 1].
func AxisValue(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}
	return float32(v) / 32767
}

// ApplyDeadZone zeroes small deflections and rescales the rest so the
// output still spans [-1, 1].
func ApplyDeadZone(v, zone float32) float32 {
	if zone <= 0 {
		return v
	}
	if zone >= 1 {
		return 0
	}
	switch {
	case v > zone:
		return (v - zone) / (1 - zone)
	case v < -zone:
		return (v + zone) / (1 - zone)
	default:
		return 0
	}
}
