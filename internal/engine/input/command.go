// Package input turns device state into per-frame commands for the camera.
// It has no windowing dependency; the SDL backend lives in sdlinput.
package input

// Command is the semantic input for one frame. It is rebuilt by every Poll
// and must not be kept past the frame it was produced for.
type Command struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool

	RotLeft  bool
	RotRight bool
	RotUp    bool
	RotDown  bool

	Reset bool
	Quit  bool

	// Screenshot is set only on the frame the capture key goes down.
	Screenshot bool

	// Raw pointer movement, only meaningful when Relative is set.
	PointerDX float32
	PointerDY float32
	Relative  bool

	// Gamepad stick input in [-1, 1], Y up positive. Zero when no pad is
	// connected.
	PadConnected     bool
	PadYaw           float32
	PadPitch         float32
	PadResetRotation bool
}

// Moving reports whether any translation intent is set.
func (c Command) Moving() bool {
	return c.Forward || c.Back || c.Left || c.Right || c.Up || c.Down
}
