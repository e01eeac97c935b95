package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// Aggregator turns raw device state into one Command per frame. Besides the
// quit latch, the only state it carries across frames is the pointer
// capture mode and the previous primary and capture buttons for edge
// detection.
type Aggregator struct {
	src Source
	log *zap.Logger

	relative    bool
	prevPrimary bool
	prevCapture bool
	quit        bool
}

// NewAggregator creates an aggregator reading from src, starting in
// absolute pointer mode.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{
		src: src,
		log: logger.Named("input"),
	}
}

// Relative reports the capture mode in effect for the next Poll.
func (a *Aggregator) Relative() bool { return a.relative }

// WantsQuit reports whether a quit was ever requested.
func (a *Aggregator) WantsQuit() bool { return a.quit }

// RequestQuit latches quit, for window close events.
func (a *Aggregator) RequestQuit() { a.quit = true }

// Poll samples every device and returns this frame's command. A primary
// button edge changes the capture mode for the following frame, never the
// current one.
func (a *Aggregator) Poll() Command {
	keys := a.src.Keys()
	ptr := a.src.Pointer()
	pad := a.src.Gamepad()

	cmd := Command{
		Forward:  keys.Down(KeyW),
		Back:     keys.Down(KeyS),
		Left:     keys.Down(KeyA),
		Right:    keys.Down(KeyD) || keys.Down(KeyRight),
		Up:       keys.Down(KeySpace),
		Down:     keys.Down(KeyLeftCtrl),
		Reset:    keys.Down(KeyR),
		Relative: a.relative,
	}

	if keys.Down(KeyEscape) {
		a.quit = true
	}

	capture := keys.Down(KeyF12)
	cmd.Screenshot = capture && !a.prevCapture
	a.prevCapture = capture

	if a.relative {
		cmd.PointerDX = float32(ptr.X)
		cmd.PointerDY = float32(ptr.Y)
		if ptr.X > 0 {
			cmd.RotRight = true
		} else {
			cmd.RotLeft = true
		}
		if ptr.Y > 0 {
			cmd.RotDown = true
		} else {
			cmd.RotUp = true
		}
	}

	if pad.Connected {
		cmd.PadConnected = true
		if pad.Back {
			a.quit = true
		}
		if pad.LeftStickPress {
			cmd.PadResetRotation = true
		} else {
			cmd.PadYaw = pad.LeftX
			cmd.PadPitch = pad.LeftY
		}
	}

	switch {
	case ptr.Primary && !a.prevPrimary:
		a.setRelative(true)
	case !ptr.Primary && a.prevPrimary:
		a.setRelative(false)
	}
	a.prevPrimary = ptr.Primary

	cmd.Quit = a.quit
	return cmd
}

func (a *Aggregator) setRelative(relative bool) {
	if a.relative == relative {
		return
	}
	a.relative = relative
	a.src.SetRelativeMode(relative)
	a.log.Debug("pointer mode changed", zap.Bool("relative", relative))
}
