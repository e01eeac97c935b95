// Package camera provides the free-flight camera driven by input commands.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/internal/engine/input"
	"github.com/Faultbox/campfire/pkg/math"
)

const (
	// DefaultMoveSpeed is the distance moved per frame per held direction.
	DefaultMoveSpeed = 0.05
	// DefaultPointerRotSpeed converts pointer pixels to radians.
	DefaultPointerRotSpeed = 0.01
	// DefaultPadRotSpeed converts full stick deflection to radians per frame.
	DefaultPadRotSpeed = 0.1

	// PitchLimit keeps the view just short of straight up or down, where
	// the look-at basis degenerates. Pitch stays strictly inside
	// (-PitchLimit, PitchLimit).
	PitchLimit float32 = math32.Pi/2 - 0.01

	// maxPitch is the largest pitch actually reached, a few float32 steps
	// inside PitchLimit.
	maxPitch = PitchLimit - 1e-6
)

var (
	// DefaultSpawn is the reset position, by the campfire.
	DefaultSpawn = math.Vec3{X: 2, Y: -10, Z: -1.5}
	// DefaultBounds is the size of the box the camera is kept inside,
	// centred on the origin.
	DefaultBounds = math.Vec3{X: 20, Y: 20, Z: 20}
)

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// FlyCamera is a yaw/pitch camera that moves along its view direction.
// Yaw stays in (-pi, pi], pitch in (-PitchLimit, PitchLimit) and the
// position inside Bounds less a 0.1 margin on every side.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	Spawn  math.Vec3
	Bounds math.Vec3

	MoveSpeed       float32
	PointerRotSpeed float32
	PadRotSpeed     float32
}

// NewFlyCamera creates a camera at DefaultSpawn looking down +Z.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:        DefaultSpawn,
		Spawn:           DefaultSpawn,
		Bounds:          DefaultBounds,
		MoveSpeed:       DefaultMoveSpeed,
		PointerRotSpeed: DefaultPointerRotSpeed,
		PadRotSpeed:     DefaultPadRotSpeed,
	}
}

// Reset returns to the spawn point with a level, +Z facing view.
func (c *FlyCamera) Reset() {
	c.Position = c.Spawn
	c.Yaw = 0
	c.Pitch = 0
}

// Update integrates one frame of input. Speeds are per frame, so elapsed
// and total are accepted for the frame-loop contract but unused.
func (c *FlyCamera) Update(cmd input.Command, elapsed, total float64) {
	if cmd.Relative {
		c.Yaw -= cmd.PointerDX * c.PointerRotSpeed
		c.Pitch -= cmd.PointerDY * c.PointerRotSpeed
	}

	if cmd.PadConnected {
		if cmd.PadResetRotation {
			c.Yaw = 0
			c.Pitch = 0
		} else {
			c.Yaw += -cmd.PadYaw * c.PadRotSpeed
			c.Pitch += cmd.PadPitch * c.PadRotSpeed
		}
	}

	// Held directions add up unnormalized, so diagonals are faster.
	var move math.Vec3
	if cmd.Left {
		move.X += 1
	}
	if cmd.Right {
		move.X -= 1
	}
	if cmd.Up {
		move.Y += 1
	}
	if cmd.Down {
		move.Y -= 1
	}
	if cmd.Forward {
		move.Z += 1
	}
	if cmd.Back {
		move.Z -= 1
	}

	q := math.QuatFromYawPitch(c.Yaw, c.Pitch)
	move = q.Rotate(move).Scale(c.MoveSpeed)
	c.Position = c.Position.Add(move)

	half := c.Bounds.Scale(0.5).Sub(math.Vec3{X: 0.1, Y: 0.1, Z: 0.1})
	c.Position = c.Position.Clamp(half.Scale(-1), half)

	c.Pitch = math.Clamp(c.Pitch, -maxPitch, maxPitch)
	c.Yaw = math.WrapAngle(c.Yaw)

	if cmd.Reset {
		c.Reset()
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return math.Vec3{X: cp * sy, Y: sp, Z: cp * cy}
}

// ViewMatrix returns the right-handed look-at view for the current state.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), worldUp)
}
