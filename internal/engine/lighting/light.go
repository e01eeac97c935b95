// Package lighting describes the single scene light and feeds it to shaders.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// Light is a directional light with a position, used by the diffuse and
// specular terms of the mesh shader.
type Light struct {
	Ambient   [4]float32 `yaml:"ambient"`
	Diffuse   [4]float32 `yaml:"diffuse"`
	Position  math.Vec3  `yaml:"position"`
	Direction math.Vec3  `yaml:"direction"`
}

// Default returns the campsite light: a dim grey ambient and a white key
// light from the upper left.
func Default() Light {
	return Light{
		Ambient:   [4]float32{0.3, 0.3, 0.3, 1},
		Diffuse:   [4]float32{1, 1, 1, 1},
		Position:  math.Vec3{X: -20, Y: 10, Z: -15},
		Direction: math.Vec3{X: -1, Y: -1, Z: 1},
	}
}

// SunDirection converts angles in degrees to the direction light travels.
// Longitude turns about +Y from +Z, latitude is elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	sl, cl := math32.Sincos(math.Radians(longitude))
	sb, cb := math32.Sincos(math.Radians(latitude))
	// Towards the sun, negated so it points the way the light shines.
	return math.Vec3{X: -cb * sl, Y: -sb, Z: -cb * cl}
}

// Uniforms is the subset of a shader program the light writes to.
type Uniforms interface {
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v [4]float32)
}

// Apply uploads the light. Direction is normalized here so layouts can
// give it unnormalized.
func (l Light) Apply(u Uniforms) {
	u.SetVec4("uAmbient", l.Ambient)
	u.SetVec4("uDiffuse", l.Diffuse)
	u.SetVec3("uLightPos", l.Position)
	u.SetVec3("uLightDir", l.Direction.Normalize())
}
