package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateMatchesMathGL(t *testing.T) {
	axis := Vec3{1, 2, -0.5}.Normalize()
	v := Vec3{0.3, -1, 2}

	for _, angle := range []float32{-1.3, 0, 0.4, 2.9} {
		got := QuatFromAxisAngle(axis, angle).Rotate(v)
		want := mgl32.QuatRotate(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z}).Rotate(mgl32.Vec3{v.X, v.Y, v.Z})
		for i, c := range []float32{got.X, got.Y, got.Z} {
			if abs(c-want[i]) > 1e-5 {
				t.Errorf("angle %v component %d: got %v, want %v", angle, i, c, want[i])
			}
		}
	}
}

func TestQuatFromYawPitchForward(t *testing.T) {
	tests := []struct {
		yaw, pitch float32
	}{
		{0, 0},
		{math.Pi / 2, 0},
		{0, 0.5},
		{-2, -1.2},
		{3, 1.5},
	}

	for _, tt := range tests {
		got := QuatFromYawPitch(tt.yaw, tt.pitch).Rotate(Vec3{Z: 1})
		cp := float32(math.Cos(float64(tt.pitch)))
		want := Vec3{
			cp * float32(math.Sin(float64(tt.yaw))),
			float32(math.Sin(float64(tt.pitch))),
			cp * float32(math.Cos(float64(tt.yaw))),
		}
		if got.Sub(want).Length() > 1e-5 {
			t.Errorf("yaw=%v pitch=%v: forward %v, want %v", tt.yaw, tt.pitch, got, want)
		}
	}
}

func TestQuatFromYawPitchKeepsUpright(t *testing.T) {
	// No roll: the rotated right axis stays horizontal.
	right := QuatFromYawPitch(1.1, 0.9).Rotate(Vec3{X: 1})
	if abs(right.Y) > 1e-6 {
		t.Errorf("right axis tilted: %v", right)
	}
}

func TestQuatToMat4(t *testing.T) {
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatFromYawPitch(0.7, -0.3)
	v := Vec3{1, 2, 3}
	a := q.Rotate(v)
	b := q.ToMat4().TransformVec3(v)
	if a.Sub(b).Length() > 1e-5 {
		t.Errorf("Rotate %v and ToMat4 %v disagree", a, b)
	}
}
