package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{12, 2, 2}
	if got != want {
		t.Errorf("T*S applied to (1,1,1): got %v, want %v", got, want)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateMatchesMathGL(t *testing.T) {
	for _, angle := range []float32{-2.5, -0.5, 0, 0.87, 1.2} {
		assertMat4Near(t, "RotateY", RotateY(angle), mgl32.HomogRotate3DY(angle))
		assertMat4Near(t, "RotateX", RotateX(angle), mgl32.HomogRotate3DX(angle))
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4)
	m := Perspective(fov, 16.0/9.0, 0.01, 100)

	assertMat4Near(t, "Perspective", m, mgl32.Perspective(fov, 16.0/9.0, 0.01, 100))
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name             string
		eye, center, up  Vec3
	}{
		{"down -Z", Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0}},
		{"spawn +Z", Vec3{2, -10, -1.5}, Vec3{2, -10, -0.5}, Vec3{0, 1, 0}},
		{"oblique", Vec3{1, 2, 3}, Vec3{-4, 0.5, 7}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookAt(tt.eye, tt.center, tt.up)
			want := mgl32.LookAtV(
				mgl32.Vec3{tt.eye.X, tt.eye.Y, tt.eye.Z},
				mgl32.Vec3{tt.center.X, tt.center.Y, tt.center.Z},
				mgl32.Vec3{tt.up.X, tt.up.Y, tt.up.Z},
			)
			assertMat4Near(t, "LookAt", got, want)

			// The eye maps to the view-space origin.
			o := got.TransformVec3(tt.eye)
			if o.Length() > 1e-4 {
				t.Errorf("eye in view space: got %v, want origin", o)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateY(0.7)).Mul(Scale(2, 2, 2))
	assertMat4Near(t, "M * M^-1", m.Mul(m.Inverse()), mgl32.Ident4())
}

func TestNormalMatrixUniformScale(t *testing.T) {
	m := Translate(4, 5, 6).Mul(Scale(2, 2, 2))
	n := m.NormalMatrix().TransformVec3(Vec3{0, 1, 0}).Normalize()
	if abs(n.Y-1) > 1e-5 || n.X != 0 || n.Z != 0 {
		t.Errorf("normal under uniform scale: got %v, want (0,1,0)", n)
	}
}

func TestWithoutTranslation(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateY(0.3)).WithoutTranslation()
	if m[12] != 0 || m[13] != 0 || m[14] != 0 {
		t.Errorf("translation column should be cleared, got (%f, %f, %f)", m[12], m[13], m[14])
	}
}

func assertMat4Near(t *testing.T, name string, got Mat4, want mgl32.Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("%s element %d: got %f, want %f", name, i, got[i], want[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
