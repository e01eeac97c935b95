package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/engine/mesh"
	"github.com/Faultbox/campfire/pkg/math"
)

func assertMatNear(t *testing.T, want mgl32.Mat4, got math.Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}
}

func TestPlacementLocalMatchesMathGL(t *testing.T) {
	p := Placement{Translate: math.Vec3{X: 1.2, Y: 9.6, Z: 3.2}, Scale: 2, RotateY: -0.5}
	want := mgl32.Translate3D(1.2, 9.6, 3.2).
		Mul4(mgl32.Scale3D(2, 2, 2)).
		Mul4(mgl32.HomogRotate3DY(-0.5))
	assertMatNear(t, want, p.Local())
}

func TestWorldsChain(t *testing.T) {
	l := &Layout{Placements: []Placement{
		{Mesh: "a", Texture: "t", Translate: math.Vec3{Y: -10}},
		{Mesh: "b", Texture: "t", Translate: math.Vec3{X: 1}, Scale: 2, Chain: true},
		{Mesh: "c", Texture: "t", Translate: math.Vec3{Z: 3}},
		{Mesh: "d", Texture: "t", Chain: true},
	}}

	w := l.Worlds()
	require.Len(t, w, 4)

	origin := math.Vec3{}
	assert.Equal(t, math.Vec3{Y: -10}, w[0].TransformVec3(origin))
	// Ground first, then scaled, then moved: (0,-10,0)*2 + (1,0,0).
	assert.Equal(t, math.Vec3{X: 1, Y: -20}, w[1].TransformVec3(origin))
	assert.Equal(t, math.Vec3{Z: 3}, w[2].TransformVec3(origin), "unchained placements reset")
	assert.Equal(t, w[2], w[3], "a zero chained placement shares its parent's world")
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	require.NoError(t, l.Validate())
	assert.Equal(t, lighting.Default(), l.Light)
	assert.Len(t, l.Placements, 22)
	assert.False(t, l.Placements[0].Chain, "first placement starts from identity")

	meshes := l.Meshes()
	assert.Len(t, meshes, 16)
	assert.Contains(t, meshes, PrismMesh)
	assert.Len(t, l.Textures(), 8)

	// The platform sits on the ground's world, scaled with it.
	w := l.Worlds()
	assert.InDelta(t, -10.4, w[1].TransformVec3(math.Vec3{}).Y, 1e-5)

	// Chained crops step 0.25 along world -Z, unscaled by the first crop.
	first := w[8].TransformVec3(math.Vec3{})
	last := w[11].TransformVec3(math.Vec3{})
	assert.InDelta(t, first.Z-0.75, last.Z, 1e-5)
}

func TestSkyboxFacePaths(t *testing.T) {
	faces := Skybox{Faces: "sky/{face}.png"}.FacePaths()
	assert.Equal(t, "sky/px.png", faces[0])
	assert.Equal(t, "sky/nz.png", faces[5])
}

func TestValidate(t *testing.T) {
	ok := Placement{Mesh: "m", Texture: "t"}
	tests := []struct {
		name   string
		layout Layout
	}{
		{"empty", Layout{}},
		{"no mesh", Layout{Placements: []Placement{{Texture: "t"}}}},
		{"no texture", Layout{Placements: []Placement{{Mesh: "m"}}}},
		{"negative scale", Layout{Placements: []Placement{{Mesh: "m", Texture: "t", Scale: -1}}}},
		{"sky placeholder", Layout{Skybox: Skybox{Faces: "sky.png"}, Placements: []Placement{ok}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.layout.Validate(), ErrInvalidLayout)
		})
	}
}

const yamlLayout = `
placements:
  - name: rock
    mesh: Models/rock.obj
    texture: Textures/rock.png
    translate: {x: 1, y: 2, z: 3}
    scale: 0.5
    rotate_y: 1.5
  - name: moss
    mesh: prism
    texture: Textures/moss.png
    chain: true
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]byte(yamlLayout))
	require.NoError(t, err)

	require.Len(t, l.Placements, 2)
	p := l.Placements[0]
	assert.Equal(t, "rock", p.Name)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, p.Translate)
	assert.Equal(t, float32(0.5), p.Scale)
	assert.Equal(t, float32(1.5), p.RotateY)
	assert.True(t, l.Placements[1].Chain)

	// Omitted sections keep the campsite defaults.
	assert.Equal(t, lighting.Default(), l.Light)
	assert.Equal(t, DefaultLayout().Skybox, l.Skybox)
}

func TestParseLayoutErrors(t *testing.T) {
	_, err := ParseLayout([]byte("placements: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = ParseLayout([]byte("placements:\n  - mesh: a.obj\n"))
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlLayout), 0644))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Len(t, l.Placements, 2)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// stubDrawable counts lifecycle calls.
type stubDrawable struct {
	buildErr error
	builds   int
	releases int
	indices  int
	built    bool
}

func (s *stubDrawable) Build(gpu.Device) error {
	s.builds++
	if s.buildErr != nil {
		return s.buildErr
	}
	s.built = true
	return nil
}

func (s *stubDrawable) Draw(gpu.Context) {}

func (s *stubDrawable) Release() {
	s.releases++
	s.built = false
}

func (s *stubDrawable) IndexCount() int {
	if !s.built {
		return 0
	}
	return s.indices
}

// nullDevice hands out handles and never fails.
type nullDevice struct {
	next gpu.Handle
	live int
}

func (d *nullDevice) CreateBuffer(gpu.BufferKind, []byte) (gpu.Handle, error) {
	d.next++
	d.live++
	return d.next, nil
}

func (d *nullDevice) DeleteBuffer(gpu.Handle) { d.live-- }

func TestMeshSetLifecycle(t *testing.T) {
	set := NewMeshSet()
	a := &stubDrawable{indices: 36}
	b := &stubDrawable{indices: 12}
	set.Add("a", a)
	set.Add("b", b)

	require.NoError(t, set.BuildAll(&nullDevice{}))
	assert.Equal(t, 48, set.IndexCount())
	assert.Equal(t, []string{"a", "b"}, set.Names())

	set.ReleaseAll()
	assert.Zero(t, set.IndexCount())
	assert.Equal(t, 2, set.Len(), "entries survive release")

	// A rebuild after device loss restores everything.
	require.NoError(t, set.BuildAll(&nullDevice{}))
	assert.Equal(t, 48, set.IndexCount())
}

func TestMeshSetPartialFailure(t *testing.T) {
	set := NewMeshSet()
	bad := &stubDrawable{buildErr: gpu.ErrDeviceResource}
	good := &stubDrawable{indices: 3}
	set.Add("bad", bad)
	set.Add("good", good)

	err := set.BuildAll(&nullDevice{})
	assert.ErrorIs(t, err, gpu.ErrDeviceResource)
	assert.Equal(t, 1, good.builds, "one failure does not stop the rest")
	assert.Equal(t, 3, set.IndexCount())
}

func TestMeshSetReplaceReleasesOld(t *testing.T) {
	set := NewMeshSet()
	old := &stubDrawable{}
	set.Add("a", old)
	set.Add("a", &stubDrawable{})

	assert.Equal(t, 1, old.releases)
	assert.Equal(t, 1, set.Len())
}

func TestMeshSetWithRealMeshes(t *testing.T) {
	dev := &nullDevice{}
	set := NewMeshSet()
	set.Add(PrismMesh, gpu.NewMesh(gpu.PrismSource{}))
	set.Add("missing", gpu.NewMesh(gpu.FileSource(filepath.Join(t.TempDir(), "missing.obj"))))

	err := set.BuildAll(dev)
	assert.True(t, errors.Is(err, mesh.ErrOpen))
	assert.Equal(t, 36, set.IndexCount())
	assert.Equal(t, 2, dev.live)

	set.ReleaseAll()
	assert.Zero(t, dev.live, "every buffer freed")
}
