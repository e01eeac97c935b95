package gpu

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/engine/mesh"
	"github.com/Faultbox/campfire/pkg/math"
)

// fakeDevice records buffer lifetimes and draw calls.
type fakeDevice struct {
	next    Handle
	live    map[Handle]int
	sizes   []int
	deleted []Handle

	failKind *BufferKind

	calls []string
	drawn []int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{live: map[Handle]int{}}
}

func (d *fakeDevice) CreateBuffer(kind BufferKind, data []byte) (Handle, error) {
	if d.failKind != nil && *d.failKind == kind {
		return 0, ErrDeviceResource
	}
	d.next++
	d.live[d.next] = len(data)
	d.sizes = append(d.sizes, len(data))
	return d.next, nil
}

func (d *fakeDevice) DeleteBuffer(h Handle) {
	if _, ok := d.live[h]; !ok {
		panic("double free")
	}
	delete(d.live, h)
	d.deleted = append(d.deleted, h)
}

func (d *fakeDevice) BindVertexBuffer(h Handle, stride, offset int) {
	d.calls = append(d.calls, "vb")
	if stride != mesh.VertexSize || offset != 0 {
		panic("unexpected vertex layout")
	}
}

func (d *fakeDevice) BindIndexBuffer(h Handle, format IndexFormat) {
	d.calls = append(d.calls, "ib")
}

func (d *fakeDevice) SetTopology(t Topology) {
	d.calls = append(d.calls, "topology")
}

func (d *fakeDevice) DrawIndexed(count int) {
	d.calls = append(d.calls, "draw")
	d.drawn = append(d.drawn, count)
}

var _ Drawable = (*Mesh)(nil)

func TestMeshBuildPrism(t *testing.T) {
	dev := newFakeDevice()
	m := NewMesh(PrismSource{})

	assert.Equal(t, Unbuilt, m.State())
	require.NoError(t, m.Build(dev))

	assert.Equal(t, Built, m.State())
	assert.Equal(t, 36, m.IndexCount())
	assert.Equal(t, []int{6 * 32, 36 * 4}, dev.sizes)
	assert.Len(t, dev.live, 2)
	assert.NotNil(t, m.Geometry())
}

func TestMeshDraw(t *testing.T) {
	dev := newFakeDevice()
	m := NewMesh(SphereSource{Diameter: 2, Tessellation: 4})

	// Not built yet: no draw path.
	m.Draw(dev)
	assert.Empty(t, dev.calls)

	require.NoError(t, m.Build(dev))
	m.Draw(dev)
	assert.Equal(t, []string{"vb", "ib", "topology", "draw"}, dev.calls)
	assert.Equal(t, []int{m.IndexCount()}, dev.drawn)
}

func TestMeshReleaseIdempotent(t *testing.T) {
	dev := newFakeDevice()
	m := NewMesh(PrismSource{})
	require.NoError(t, m.Build(dev))

	m.Release()
	assert.Equal(t, Released, m.State())
	assert.Empty(t, dev.live)
	assert.Len(t, dev.deleted, 2)
	assert.Nil(t, m.Geometry())
	assert.Zero(t, m.IndexCount())

	// Second release is a no-op; the fake panics on a double free.
	assert.NotPanics(t, m.Release)
	assert.Len(t, dev.deleted, 2)

	m.Draw(dev)
	assert.Empty(t, dev.drawn)
}

func TestMeshReleaseUnbuilt(t *testing.T) {
	m := NewMesh(PrismSource{})
	assert.NotPanics(t, m.Release)
	assert.Equal(t, Released, m.State())
}

func TestMeshRebuild(t *testing.T) {
	dev := newFakeDevice()
	m := NewMesh(BoxSource{Size: math.Vec3{X: 1, Y: 1, Z: 1}})
	require.NoError(t, m.Build(dev))

	err := m.Build(dev)
	assert.ErrorIs(t, err, ErrAlreadyBuilt)

	m.Release()
	require.NoError(t, m.Build(dev))
	assert.Equal(t, Built, m.State())
	assert.Equal(t, 36, m.IndexCount())
	assert.Len(t, dev.live, 2)
}

func TestMeshBuildDeviceFailure(t *testing.T) {
	tests := []struct {
		name string
		kind BufferKind
	}{
		{"vertex buffer rejected", VertexBuffer},
		{"index buffer rejected", IndexBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice()
			kind := tt.kind
			dev.failKind = &kind

			m := NewMesh(PrismSource{})
			err := m.Build(dev)
			assert.ErrorIs(t, err, ErrDeviceResource)
			assert.NotEqual(t, Built, m.State())
			assert.Empty(t, dev.live, "partial allocations must be freed")
			assert.Zero(t, m.IndexCount())

			m.Draw(dev)
			assert.Empty(t, dev.calls)

			// The device recovers: a later build succeeds.
			dev.failKind = nil
			require.NoError(t, m.Build(dev))
		})
	}
}

func TestMeshBuildMissingFile(t *testing.T) {
	dev := newFakeDevice()
	m := NewMesh(FileSource(filepath.Join(t.TempDir(), "nope.obj")))

	err := m.Build(dev)
	assert.ErrorIs(t, err, mesh.ErrOpen)
	assert.Empty(t, dev.sizes, "no buffers for a failed load")
	assert.Zero(t, m.IndexCount())
}

func TestGeometrySourceCopies(t *testing.T) {
	g := mesh.Prism()
	src := GeometrySource{Label: "prism copy", Geometry: g}

	loaded, err := src.Load()
	require.NoError(t, err)
	loaded.Vertices[0].Position[0] = 42
	assert.NotEqual(t, float32(42), g.Vertices[0].Position[0])

	_, err = GeometrySource{Label: "empty"}.Load()
	assert.Error(t, err)
}

func TestBufferKindString(t *testing.T) {
	assert.Equal(t, "vertex", VertexBuffer.String())
	assert.Equal(t, "index", IndexBuffer.String())
	assert.True(t, errors.Is(ErrDeviceResource, ErrDeviceResource))
}
