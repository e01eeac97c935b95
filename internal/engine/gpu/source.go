package gpu

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/campfire/internal/engine/mesh"
	"github.com/Faultbox/campfire/pkg/math"
)

// Source produces CPU geometry for a mesh. It is called on every build, so
// a device restore re-reads files from disk.
type Source interface {
	Name() string
	Load() (*mesh.Geometry, error)
}

// FileSource loads an OBJ file.
type FileSource string

func (s FileSource) Name() string { return filepath.Base(string(s)) }

func (s FileSource) Load() (*mesh.Geometry, error) { return mesh.LoadOBJ(string(s)) }

// PrismSource generates the procedural prism.
type PrismSource struct{}

func (PrismSource) Name() string { return "prism" }

func (PrismSource) Load() (*mesh.Geometry, error) { return mesh.Prism(), nil }

// SphereSource generates a UV sphere. Inside flips it for viewing from within.
type SphereSource struct {
	Diameter     float32
	Tessellation int
	Inside       bool
}

func (s SphereSource) Name() string {
	return fmt.Sprintf("sphere(%g,%d)", s.Diameter, s.Tessellation)
}

func (s SphereSource) Load() (*mesh.Geometry, error) {
	g := mesh.Sphere(s.Diameter, s.Tessellation)
	if s.Inside {
		g.Flip()
	}
	return g, nil
}

// BoxSource generates an axis-aligned box. Inside flips it for viewing from within.
type BoxSource struct {
	Size   math.Vec3
	Inside bool
}

func (s BoxSource) Name() string {
	return fmt.Sprintf("box(%g,%g,%g)", s.Size.X, s.Size.Y, s.Size.Z)
}

func (s BoxSource) Load() (*mesh.Geometry, error) {
	g := mesh.Box(s.Size)
	if s.Inside {
		g.Flip()
	}
	return g, nil
}

// GeometrySource wraps already-built geometry. Each Load returns a copy so
// releasing a mesh never aliases the caller's slices.
type GeometrySource struct {
	Label    string
	Geometry *mesh.Geometry
}

func (s GeometrySource) Name() string { return s.Label }

func (s GeometrySource) Load() (*mesh.Geometry, error) {
	if s.Geometry == nil {
		return nil, fmt.Errorf("%s: no geometry", s.Label)
	}
	return &mesh.Geometry{
		Vertices: append([]mesh.Vertex(nil), s.Geometry.Vertices...),
		Indices:  append([]uint32(nil), s.Geometry.Indices...),
	}, nil
}
