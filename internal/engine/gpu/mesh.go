package gpu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/mesh"
	"github.com/Faultbox/campfire/internal/logger"
)

// State is the lifecycle state of a Mesh.
type State int

const (
	Unbuilt State = iota
	Built
	Released
)

func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case Released:
		return "released"
	default:
		return "unbuilt"
	}
}

// Mesh is a device-resident triangle list. It exclusively owns its vertex
// and index buffers; handles never leave the type.
//
// Transitions: Build moves Unbuilt or Released to Built; Release moves
// Built or Released to Released.
type Mesh struct {
	source Source
	log    *zap.Logger

	dev        Device
	geometry   *mesh.Geometry
	vbo        Handle
	ebo        Handle
	indexCount int
	state      State
}

// NewMesh creates an unbuilt mesh fed by src.
func NewMesh(src Source) *Mesh {
	return &Mesh{
		source: src,
		log:    logger.Named("gpu").With(zap.String("mesh", src.Name())),
	}
}

// Name returns the source name.
func (m *Mesh) Name() string { return m.source.Name() }

// State returns the lifecycle state.
func (m *Mesh) State() State { return m.state }

// Geometry returns the CPU copy of the geometry while built, nil otherwise.
func (m *Mesh) Geometry() *mesh.Geometry { return m.geometry }

// IndexCount returns the number of indices drawn, or 0 unless built.
func (m *Mesh) IndexCount() int {
	if m.state != Built {
		return 0
	}
	return m.indexCount
}

// Build loads the geometry and uploads a vertex buffer of
// VertexSize*len(vertices) bytes and an index buffer of 4*len(indices)
// bytes. On failure nothing stays allocated and the mesh is not drawable.
func (m *Mesh) Build(dev Device) error {
	if m.state == Built {
		return fmt.Errorf("%s: %w", m.Name(), ErrAlreadyBuilt)
	}

	g, err := m.source.Load()
	if err != nil {
		m.state = Released
		return fmt.Errorf("loading %s: %w", m.Name(), err)
	}

	vbo, err := dev.CreateBuffer(VertexBuffer, vertexBytes(g.Vertices))
	if err != nil {
		m.state = Released
		return fmt.Errorf("%s vertex buffer: %w", m.Name(), err)
	}

	ebo, err := dev.CreateBuffer(IndexBuffer, indexBytes(g.Indices))
	if err != nil {
		dev.DeleteBuffer(vbo)
		m.state = Released
		return fmt.Errorf("%s index buffer: %w", m.Name(), err)
	}

	m.dev = dev
	m.geometry = g
	m.vbo = vbo
	m.ebo = ebo
	m.indexCount = len(g.Indices)
	m.state = Built

	m.log.Debug("mesh built",
		zap.Int("vertices", len(g.Vertices)),
		zap.Int("indices", len(g.Indices)),
	)
	return nil
}

// Draw binds both buffers and draws every index as a triangle list.
// It does nothing unless the mesh is built.
func (m *Mesh) Draw(ctx Context) {
	if m.state != Built {
		return
	}
	ctx.BindVertexBuffer(m.vbo, mesh.VertexSize, 0)
	ctx.BindIndexBuffer(m.ebo, IndexUint32)
	ctx.SetTopology(TriangleList)
	ctx.DrawIndexed(m.indexCount)
}

// Release deletes both buffers and drops the CPU geometry. Safe to call in
// any state and any number of times.
func (m *Mesh) Release() {
	if m.state != Built {
		if m.state == Unbuilt {
			m.state = Released
		}
		return
	}

	if m.ebo != 0 {
		m.dev.DeleteBuffer(m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		m.dev.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
	m.dev = nil
	m.geometry = nil
	m.indexCount = 0
	m.state = Released

	m.log.Debug("mesh released")
}
