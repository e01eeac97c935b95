package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/internal/engine/mesh"
)

// Attribute locations of the Vertex layout in every mesh shader.
const (
	AttribPosition = 0
	AttribTexCoord = 1
	AttribNormal   = 2
)

// GLDevice implements Device and Context on an OpenGL 4.1 core context.
// One vertex array object is shared by every mesh since they all use the
// same Vertex layout; binding a vertex buffer re-points its attributes.
// Must be used on the thread that owns the GL context.
type GLDevice struct {
	vao      uint32
	topology uint32
	idxType  uint32
}

// NewGLDevice creates the shared vertex array. gl.Init must have run.
func NewGLDevice() (*GLDevice, error) {
	d := &GLDevice{
		topology: gl.TRIANGLES,
		idxType:  gl.UNSIGNED_INT,
	}
	gl.GenVertexArrays(1, &d.vao)
	if d.vao == 0 {
		return nil, fmt.Errorf("vertex array: %w", ErrDeviceResource)
	}

	gl.BindVertexArray(d.vao)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.EnableVertexAttribArray(AttribTexCoord)
	gl.EnableVertexAttribArray(AttribNormal)
	gl.BindVertexArray(0)
	return d, nil
}

// Close deletes the shared vertex array.
func (d *GLDevice) Close() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func target(kind BufferKind) uint32 {
	if kind == IndexBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// CreateBuffer uploads data into a new static buffer.
func (d *GLDevice) CreateBuffer(kind BufferKind, data []byte) (Handle, error) {
	// Clear stale errors so the check below only sees this allocation.
	for gl.GetError() != gl.NO_ERROR {
	}

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("%s buffer of %d bytes: %w", kind, len(data), ErrDeviceResource)
	}

	// Element array bindings live in the VAO, so keep ours bound.
	gl.BindVertexArray(d.vao)
	t := target(kind)
	gl.BindBuffer(t, id)
	if len(data) > 0 {
		gl.BufferData(t, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	} else {
		gl.BufferData(t, 0, nil, gl.STATIC_DRAW)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &id)
		return 0, fmt.Errorf("%s buffer of %d bytes: gl error 0x%x: %w", kind, len(data), code, ErrDeviceResource)
	}
	return Handle(id), nil
}

// DeleteBuffer deletes a buffer created by CreateBuffer.
func (d *GLDevice) DeleteBuffer(h Handle) {
	id := uint32(h)
	if id != 0 {
		gl.DeleteBuffers(1, &id)
	}
}

// BindVertexBuffer points the Vertex attributes at h.
func (d *GLDevice) BindVertexBuffer(h Handle, stride, offset int) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	gl.VertexAttribPointerWithOffset(AttribPosition, 3, gl.FLOAT, false, int32(stride), uintptr(offset+mesh.PositionOffset))
	gl.VertexAttribPointerWithOffset(AttribTexCoord, 2, gl.FLOAT, false, int32(stride), uintptr(offset+mesh.TexCoordOffset))
	gl.VertexAttribPointerWithOffset(AttribNormal, 3, gl.FLOAT, false, int32(stride), uintptr(offset+mesh.NormalOffset))
}

// BindIndexBuffer binds h as the element array of the shared VAO.
func (d *GLDevice) BindIndexBuffer(h Handle, format IndexFormat) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(h))
	switch format {
	case IndexUint32:
		d.idxType = gl.UNSIGNED_INT
	}
}

// SetTopology selects the primitive mode for the next draws.
func (d *GLDevice) SetTopology(t Topology) {
	switch t {
	case TriangleList:
		d.topology = gl.TRIANGLES
	}
}

// DrawIndexed draws count indices from the bound index buffer.
func (d *GLDevice) DrawIndexed(count int) {
	if count <= 0 {
		return
	}
	gl.DrawElements(d.topology, int32(count), d.idxType, nil)
}
