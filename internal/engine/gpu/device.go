// Package gpu owns device-resident mesh buffers and the small device
// abstraction they are created and drawn through.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/Faultbox/campfire/internal/engine/mesh"
)

// ErrDeviceResource is returned when the graphics device rejects an
// allocation. The mesh stays unusable until the device is recreated.
var ErrDeviceResource = errors.New("graphics device rejected resource")

// ErrAlreadyBuilt is returned by Build on a mesh that still owns buffers.
var ErrAlreadyBuilt = errors.New("mesh already built; release before rebuilding")

// BufferKind selects the binding target of a buffer.
type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	if k == IndexBuffer {
		return "index"
	}
	return "vertex"
}

// Handle names a device buffer. Zero is never a valid handle.
type Handle uint32

// IndexFormat is the element type of an index buffer.
type IndexFormat int

const (
	IndexUint32 IndexFormat = iota
)

// Topology is the primitive assembly mode for a draw.
type Topology int

const (
	TriangleList Topology = iota
)

// Device creates and destroys immutable buffers.
type Device interface {
	CreateBuffer(kind BufferKind, data []byte) (Handle, error)
	DeleteBuffer(h Handle)
}

// Context records binding state and issues draws.
type Context interface {
	BindVertexBuffer(h Handle, stride, offset int)
	BindIndexBuffer(h Handle, format IndexFormat)
	SetTopology(t Topology)
	DrawIndexed(count int)
}

// Drawable is the contract every renderable mesh in the scene implements.
type Drawable interface {
	Build(dev Device) error
	Draw(ctx Context)
	Release()
	IndexCount() int
}

// vertexBytes views the vertex slice as raw bytes without copying.
func vertexBytes(v []mesh.Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*mesh.VertexSize)
}

// indexBytes views the index slice as raw bytes without copying.
func indexBytes(idx []uint32) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*mesh.IndexSize)
}
