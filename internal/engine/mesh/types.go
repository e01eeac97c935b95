// Package mesh provides CPU-side triangle geometry: the OBJ decoder and the
// procedural shapes used by the diorama.
package mesh

import "unsafe"

// Vertex is the interleaved vertex layout shared by every mesh.
// Position at offset 0, TexCoord at 12, Normal at 20.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// VertexSize is the byte stride of Vertex (32).
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Byte offsets of the Vertex attributes.
const (
	PositionOffset = int(unsafe.Offsetof(Vertex{}.Position))
	TexCoordOffset = int(unsafe.Offsetof(Vertex{}.TexCoord))
	NormalOffset   = int(unsafe.Offsetof(Vertex{}.Normal))
)

// IndexSize is the byte size of one index.
const IndexSize = 4

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles described by the indices.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// VertexBytes returns the byte size of the vertex data.
func (g *Geometry) VertexBytes() int {
	return len(g.Vertices) * VertexSize
}

// IndexBytes returns the byte size of the index data.
func (g *Geometry) IndexBytes() int {
	return len(g.Indices) * IndexSize
}
