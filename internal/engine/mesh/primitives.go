package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// PrismIndexCount is the index count declared for the prism: the 24 face
// indices followed by 12 zero indices.
const PrismIndexCount = 36

var (
	prismPositions = []math.Vec3{
		{X: 0, Y: 0, Z: 0},    // a
		{X: -0.5, Y: 1, Z: 0}, // b
		{X: -1, Y: 0, Z: 0},   // c
		{X: 0, Y: 0, Z: 2},    // d
		{X: -0.5, Y: 1, Z: 2}, // e
		{X: -1, Y: 0, Z: 2},   // f
	}

	prismFaces = []Face{
		{0, 2, 1}, // front cap
		{2, 4, 1},
		{2, 5, 4},
		{0, 1, 4},
		{0, 4, 3},
		{3, 4, 5}, // back cap
		{0, 3, 5},
		{0, 5, 2},
	}
)

// Prism returns a triangular prism two units long on +Z with a unit-high
// apex. Vertex normals are averaged from the adjacent face normals. The
// index list is padded with zeros to PrismIndexCount, so the tail draws
// degenerate triangles.
func Prism() *Geometry {
	normals := VertexNormals(prismPositions, prismFaces)

	g := &Geometry{
		Vertices: make([]Vertex, len(prismPositions)),
		Indices:  make([]uint32, PrismIndexCount),
	}
	for i, p := range prismPositions {
		g.Vertices[i] = Vertex{
			Position: p.Array(),
			// planar projection onto XY
			TexCoord: [2]float32{-p.X, p.Y},
			Normal:   normals[i].Array(),
		}
	}
	for i, f := range prismFaces {
		copy(g.Indices[i*3:], f[:])
	}
	return g
}

// Sphere returns a UV sphere centred on the origin with counter-clockwise
// outward winding. tessellation is the number of latitude bands and is
// raised to 3 if smaller; there are twice as many longitude segments.
func Sphere(diameter float32, tessellation int) *Geometry {
	if tessellation < 3 {
		tessellation = 3
	}
	vertical := tessellation
	horizontal := tessellation * 2
	radius := diameter / 2

	g := &Geometry{
		Vertices: make([]Vertex, 0, (vertical+1)*(horizontal+1)),
		Indices:  make([]uint32, 0, vertical*horizontal*6),
	}

	for i := 0; i <= vertical; i++ {
		lat := float32(i)*math32.Pi/float32(vertical) - math32.Pi/2
		dy, dxz := math32.Sincos(lat)
		if i == 0 || i == vertical {
			dxz = 0
		}

		for j := 0; j <= horizontal; j++ {
			lon := float32(j) * 2 * math32.Pi / float32(horizontal)
			s, c := math32.Sincos(lon)
			n := math.Vec3{X: dxz * c, Y: dy, Z: dxz * s}

			g.Vertices = append(g.Vertices, Vertex{
				Position: n.Scale(radius).Array(),
				TexCoord: [2]float32{float32(j) / float32(horizontal), float32(i) / float32(vertical)},
				Normal:   n.Array(),
			})
		}
	}

	stride := uint32(horizontal + 1)
	for i := 0; i < vertical; i++ {
		for j := 0; j < horizontal; j++ {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			g.Indices = append(g.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
	return g
}

var boxNormals = []math.Vec3{
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
}

// Box returns an axis-aligned box centred on the origin with four vertices
// per face so each face keeps a flat normal.
func Box(size math.Vec3) *Geometry {
	half := size.Scale(0.5)
	g := &Geometry{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	for _, n := range boxNormals {
		side1 := math.Vec3{X: n.Y, Y: n.Z, Z: n.X}
		side2 := n.Cross(side1)
		base := uint32(len(g.Vertices))

		corners := [4]struct {
			p  math.Vec3
			uv [2]float32
		}{
			{n.Sub(side1).Sub(side2), [2]float32{1, 0}},
			{n.Sub(side1).Add(side2), [2]float32{0, 0}},
			{n.Add(side1).Add(side2), [2]float32{0, 1}},
			{n.Add(side1).Sub(side2), [2]float32{1, 1}},
		}
		for _, c := range corners {
			p := math.Vec3{X: c.p.X * half.X, Y: c.p.Y * half.Y, Z: c.p.Z * half.Z}
			g.Vertices = append(g.Vertices, Vertex{
				Position: p.Array(),
				TexCoord: c.uv,
				Normal:   n.Array(),
			})
		}

		g.Indices = append(g.Indices,
			base, base+2, base+1,
			base, base+3, base+2,
		)
	}
	return g
}

// Flip reverses the winding of every triangle and negates the normals so
// the inside faces become front faces. Used for skyboxes and rooms.
func (g *Geometry) Flip() {
	for i := 0; i+2 < len(g.Indices); i += 3 {
		g.Indices[i+1], g.Indices[i+2] = g.Indices[i+2], g.Indices[i+1]
	}
	for i := range g.Vertices {
		n := &g.Vertices[i].Normal
		n[0], n[1], n[2] = -n[0], -n[1], -n[2]
	}
}
