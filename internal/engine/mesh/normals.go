package mesh

import "github.com/Faultbox/campfire/pkg/math"

// Face is a triangle as three indices into a position list.
type Face [3]uint32

// FaceNormal returns the unit normal of triangle (a, b, c) following the
// winding order: normalize((b-a) x (c-a)).
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// VertexNormals returns, for each position, the normalized sum of the
// normals of every face that references it. Faces are not weighted by
// area. A position used by no face gets the zero vector.
func VertexNormals(positions []math.Vec3, faces []Face) []math.Vec3 {
	sums := make([]math.Vec3, len(positions))
	for _, f := range faces {
		n := FaceNormal(positions[f[0]], positions[f[1]], positions[f[2]])
		for _, idx := range f {
			sums[idx] = sums[idx].Add(n)
		}
	}
	for i := range sums {
		sums[i] = sums[i].Normalize()
	}
	return sums
}
