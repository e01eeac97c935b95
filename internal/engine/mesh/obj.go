package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ decoding errors.
var (
	ErrOpen          = errors.New("cannot open mesh file")
	ErrMalformedFace = errors.New("malformed face record: expected 3 v/vt/vn triples")
)

// LoadOBJ reads a Wavefront OBJ file into a triangle soup.
// A file that cannot be opened yields an error matching both ErrOpen and the
// underlying fs error (e.g. fs.ErrNotExist).
func LoadOBJ(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	g, err := DecodeOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// corner is one face vertex reference, 1-based as written in the file.
type corner struct {
	pos, uv, norm int
}

// DecodeOBJ parses the v/vt/vn/f subset of OBJ. Every face corner becomes
// its own Vertex and the index list is the identity sequence. Any other
// record is ignored, and short or non-numeric v/vt/vn components read as
// zero. Only face records can fail; on error no geometry is returned.
func DecodeOBJ(r io.Reader) (*Geometry, error) {
	var (
		positions [][3]float32
		texCoords [][2]float32
		normals   [][3]float32
		corners   []corner
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v := parseFloats(fields[1:], 3)
			positions = append(positions, [3]float32{v[0], v[1], v[2]})
		case "vt":
			v := parseFloats(fields[1:], 2)
			texCoords = append(texCoords, [2]float32{v[0], v[1]})
		case "vn":
			v := parseFloats(fields[1:], 3)
			normals = append(normals, [3]float32{v[0], v[1], v[2]})
		case "f":
			tri, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			corners = append(corners, tri[:]...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, len(corners)),
		Indices:  make([]uint32, 0, len(corners)),
	}
	for i, c := range corners {
		if c.pos < 1 || c.pos > len(positions) ||
			c.uv < 1 || c.uv > len(texCoords) ||
			c.norm < 1 || c.norm > len(normals) {
			return nil, fmt.Errorf("%w: corner %d/%d/%d out of range (v=%d vt=%d vn=%d)",
				ErrMalformedFace, c.pos, c.uv, c.norm, len(positions), len(texCoords), len(normals))
		}
		g.Vertices = append(g.Vertices, Vertex{
			Position: positions[c.pos-1],
			TexCoord: texCoords[c.uv-1],
			Normal:   normals[c.norm-1],
		})
		g.Indices = append(g.Indices, uint32(i))
	}

	return g, nil
}

// parseFace parses "a/b/c a/b/c a/b/c". Anything that does not yield
// exactly nine integers is rejected, including quads and v//vn corners.
func parseFace(fields []string) ([3]corner, error) {
	var tri [3]corner

	var ints []int
	for _, f := range fields {
		for _, part := range strings.Split(f, "/") {
			if part == "" {
				return tri, fmt.Errorf("%w: empty index in %q", ErrMalformedFace, f)
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return tri, fmt.Errorf("%w: %q", ErrMalformedFace, f)
			}
			ints = append(ints, n)
		}
	}
	if len(ints) != 9 {
		return tri, fmt.Errorf("%w: got %d integers", ErrMalformedFace, len(ints))
	}

	for i := range tri {
		tri[i] = corner{pos: ints[i*3], uv: ints[i*3+1], norm: ints[i*3+2]}
	}
	return tri, nil
}

// parseFloats reads up to n leading floats. Reading stops at the first
// component that is not a number; missing components are zero, so a short
// record still occupies its slot in the attribute pool.
func parseFloats(fields []string, n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n && i < len(fields); i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			break
		}
		out[i] = float32(v)
	}
	return out
}
