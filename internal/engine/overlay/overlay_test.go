package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/pkg/math"
)

func opaquePixels(t *testing.T, text string, scale int) int {
	t.Helper()
	img := Rasterize(text, Yellow, scale)
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func TestRasterizeBounds(t *testing.T) {
	img := Rasterize("CMP502", Yellow, 1)
	assert.Equal(t, 6*7, img.Bounds().Dx())
	assert.Equal(t, 13, img.Bounds().Dy())

	scaled := Rasterize("CMP502", Yellow, 3)
	assert.Equal(t, 6*7*3, scaled.Bounds().Dx())
	assert.Equal(t, 13*3, scaled.Bounds().Dy())
}

func TestRasterizeDrawsInColour(t *testing.T) {
	img := Rasterize("A", Yellow, 1)

	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.A == 255 {
				assert.Equal(t, Yellow, c)
				found = true
				break
			}
		}
	}
	assert.True(t, found, "no opaque pixel drawn")
}

func TestRasterizeScaleMultipliesCoverage(t *testing.T) {
	one := opaquePixels(t, "Hi", 1)
	require.NotZero(t, one)
	assert.Equal(t, one*4, opaquePixels(t, "Hi", 2))
}

func TestRasterizeEmptyAndBadScale(t *testing.T) {
	img := Rasterize("", Yellow, 0)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Zero(t, opaquePixels(t, "", 0))
}

func TestQuad(t *testing.T) {
	q := quad()
	require.Len(t, q.Vertices, 4)
	assert.Equal(t, 2, q.TriangleCount())
	for _, i := range q.Indices {
		assert.Less(t, int(i), len(q.Vertices))
	}
	// The top-left corner samples the top row of the flipped upload.
	assert.Equal(t, [2]float32{0, 1}, q.Vertices[0].TexCoord)
}

func TestLabelModelPlacesQuad(t *testing.T) {
	m := labelModel(10, 10, 84, 26)
	q := quad()

	assert.Equal(t, math.Vec3{X: 10, Y: 10}, m.TransformVec3(math.Vec3FromArray(q.Vertices[0].Position)))
	assert.Equal(t, math.Vec3{X: 94, Y: 36}, m.TransformVec3(math.Vec3FromArray(q.Vertices[2].Position)))
}

func TestSetLabelTracksChanges(t *testing.T) {
	o := New()
	o.SetLabel("title", "CMP502: Assignment 2", 10, 10, Yellow)

	l, ok := o.Label("title")
	require.True(t, ok)
	assert.True(t, l.dirty)
	assert.Equal(t, DefaultScale, l.Scale)

	l.dirty = false
	o.SetLabel("title", "CMP502: Assignment 2", 20, 20, Yellow)
	assert.False(t, l.dirty, "moving a label keeps its texture")
	assert.Equal(t, float32(20), l.X)

	o.SetLabel("title", "changed", 20, 20, Yellow)
	assert.True(t, l.dirty)

	l.dirty = false
	o.SetLabel("title", "changed", 20, 20, color.RGBA{255, 255, 255, 255})
	assert.True(t, l.dirty)

	o.RemoveLabel("title")
	_, ok = o.Label("title")
	assert.False(t, ok)
}

func TestIDsSorted(t *testing.T) {
	o := New()
	o.SetLabel("title", "a", 0, 0, Yellow)
	o.SetLabel("fps", "b", 0, 0, Yellow)
	assert.Equal(t, []string{"fps", "title"}, o.ids())
}

func TestDrawWithoutResourcesIsNoop(t *testing.T) {
	o := New()
	o.SetLabel("title", "x", 0, 0, Yellow)
	// No program: must return before touching GL.
	o.Draw(nil)
}
