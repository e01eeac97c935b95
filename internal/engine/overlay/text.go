// Package overlay draws screen-space text over the scene.
package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/campfire/internal/engine/mesh"
)

// Yellow is the title colour.
var Yellow = color.RGBA{255, 255, 0, 255}

// Rasterize renders text in the 7x13 bitmap face onto a transparent image
// just large enough to hold it, scaled up by an integer factor.
func Rasterize(text string, c color.Color, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	face := basicfont.Face7x13
	m := face.Metrics()

	width := font.MeasureString(face, text).Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if width == 0 {
		width = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)

	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height*scale; y++ {
		for x := 0; x < width*scale; x++ {
			dst.SetRGBA(x, y, src.RGBAAt(x/scale, y/scale))
		}
	}
	return dst
}

// quad returns a unit square in screen space, y down, with texture
// coordinates for an image uploaded bottom row first.
func quad() *mesh.Geometry {
	return &mesh.Geometry{
		Vertices: []mesh.Vertex{
			{Position: [3]float32{0, 0, 0}, TexCoord: [2]float32{0, 1}},
			{Position: [3]float32{1, 0, 0}, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{1, 1, 0}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}
