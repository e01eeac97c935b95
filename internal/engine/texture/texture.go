package texture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Cubemap face order, matching GL_TEXTURE_CUBE_MAP_POSITIVE_X onward.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// FaceNames are the file stems of the six cubemap faces, in face order.
var FaceNames = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// Texture is a GL texture object.
type Texture struct {
	Name   string
	ID     uint32
	Target uint32
	Width  int
	Height int
}

// Upload2D creates a mipmapped, repeating 2D texture. img is flipped to
// GL row order on the way.
func Upload2D(name string, img image.Image) (*Texture, error) {
	rgba := FlipForGL(img)
	b := rgba.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("texture %s: empty image", name)
	}

	t := &Texture{Name: name, Target: gl.TEXTURE_2D, Width: b.Dx(), Height: b.Dy()}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.Width), int32(t.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// UploadCubemap creates a cubemap from six square faces of equal size, in
// face order. Faces keep their top-down row order, as cubemaps expect.
func UploadCubemap(name string, faces [6]*image.RGBA) (*Texture, error) {
	size := 0
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("cubemap %s: missing face %s", name, FaceNames[i])
		}
		b := f.Bounds()
		if b.Dx() != b.Dy() {
			return nil, fmt.Errorf("cubemap %s: face %s is %dx%d, not square", name, FaceNames[i], b.Dx(), b.Dy())
		}
		if size == 0 {
			size = b.Dx()
		} else if b.Dx() != size {
			return nil, fmt.Errorf("cubemap %s: face %s is %d wide, want %d", name, FaceNames[i], b.Dx(), size)
		}
	}
	if size == 0 {
		return nil, fmt.Errorf("cubemap %s: empty faces", name)
	}

	t := &Texture{Name: name, Target: gl.TEXTURE_CUBE_MAP, Width: size, Height: size}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.ID)

	for i, f := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, int32(size), int32(size), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&f.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t, nil
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.Target, t.ID)
}

// Delete releases the texture. Safe to call more than once.
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
