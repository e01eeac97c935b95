package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/internal/assets"
	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/shader"
	"github.com/Faultbox/campfire/internal/engine/shaders"
	"github.com/Faultbox/campfire/internal/engine/texture"
	"github.com/Faultbox/campfire/pkg/math"
)

// skyRenderer draws an inside-out sphere around the eye, sampled from a
// cubemap and pinned to the far plane.
type skyRenderer struct {
	mesh    *gpu.Mesh
	cubemap *texture.Texture
	prog    *shader.Program
}

// loadSkyFaces reads and decodes the six cubemap faces.
func loadSkyFaces(am *assets.Manager, sky Skybox) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	for i, name := range sky.FacePaths() {
		data, err := am.Load(name)
		if err != nil {
			return faces, fmt.Errorf("skybox face %s: %w", texture.FaceNames[i], err)
		}
		img, err := texture.Decode(data, name)
		if err != nil {
			return faces, fmt.Errorf("skybox face %s: %w", texture.FaceNames[i], err)
		}
		faces[i] = img
	}
	return faces, nil
}

func skySource(sky Skybox) gpu.SphereSource {
	d, n := sky.Diameter, sky.Tessellation
	if d <= 0 {
		d = 2
	}
	if n <= 0 {
		n = 3
	}
	return gpu.SphereSource{Diameter: d, Tessellation: n, Inside: true}
}

func newSkyRenderer(am *assets.Manager, sky Skybox, dev gpu.Device) (*skyRenderer, error) {
	faces, err := loadSkyFaces(am, sky)
	if err != nil {
		return nil, err
	}

	cubemap, err := texture.UploadCubemap("skybox", faces)
	if err != nil {
		return nil, err
	}

	prog, err := shader.New("skybox", shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		cubemap.Delete()
		return nil, err
	}

	m := gpu.NewMesh(skySource(sky))
	if err := m.Build(dev); err != nil {
		cubemap.Delete()
		prog.Delete()
		return nil, err
	}

	return &skyRenderer{mesh: m, cubemap: cubemap, prog: prog}, nil
}

// skyView drops the translation so the sky stays centred on the eye.
func skyView(view math.Mat4) math.Mat4 {
	return view.WithoutTranslation()
}

// Draw renders the sky first in the frame. Depth writes are off so every
// later draw lands in front of it.
func (s *skyRenderer) Draw(ctx gpu.Context, view, proj math.Mat4) {
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
	defer func() {
		gl.DepthMask(true)
		gl.DepthFunc(gl.LESS)
	}()

	s.prog.Use()
	s.prog.SetMat4("uView", skyView(view))
	s.prog.SetMat4("uProjection", proj)
	s.prog.SetInt("uSkybox", 0)
	s.cubemap.Bind(0)
	s.mesh.Draw(ctx)
}

func (s *skyRenderer) Release() {
	s.mesh.Release()
	s.cubemap.Delete()
	s.prog.Delete()
}
