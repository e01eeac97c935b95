// Package scene composes the diorama: the placed meshes, their textures,
// the light, the skybox and the text overlay.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/assets"
	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/overlay"
	"github.com/Faultbox/campfire/internal/engine/renderer"
	"github.com/Faultbox/campfire/internal/engine/shader"
	"github.com/Faultbox/campfire/internal/engine/shaders"
	"github.com/Faultbox/campfire/internal/engine/texture"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	ShowPrism bool
}

// Scene owns every device resource of the diorama. Device resources are
// created by CreateDeviceResources and dropped by OnDeviceLost; window
// size resources follow CreateWindowSizeResources.
type Scene struct {
	config   Config
	log      *zap.Logger
	assets   *assets.Manager
	renderer *renderer.Renderer

	layout *Layout
	worlds []math.Mat4

	meshes   *MeshSet
	textures map[string]*texture.Texture
	fallback *texture.Texture
	program  *shader.Program
	sky      *skyRenderer
	overlay  *overlay.Overlay

	ready bool
}

// New creates a scene over layout. No device resources exist until
// CreateDeviceResources.
func New(cfg Config, r *renderer.Renderer, am *assets.Manager, layout *Layout) *Scene {
	s := &Scene{
		config:   cfg,
		log:      logger.Named("scene"),
		assets:   am,
		renderer: r,
		textures: make(map[string]*texture.Texture),
		overlay:  overlay.New(),
	}
	s.setLayout(layout)
	return s
}

// Overlay returns the text overlay drawn over the scene.
func (s *Scene) Overlay() *overlay.Overlay { return s.overlay }

// Layout returns the current layout.
func (s *Scene) Layout() *Layout { return s.layout }

// Meshes returns the mesh set.
func (s *Scene) Meshes() *MeshSet { return s.meshes }

func (s *Scene) setLayout(l *Layout) {
	s.layout = l
	s.worlds = l.Worlds()
	s.meshes = NewMeshSet()
	for _, name := range l.Meshes() {
		s.meshes.Add(name, gpu.NewMesh(s.meshSource(name)))
	}
}

func (s *Scene) meshSource(name string) gpu.Source {
	if name == PrismMesh {
		return gpu.PrismSource{}
	}
	if path, err := s.assets.Resolve(name); err == nil {
		return gpu.FileSource(path)
	}
	// Unresolved names fail at Build with the loader's open error.
	return gpu.FileSource(name)
}

// CreateDeviceResources compiles the lighting program and builds every
// mesh, texture, the skybox and the overlay. A mesh or texture that fails
// is logged and skipped; only a shader failure is fatal.
func (s *Scene) CreateDeviceResources() error {
	dev := s.renderer.Device()
	if dev == nil {
		return fmt.Errorf("creating scene resources: no device")
	}

	prog, err := shader.New("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return err
	}
	s.program = prog

	if err := s.meshes.BuildAll(dev); err != nil {
		s.log.Warn("some meshes will not be drawn", zap.Error(err))
	}

	s.fallback = whiteTexture()
	for _, name := range s.layout.Textures() {
		s.textures[name] = s.loadTexture(name)
	}

	if s.layout.Skybox.Faces != "" {
		sky, err := newSkyRenderer(s.assets, s.layout.Skybox, dev)
		if err != nil {
			s.log.Warn("skybox disabled", zap.Error(err))
		} else {
			s.sky = sky
		}
	}

	if err := s.overlay.CreateDeviceResources(dev); err != nil {
		s.log.Warn("overlay disabled", zap.Error(err))
	}

	s.ready = true
	s.log.Info("scene resources created",
		zap.Int("meshes", s.meshes.Len()),
		zap.Int("indices", s.meshes.IndexCount()),
		zap.Int("textures", len(s.textures)),
	)
	return nil
}

func (s *Scene) loadTexture(name string) *texture.Texture {
	data, err := s.assets.Load(name)
	if err != nil {
		s.log.Warn("texture missing, using white", zap.String("texture", name), zap.Error(err))
		return nil
	}
	img, err := texture.Decode(data, name)
	if err != nil {
		s.log.Warn("texture unreadable, using white", zap.String("texture", name), zap.Error(err))
		return nil
	}
	tex, err := texture.Upload2D(name, img)
	if err != nil {
		s.log.Warn("texture upload failed, using white", zap.String("texture", name), zap.Error(err))
		return nil
	}
	return tex
}

// whiteTexture is bound for placements whose texture failed to load.
func whiteTexture() *texture.Texture {
	t := &texture.Texture{Name: "fallback", Target: gl.TEXTURE_2D, Width: 1, Height: 1}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// CreateWindowSizeResources rebuilds the projection and the overlay's
// pixel space for a width x height back buffer.
func (s *Scene) CreateWindowSizeResources(width, height int) {
	s.renderer.Resize(width, height)
	s.overlay.Resize(width, height)
}

// releaseDeviceResources frees everything CreateDeviceResources made.
func (s *Scene) releaseDeviceResources() {
	s.meshes.ReleaseAll()
	for name, t := range s.textures {
		if t != nil {
			t.Delete()
		}
		delete(s.textures, name)
	}
	if s.fallback != nil {
		s.fallback.Delete()
		s.fallback = nil
	}
	if s.sky != nil {
		s.sky.Release()
		s.sky = nil
	}
	s.overlay.ReleaseDeviceResources()
	if s.program != nil {
		s.program.Delete()
		s.program = nil
	}
	s.ready = false
}

// OnDeviceLost releases every device resource, then the device itself.
func (s *Scene) OnDeviceLost() {
	s.log.Warn("device lost, releasing resources")
	s.releaseDeviceResources()
	s.renderer.ReleaseDevice()
}

// OnDeviceRestored recreates the device and every resource on it.
func (s *Scene) OnDeviceRestored() error {
	if err := s.renderer.CreateDevice(); err != nil {
		return err
	}
	if err := s.CreateDeviceResources(); err != nil {
		return err
	}
	s.CreateWindowSizeResources(s.renderer.Size())
	s.log.Info("device restored")
	return nil
}

// SetLayout swaps the diorama. When device resources exist they are
// rebuilt for the new layout.
func (s *Scene) SetLayout(l *Layout) error {
	wasReady := s.ready
	if wasReady {
		s.releaseDeviceResources()
	}
	s.setLayout(l)
	s.log.Info("layout applied", zap.Int("placements", len(l.Placements)))
	if wasReady {
		return s.CreateDeviceResources()
	}
	return nil
}

// visible reports whether placement p is drawn.
func (s *Scene) visible(p Placement) bool {
	return s.config.ShowPrism || p.Mesh != PrismMesh
}

// Render draws one frame: sky, placements, overlay.
func (s *Scene) Render(view math.Mat4) {
	s.renderer.Begin()
	defer s.renderer.End()

	if !s.ready {
		return
	}
	dev := s.renderer.Device()
	proj := s.renderer.ProjectionMatrix()

	if s.sky != nil {
		s.sky.Draw(dev, view, proj)
	}

	s.program.Use()
	s.program.SetMat4("uView", view)
	s.program.SetMat4("uProjection", proj)
	s.program.SetInt("uTexture", 0)
	s.layout.Light.Apply(s.program)

	for i, p := range s.layout.Placements {
		if !s.visible(p) {
			continue
		}
		d, ok := s.meshes.Get(p.Mesh)
		if !ok || d.IndexCount() == 0 {
			continue
		}

		tex := s.textures[p.Texture]
		if tex == nil {
			tex = s.fallback
		}
		tex.Bind(0)

		world := s.worlds[i]
		s.program.SetMat4("uWorld", world)
		s.program.SetMat4("uNormalMatrix", world.NormalMatrix())
		d.Draw(dev)
	}

	s.overlay.Draw(dev)
}

// Close releases all resources.
func (s *Scene) Close() {
	s.releaseDeviceResources()
}
