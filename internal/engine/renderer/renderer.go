// Package renderer owns the OpenGL context state: initialization, the
// shared mesh device, the viewport and per-frame clears.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

// ClearColor is cornflower blue.
var ClearColor = [4]float32{0.392, 0.584, 0.929, 1}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32 // Vertical, degrees
	Near   float32
	Far    float32
}

// Renderer handles GL state shared by every pass.
type Renderer struct {
	config Config
	device *gpu.GLDevice
	proj   math.Mat4
}

// New initializes OpenGL and creates the mesh device.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if err := r.CreateDevice(); err != nil {
		return nil, err
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// CreateDevice sets the default GL state and creates the mesh device. It
// is also the restore half of a device reset.
func (r *Renderer) CreateDevice() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Exported models are not consistently wound, so both sides are drawn.
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])

	dev, err := gpu.NewGLDevice()
	if err != nil {
		return fmt.Errorf("creating mesh device: %w", err)
	}
	r.device = dev
	return nil
}

// ReleaseDevice drops the mesh device. Every mesh built on it must have
// been released first.
func (r *Renderer) ReleaseDevice() {
	if r.device != nil {
		r.device.Close()
		r.device = nil
	}
}

// Device returns the mesh device, nil between ReleaseDevice and CreateDevice.
func (r *Renderer) Device() *gpu.GLDevice {
	return r.device
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.ReleaseDevice()
}

// Resize updates the viewport and the projection.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.proj = Projection(width, height, r.config.FOV, r.config.Near, r.config.Far)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// ProjectionMatrix returns the perspective for the current size.
func (r *Renderer) ProjectionMatrix() math.Mat4 {
	return r.proj
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadPixels reads the back buffer as RGBA, bottom row first. Call it
// after drawing and before the swap.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Projection returns the perspective for a width x height viewport with a
// vertical fov in degrees.
func Projection(width, height int, fov, near, far float32) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(math.Radians(fov), aspect, near, far)
}
