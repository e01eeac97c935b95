package overlay

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/shader"
	"github.com/Faultbox/campfire/internal/engine/shaders"
	"github.com/Faultbox/campfire/internal/engine/texture"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

// DefaultScale is the integer upscale of the 7x13 face.
const DefaultScale = 2

// Label is one line of text anchored at its top-left corner, in pixels.
type Label struct {
	Text  string
	X, Y  float32
	Color color.RGBA
	Scale int

	tex   *texture.Texture
	dirty bool
}

// Overlay draws labels on top of the frame. Each label owns a texture;
// all share one quad.
type Overlay struct {
	log *zap.Logger

	labels map[string]*Label
	quad   *gpu.Mesh
	prog   *shader.Program
	proj   math.Mat4
}

// New creates an overlay with no labels and no device resources.
func New() *Overlay {
	return &Overlay{
		log:    logger.Named("overlay"),
		labels: make(map[string]*Label),
		proj:   math.Identity(),
	}
}

// SetLabel creates or updates the label id. The texture is re-rasterized
// on the next Draw only if the text or colour changed.
func (o *Overlay) SetLabel(id, text string, x, y float32, c color.RGBA) {
	l, ok := o.labels[id]
	if !ok {
		l = &Label{Scale: DefaultScale}
		o.labels[id] = l
	}
	if !ok || l.Text != text || l.Color != c {
		l.dirty = true
	}
	l.Text = text
	l.X, l.Y = x, y
	l.Color = c
}

// RemoveLabel drops the label id and its texture.
func (o *Overlay) RemoveLabel(id string) {
	if l, ok := o.labels[id]; ok {
		if l.tex != nil {
			l.tex.Delete()
		}
		delete(o.labels, id)
	}
}

// Label returns the label id.
func (o *Overlay) Label(id string) (*Label, bool) {
	l, ok := o.labels[id]
	return l, ok
}

// CreateDeviceResources compiles the overlay program and builds the quad.
// Label textures are uploaded lazily by Draw.
func (o *Overlay) CreateDeviceResources(dev gpu.Device) error {
	prog, err := shader.New("overlay", shaders.OverlayVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		return err
	}

	q := gpu.NewMesh(gpu.GeometrySource{Label: "overlay-quad", Geometry: quad()})
	if err := q.Build(dev); err != nil {
		prog.Delete()
		return fmt.Errorf("overlay quad: %w", err)
	}

	o.prog = prog
	o.quad = q
	for _, l := range o.labels {
		l.dirty = true
	}
	return nil
}

// ReleaseDeviceResources frees the program, the quad and every label
// texture. Labels survive and are re-uploaded after the next create.
func (o *Overlay) ReleaseDeviceResources() {
	for _, l := range o.labels {
		if l.tex != nil {
			l.tex.Delete()
			l.tex = nil
		}
		l.dirty = true
	}
	if o.quad != nil {
		o.quad.Release()
		o.quad = nil
	}
	if o.prog != nil {
		o.prog.Delete()
		o.prog = nil
	}
}

// Resize sets the pixel projection: origin top-left, y down.
func (o *Overlay) Resize(width, height int) {
	o.proj = math.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Draw renders every label without depth testing, in id order.
func (o *Overlay) Draw(ctx gpu.Context) {
	if o.prog == nil || o.quad == nil {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	defer func() {
		gl.Disable(gl.BLEND)
		gl.Enable(gl.DEPTH_TEST)
	}()

	o.prog.Use()
	o.prog.SetMat4("uProjection", o.proj)
	o.prog.SetInt("uTexture", 0)

	for _, id := range o.ids() {
		l := o.labels[id]
		if l.dirty {
			o.upload(id, l)
		}
		if l.tex == nil {
			continue
		}
		l.tex.Bind(0)
		o.prog.SetMat4("uModel", labelModel(l.X, l.Y, l.tex.Width, l.tex.Height))
		o.quad.Draw(ctx)
	}
}

func (o *Overlay) upload(id string, l *Label) {
	if l.tex != nil {
		l.tex.Delete()
		l.tex = nil
	}
	l.dirty = false
	if l.Text == "" {
		return
	}
	tex, err := texture.Upload2D("label-"+id, Rasterize(l.Text, l.Color, l.Scale))
	if err != nil {
		o.log.Warn("label upload failed", zap.String("label", id), zap.Error(err))
		return
	}
	l.tex = tex
}

func (o *Overlay) ids() []string {
	ids := make([]string, 0, len(o.labels))
	for id := range o.labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// labelModel maps the unit quad onto a w x h pixel rectangle at (x, y).
func labelModel(x, y float32, w, h int) math.Mat4 {
	return math.Translate(x, y, 0).Mul(math.Scale(float32(w), float32(h), 1))
}
