package scene

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/engine/texture"
	"github.com/Faultbox/campfire/pkg/math"
)

// PrismMesh is the mesh name of the procedural prism.
const PrismMesh = "prism"

// ErrInvalidLayout is wrapped by every layout validation failure.
var ErrInvalidLayout = errors.New("invalid layout")

// Placement puts one mesh into the world. Its world transform is
// T * S * R * base, where base is the previous placement's world when
// Chain is set and the identity otherwise.
type Placement struct {
	Name      string    `yaml:"name"`
	Mesh      string    `yaml:"mesh"`    // OBJ path under the assets root, or "prism"
	Texture   string    `yaml:"texture"` // Image path under the assets root
	Translate math.Vec3 `yaml:"translate"`
	Scale     float32   `yaml:"scale"`    // Uniform, 0 means 1
	RotateY   float32   `yaml:"rotate_y"` // Radians
	Chain     bool      `yaml:"chain"`
}

// Skybox names the cubemap faces and the sphere they are drawn on.
type Skybox struct {
	// Faces is a path with a {face} placeholder, expanded with each of
	// texture.FaceNames.
	Faces        string  `yaml:"faces"`
	Diameter     float32 `yaml:"diameter"`
	Tessellation int     `yaml:"tessellation"`
}

// FacePaths expands Faces into the six cubemap face paths.
func (s Skybox) FacePaths() [6]string {
	var out [6]string
	for i, name := range texture.FaceNames {
		out[i] = strings.ReplaceAll(s.Faces, "{face}", name)
	}
	return out
}

// Layout is the whole diorama: light, sky and ordered placements.
type Layout struct {
	Light      lighting.Light `yaml:"light"`
	Skybox     Skybox         `yaml:"skybox"`
	Placements []Placement    `yaml:"placements"`
}

func (p Placement) scale() float32 {
	if p.Scale == 0 {
		return 1
	}
	return p.Scale
}

// Local returns T * S * R for the placement alone.
func (p Placement) Local() math.Mat4 {
	s := p.scale()
	return math.Translate(p.Translate.X, p.Translate.Y, p.Translate.Z).
		Mul(math.Scale(s, s, s)).
		Mul(math.RotateY(p.RotateY))
}

// Worlds returns the world transform of every placement, in order.
func (l *Layout) Worlds() []math.Mat4 {
	worlds := make([]math.Mat4, len(l.Placements))
	prev := math.Identity()
	for i, p := range l.Placements {
		base := math.Identity()
		if p.Chain {
			base = prev
		}
		worlds[i] = p.Local().Mul(base)
		prev = worlds[i]
	}
	return worlds
}

// Meshes returns the distinct mesh names in first-use order.
func (l *Layout) Meshes() []string {
	return distinct(l.Placements, func(p Placement) string { return p.Mesh })
}

// Textures returns the distinct texture names in first-use order.
func (l *Layout) Textures() []string {
	return distinct(l.Placements, func(p Placement) string { return p.Texture })
}

func distinct(ps []Placement, key func(Placement) string) []string {
	seen := make(map[string]bool, len(ps))
	var out []string
	for _, p := range ps {
		k := key(p)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Validate checks every placement names a mesh and a texture and has a
// non-negative scale.
func (l *Layout) Validate() error {
	if len(l.Placements) == 0 {
		return fmt.Errorf("%w: no placements", ErrInvalidLayout)
	}
	for i, p := range l.Placements {
		switch {
		case p.Mesh == "":
			return fmt.Errorf("%w: placement %d (%s): no mesh", ErrInvalidLayout, i, p.Name)
		case p.Texture == "":
			return fmt.Errorf("%w: placement %d (%s): no texture", ErrInvalidLayout, i, p.Name)
		case p.Scale < 0:
			return fmt.Errorf("%w: placement %d (%s): negative scale", ErrInvalidLayout, i, p.Name)
		}
	}
	if l.Skybox.Faces != "" && !strings.Contains(l.Skybox.Faces, "{face}") {
		return fmt.Errorf("%w: skybox faces %q has no {face} placeholder", ErrInvalidLayout, l.Skybox.Faces)
	}
	return nil
}

// ParseLayout decodes a YAML layout. Fields it omits keep the campsite
// defaults for light and sky.
func ParseLayout(data []byte) (*Layout, error) {
	def := DefaultLayout()
	l := &Layout{Light: def.Light, Skybox: def.Skybox}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadLayout reads and parses a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// DefaultLayout returns the campsite diorama.
func DefaultLayout() *Layout {
	const (
		grass    = "Textures/Grass_Base_Color.png"
		rock     = "Textures/Rock_Base_Color.png"
		fabric   = "Textures/red-fabric.png"
		bark     = "Textures/Wood_Bark.png"
		leaves   = "Textures/Stylized_Leaves.png"
		mushroom = "Textures/Mushroom_Top.png"
		grain    = "Textures/Wood_Grain.png"
		bamboo   = "Textures/bamboo_tex.png"
	)
	v := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	return &Layout{
		Light: lighting.Default(),
		Skybox: Skybox{
			Faces:        "Textures/skybox/{face}.png",
			Diameter:     2,
			Tessellation: 3,
		},
		Placements: []Placement{
			{Name: "ground", Mesh: "Models/ground_block.obj", Texture: grass, Translate: v(0, -10, 0)},
			{Name: "platform", Mesh: "Models/platform_grass.obj", Texture: rock, Translate: v(1.2, 9.6, 3.2), Scale: 2, RotateY: -0.5, Chain: true},

			{Name: "tent", Mesh: "Models/tent_smallClosed.obj", Texture: fabric, Translate: v(1.2, -10.25, 3.3), RotateY: 1.2},

			{Name: "tree top", Mesh: "Models/tree_simple_top.obj", Texture: leaves, Translate: v(2.2, -10.35, 5.2)},
			{Name: "tree trunk", Mesh: "Models/tree_simple_trunk.obj", Texture: bark, Chain: true},
			{Name: "mushroom", Mesh: "Models/mushroom_tanTall.obj", Texture: mushroom, Translate: v(-0.2, 0, -0.05), Chain: true},
			{Name: "mushroom group", Mesh: "Models/mushroom_redGroup.obj", Texture: mushroom, Translate: v(0.4, 0, -0.35), Chain: true},
			{Name: "stump", Mesh: "Models/stump_round.obj", Texture: bark, Translate: v(-0.7, 0, 0), Chain: true},

			{Name: "crop", Mesh: "Models/crop.obj", Texture: bamboo, Translate: v(-0.2, -10.35, 3.2), Scale: 0.5},
			{Name: "crop", Mesh: "Models/crop.obj", Texture: bamboo, Translate: v(0, 0, -0.25), Chain: true},
			{Name: "crop", Mesh: "Models/crop.obj", Texture: bamboo, Translate: v(0, 0, -0.25), Chain: true},
			{Name: "crop", Mesh: "Models/crop.obj", Texture: bamboo, Translate: v(0, 0, -0.25), Chain: true},

			{Name: "canoe", Mesh: "Models/canoe.obj", Texture: grain, Translate: v(0.65, -10.35, 1.3), RotateY: 0.5},
			{Name: "paddle", Mesh: "Models/canoe_paddle.obj", Texture: grain, Translate: v(0.4, 0, 0.2), Chain: true},
			{Name: "mushroom group", Mesh: "Models/mushroom_redGroup.obj", Texture: mushroom, Translate: v(1.3, 0, 0), Chain: true},

			{Name: "log", Mesh: "Models/log.obj", Texture: bark, Translate: v(2.6, -10.35, 2.4), RotateY: 0.87},
			{Name: "campfire", Mesh: "Models/campfire_logs.obj", Texture: bark, Translate: v(-0.3, 0, 0.4), Chain: true},
			{Name: "tree trunk", Mesh: "Models/tree_simple_trunk.obj", Texture: bark, Translate: v(1.25, 0, 1.5), Chain: true},
			{Name: "tree top", Mesh: "Models/tree_simple_top.obj", Texture: leaves, Chain: true},
			{Name: "dark tree top", Mesh: "Models/tree_dark_top.obj", Texture: leaves, Translate: v(-0.5, 0, -0.2), Chain: true},
			{Name: "dark tree trunk", Mesh: "Models/tree_dark_trunk.obj", Texture: bark, Chain: true},

			{Name: "prism", Mesh: PrismMesh, Texture: fabric, Translate: v(3.5, -10.35, 2.2), Scale: 0.3},
		},
	}
}
