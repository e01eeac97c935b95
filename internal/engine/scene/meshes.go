package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/logger"
)

// MeshSet is a named collection of drawables sharing one lifecycle.
// Names keep insertion order so builds and logs are deterministic.
type MeshSet struct {
	log   *zap.Logger
	order []string
	items map[string]gpu.Drawable
}

// NewMeshSet creates an empty set.
func NewMeshSet() *MeshSet {
	return &MeshSet{
		log:   logger.Named("scene"),
		items: make(map[string]gpu.Drawable),
	}
}

// Add registers d under name, replacing and releasing any previous entry.
func (s *MeshSet) Add(name string, d gpu.Drawable) {
	if old, ok := s.items[name]; ok {
		old.Release()
	} else {
		s.order = append(s.order, name)
	}
	s.items[name] = d
}

// Get returns the drawable registered under name.
func (s *MeshSet) Get(name string) (gpu.Drawable, bool) {
	d, ok := s.items[name]
	return d, ok
}

// Names returns the registered names in insertion order.
func (s *MeshSet) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of drawables.
func (s *MeshSet) Len() int { return len(s.order) }

// BuildAll builds every drawable on dev. A failing mesh is logged and left
// undrawable; the others still build. The joined failures are returned.
func (s *MeshSet) BuildAll(dev gpu.Device) error {
	var errs []error
	built := 0
	for _, name := range s.order {
		if err := s.items[name].Build(dev); err != nil {
			s.log.Warn("mesh build failed", zap.String("mesh", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		built++
	}
	s.log.Info("meshes built", zap.Int("built", built), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// ReleaseAll releases every drawable. The set keeps its entries so a later
// BuildAll restores them.
func (s *MeshSet) ReleaseAll() {
	for _, name := range s.order {
		s.items[name].Release()
	}
}

// IndexCount returns the total indices of every built drawable.
func (s *MeshSet) IndexCount() int {
	n := 0
	for _, d := range s.items {
		n += d.IndexCount()
	}
	return n
}
