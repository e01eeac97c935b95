package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/camera"
	"github.com/Faultbox/campfire/internal/engine/scene"
)

func TestNewCameraUsesControls(t *testing.T) {
	cam := newCamera(config.ControlsConfig{MoveSpeed: 0.2, PointerRotSpeed: 0.03, PadRotSpeed: 0.5})

	assert.Equal(t, float32(0.2), cam.MoveSpeed)
	assert.Equal(t, float32(0.03), cam.PointerRotSpeed)
	assert.Equal(t, float32(0.5), cam.PadRotSpeed)
	assert.Equal(t, camera.DefaultSpawn, cam.Position)
}

func TestDefaultControlsMatchCamera(t *testing.T) {
	c := config.Default().Controls
	assert.Equal(t, float32(camera.DefaultMoveSpeed), c.MoveSpeed)
	assert.Equal(t, float32(camera.DefaultPointerRotSpeed), c.PointerRotSpeed)
	assert.Equal(t, float32(camera.DefaultPadRotSpeed), c.PadRotSpeed)
}

func TestNewTimer(t *testing.T) {
	assert.True(t, newTimer(config.GraphicsConfig{FPSLimit: 60}).fixed)
	assert.False(t, newTimer(config.GraphicsConfig{}).fixed)
}

func TestRendererConfig(t *testing.T) {
	rc := rendererConfig(config.Default().Graphics, 800, 600)
	assert.Equal(t, 800, rc.Width)
	assert.Equal(t, 600, rc.Height)
	assert.Equal(t, float32(70), rc.FOV)
	assert.Equal(t, float32(0.01), rc.Near)
	assert.Equal(t, float32(100), rc.Far)
}

func TestLoadLayout(t *testing.T) {
	l, err := loadLayout(config.SceneConfig{})
	require.NoError(t, err)
	assert.Equal(t, len(scene.DefaultLayout().Placements), len(l.Placements))

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("placements:\n  - mesh: prism\n    texture: a.png\n"), 0644))
	l, err = loadLayout(config.SceneConfig{Layout: path})
	require.NoError(t, err)
	assert.Len(t, l.Placements, 1)

	_, err = loadLayout(config.SceneConfig{Layout: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFPSText(t *testing.T) {
	assert.Equal(t, "60 fps", fpsText(60))
}
