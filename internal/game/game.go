// Package game implements the main loop: input, camera, audio and the
// scene, wired to the window's lifecycle events.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/assets"
	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/audio"
	"github.com/Faultbox/campfire/internal/engine/camera"
	"github.com/Faultbox/campfire/internal/engine/debug"
	"github.com/Faultbox/campfire/internal/engine/input"
	"github.com/Faultbox/campfire/internal/engine/input/sdlinput"
	"github.com/Faultbox/campfire/internal/engine/overlay"
	"github.com/Faultbox/campfire/internal/engine/renderer"
	"github.com/Faultbox/campfire/internal/engine/scene"
	"github.com/Faultbox/campfire/internal/engine/window"
	"github.com/Faultbox/campfire/internal/logger"
)

// Overlay label ids and positions, in pixels from the top-left corner.
const (
	titleLabel = "title"
	fpsLabel   = "fps"

	labelX = 10
	titleY = 10
	fpsY   = 40
)

// Game is the main game instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	assets   *assets.Manager
	scene    *scene.Scene
	watcher  *scene.LayoutWatcher

	events *sdlinput.Events
	source *sdlinput.SDLSource
	input  *input.Aggregator
	camera *camera.FlyCamera
	audio  *audio.Ambient
	timer  *StepTimer

	shots    *debug.Screenshots
	wantShot bool
}

// New creates the window, the GL device and every scene resource.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
		assets: assets.NewManager(cfg.Scene.Assets),
		camera: newCamera(cfg.Controls),
		timer:  newTimer(cfg.Graphics),
		shots:  debug.NewScreenshots(cfg.Scene.Screenshots, "campfire"),
	}

	g.log.Info("initializing",
		zap.String("title", cfg.Scene.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Scene.Assets),
	)

	layout, err := loadLayout(cfg.Scene)
	if err != nil {
		return nil, err
	}

	g.window, err = window.New(window.Config{
		Title:      cfg.Scene.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context exists once the window does.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(rendererConfig(cfg.Graphics, width, height))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.scene = scene.New(scene.Config{ShowPrism: cfg.Scene.Prism}, g.renderer, g.assets, layout)
	if err := g.scene.CreateDeviceResources(); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	g.scene.CreateWindowSizeResources(width, height)
	g.scene.Overlay().SetLabel(titleLabel, cfg.Scene.Title, labelX, titleY, overlay.Yellow)

	if cfg.Scene.WatchLayout && cfg.Scene.Layout != "" {
		if g.watcher, err = scene.WatchLayout(cfg.Scene.Layout); err != nil {
			g.log.Warn("layout will not reload", zap.Error(err))
		}
	}

	g.events = sdlinput.NewEvents()
	g.source = sdlinput.NewSDLSource(cfg.Controls.PadDeadZone)
	g.input = input.NewAggregator(g.source)

	g.startAudio()

	g.log.Info("initialized")
	return g, nil
}

func (g *Game) startAudio() {
	g.audio = audio.New()
	data, err := g.assets.Load(g.config.Audio.Ambient)
	if err != nil {
		g.log.Warn("no ambient track", zap.Error(err))
		return
	}
	g.audio.SetMuted(g.config.Audio.Muted)
	if err := g.audio.Start(data, float64(g.config.Audio.Volume)); err != nil {
		// Update keeps retrying the device.
		g.log.Warn("ambient audio not started", zap.Error(err))
	}
}

// Run starts the main loop and returns when the user quits.
func (g *Game) Run() error {
	g.running = true
	g.timer.ResetElapsed()
	g.log.Info("starting game loop")

	for g.running {
		if g.events.Update() {
			g.running = false
			break
		}
		if err := g.handleEvents(); err != nil {
			return err
		}
		g.pollLayout()

		g.timer.Tick(g.update)
		if !g.running {
			break
		}

		// Nothing to draw before the first update.
		if g.timer.FrameCount() == 0 {
			continue
		}
		g.render()
		if g.wantShot {
			g.wantShot = false
			g.screenshot()
		}
		g.window.SwapBuffers()
	}

	g.log.Info("game loop finished", zap.Uint64("frames", g.timer.FrameCount()))
	return nil
}

func (g *Game) handleEvents() error {
	for _, ev := range g.events.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			g.scene.CreateWindowSizeResources(g.window.GetSize())

		case input.EventFocusLost:
			g.source.Suspend()
			g.audio.Suspend()

		case input.EventFocusGained:
			g.source.Resume()
			g.audio.Resume()
			g.timer.ResetElapsed()

		case input.EventGamepadAdded:
			g.source.OpenGamepad()

		case input.EventGamepadRemoved:
			g.source.CloseGamepad()
			g.source.OpenGamepad()

		case input.EventDeviceReset:
			g.scene.OnDeviceLost()
			if err := g.scene.OnDeviceRestored(); err != nil {
				return fmt.Errorf("restoring device: %w", err)
			}
		}
	}
	return nil
}

func (g *Game) pollLayout() {
	if g.watcher == nil {
		return
	}
	select {
	case l := <-g.watcher.Layouts():
		if err := g.scene.SetLayout(l); err != nil {
			g.log.Error("applying layout", zap.Error(err))
		}
	default:
	}
}

// update runs one step of input, camera and audio.
func (g *Game) update(elapsed, total float64) {
	cmd := g.input.Poll()
	if g.input.WantsQuit() {
		g.running = false
		return
	}
	if cmd.Screenshot {
		g.wantShot = true
	}
	g.camera.Update(cmd, elapsed, total)
	g.audio.Update()
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.Save(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) render() {
	if g.config.Scene.ShowFPS {
		g.scene.Overlay().SetLabel(fpsLabel, fpsText(g.timer.FPS()), labelX, fpsY, overlay.Yellow)
	}
	g.scene.Render(g.camera.ViewMatrix())
}

// Close releases everything New created, in reverse order.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.source != nil {
		g.source.Close()
	}
	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.scene != nil {
		g.scene.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	g.assets.Close()
}

// newCamera builds the fly camera with the configured speeds.
func newCamera(c config.ControlsConfig) *camera.FlyCamera {
	cam := camera.NewFlyCamera()
	cam.MoveSpeed = c.MoveSpeed
	cam.PointerRotSpeed = c.PointerRotSpeed
	cam.PadRotSpeed = c.PadRotSpeed
	return cam
}

// newTimer returns a fixed-rate timer when an fps limit is set.
func newTimer(c config.GraphicsConfig) *StepTimer {
	t := NewStepTimer()
	t.SetFixedRate(c.FPSLimit)
	return t
}

func rendererConfig(c config.GraphicsConfig, width, height int) renderer.Config {
	return renderer.Config{
		Width:  width,
		Height: height,
		FOV:    c.FOV,
		Near:   c.Near,
		Far:    c.Far,
	}
}

// loadLayout reads the configured layout file, or returns the built-in
// campsite when none is set.
func loadLayout(c config.SceneConfig) (*scene.Layout, error) {
	if c.Layout == "" {
		return scene.DefaultLayout(), nil
	}
	l, err := scene.LoadLayout(c.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	return l, nil
}

func fpsText(fps int) string {
	return fmt.Sprintf("%d fps", fps)
}
