// Package config handles application configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"` // Fixed update rate, 0 for variable
	FOV        float32 `yaml:"fov"`       // Vertical field of view in degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// AudioConfig holds the ambient loop settings.
type AudioConfig struct {
	Volume  float32 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
	Ambient string  `yaml:"ambient"` // Relative to the assets root
}

// SceneConfig holds asset locations and overlay text.
type SceneConfig struct {
	Assets      string `yaml:"assets"`       // Root of Models/, Textures/ and Audio/
	Layout      string `yaml:"layout"`       // Placement YAML, empty for the built-in campsite
	WatchLayout bool   `yaml:"watch_layout"` // Reload the layout file when it changes
	Title       string `yaml:"title"`
	ShowFPS     bool   `yaml:"show_fps"`
	Prism       bool   `yaml:"prism"`       // Place the procedural prism next to the fire
	Screenshots string `yaml:"screenshots"` // F12 capture directory
}

// ControlsConfig holds camera speeds and the gamepad dead zone.
type ControlsConfig struct {
	MoveSpeed       float32 `yaml:"move_speed"`
	PointerRotSpeed float32 `yaml:"pointer_rot_speed"`
	PadRotSpeed     float32 `yaml:"pad_rot_speed"`
	PadDeadZone     float32 `yaml:"pad_dead_zone"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			FOV:        70,
			Near:       0.01,
			Far:        100,
		},
		Audio: AudioConfig{
			Volume:  0.7,
			Muted:   false,
			Ambient: "Audio/ambient.wav",
		},
		Scene: SceneConfig{
			Assets:      "assets",
			Layout:      "",
			Title:       "CMP502: Assignment 2",
			ShowFPS:     false,
			Prism:       true,
			Screenshots: "screenshots",
		},
		Controls: ControlsConfig{
			MoveSpeed:       0.05,
			PointerRotSpeed: 0.01,
			PadRotSpeed:     0.1,
			PadDeadZone:     0.24,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
