// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Shadow    ShadowConfig    `yaml:"shadow"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Scene     SceneConfig     `yaml:"scene"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Fullscreen     bool    `yaml:"fullscreen"`
	VSync          bool    `yaml:"vsync"`
	MSAA           int     `yaml:"msaa"` // Samples per pixel, 0 disables
	FOV            float32 `yaml:"fov"`  // Vertical field of view in degrees
	Near           float32 `yaml:"near"`
	Far            float32 `yaml:"far"`
	FrustumCulling bool    `yaml:"frustum_culling"`
	ShowLight      bool    `yaml:"show_light"` // Draw the light debug sphere
	ScreenshotDir  string  `yaml:"screenshot_dir"`
}

// ShadowConfig holds point-light cube shadow settings.
type ShadowConfig struct {
	Resolution int32   `yaml:"resolution"` // Cube face size in texels
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Bias       float32 `yaml:"bias"`
	CullFaces  bool    `yaml:"cull_faces"` // Skip objects outside a face frustum
}

// CameraConfig holds first-person camera settings.
type CameraConfig struct {
	Start       [3]float32 `yaml:"start"`
	Yaw         float32    `yaml:"yaw"`   // Degrees
	Pitch       float32    `yaml:"pitch"` // Degrees
	Speed       float32    `yaml:"speed"` // Units per second
	Sensitivity float32    `yaml:"sensitivity"`
	Radius      float32    `yaml:"radius"` // Collision cylinder radius
	Height      float32    `yaml:"height"` // Collision cylinder height
}

// AnimationConfig holds procedural animation settings.
type AnimationConfig struct {
	PauseKey string `yaml:"pause_key"` // SDL key name toggling the animation clock
}

// SceneConfig holds the level description source.
type SceneConfig struct {
	Level     string `yaml:"level"`      // Path to a level file; empty uses the built-in level
	AssetRoot string `yaml:"asset_root"` // Base directory for textures and models
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
			Width:          1280,
			Height:         720,
			Fullscreen:     false,
			VSync:          true,
			MSAA:           4,
			FOV:            45,
			Near:           0.1,
			Far:            100,
			FrustumCulling: false,
			ShowLight:      true,
			ScreenshotDir:  "screenshots",
		},
		Shadow: ShadowConfig{
			Resolution: 1024,
			Near:       1,
			Far:        25,
			Bias:       0.05,
			CullFaces:  false,
		},
		Camera: CameraConfig{
			Start:       [3]float32{0, 1.5, 6},
			Yaw:         -90,
			Pitch:       0,
			Speed:       3,
			Sensitivity: 0.1,
			Radius:      0.3,
			Height:      1.6,
		},
		Animation: AnimationConfig{
			PauseKey: "T",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
