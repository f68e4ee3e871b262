package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config and exit")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCull       = flag.Bool("cull", false, "Enable view frustum culling")
	flagLevel      = flag.String("level", "", "Path to a level file")
	flagAssets     = flag.String("assets", "", "Base directory for textures and models")
	flagShadowRes  = flag.Int("shadow-res", 0, "Shadow cube face resolution")
	flagShadowCull = flag.Bool("shadow-cull", false, "Skip objects outside each shadow face frustum")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config. Boolean flags
// only ever switch a feature on.
func applyFlags(cfg *Config) {
	g := &cfg.Graphics
	if *flagDebug {
		cfg.Logging.Level = "debug"
		g.ShowLight = true
	}
	switch {
	case *flagFullscreen:
		g.Fullscreen = true
	case *flagWindowed:
		g.Fullscreen = false
	}
	if *flagWidth > 0 {
		g.Width = *flagWidth
	}
	if *flagHeight > 0 {
		g.Height = *flagHeight
	}
	g.FrustumCulling = g.FrustumCulling || *flagCull

	if *flagLevel != "" {
		cfg.Scene.Level = *flagLevel
	}
	if *flagAssets != "" {
		cfg.Scene.AssetRoot = *flagAssets
	}

	if *flagShadowRes > 0 {
		cfg.Shadow.Resolution = int32(*flagShadowRes)
	}
	cfg.Shadow.CullFaces = cfg.Shadow.CullFaces || *flagShadowCull
}
