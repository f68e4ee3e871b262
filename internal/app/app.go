// Package app wires the window, the scene and the renderer into the
// frame loop.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/cubeshadow/internal/config"
	"github.com/Faultbox/cubeshadow/internal/engine/animation"
	"github.com/Faultbox/cubeshadow/internal/engine/camera"
	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/debug"
	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/input"
	"github.com/Faultbox/cubeshadow/internal/engine/renderer"
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/internal/engine/shadow"
	"github.com/Faultbox/cubeshadow/internal/engine/texture"
	"github.com/Faultbox/cubeshadow/internal/engine/window"
	"github.com/Faultbox/cubeshadow/internal/level"
	"github.com/Faultbox/cubeshadow/internal/logger"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Title is the window caption.
const Title = "Cube Shadow"

// App is the running viewer.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	textures *texture.Cache
	capture  *debug.Capture

	scene  *scene.Scene
	camera *camera.FPSCamera
	clock  *animation.Clock
	driver *animation.Driver

	pauseKey sdl.Scancode
	running  bool
}

// New opens the window, compiles the renderer and builds the level.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("level", cfg.Scene.Level),
	)

	lv, err := level.LoadOrDefault(cfg.Scene.Level)
	if err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}

	a := &App{cfg: cfg}

	// Window first: it owns the GL context.
	a.window, err = window.New(window.Config{
		Title:        Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
		Samples:      cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.GetSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:            width,
		Height:           height,
		ShadowResolution: cfg.Shadow.Resolution,
		ShadowNear:       cfg.Shadow.Near,
		ShadowFar:        cfg.Shadow.Far,
		ShadowBias:       cfg.Shadow.Bias,
		CullShadowFaces:  cfg.Shadow.CullFaces,
		FrustumCulling:   cfg.Graphics.FrustumCulling,
		ShowLight:        cfg.Graphics.ShowLight,
		ClearColor:       [3]float32{0.05, 0.05, 0.08},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.scene = scene.New()
	a.scene.Primitives = scene.Primitives{
		Cube:   geometry.Upload(geometry.Cube()),
		Sphere: geometry.Upload(geometry.Sphere(geometry.SphereSectors, geometry.SphereStacks)),
	}
	a.textures = texture.NewCache(cfg.Scene.AssetRoot, nil)

	err = level.Build(lv, a.scene, level.Resources{
		Textures: a.textures,
		Models:   modelLoader(cfg.Scene.AssetRoot),
	})
	if err == nil {
		err = a.scene.Validate()
	}
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building level %q: %w", lv.Name, err)
	}

	a.camera = newCamera(cfg.Camera, cfg.Graphics, lv.Spawn)
	a.input = input.New()
	a.clock = animation.NewClock(a.window.GetTime)
	a.driver = animation.NewDriver(a.scene.Registry, a.clock)
	a.pauseKey = pauseScancode(cfg.Animation.PauseKey)
	a.capture = debug.NewCapture(cfg.Graphics.ScreenshotDir, "cubeshadow")

	logger.Info("viewer initialized",
		zap.Int("objects", a.scene.Registry.Len()),
		zap.Int("textures", a.textures.Len()),
	)
	return a, nil
}

// modelLoader reads glTF files under root and uploads them.
func modelLoader(root string) level.ModelLoader {
	return func(path string) (geometry.Handle, collision.AABB, error) {
		if root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		mesh, err := geometry.LoadGLTF(path)
		if err != nil {
			return geometry.Handle{}, collision.AABB{}, err
		}
		return geometry.Upload(mesh), collision.Compute(mesh.Positions()), nil
	}
}

// newCamera places the camera at the level spawn when there is one.
func newCamera(cc config.CameraConfig, gc config.GraphicsConfig, spawn *level.Spawn) *camera.FPSCamera {
	cam := camera.NewFPSCamera(math.FromArr(cc.Start))
	cam.Yaw = cc.Yaw
	cam.Pitch = cc.Pitch
	if spawn != nil {
		cam.Position = math.FromArr(spawn.Position)
		cam.Yaw = spawn.Yaw
		cam.Pitch = spawn.Pitch
	}
	cam.FOV = gc.FOV
	cam.Near = gc.Near
	cam.Far = gc.Far
	cam.Speed = cc.Speed
	cam.Sensitivity = cc.Sensitivity
	cam.Radius = cc.Radius
	cam.Height = cc.Height
	return cam
}

func pauseScancode(name string) sdl.Scancode {
	sc := sdl.GetScancodeFromName(name)
	if sc == sdl.SCANCODE_UNKNOWN {
		logger.Warn("unknown pause key, using T", zap.String("key", name))
		return sdl.SCANCODE_T
	}
	return sc
}

// movement reads the walk keys, WASD or arrows.
func movement(in *input.Input) camera.Movement {
	return camera.Movement{
		Forward: in.IsKeyDown(sdl.SCANCODE_W) || in.IsKeyDown(sdl.SCANCODE_UP),
		Back:    in.IsKeyDown(sdl.SCANCODE_S) || in.IsKeyDown(sdl.SCANCODE_DOWN),
		Left:    in.IsKeyDown(sdl.SCANCODE_A) || in.IsKeyDown(sdl.SCANCODE_LEFT),
		Right:   in.IsKeyDown(sdl.SCANCODE_D) || in.IsKeyDown(sdl.SCANCODE_RIGHT),
	}
}

// Run drives the frame loop until the window closes or Escape is hit.
func (a *App) Run() error {
	a.running = true

	last := a.window.GetTime()
	frames := 0
	fpsTimer := last

	logger.Info("starting frame loop")

	for a.running {
		now := a.window.GetTime()
		dt := float32(now - last)
		last = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleInput(dt)

		a.advance(now)

		a.renderer.Render(a.scene, renderer.View{
			View:       a.camera.ViewMatrix(),
			Projection: a.camera.ProjectionMatrix(a.renderer.Aspect()),
			Eye:        a.camera.Position,
			Cull:       a.cfg.Graphics.FrustumCulling,
		})
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}
		if a.input.IsKeyPressed(sdl.SCANCODE_F11) {
			a.dumpShadowFaces()
		}
		a.window.SwapBuffers()

		frames++
		if now-fpsTimer >= 1 {
			stats := a.renderer.Stats()
			a.window.SetTitle(fmt.Sprintf("%s - %d fps", Title, frames))
			logger.Debug("fps",
				zap.Int("count", frames),
				zap.Int("drawn", stats.Drawn),
				zap.Int("culled", stats.Culled),
			)
			frames = 0
			fpsTimer = now
		}
	}

	return nil
}

func (a *App) handleInput(dt float32) {
	if w, h, ok := resizeTarget(a.input, a.window.GetSize); ok {
		a.renderer.Resize(w, h)
	}
	if a.input.IsKeyPressed(a.pauseKey) {
		a.clock.Toggle()
		logger.Info("animation clock toggled", zap.Bool("paused", a.clock.Paused()))
	}

	if a.input.IsKeyPressed(sdl.SCANCODE_TAB) {
		a.window.SetMouseCaptured(!a.window.MouseCaptured())
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_F3) {
		a.toggleDebugLogging()
	}

	if dx, dy := a.input.MouseDelta(); a.window.MouseCaptured() && (dx != 0 || dy != 0) {
		a.camera.HandleMouse(float32(dx), float32(dy))
	}
	if m := movement(a.input); m.Any() {
		a.camera.Move(m, dt, a.scene.Registry.CollisionBoxes())
	}
}

// resizeTarget returns the drawable size after a resize this frame. Resize
// events carry the logical window size, which differs from the pixel size
// on HiDPI displays.
func resizeTarget(in *input.Input, drawable func() (int, int)) (int, int, bool) {
	if _, _, ok := in.Resized(); !ok {
		return 0, 0, false
	}
	w, h := drawable()
	return w, h, true
}

// advance poses the animated objects on the pausable clock. Lights follow
// wall time so pausing leaves them moving.
func (a *App) advance(now float64) {
	a.driver.Update()
	a.scene.Update(now)
}

// toggleDebugLogging flips between debug and the configured level.
func (a *App) toggleDebugLogging() {
	if logger.Level() == zapcore.DebugLevel {
		logger.SetLevel(a.cfg.Logging.Level)
	} else {
		logger.SetLevel("debug")
	}
	logger.Info("log level changed", zap.Stringer("level", logger.Level()))
}

// screenshot saves the rendered frame before it is presented.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	img, err := debug.FromPixels(pixels, w, h)
	if err == nil {
		var name string
		if name, err = a.capture.Save(img); err == nil {
			logger.Info("screenshot saved", zap.String("path", name))
			return
		}
	}
	logger.Warn("screenshot failed", zap.Error(err))
}

// dumpShadowFaces saves the six depth faces of the last shadow pass.
func (a *App) dumpShadowFaces() {
	for f := 0; f < shadow.FaceCount; f++ {
		depth, size := a.renderer.ShadowFace(f)
		c := debug.NewCapture(a.cfg.Graphics.ScreenshotDir, fmt.Sprintf("shadow_face%d", f))
		name, err := c.Save(debug.DepthImage(depth, size))
		if err != nil {
			logger.Warn("shadow face dump failed", zap.Int("face", f), zap.Error(err))
			return
		}
		logger.Debug("shadow face saved", zap.String("path", name))
	}
	logger.Info("shadow faces saved", zap.String("dir", a.cfg.Graphics.ScreenshotDir))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.textures != nil {
		a.textures.Release()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
