// Package renderer runs the per-frame shadow and forward lighting passes.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/internal/engine/shader"
	"github.com/Faultbox/cubeshadow/internal/engine/shaders"
	"github.com/Faultbox/cubeshadow/internal/engine/shadow"
	"github.com/Faultbox/cubeshadow/internal/logger"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Texture units used by the forward shader.
const (
	unitDiffuse = 0
	unitShadow  = 1
	unitNormal  = 2
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	ShadowResolution int32
	ShadowNear       float32
	ShadowFar        float32
	ShadowBias       float32
	CullShadowFaces  bool

	FrustumCulling bool
	ShowLight      bool
	ClearColor     [3]float32
}

// Renderer owns the GL programs and the shadow cube map.
type Renderer struct {
	config Config

	forward *shader.Program
	depth   *shader.Program

	cubeMap *shadow.CubeMap
	pass    *shadow.Pass

	lastStats FrameStats
}

// New creates a new renderer.
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

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	var err error
	r.depth, err = shader.NewProgram("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		return nil, err
	}
	r.forward, err = shader.NewProgram("forward", shaders.ForwardVertexShader, shaders.ForwardFragmentShader)
	if err != nil {
		r.depth.Delete()
		return nil, err
	}

	r.cubeMap, err = shadow.NewCubeMap(cfg.ShadowResolution, r.depth)
	if err != nil {
		r.depth.Delete()
		r.forward.Delete()
		return nil, err
	}

	r.pass = shadow.NewPass(cfg.ShadowNear, cfg.ShadowFar)
	r.pass.CullFaces = cfg.CullShadowFaces

	r.forward.Use()
	r.forward.SetInt("uTexture", unitDiffuse)
	r.forward.SetInt("depthMap", unitShadow)
	r.forward.SetInt("uNormalMap", unitNormal)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.cubeMap != nil {
		r.cubeMap.Destroy()
	}
	if r.forward != nil {
		r.forward.Delete()
	}
	if r.depth != nil {
		r.depth.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Stats returns the forward pass counts of the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.lastStats
}

// Render draws one frame: the six shadow faces, then the lit scene.
func (r *Renderer) Render(sc *scene.Scene, v View) {
	r.pass.Render(r.cubeMap, sc.Light.Position, sc.Registry.All())

	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.forward.Use()
	r.cubeMap.BindTexture(gl.TEXTURE0 + unitShadow)
	r.setFrameUniforms(sc, v)

	calls, stats := BuildDrawCalls(sc, v)
	r.lastStats = stats
	for i := range calls {
		r.draw(&calls[i])
	}

	if r.config.ShowLight {
		marker := LightMarker(sc, v)
		r.draw(&marker)
	}

	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// ShadowFace returns one face of the last shadow pass and its size.
func (r *Renderer) ShadowFace(face int) ([]float32, int) {
	return r.cubeMap.ReadFace(face), int(r.cubeMap.Resolution)
}

func (r *Renderer) setFrameUniforms(sc *scene.Scene, v View) {
	p := r.forward
	l := sc.Light

	p.SetVec3("lightPosWorld", l.Position)
	p.SetFloat("farPlane", r.pass.Far)
	p.SetFloat("shadowBias", r.config.ShadowBias)
	p.SetVec3("uLightPos_vs", v.View.TransformVec3(l.Position))
	p.SetVec3("uLightIntensity", l.Radiance())
	p.SetVec3("uAttenuation", math.Vec3{X: l.Constant, Y: l.Linear, Z: l.Quadratic})
	p.SetVec3("uAmbient", sc.Ambient)

	positions, colors, intensities, n := sc.Lights.Uniforms(v.View)
	p.SetInt("uNumAdditionalLights", n)
	if n > 0 {
		p.SetVec3Array("uAdditionalLightPos", positions)
		p.SetVec3Array("uAdditionalLightColor", colors)
		p.SetFloatArray("uAdditionalLightIntensity", intensities)
	}
}

func bindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// draw issues one object. An empty geometry handle is a no-op.
func (r *Renderer) draw(dc *DrawCall) {
	p := r.forward

	p.SetMat4("uModelMatrix", dc.Model)
	p.SetMat4("uMVMatrix", dc.MV)
	p.SetMat4("uMVPMatrix", dc.MVP)
	p.SetMat3("uNormalMatrix", dc.Normal)

	m := dc.Material
	p.SetVec3("uKd", m.Kd)
	p.SetVec3("uKs", m.Ks)
	p.SetFloat("uShininess", m.Shininess)
	p.SetFloat("uAlpha", m.Alpha)
	p.SetVec3("uEmissive", dc.Emissive)
	p.SetFloat("uUnlit", boolf(dc.Unlit))

	p.SetFloat("uUseTexture", boolf(dc.UseTexture))
	if dc.UseTexture {
		bindTexture(unitDiffuse, m.DiffuseMap)
	}
	p.SetFloat("uUseNormalMap", boolf(dc.UseNormalMap))
	if dc.UseNormalMap {
		bindTexture(unitNormal, m.NormalMap)
	}

	if dc.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	} else {
		gl.Disable(gl.BLEND)
		gl.DepthMask(!dc.Unlit)
	}

	dc.Geometry.Draw()
}
