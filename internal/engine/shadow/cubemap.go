package shadow

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/internal/engine/shader"
	"github.com/Faultbox/cubeshadow/internal/logger"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// ErrFramebufferIncomplete is returned when the depth cube framebuffer
// fails its completeness check at creation.
var ErrFramebufferIncomplete = errors.New("shadow framebuffer incomplete")

// DefaultResolution is the default per-face resolution.
const DefaultResolution = 1024

// CubeMap is a depth-only cube texture with the framebuffer that renders
// into it. It implements Target with the depth program.
type CubeMap struct {
	FBO        uint32
	Texture    uint32
	Resolution int32

	program      *shader.Program
	prevViewport [4]int32
}

// NewCubeMap allocates the cube texture and framebuffer. Completeness is
// checked once here and never again.
func NewCubeMap(resolution int32, program *shader.Program) (*CubeMap, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	cm := &CubeMap{Resolution: resolution, program: program}

	gl.GenTextures(1, &cm.Texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.Texture)
	for f := uint32(0); f < FaceCount; f++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+f, 0, gl.DEPTH_COMPONENT32F,
			resolution, resolution, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &cm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, cm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_CUBE_MAP_POSITIVE_X, cm.Texture, 0)

	// No color buffer for the depth pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		cm.Destroy()
		logger.Error("shadow cube framebuffer incomplete", zap.Uint32("status", status))
		return nil, fmt.Errorf("%w: status 0x%x", ErrFramebufferIncomplete, status)
	}

	logger.Debug("shadow cube map created", zap.Int32("resolution", resolution))
	return cm, nil
}

// BeginFace attaches one face and clears its depth.
func (cm *CubeMap) BeginFace(face int, shadowMatrix math.Mat4, lightPos math.Vec3, far float32) {
	if face == 0 {
		gl.GetIntegerv(gl.VIEWPORT, &cm.prevViewport[0])
		gl.BindFramebuffer(gl.FRAMEBUFFER, cm.FBO)
		gl.Viewport(0, 0, cm.Resolution, cm.Resolution)
		gl.ColorMask(false, false, false, false)
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)

		cm.program.Use()
		cm.program.SetVec3("lightPos", lightPos)
		cm.program.SetFloat("farPlane", far)
	}

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), cm.Texture, 0)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	cm.program.SetMat4("uShadowMatrix", shadowMatrix)
}

// Draw renders one object's depth.
func (cm *CubeMap) Draw(o *scene.Object, model math.Mat4) {
	cm.program.SetMat4("uModelMatrix", model)
	o.Geometry.Draw()
}

// EndFace restores the default framebuffer after the last face.
func (cm *CubeMap) EndFace(face int) {
	if face != FaceCount-1 {
		return
	}
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ColorMask(true, true, true, true)
	gl.Viewport(cm.prevViewport[0], cm.prevViewport[1], cm.prevViewport[2], cm.prevViewport[3])
}

// BindTexture binds the cube map to a texture unit for sampling.
func (cm *CubeMap) BindTexture(textureUnit uint32) {
	gl.ActiveTexture(textureUnit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.Texture)
}

// ReadFace copies one face back to memory as normalized distances,
// row 0 at the bottom.
func (cm *CubeMap) ReadFace(face int) []float32 {
	out := make([]float32, cm.Resolution*cm.Resolution)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.Texture)
	gl.GetTexImage(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(out))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return out
}

// Destroy releases all GPU resources associated with this cube map.
func (cm *CubeMap) Destroy() {
	if cm.FBO != 0 {
		gl.DeleteFramebuffers(1, &cm.FBO)
		cm.FBO = 0
	}
	if cm.Texture != 0 {
		gl.DeleteTextures(1, &cm.Texture)
		cm.Texture = 0
	}
}

// IsValid returns true if the cube map was created successfully.
func (cm *CubeMap) IsValid() bool {
	return cm != nil && cm.FBO != 0 && cm.Texture != 0
}
