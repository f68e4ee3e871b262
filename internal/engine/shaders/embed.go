// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DepthVertexShader transforms geometry by one cube face's shadow matrix.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes light distance divided by the far plane.
//
//go:embed depth.frag
var DepthFragmentShader string

// ForwardVertexShader is the vertex shader for the lit scene pass.
//
//go:embed forward.vert
var ForwardVertexShader string

// ForwardFragmentShader shades with Blinn-Phong, normal maps and the
// point-light shadow cube.
//
//go:embed forward.frag
var ForwardFragmentShader string
