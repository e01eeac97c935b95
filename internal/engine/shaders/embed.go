// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms textured, lit meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader applies the ambient and directional light.
//
//go:embed mesh.frag
var MeshFragmentShader string

// SkyboxVertexShader pins the sky sphere to the far plane.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader samples the cubemap.
//
//go:embed skybox.frag
var SkyboxFragmentShader string

// OverlayVertexShader places screen-space quads in pixels.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader draws the text texture.
//
//go:embed overlay.frag
var OverlayFragmentShader string
