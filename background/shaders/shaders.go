package shaders

import (
	_ "embed"
)

//go:embed grass.wgsl
var GrassWGSL string

//go:embed grass.vert.glsl
var GrassVertexGLSL string

//go:embed grass.frag.glsl
var GrassFragmentGLSL string
