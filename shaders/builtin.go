package shaders

import _ "embed"

// FlatShaderSrc draws meshes in one colour, optionally multiplied by a diffuse texture.
// Attribute 0 is the position and attribute 1 the uv.
//
//go:embed flat.glsl
var FlatShaderSrc []byte
