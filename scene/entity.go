// Package scene owns the entities drawn by the OpenGL window and steps them every frame.
package scene

import "github.com/bloeys/nrast/renderer"

// Entity is anything the scene updates and draws every frame
type Entity interface {
	Update(dt float32)
	Render(rend renderer.Render)
}

// Loader is implemented by entities that need gpu resources before their first draw.
// Load may be called more than once and must only do the work the first time.
type Loader interface {
	Load() error
}

// Deleter is implemented by entities holding gpu resources
type Deleter interface {
	Delete()
}
