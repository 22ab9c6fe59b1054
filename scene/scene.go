package scene

import (
	"fmt"

	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/renderer"
)

var DefaultClearColor = [4]float32{0.95112, 0.95112, 0.95112, 1}

// Scene is an ordered list of entities. Updates and draws follow insertion order.
type Scene struct {
	Entities []Entity

	// Updating pauses every entity when false. Drawing continues either way.
	Updating   bool
	ClearColor [4]float32
}

func New(entities ...Entity) *Scene {
	return &Scene{
		Entities:   entities,
		ClearColor: DefaultClearColor,
	}
}

func (s *Scene) Add(entities ...Entity) {
	s.Entities = append(s.Entities, entities...)
}

// Load loads every entity implementing Loader, stopping at the first failure
func (s *Scene) Load() error {

	for i, e := range s.Entities {

		l, ok := e.(Loader)
		if !ok {
			continue
		}

		if err := l.Load(); err != nil {
			return fmt.Errorf("failed to load entity %d (%T). Err: %w", i, e, err)
		}
	}

	logging.InfoLog.Printf("Scene loaded with %d entities\n", len(s.Entities))
	return nil
}

func (s *Scene) ToggleUpdating() {
	s.Updating = !s.Updating
}

func (s *Scene) Update(dt float32) {

	if !s.Updating {
		return
	}

	for _, e := range s.Entities {
		e.Update(dt)
	}
}

func (s *Scene) Render(rend renderer.Render) {
	for _, e := range s.Entities {
		e.Render(rend)
	}
}

// Delete frees the gpu resources of every entity. Deleters shared between entities must tolerate repeated calls.
func (s *Scene) Delete() {

	for _, e := range s.Entities {
		if d, ok := e.(Deleter); ok {
			d.Delete()
		}
	}

	s.Entities = nil
}
