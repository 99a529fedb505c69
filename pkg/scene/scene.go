package scene

import (
	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-forge/pkg/geometry"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/sirupsen/logrus"
)

// Light is a fixed light source of the scene setup.
type Light struct {
	Kind      string
	Color     uint32
	Intensity float64
	Position  geometry.Vec3
}

// Grid is the floor helper drawn under the model.
type Grid struct {
	Size      float64
	Divisions int
}

// Scene is the display surface handle. It holds the persistent setup and the
// single attached-model slot.
type Scene struct {
	Background uint32
	Lights     []Light
	Grid       Grid

	model *geometry.Group
	log   *logrus.Entry
}

// New returns a scene with the default lighting and grid.
func New() *Scene {
	return &Scene{
		Background: 0x0a0a0a,
		Lights: []Light{
			{Kind: "ambient", Color: 0xffffff, Intensity: 0.5},
			{Kind: "directional", Color: 0xffffff, Intensity: 0.8, Position: geometry.Vec3{X: 10, Y: 10, Z: 5}},
			{Kind: "point", Color: 0x3b82f6, Intensity: 0.5, Position: geometry.Vec3{X: -5, Y: 5, Z: 5}},
		},
		Grid: Grid{Size: 12, Divisions: 12},
		log:  grovelogging.NewLogger("grove-forge.scene"),
	}
}

// Model returns the attached model, or nil.
func (s *Scene) Model() *geometry.Group {
	return s.model
}

// Attach detaches any current model and makes g the live one.
func (s *Scene) Attach(g *geometry.Group) {
	s.Detach()
	if g == nil {
		return
	}
	s.model = g
	s.log.WithFields(map[string]interface{}{
		"model_id": g.ID,
		"kind":     g.Kind,
		"meshes":   len(g.Children),
	}).Debug("Attached model")
}

// Detach removes the live model and releases its resources. It is a no-op
// when the slot is empty.
func (s *Scene) Detach() {
	if s.model == nil {
		return
	}
	old := s.model
	s.model = nil
	old.Dispose()
	s.log.WithField("model_id", old.ID).Debug("Detached model")
}

// Stage wires a builder to a scene. It is the regenerate callback the demo
// sequencer drives.
type Stage struct {
	scene   *Scene
	builder *geometry.Builder
	builds  int
}

// NewStage creates a stage that attaches models from builder to scene.
func NewStage(s *Scene, builder *geometry.Builder) *Stage {
	return &Stage{scene: s, builder: builder}
}

// Regenerate releases the previous model, then builds and attaches a new one
// from params. It reports whether a model is attached afterwards.
func (st *Stage) Regenerate(kind scenario.ShapeKind, params scenario.ParamSet) bool {
	st.scene.Detach()
	g, ok := st.builder.Build(kind, params.Values())
	if !ok {
		return false
	}
	st.builds++
	st.scene.Attach(g)
	return true
}

// Scene returns the scene the stage draws into.
func (st *Stage) Scene() *Scene {
	return st.scene
}

// Builds returns how many models the stage has attached.
func (st *Stage) Builds() int {
	return st.builds
}
