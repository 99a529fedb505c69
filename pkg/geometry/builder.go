package geometry

import (
	"math"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/sirupsen/logrus"
)

// shapeFunc builds the meshes of one shape kind from resolved parameters.
type shapeFunc func(g *Group, p params)

var shapes = map[scenario.ShapeKind]shapeFunc{
	scenario.ShapeBracket:  buildBracket,
	scenario.ShapeBox:      buildBox,
	scenario.ShapeStandoff: buildStandoff,
}

// Builder turns a shape kind and parameter values into a renderable model.
type Builder struct {
	catalogue *scenario.Catalogue
	log       *logrus.Entry
}

// NewBuilder creates a builder that falls back to the catalogue's defaults.
func NewBuilder(catalogue *scenario.Catalogue) *Builder {
	return &Builder{
		catalogue: catalogue,
		log:       grovelogging.NewLogger("grove-forge.geometry"),
	}
}

// Build constructs a new model. Each parameter resolves independently to the
// value in values if present and finite, else the scenario default. It returns
// false, and no model, when the kind is unknown or not in the catalogue.
func (b *Builder) Build(kind scenario.ShapeKind, values map[string]float64) (*Group, bool) {
	build, ok := shapes[kind]
	if !ok {
		b.log.WithField("kind", kind).Debug("Skipping unknown shape kind")
		return nil, false
	}
	s, ok := b.catalogue.Find(kind)
	if !ok {
		b.log.WithField("kind", kind).Debug("No scenario defines shape kind")
		return nil, false
	}

	g := newGroup(kind)
	build(g, params{values: values, defaults: s.Params})
	return g, true
}

// params resolves one parameter at a time against the scenario defaults.
type params struct {
	values   map[string]float64
	defaults scenario.ParamSet
}

func (p params) get(name string) float64 {
	if v, ok := p.values[name]; ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	v, _ := p.defaults.Value(name)
	return v
}
