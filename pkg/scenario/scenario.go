package scenario

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownShape is returned when a shape identifier is not one of the known kinds.
	ErrUnknownShape = errors.New("unknown shape kind")
	// ErrUnknownParameter is returned when a parameter name is not part of a set.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// ShapeKind identifies a parametric part family.
type ShapeKind string

const (
	ShapeBracket  ShapeKind = "bracket"
	ShapeBox      ShapeKind = "box"
	ShapeStandoff ShapeKind = "standoff"
)

// Kinds lists every supported shape kind in catalogue order.
var Kinds = []ShapeKind{ShapeBracket, ShapeBox, ShapeStandoff}

// requiredParams maps each kind to the parameter names its geometry reads.
var requiredParams = map[ShapeKind][]string{
	ShapeBracket:  {"width", "height", "thickness", "hole_size"},
	ShapeBox:      {"length", "width", "height", "dividers"},
	ShapeStandoff: {"diameter", "height", "hole_diameter", "hex_size"},
}

// ParseShapeKind converts a string into a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	k := ShapeKind(s)
	if _, ok := requiredParams[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
	return k, nil
}

// RequiredParams returns the parameter names the geometry for kind depends on.
func (k ShapeKind) RequiredParams() []string {
	names := requiredParams[k]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func (k ShapeKind) String() string {
	return string(k)
}

// Param is a single tunable value with its slider bounds.
type Param struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	Label string  `yaml:"label" json:"label"`
}

// Clamp returns v limited to the parameter's bounds.
func (p Param) Clamp(v float64) float64 {
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Fraction reports where the current value sits between Min and Max, in [0,1].
func (p Param) Fraction() float64 {
	if p.Max <= p.Min {
		return 0
	}
	return (p.Clamp(p.Value) - p.Min) / (p.Max - p.Min)
}

// ParamSet is an ordered set of parameters. Order is display order.
type ParamSet []Param

// Get returns the parameter with the given name.
func (s ParamSet) Get(name string) (Param, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Value returns the value of the named parameter.
func (s ParamSet) Value(name string) (float64, bool) {
	p, ok := s.Get(name)
	return p.Value, ok
}

// With returns a copy of the set in which only the named value is replaced.
// Bounds and label are preserved.
func (s ParamSet) With(name string, value float64) (ParamSet, error) {
	out := s.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// Values flattens the set into a name to value map.
func (s ParamSet) Values() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, p := range s {
		m[p.Name] = p.Value
	}
	return m
}

// Names returns the parameter names in display order.
func (s ParamSet) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// Clone returns an independent copy of the set.
func (s ParamSet) Clone() ParamSet {
	if s == nil {
		return nil
	}
	out := make(ParamSet, len(s))
	copy(out, s)
	return out
}

// Scenario is one canned demo entry.
type Scenario struct {
	Prompt string    `yaml:"prompt" json:"prompt"`
	Kind   ShapeKind `yaml:"kind" json:"kind"`
	Params ParamSet  `yaml:"params" json:"params"`
}
