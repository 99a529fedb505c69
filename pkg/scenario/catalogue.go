package scenario

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalogue is the fixed, ordered list of demo scenarios for a run.
type Catalogue struct {
	scenarios []Scenario
}

// CatalogueFile is the on-disk layout of a custom catalogue.
type CatalogueFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// NewCatalogue validates the scenarios and wraps them in a Catalogue.
func NewCatalogue(scenarios []Scenario) (*Catalogue, error) {
	c := &Catalogue{scenarios: make([]Scenario, len(scenarios))}
	for i, s := range scenarios {
		s.Params = s.Params.Clone()
		c.scenarios[i] = s
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultCatalogue returns the compiled-in three-scenario demo table.
func DefaultCatalogue() *Catalogue {
	c, err := NewCatalogue([]Scenario{
		{
			Prompt: "Make an L-bracket with M3 screw holes",
			Kind:   ShapeBracket,
			Params: ParamSet{
				{Name: "width", Value: 30, Min: 20, Max: 50, Label: "Width (mm)"},
				{Name: "height", Value: 40, Min: 30, Max: 60, Label: "Height (mm)"},
				{Name: "thickness", Value: 3, Min: 2, Max: 8, Label: "Thickness (mm)"},
				{Name: "hole_size", Value: 3, Min: 2, Max: 6, Label: "Hole size (mm)"},
			},
		},
		{
			Prompt: "Make a storage box with dividers",
			Kind:   ShapeBox,
			Params: ParamSet{
				{Name: "length", Value: 80, Min: 50, Max: 120, Label: "Length (mm)"},
				{Name: "width", Value: 60, Min: 40, Max: 100, Label: "Width (mm)"},
				{Name: "height", Value: 40, Min: 20, Max: 60, Label: "Height (mm)"},
				{Name: "dividers", Value: 2, Min: 0, Max: 4, Label: "Dividers"},
			},
		},
		{
			Prompt: "Make a standoff for mounting a PCB",
			Kind:   ShapeStandoff,
			Params: ParamSet{
				{Name: "diameter", Value: 8, Min: 6, Max: 12, Label: "Diameter (mm)"},
				{Name: "height", Value: 10, Min: 5, Max: 20, Label: "Height (mm)"},
				{Name: "hole_diameter", Value: 3, Min: 2, Max: 5, Label: "Hole diameter (mm)"},
				{Name: "hex_size", Value: 6, Min: 5, Max: 10, Label: "Hex size (mm)"},
			},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("default catalogue is invalid: %v", err))
	}
	return c
}

// LoadCatalogue reads a YAML catalogue file.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes and validates a YAML catalogue document.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var f CatalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}
	c, err := NewCatalogue(f.Scenarios)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}
	return c, nil
}

// Validate checks every scenario against the required parameters of its kind.
func (c *Catalogue) Validate() error {
	if len(c.scenarios) == 0 {
		return fmt.Errorf("catalogue has no scenarios")
	}
	for i, s := range c.scenarios {
		if err := validateScenario(s); err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	return nil
}

func validateScenario(s Scenario) error {
	if _, err := ParseShapeKind(string(s.Kind)); err != nil {
		return err
	}
	if strings.TrimSpace(s.Prompt) == "" {
		return fmt.Errorf("prompt is required")
	}
	seen := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("parameter name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true
		for _, f := range []struct {
			field string
			v     float64
		}{{"value", p.Value}, {"min", p.Min}, {"max", p.Max}} {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return fmt.Errorf("parameter %q: %s must be a finite number, got %g", p.Name, f.field, f.v)
			}
		}
		if p.Min > p.Max {
			return fmt.Errorf("parameter %q: min %g is greater than max %g", p.Name, p.Min, p.Max)
		}
		if p.Value < p.Min || p.Value > p.Max {
			return fmt.Errorf("parameter %q: value %g outside [%g, %g]", p.Name, p.Value, p.Min, p.Max)
		}
	}
	for _, name := range s.Kind.RequiredParams() {
		if !seen[name] {
			return fmt.Errorf("%s requires parameter %q", s.Kind, name)
		}
	}
	return nil
}

// Len returns the number of scenarios.
func (c *Catalogue) Len() int {
	return len(c.scenarios)
}

// At returns a copy of the scenario at index i.
func (c *Catalogue) At(i int) (Scenario, bool) {
	if i < 0 || i >= len(c.scenarios) {
		return Scenario{}, false
	}
	s := c.scenarios[i]
	s.Params = s.Params.Clone()
	return s, true
}

// Find returns the first scenario with the given kind.
func (c *Catalogue) Find(kind ShapeKind) (Scenario, bool) {
	for i, s := range c.scenarios {
		if s.Kind == kind {
			return c.At(i)
		}
	}
	return Scenario{}, false
}

// Next returns the index after i, wrapping to 0 after the last scenario.
func (c *Catalogue) Next(i int) int {
	return (i + 1) % len(c.scenarios)
}

// Prev returns the index before i, wrapping to the last scenario.
func (c *Catalogue) Prev(i int) int {
	return (i - 1 + len(c.scenarios)) % len(c.scenarios)
}

// Scenarios returns a copy of every scenario in order.
func (c *Catalogue) Scenarios() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	for i := range c.scenarios {
		out[i], _ = c.At(i)
	}
	return out
}
