package geometry

import (
	"fmt"

	"github.com/mattsolo1/grove-forge/pkg/scenario"
)

// MeshSummary is a serialisable view of one mesh.
type MeshSummary struct {
	Name       string             `yaml:"name" json:"name"`
	Geometry   GeometryKind       `yaml:"geometry" json:"geometry"`
	Dimensions map[string]float64 `yaml:"dimensions" json:"dimensions"`
	Position   Vec3               `yaml:"position" json:"position"`
	Rotation   Euler              `yaml:"rotation" json:"rotation"`
	Material   string             `yaml:"material" json:"material"`
	Color      string             `yaml:"color" json:"color"`
}

// ModelSummary is a serialisable view of a built model.
type ModelSummary struct {
	ID     string             `yaml:"id" json:"id"`
	Kind   scenario.ShapeKind `yaml:"kind" json:"kind"`
	Meshes []MeshSummary      `yaml:"meshes" json:"meshes"`
	Bounds Box3               `yaml:"bounds" json:"bounds"`
}

// Summarize captures the layout of g for display or comparison.
func Summarize(g *Group) ModelSummary {
	s := ModelSummary{ID: g.ID, Kind: g.Kind, Bounds: g.Bounds()}
	g.Traverse(func(m *Mesh) {
		s.Meshes = append(s.Meshes, MeshSummary{
			Name:       m.Name,
			Geometry:   m.Geometry.Kind(),
			Dimensions: m.Geometry.Dimensions(),
			Position:   m.Position,
			Rotation:   m.Rotation,
			Material:   m.Material.Name,
			Color:      fmt.Sprintf("#%06x", m.Material.Color),
		})
	})
	return s
}
