package geometry

import (
	"github.com/google/uuid"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
)

// Mesh places a geometry with a material in its parent group.
type Mesh struct {
	Name       string
	Geometry   Geometry
	Material   *Material
	Position   Vec3
	Rotation   Euler
	CastShadow bool
}

// Transform maps a point from the mesh's local space into group space.
func (m *Mesh) Transform(p Vec3) Vec3 {
	return m.Rotation.Apply(p).Add(m.Position)
}

// WorldEdges returns the mesh outline in group space.
func (m *Mesh) WorldEdges() []Segment {
	local := m.Geometry.Edges()
	out := make([]Segment, len(local))
	for i, s := range local {
		out[i] = Segment{m.Transform(s.A), m.Transform(s.B)}
	}
	return out
}

// Group is the renderable model for one build. It owns every geometry and
// material its meshes reference.
type Group struct {
	ID       string
	Kind     scenario.ShapeKind
	Children []*Mesh
	Rotation Euler
}

func newGroup(kind scenario.ShapeKind) *Group {
	return &Group{ID: uuid.NewString(), Kind: kind}
}

func (g *Group) add(m *Mesh) {
	g.Children = append(g.Children, m)
}

// Mesh returns the first child with the given name.
func (g *Group) Mesh(name string) (*Mesh, bool) {
	for _, m := range g.Children {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Traverse calls fn for every child mesh in insertion order.
func (g *Group) Traverse(fn func(*Mesh)) {
	for _, m := range g.Children {
		fn(m)
	}
}

// Dispose releases every geometry and material of the group. Shared resources
// are released once; calling Dispose again is a no-op.
func (g *Group) Dispose() {
	seen := make(map[Disposable]bool)
	release := func(d Disposable) {
		if seen[d] {
			return
		}
		seen[d] = true
		d.Dispose()
	}
	g.Traverse(func(m *Mesh) {
		release(m.Geometry)
		release(m.Material)
	})
}

// Disposed reports whether every resource of the group has been released.
func (g *Group) Disposed() bool {
	for _, m := range g.Children {
		if !m.Geometry.Disposed() || !m.Material.Disposed() {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned extents of all mesh outlines in group space.
func (g *Group) Bounds() Box3 {
	b := emptyBox()
	g.Traverse(func(m *Mesh) {
		for _, s := range m.WorldEdges() {
			b.Expand(s.A)
			b.Expand(s.B)
		}
	})
	return b
}
