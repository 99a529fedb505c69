package geometry

import "math"

// Disposable is implemented by every resource that must be released when a
// model leaves the scene.
type Disposable interface {
	Dispose()
}

// GeometryKind names a primitive shape.
type GeometryKind string

const (
	KindBox      GeometryKind = "box"
	KindCylinder GeometryKind = "cylinder"
)

// Geometry is a primitive shape in local space, centred on the origin.
type Geometry interface {
	Disposable
	Kind() GeometryKind
	// Dimensions returns the named size parameters of the primitive.
	Dimensions() map[string]float64
	// Edges returns the wireframe outline in local space.
	Edges() []Segment
	Disposed() bool
}

type resource struct {
	disposed bool
}

func (r *resource) Dispose()       { r.disposed = true }
func (r *resource) Disposed() bool { return r.disposed }

// BoxGeometry is a cuboid with the given full extents.
type BoxGeometry struct {
	resource
	Width, Height, Depth float64
}

func NewBoxGeometry(width, height, depth float64) *BoxGeometry {
	return &BoxGeometry{Width: width, Height: height, Depth: depth}
}

func (g *BoxGeometry) Kind() GeometryKind { return KindBox }

func (g *BoxGeometry) Dimensions() map[string]float64 {
	return map[string]float64{"width": g.Width, "height": g.Height, "depth": g.Depth}
}

func (g *BoxGeometry) Edges() []Segment {
	x, y, z := g.Width/2, g.Height/2, g.Depth/2
	c := [8]Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	pairs := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	edges := make([]Segment, 0, len(pairs))
	for _, p := range pairs {
		edges = append(edges, Segment{c[p[0]], c[p[1]]})
	}
	return edges
}

// CylinderGeometry is a prism around the Y axis. Six radial segments give a
// hexagonal cross-section.
type CylinderGeometry struct {
	resource
	RadiusTop, RadiusBottom, Height float64
	RadialSegments                  int
}

func NewCylinderGeometry(radiusTop, radiusBottom, height float64, segments int) *CylinderGeometry {
	if segments < 3 {
		segments = 3
	}
	return &CylinderGeometry{
		RadiusTop:      radiusTop,
		RadiusBottom:   radiusBottom,
		Height:         height,
		RadialSegments: segments,
	}
}

func (g *CylinderGeometry) Kind() GeometryKind { return KindCylinder }

func (g *CylinderGeometry) Dimensions() map[string]float64 {
	return map[string]float64{
		"radius_top":      g.RadiusTop,
		"radius_bottom":   g.RadiusBottom,
		"height":          g.Height,
		"radial_segments": float64(g.RadialSegments),
	}
}

func (g *CylinderGeometry) Edges() []Segment {
	n := g.RadialSegments
	h := g.Height / 2
	top := make([]Vec3, n)
	bottom := make([]Vec3, n)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		top[i] = Vec3{g.RadiusTop * sin, h, g.RadiusTop * cos}
		bottom[i] = Vec3{g.RadiusBottom * sin, -h, g.RadiusBottom * cos}
	}

	// Smooth cylinders only get four side lines; prisms get one per corner.
	stride := 1
	if n > 8 {
		stride = n / 4
	}

	edges := make([]Segment, 0, 2*n+n/stride)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edges = append(edges, Segment{top[i], top[j]}, Segment{bottom[i], bottom[j]})
		if i%stride == 0 {
			edges = append(edges, Segment{bottom[i], top[i]})
		}
	}
	return edges
}

// Material describes surface appearance.
type Material struct {
	resource
	Name      string
	Color     uint32
	Metalness float64
	Roughness float64
	Clearcoat float64
	// Basic materials are unlit and are used for hole overlays.
	Basic bool
}

func NewPhysicalMaterial(name string, color uint32, metalness, roughness, clearcoat float64) *Material {
	return &Material{Name: name, Color: color, Metalness: metalness, Roughness: roughness, Clearcoat: clearcoat}
}

func NewBasicMaterial(name string, color uint32) *Material {
	return &Material{Name: name, Color: color, Basic: true}
}
