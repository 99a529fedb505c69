package scene

import (
	"math"
	"strings"
	"time"

	"github.com/mattsolo1/grove-forge/pkg/geometry"
)

const (
	// modelSpin is the per-frame turn of the attached model around Y.
	modelSpin = 0.005
	// orbitRate is the camera orbit speed in radians per millisecond.
	orbitRate = 0.0002

	cameraRadius = 10.0
	cameraHeight = 10.0
	fieldOfView  = 50.0 * math.Pi / 180
	nearPlane    = 0.1

	// cellAspect is the height of a terminal cell relative to its width.
	cellAspect = 2.0
)

// Layer tells a painter what a cell depicts.
type Layer int

const (
	LayerEmpty Layer = iota
	LayerGrid
	LayerSolid
	LayerHole
)

// Cell is one character of a rendered frame.
type Cell struct {
	Rune  rune
	Layer Layer
	Color uint32
}

// Frame is a rendered character canvas.
type Frame struct {
	Cols, Rows int
	cells      []Cell
}

func newFrame(cols, rows int) *Frame {
	f := &Frame{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
	for i := range f.cells {
		f.cells[i] = Cell{Rune: ' '}
	}
	return f
}

// At returns the cell at column c, row r.
func (f *Frame) At(c, r int) Cell {
	return f.cells[r*f.Cols+c]
}

func (f *Frame) set(c, r int, cell Cell) {
	if c < 0 || r < 0 || c >= f.Cols || r >= f.Rows {
		return
	}
	i := r*f.Cols + c
	if f.cells[i].Layer > cell.Layer {
		return
	}
	f.cells[i] = cell
}

// Count returns how many cells are on the given layer.
func (f *Frame) Count(layer Layer) int {
	n := 0
	for _, c := range f.cells {
		if c.Layer == layer {
			n++
		}
	}
	return n
}

// Paint renders the frame row by row. Runs of cells with the same layer and
// colour are passed to paint together.
func (f *Frame) Paint(paint func(run string, layer Layer, color uint32) string) string {
	if f.Cols == 0 {
		return ""
	}
	var b strings.Builder
	for r := 0; r < f.Rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for c := 1; c <= f.Cols; c++ {
			first := f.At(start, r)
			if c < f.Cols {
				next := f.At(c, r)
				if next.Layer == first.Layer && next.Color == first.Color {
					continue
				}
			}
			var run strings.Builder
			for i := start; i < c; i++ {
				run.WriteRune(f.At(i, r).Rune)
			}
			b.WriteString(paint(run.String(), first.Layer, first.Color))
			start = c
		}
	}
	return b.String()
}

// String renders the frame without styling.
func (f *Frame) String() string {
	return f.Paint(func(run string, _ Layer, _ uint32) string { return run })
}

// Camera is a perspective camera looking at the origin.
type Camera struct {
	Position geometry.Vec3
	FOV      float64
}

// Viewport is the frame loop state of the scene host: camera orbit time and
// model spin. The host calls Step once per frame.
type Viewport struct {
	Elapsed time.Duration
	// Zoom scales the projection; 1 matches the camera's field of view.
	Zoom   float64
	Frames int
}

// NewViewport returns a viewport at time zero.
func NewViewport(zoom float64) *Viewport {
	if zoom <= 0 {
		zoom = 1
	}
	return &Viewport{Zoom: zoom}
}

// Step advances one frame: the camera orbit moves by dt and the attached
// model turns by a fixed amount.
func (v *Viewport) Step(s *Scene, dt time.Duration) {
	v.Elapsed += dt
	v.Frames++
	if m := s.Model(); m != nil {
		m.Rotation.Y += modelSpin
	}
}

// Camera returns the orbiting camera for the current time.
func (v *Viewport) Camera() Camera {
	angle := float64(v.Elapsed.Milliseconds()) * orbitRate
	sin, cos := math.Sincos(angle)
	return Camera{
		Position: geometry.Vec3{X: cameraRadius * cos, Y: cameraHeight, Z: cameraRadius * sin},
		FOV:      fieldOfView,
	}
}

// Render draws the grid and the attached model on a cols x rows canvas.
func (v *Viewport) Render(s *Scene, cols, rows int) *Frame {
	f := newFrame(cols, rows)
	if cols <= 0 || rows <= 0 {
		return f
	}
	p := newProjector(v.Camera(), cols, rows, v.Zoom)

	half := s.Grid.Size / 2
	if s.Grid.Divisions > 0 {
		step := s.Grid.Size / float64(s.Grid.Divisions)
		for i := 0; i <= s.Grid.Divisions; i++ {
			d := -half + step*float64(i)
			cell := Cell{Rune: '.', Layer: LayerGrid, Color: 0x333333}
			p.line(f, geometry.Segment{A: geometry.Vec3{X: d, Z: -half}, B: geometry.Vec3{X: d, Z: half}}, cell, false)
			p.line(f, geometry.Segment{A: geometry.Vec3{X: -half, Z: d}, B: geometry.Vec3{X: half, Z: d}}, cell, false)
		}
	}

	m := s.Model()
	if m == nil {
		return f
	}
	m.Traverse(func(mesh *geometry.Mesh) {
		layer := LayerSolid
		if mesh.Material.Basic {
			layer = LayerHole
		}
		for _, seg := range mesh.WorldEdges() {
			seg = geometry.Segment{A: m.Rotation.Apply(seg.A), B: m.Rotation.Apply(seg.B)}
			p.line(f, seg, Cell{Layer: layer, Color: mesh.Material.Color}, true)
		}
	})
	return f
}

type projector struct {
	eye                geometry.Vec3
	right, up, forward geometry.Vec3
	scaleX, scaleY     float64
	cols, rows         float64
}

func newProjector(cam Camera, cols, rows int, zoom float64) projector {
	forward := cam.Position.Scale(-1).Normalize()
	right := forward.Cross(geometry.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	focal := zoom / math.Tan(cam.FOV/2)
	aspect := float64(cols) / (float64(rows) * cellAspect)
	return projector{
		eye:     cam.Position,
		right:   right,
		up:      up,
		forward: forward,
		scaleX:  focal / aspect,
		scaleY:  focal,
		cols:    float64(cols),
		rows:    float64(rows),
	}
}

// project maps a world point to fractional cell coordinates.
func (p projector) project(v geometry.Vec3) (float64, float64, bool) {
	d := v.Sub(p.eye)
	z := d.Dot(p.forward)
	if z < nearPlane {
		return 0, 0, false
	}
	x := d.Dot(p.right) / z * p.scaleX
	y := d.Dot(p.up) / z * p.scaleY
	return (x + 1) / 2 * p.cols, (1 - y) / 2 * p.rows, true
}

// line rasterises a segment. With slopeGlyphs the rune follows the on-screen
// direction of the edge.
func (p projector) line(f *Frame, s geometry.Segment, cell Cell, slopeGlyphs bool) {
	x0, y0, ok0 := p.project(s.A)
	x1, y1, ok1 := p.project(s.B)
	if !ok0 || !ok1 {
		return
	}
	if slopeGlyphs {
		cell.Rune = glyphFor(cell.Layer, x1-x0, (y1-y0)*cellAspect)
	}

	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		f.set(int(math.Floor(x0)), int(math.Floor(y0)), cell)
		return
	}
	// Long off-screen edges are capped so a near-camera vertex cannot stall a frame.
	if steps > 4*(f.Cols+f.Rows) {
		steps = 4 * (f.Cols + f.Rows)
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		f.set(int(math.Floor(x0+(x1-x0)*t)), int(math.Floor(y0+(y1-y0)*t)), cell)
	}
}

func glyphFor(layer Layer, dx, dy float64) rune {
	if layer == LayerHole {
		return 'o'
	}
	angle := math.Atan2(-dy, dx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return '-'
	case angle < 3*math.Pi/8:
		return '/'
	case angle < 5*math.Pi/8:
		return '|'
	default:
		return '\\'
	}
}
