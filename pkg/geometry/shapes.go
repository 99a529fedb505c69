package geometry

import (
	"math"
	"strconv"
)

// Millimetre to display unit factors.
const (
	bracketScale          = 0.045
	bracketThicknessScale = 0.09

	boxPlanScale   = 0.028
	boxHeightScale = 0.045
	boxWall        = 0.12

	standoffScale     = 0.09
	standoffHoleScale = 0.045
)

const (
	colorBracket  = 0x3b82f6
	colorBox      = 0x10b981
	colorStandoff = 0xf59e0b
	colorHole     = 0x000000
)

// buildBracket lays out an L of two slabs meeting at the origin corner, with a
// screw hole overlay on each arm.
func buildBracket(g *Group, p params) {
	width := p.get("width") * bracketScale
	height := p.get("height") * bracketScale
	thickness := p.get("thickness") * bracketThicknessScale
	hole := p.get("hole_size") * bracketScale

	material := NewPhysicalMaterial("bracket", colorBracket, 0.4, 0.1, 0.5)

	g.add(&Mesh{
		Name:       "vertical_arm",
		Geometry:   NewBoxGeometry(thickness, height, width),
		Material:   material,
		Position:   Vec3{-height/2 + thickness/2, height / 2, 0},
		CastShadow: true,
	})
	g.add(&Mesh{
		Name:       "horizontal_arm",
		Geometry:   NewBoxGeometry(height, thickness, width),
		Material:   material,
		Position:   Vec3{0, thickness / 2, 0},
		CastShadow: true,
	})

	holeMaterial := NewBasicMaterial("hole", colorHole)
	holeGeometry := NewCylinderGeometry(hole, hole, thickness+0.1, 16)
	g.add(&Mesh{
		Name:     "vertical_hole",
		Geometry: holeGeometry,
		Material: holeMaterial,
		Position: Vec3{-height/2 + thickness/2, height * 0.7, 0},
		Rotation: Euler{Z: math.Pi / 2},
	})
	g.add(&Mesh{
		Name:     "horizontal_hole",
		Geometry: holeGeometry,
		Material: holeMaterial,
		Position: Vec3{height * 0.3, thickness / 2, 0},
	})
}

// buildBox lays out an open-top shell with evenly spaced dividers along its length.
func buildBox(g *Group, p params) {
	length := p.get("length") * boxPlanScale
	width := p.get("width") * boxPlanScale
	height := p.get("height") * boxHeightScale
	dividers := int(math.Floor(p.get("dividers")))

	material := NewPhysicalMaterial("box", colorBox, 0.3, 0.4, 0.3)

	g.add(&Mesh{
		Name:       "bottom",
		Geometry:   NewBoxGeometry(length, boxWall, width),
		Material:   material,
		Position:   Vec3{Y: -height/2 + boxWall/2},
		CastShadow: true,
	})

	frontBack := NewBoxGeometry(length, height, boxWall)
	g.add(&Mesh{Name: "front", Geometry: frontBack, Material: material, Position: Vec3{Z: width/2 - boxWall/2}, CastShadow: true})
	g.add(&Mesh{Name: "back", Geometry: frontBack, Material: material, Position: Vec3{Z: -width/2 + boxWall/2}, CastShadow: true})

	sides := NewBoxGeometry(boxWall, height, width)
	g.add(&Mesh{Name: "left", Geometry: sides, Material: material, Position: Vec3{X: -length/2 + boxWall/2}, CastShadow: true})
	g.add(&Mesh{Name: "right", Geometry: sides, Material: material, Position: Vec3{X: length/2 - boxWall/2}, CastShadow: true})

	if dividers <= 0 {
		return
	}
	divider := NewBoxGeometry(boxWall/2, height*0.75, width-boxWall*2)
	spacing := length / float64(dividers+1)
	for i := 1; i <= dividers; i++ {
		g.add(&Mesh{
			Name:       dividerName(i),
			Geometry:   divider,
			Material:   material,
			Position:   Vec3{X: -length/2 + spacing*float64(i), Y: -height * 0.125},
			CastShadow: true,
		})
	}
}

// buildStandoff stacks a hex drive head on a round shaft with a through-hole overlay.
func buildStandoff(g *Group, p params) {
	diameter := p.get("diameter") * standoffScale
	height := p.get("height") * standoffScale
	holeRadius := p.get("hole_diameter") * standoffHoleScale
	hexSize := p.get("hex_size") * standoffScale

	material := NewPhysicalMaterial("standoff", colorStandoff, 0.8, 0.2, 0.4)

	g.add(&Mesh{
		Name:       "shaft",
		Geometry:   NewCylinderGeometry(diameter/2, diameter/2, height*0.6, 32),
		Material:   material,
		CastShadow: true,
	})
	g.add(&Mesh{
		Name:       "hex_head",
		Geometry:   NewCylinderGeometry(hexSize/2, hexSize/2, height*0.4, 6),
		Material:   material,
		Position:   Vec3{Y: height * 0.5},
		CastShadow: true,
	})
	g.add(&Mesh{
		Name:     "through_hole",
		Geometry: NewCylinderGeometry(holeRadius, holeRadius, height+0.2, 16),
		Material: NewBasicMaterial("hole", colorHole),
	})
}

// DividerPrefix is the name prefix of box divider meshes.
const DividerPrefix = "divider_"

func dividerName(i int) string {
	return DividerPrefix + strconv.Itoa(i)
}
