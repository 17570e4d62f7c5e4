package lab3d

import (
	"fmt"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"image/color"
	"log"
)

// Rectangle is a flat colored quad. Corners follow triangle strip order: (0, 1, 2) and (2, 1, 3) are drawn.
type Rectangle struct {
	Corners [4]v3.Vec
	Color   color.RGBA
}

// DemoRectangles returns the rectangles demo scene: four quads on the faces of the [0, 0.5] cube.
func DemoRectangles() []Rectangle {
	return []Rectangle{
		{
			Corners: [4]v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 0.5, Y: 0, Z: 0}, {X: 0, Y: 0.5, Z: 0}, {X: 0.5, Y: 0.5, Z: 0}},
			Color:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		},
		{
			Corners: [4]v3.Vec{{X: 0, Y: 0, Z: 0.5}, {X: 0.5, Y: 0, Z: 0.5}, {X: 0, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}},
			Color:   color.RGBA{R: 255, G: 0, B: 255, A: 255},
		},
		{
			Corners: [4]v3.Vec{{X: 0.5, Y: 0, Z: 0}, {X: 0.5, Y: 0.5, Z: 0}, {X: 0.5, Y: 0, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}},
			Color:   color.RGBA{R: 0, G: 0, B: 255, A: 255},
		},
		{
			Corners: [4]v3.Vec{{X: 0, Y: 0, Z: 0.5}, {X: 0, Y: 0.5, Z: 0}, {X: 0, Y: 0, Z: 0.5}, {X: 0, Y: 0.5, Z: 0.5}},
			Color:   color.RGBA{R: 255, G: 0, B: 0, A: 255},
		},
	}
}

// triangles converts the quad to the two triangles of its strip.
func (r Rectangle) triangles() []*fauxgl.Triangle {
	c := fauxgl.MakeColor(r.Color)
	vtx := func(i int) fauxgl.Vertex {
		return fauxgl.Vertex{Position: toFauxglVector(r.Corners[i]), Color: c}
	}
	return []*fauxgl.Triangle{
		{V1: vtx(0), V2: vtx(1), V3: vtx(2)},
		{V1: vtx(2), V2: vtx(1), V3: vtx(3)},
	}
}

// LabObject is a solid placed in the scene and rotated (about its bounding box center) by the object matrix.
type LabObject struct {
	mesh     *fauxgl.Mesh
	center   v3.Vec
	Position v3.Vec // Where the center of the object is placed
	Color    color.RGBA
}

// NewLabObject meshes the SDF3 with uniform marching cubes (meshCells along the longest side of its bounding box).
// This is slow for high cell counts: it is only performed once.
func NewLabObject(s sdf.SDF3, meshCells int, position v3.Vec, col color.RGBA) (*LabObject, error) {
	if meshCells <= 0 {
		return nil, fmt.Errorf("meshCells must be positive, got %d", meshCells)
	}
	log.Println("[lab3d] Rendering 3D mesh...")
	var triangles []*fauxgl.Triangle
	triChan := make(chan []*render.Triangle3)
	go func() {
		render.NewMarchingCubesUniform(meshCells).Render(s, triChan)
		close(triChan)
	}()
	for tris := range triChan {
		for _, tri := range tris {
			triangles = append(triangles, convertTriangle(tri))
		}
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("the SDF produced an empty mesh with %d cells", meshCells)
	}
	mesh := fauxgl.NewTriangleMesh(triangles)
	log.Println("[lab3d] Mesh is ready:", len(triangles), "triangles")
	return &LabObject{
		mesh:     mesh,
		center:   s.BoundingBox().Center(),
		Position: position,
		Color:    col,
	}, nil
}

// model is the object's transform: rotate about its own center, then move the center to Position.
func (o *LabObject) model(rotation Mat3) fauxgl.Matrix {
	return rotation.Fauxgl(o.Position).Mul(fauxgl.Translate(toFauxglVector(o.center.MulScalar(-1))))
}

func convertTriangle(tri *render.Triangle3) *fauxgl.Triangle {
	normalV := toFauxglVector(tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0])).Normalize())
	return &fauxgl.Triangle{
		V1: fauxgl.Vertex{Position: toFauxglVector(tri.V[0]), Normal: normalV, Color: fauxgl.Gray(1)},
		V2: fauxgl.Vertex{Position: toFauxglVector(tri.V[1]), Normal: normalV, Color: fauxgl.Gray(1)},
		V3: fauxgl.Vertex{Position: toFauxglVector(tri.V[2]), Normal: normalV, Color: fauxgl.Gray(1)},
	}
}

func toFauxglVector(v v3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
