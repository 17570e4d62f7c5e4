package lab3d

import (
	"context"
	"github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"github.com/subchen/go-trylock/v2"
	"image"
	"image/color"
	"math"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// RasterOption configures a RasterBridge.
type RasterOption func(r *RasterBridge)

// OptRasterCamera sets the vertical field of view (radians) and the clipping planes (default 90º, 0.01, 1000).
func OptRasterCamera(fovY, near, far float64) RasterOption {
	return func(r *RasterBridge) {
		r.camFOV = fovY
		r.near = near
		r.far = far
	}
}

// OptRasterIsometricSize sets the half height of the visible area in isometric view mode (default 1).
func OptRasterIsometricSize(halfHeight float64) RasterOption {
	return func(r *RasterBridge) {
		r.isoHalfHeight = halfHeight
	}
}

// OptRasterBackground changes the clear color.
func OptRasterBackground(background color.RGBA) RasterOption {
	return func(r *RasterBridge) {
		r.background = background
	}
}

// OptRasterRectangles adds flat colored quads to the scene (see DemoRectangles).
func OptRasterRectangles(rects ...Rectangle) RasterOption {
	return func(r *RasterBridge) {
		for _, rect := range rects {
			r.rectangles = append(r.rectangles, rect.triangles()...)
		}
	}
}

// OptRasterObject adds a solid that follows the object rotation of every frame.
func OptRasterObject(objects ...*LabObject) RasterOption {
	return func(r *RasterBridge) {
		r.objects = append(r.objects, objects...)
	}
}

// OptRasterLightDir sets the light direction used to shade objects.
// Actually, two lights are simulated (the given one and the opposite one), as part of the surface would be hard to see otherwise
func OptRasterLightDir(lightDir v3.Vec) RasterOption {
	return func(r *RasterBridge) {
		r.lightDir = lightDir.Normalize()
	}
}

//-----------------------------------------------------------------------------
// RENDERER
//-----------------------------------------------------------------------------

// RasterBridge is a CPU rasterizer (fauxgl) consuming frames: it draws the scene as seen by the frame's camera.
// Upload renders synchronously, while Image may be called from any goroutine to display the last render.
type RasterBridge struct {
	renderingLock     rwTryLocker // Held while rendering, protects everything below
	width, height     int
	camFOV, near, far float64
	isoHalfHeight     float64
	background        color.RGBA
	lightDir          v3.Vec
	rectangles        []*fauxgl.Triangle
	objects           []*LabObject
	lastContext       *fauxgl.Context
	lastRender        *image.NRGBA
	lastFrame         Frame
	renderedFrames    int
}

// rwTryLocker is the subset of trylock's RW mutex used here.
type rwTryLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
	RTryLock(ctx context.Context) bool
}

// NewRasterBridge creates an empty scene rendered at the given resolution.
func NewRasterBridge(width, height int, opts ...RasterOption) *RasterBridge {
	r := &RasterBridge{
		renderingLock: trylock.New(),
		width:         width,
		height:        height,
		camFOV:        math.Pi / 2, // 90º FOV-Y
		near:          0.01,
		far:           1000,
		isoHalfHeight: 1,
		background:    color.RGBA{R: 50, G: 100, B: 150, A: 255},
		lightDir:      v3.Vec{X: -1, Y: 1, Z: 1}.Normalize(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resize changes the resolution of the following renders.
func (r *RasterBridge) Resize(width, height int) {
	r.renderingLock.Lock()
	defer r.renderingLock.Unlock()
	r.width, r.height = width, height
}

// Size returns the resolution of the following renders.
func (r *RasterBridge) Size() (int, int) {
	r.renderingLock.RLock()
	defer r.renderingLock.RUnlock()
	return r.width, r.height
}

// RenderedFrames counts the completed renders.
func (r *RasterBridge) RenderedFrames() int {
	r.renderingLock.RLock()
	defer r.renderingLock.RUnlock()
	return r.renderedFrames
}

// Image returns the last completed render and its frame, or ok=false if a render is in progress and did not finish
// before ctx is done. The image must not be modified.
func (r *RasterBridge) Image(ctx context.Context) (img *image.NRGBA, frame Frame, ok bool) {
	if !r.renderingLock.RTryLock(ctx) {
		return nil, Frame{}, false
	}
	defer r.renderingLock.RUnlock()
	return r.lastRender, r.lastFrame, true
}

// Upload renders the scene for the given frame.
func (r *RasterBridge) Upload(frame *Frame) error {
	r.renderingLock.Lock()
	defer r.renderingLock.Unlock()
	if r.width <= 0 || r.height <= 0 {
		return nil // Nothing to draw into (e.g. minimized window)
	}
	if r.lastContext == nil || r.lastContext.Width != r.width || r.lastContext.Height != r.height {
		// Rebuild rendering context only when needed
		r.lastContext = fauxgl.NewContext(r.width, r.height)
		r.lastContext.Cull = fauxgl.CullNone // Quads are visible from both sides
	} else {
		r.lastContext.ClearDepthBuffer()
	}
	r.lastContext.ClearColorBufferWith(fauxgl.MakeColor(r.background))

	viewProjection := r.projection(frame.View).Mul(viewMatrix(frame))
	if len(r.rectangles) > 0 {
		r.lastContext.Shader = &flatShader{Matrix: viewProjection}
		r.lastContext.DrawTriangles(r.rectangles)
	}
	for _, obj := range r.objects {
		r.lastContext.Shader = r.objectShader(obj, frame, viewProjection)
		r.lastContext.Wireframe = frame.Material == MaterialWireframe
		r.lastContext.DrawMesh(obj.mesh)
	}
	r.lastContext.Wireframe = false

	// Publish a copy: the context's color buffer is reused by the next render
	r.lastRender = toNRGBA(r.lastContext.Image())
	r.lastFrame = *frame
	r.renderedFrames++
	return nil
}

// viewMatrix moves the world so that the camera sits at the origin: view = R * (p - cameraPosition).
func viewMatrix(frame *Frame) fauxgl.Matrix {
	rot := frame.CameraRotation
	return rot.Fauxgl(rot.MulVec(frame.CameraPosition).MulScalar(-1))
}

func (r *RasterBridge) projection(view ViewMode) fauxgl.Matrix {
	aspectRatio := float64(r.width) / float64(r.height)
	if view == ViewIsometric {
		h := r.isoHalfHeight
		return fauxgl.Orthographic(-h*aspectRatio, h*aspectRatio, -h, h, r.near, r.far)
	}
	return fauxgl.Perspective(r.camFOV*180/math.Pi, aspectRatio, r.near, r.far)
}

// flatShader draws vertex colors with no lighting.
type flatShader struct {
	Matrix fauxgl.Matrix
}

func (shader *flatShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	return v
}

func (shader *flatShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return v.Color
}

// objectShader returns the shader for the object in the frame's material mode.
func (r *RasterBridge) objectShader(obj *LabObject, frame *Frame, viewProjection fauxgl.Matrix) fauxgl.Shader {
	model := obj.model(frame.ObjectRotation)
	matrix := viewProjection.Mul(model)
	switch frame.Material {
	case MaterialLambert:
		return &lambertShader{
			Matrix:   matrix,
			Model:    model,
			LightDir: toFauxglVector(r.lightDir),
			Color:    fauxgl.MakeColor(obj.Color),
		}
	case MaterialNormal, MaterialWireframe:
		return &normalShader{Matrix: matrix, Model: model}
	default:
		return fauxgl.NewSolidColorShader(matrix, fauxgl.MakeColor(obj.Color))
	}
}

// lambertShader is a constant color with basic shading (2 lights and no projected shadows).
type lambertShader struct {
	Matrix, Model fauxgl.Matrix
	LightDir      fauxgl.Vector
	Color         fauxgl.Color
}

func (shader *lambertShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	v.Normal = shader.Model.MulDirection(v.Normal)
	return v
}

func (shader *lambertShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	lightIntensity := 0.15 + 0.85*math.Abs(v.Normal.Normalize().Dot(shader.LightDir))
	c := shader.Color.MulScalar(lightIntensity)
	c.A = shader.Color.A
	return c
}

// normalShader colors each fragment with its rotated surface normal: |X|, |Y|, |Z| as R, G, B.
type normalShader struct {
	Matrix, Model fauxgl.Matrix
}

func (shader *normalShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	v.Normal = shader.Model.MulDirection(v.Normal)
	return v
}

func (shader *normalShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	n := v.Normal.Normalize()
	return fauxgl.Color{R: math.Abs(n.X), G: math.Abs(n.Y), B: math.Abs(n.Z), A: 1}
}

// toNRGBA copies img into a new image that no renderer writes to.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	res := image.NewNRGBA(b)
	if nrgba, ok := img.(*image.NRGBA); ok {
		copy(res.Pix, nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y):])
		return res
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			res.Set(x, y, img.At(x, y))
		}
	}
	return res
}
