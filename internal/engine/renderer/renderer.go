// Package renderer draws the two views of a session: the 2D stroke overlay
// while drawing and the lit mesh under the trackball while viewing.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sketch3d/internal/config"
	"github.com/Faultbox/sketch3d/internal/engine/camera"
	"github.com/Faultbox/sketch3d/internal/engine/lighting"
	"github.com/Faultbox/sketch3d/internal/engine/model"
	"github.com/Faultbox/sketch3d/internal/engine/renderer/shaders"
	"github.com/Faultbox/sketch3d/internal/engine/shader"
	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/pkg/math"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// Config holds renderer settings. Width and Height are the window size in
// screen coordinates.
type Config struct {
	Width  int
	Height int
	View   config.ViewConfig
}

// Overlay is what the 2D view shows.
type Overlay struct {
	Stroke     []math.Vec3
	Boundary   []sketch.BoundaryPoint
	Spine      sketch.Spine
	ShowChords bool
}

// Renderer owns the GL programs and buffers.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProg *shader.Program
	lineProg *shader.Program

	meshVAO   uint32
	meshVBO   uint32
	meshCount int32
	normalize math.Mat4

	lineVAO uint32
	lineVBO uint32
}

// New initialises OpenGL and builds the programs. It must be called after
// the GL context exists, on the thread that owns it.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log, normalize: math.Identity()}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	bg := cfg.View.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)

	var err error
	r.meshProg, err = shader.Load(shaders.MeshVertexShader, shaders.MeshFragmentShader,
		"uModel", "uView", "uProjection",
		"uLightPosition", "uLightAmbient", "uLightDiffuse", "uLightSpecular",
		"uMaterialAmbient", "uMaterialDiffuse", "uMaterialSpecular", "uShininess",
	)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.lineProg, err = shader.Load(shaders.LineVertexShader, shaders.LineFragmentShader,
		"uProjection", "uPointSize", "uColor",
	)
	if err != nil {
		r.meshProg.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height, cfg.Width, cfg.Height)
	return r, nil
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	r.ClearMesh()
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	r.lineProg.Delete()
	r.meshProg.Delete()
}

// Resize records the window size, which the overlay uses as its coordinate
// space, and sets the viewport to the framebuffer size. The two differ on
// high-DPI displays.
func (r *Renderer) Resize(width, height, fbWidth, fbHeight int) {
	if width <= 0 || height <= 0 || fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("fb_width", fbWidth),
		zap.Int("fb_height", fbHeight),
	)
}

// SetView replaces the camera and lighting settings.
func (r *Renderer) SetView(v config.ViewConfig) {
	r.config.View = v
	gl.ClearColor(v.Background[0], v.Background[1], v.Background[2], 1)
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetMesh uploads m for the 3D view, replacing any previous mesh. A nil or
// empty mesh just clears it.
func (r *Renderer) SetMesh(m *mesh.Mesh) {
	r.ClearMesh()
	gpu := model.Build(m)
	if gpu.TriangleCount() == 0 {
		return
	}
	if gpu.Skipped > 0 {
		r.log.Debug("skipped degenerate faces", zap.Int("faces", gpu.Skipped))
	}

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)
	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	size := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(gpu.Vertices)*size, unsafe.Pointer(&gpu.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(size), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(size), 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	r.meshCount = int32(len(gpu.Vertices))
	r.normalize = model.NormalizeTransform(gpu.Bounds)
	r.log.Debug("mesh uploaded",
		zap.Int("triangles", gpu.TriangleCount()),
		zap.Uint32("vao", r.meshVAO),
	)
}

// ClearMesh drops the uploaded mesh.
func (r *Renderer) ClearMesh() {
	if r.meshVBO != 0 {
		gl.DeleteBuffers(1, &r.meshVBO)
		r.meshVBO = 0
	}
	if r.meshVAO != 0 {
		gl.DeleteVertexArrays(1, &r.meshVAO)
		r.meshVAO = 0
	}
	r.meshCount = 0
}

// DrawMesh draws the uploaded mesh with the trackball transform applied after
// normalisation.
func (r *Renderer) DrawMesh(trackball math.Mat4) {
	if r.meshCount == 0 {
		return
	}
	v := r.config.View
	cam := camera.Camera{Eye: v.Eye, Focus: v.Focus, FOV: v.FOV, Near: v.Near, Far: v.Far}
	proj := cam.ProjectionMatrix(float32(r.config.Width) / float32(r.config.Height))
	view := cam.ViewMatrix()
	modelMat := trackball.Mul(r.normalize)

	p := r.meshProg
	p.Use()
	p.SetMat4("uModel", modelMat)
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	lighting.Light{
		Position: [3]float32{v.LightPosition.X, v.LightPosition.Y, v.LightPosition.Z},
		Ambient:  v.LightAmbient,
		Diffuse:  v.LightDiffuse,
		Specular: v.LightSpecular,
	}.Apply(p)
	lighting.Material{
		Ambient:   v.MaterialAmbient,
		Diffuse:   v.MaterialDiffuse,
		Specular:  v.MaterialSpec,
		Shininess: v.Shininess,
	}.Apply(p)

	if v.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.BindVertexArray(r.meshVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.meshCount)
	gl.BindVertexArray(0)
}

// DrawOverlay draws the stroke, and once triangulated its boundary points
// and optionally the spine chords, in window coordinates.
func (r *Renderer) DrawOverlay(o Overlay) {
	v := r.config.View
	proj := math.Ortho(0, float32(r.config.Width), float32(r.config.Height), 0, -1, 1)

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	p := r.lineProg
	p.Use()
	p.SetMat4("uProjection", proj)
	p.SetFloat("uPointSize", 5)

	gl.BindVertexArray(r.lineVAO)
	defer gl.BindVertexArray(0)

	r.drawLines(model.LineStrip(o.Stroke), gl.LINE_STRIP, v.Stroke)
	if o.ShowChords {
		r.drawLines(model.Chords(o.Boundary, o.Spine), gl.LINES, v.Spine)
	}
	r.drawLines(model.BoundaryPoints(o.Boundary), gl.POINTS, v.Boundary)
}

func (r *Renderer) drawLines(xy []float32, mode uint32, color config.RGB) {
	if len(xy) < 2 {
		return
	}
	r.lineProg.SetVec3("uColor", color)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(xy)*4, unsafe.Pointer(&xy[0]), gl.DYNAMIC_DRAW)
	gl.DrawArrays(mode, 0, int32(len(xy)/2))
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows along
// with its size. Call it before SwapBuffers.
func (r *Renderer) ReadPixels(fbWidth, fbHeight int) []byte {
	pixels := make([]byte, fbWidth*fbHeight*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(fbWidth), int32(fbHeight), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}
