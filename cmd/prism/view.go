package main

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
)

// RotationAxis tracks the angular velocity of one axis, decayed toward zero
// by a spring.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with a critically damped spring.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 4.0, 1.0),
	}
}

// Update advances the axis by one frame and returns the angle turned.
func (a *RotationAxis) Update() float64 {
	step := a.Velocity
	a.Position += step

	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	if math.Abs(a.Velocity) < 1e-6 {
		// Rotate skips exactly zero angles, so settle on zero.
		a.Velocity, a.velAccel = 0, 0
	}
	return step
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

// Update advances every axis and returns this frame's pitch, yaw and roll.
func (r *RotationState) Update() (pitch, yaw, roll float64) {
	return r.Pitch.Update(), r.Yaw.Update(), r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// RenderMode controls how the scene is drawn
type RenderMode int

const (
	RenderModeFill      RenderMode = iota // Rasterized with Gouraud shading
	RenderModeWireframe                   // Triangle edges only
	RenderModeTrace                       // One ray per pixel
)

var renderModeNames = [...]string{"fill", "wire", "trace"}

// ParseRenderMode parses the -mode flag.
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range renderModeNames {
		if s == name {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode: %s (use fill, wire or trace)", s)
}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(renderModeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return renderModeNames[m]
}

// Next returns the mode after m, wrapping around.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % RenderMode(len(renderModeNames))
}

// viewDirections are the directions the V key cycles through: front, top
// and side.
var viewDirections = []math3d.Vec3{
	math3d.V3(0, 0, -1),
	math3d.V3(0, -1, 0),
	math3d.V3(-1, 0, 0),
}

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	TextureEnabled bool        // Whether to show textures
	RenderMode     RenderMode  // Current render mode
	LightMode      bool        // Whether in light positioning mode
	LightDir       math3d.Vec3 // Current light direction
	PendingLight   math3d.Vec3 // Light direction while positioning
	ShowHUD        bool        // Whether to show the HUD overlay
	ShowBounds     bool        // Whether to outline the bounding box
	Inverted       bool        // Whether the winding has been flipped
}

// NewViewState creates default view state
func NewViewState(mode RenderMode) *ViewState {
	return &ViewState{
		RenderMode: mode,
		LightDir:   math3d.V3(0.5, 1, 0.8).Normalized(),
	}
}

// Light returns the light direction currently in effect.
func (v *ViewState) Light() math3d.Vec3 {
	if v.LightMode {
		return v.PendingLight
	}
	return v.LightDir
}

// ScreenToLightDir converts a screen position to a light direction on the
// hemisphere facing the viewer.
func ScreenToLightDir(screenX, screenY, width, height int) math3d.Vec3 {
	// Normalize to [-1, 1]
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	// Clamp to unit circle
	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		ny /= l
		lenSq = 1
	}

	nz := math.Sqrt(1 - lenSq)
	return math3d.V3(nx, -ny, nz).Normalized()
}

// Frame owns the framebuffer and the three renderers that share one
// caster.
type Frame struct {
	fb         *render.Framebuffer
	rasterizer *render.Rasterizer
	wireframe  *render.Wireframe
	tracer     *render.Tracer
	texture    *render.Texture
}

// NewFrame creates the renderers for caster drawing into fb.
func NewFrame(caster render.Ray3Caster, fb *render.Framebuffer, texture *render.Texture) *Frame {
	return &Frame{
		fb:         fb,
		rasterizer: render.NewRasterizer(caster, fb),
		wireframe:  render.NewWireframe(caster, fb),
		tracer:     render.NewTracer(caster, fb),
		texture:    texture,
	}
}

// Framebuffer returns the framebuffer the frame draws into.
func (f *Frame) Framebuffer() *render.Framebuffer {
	return f.fb
}

// Resize resizes the framebuffer and depth buffer.
func (f *Frame) Resize(width, height int) {
	f.fb.Resize(width, height)
	f.rasterizer.Resize()
}

// Draw renders the scene according to the view state.
func (f *Frame) Draw(scene *models.MeshTriangle3Collection, view *ViewState, background render.Color) {
	base := render.RGB(200, 200, 200)
	light := view.Light()

	f.fb.Clear(background)

	switch view.RenderMode {
	case RenderModeWireframe:
		f.wireframe.DrawCollection(scene, render.RGB(0, 255, 128))
	case RenderModeTrace:
		f.tracer.LightDir = light
		f.tracer.Background = background
		f.tracer.Render(scene, base)
	default:
		f.rasterizer.ClearDepth()
		f.rasterizer.LightDir = light
		f.rasterizer.Texture = nil
		if view.TextureEnabled {
			f.rasterizer.Texture = f.texture
		}
		f.rasterizer.DrawCollection(scene, base)
	}

	if view.ShowBounds {
		f.wireframe.DrawBounds(scene.Bounds(), render.ColorSky)
	}
}

// HUD renders an overlay with model info and controls
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, viewState *ViewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if viewState.LightMode {
		lightMsg := fmt.Sprintf("%s%s%s ◉ LIGHT MODE - Move mouse to position, click to set, Esc to cancel %s",
			bgBlack, bold, fgYellow, reset)
		lightCol := max((width-60)/2, 1)
		fmt.Print(moveTo(height, lightCol) + lightMsg)
		return
	}

	if !viewState.ShowHUD {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleStr := fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.filename, reset)
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + titleStr)

	polyStr := fmt.Sprintf("%s%s%s %d polys %s", bgBlack, fgCyan, bold, h.polyCount, reset)
	polyCol := max(width-12, 1)
	fmt.Print(moveTo(1, polyCol) + polyStr)

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}

	modeStr := fmt.Sprintf("%s%s Mode: %-5s %s Texture  %s Bounds  %s Inverted %s",
		bgBlack, fgWhite, viewState.RenderMode,
		check(viewState.TextureEnabled && viewState.RenderMode == RenderModeFill),
		check(viewState.ShowBounds), check(viewState.Inverted), reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	hint := fmt.Sprintf("%s%s%s L: position light %s", bgBlack, dim, fgYellow, reset)
	hintCol := max(width-18, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}
