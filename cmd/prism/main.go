// prism - Terminal Triangle Mesh Viewer
// Spin a tessellated primitive or a GLB model in your terminal, drawn by
// a rasterizer, a wireframe or a per-pixel ray tracer.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset model
//	M           - Cycle render mode (fill, wireframe, trace)
//	T           - Toggle texture on/off
//	I           - Invert triangle winding
//	B           - Toggle bounding box
//	V           - Cycle view direction (front, top, side)
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	?           - Toggle HUD overlay
//	+/-         - Adjust zoom
//	Esc         - Quit (or cancel light mode)
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG)")
	targetFPS   = flag.Int("fps", 30, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	shape       = flag.String("shape", "cube", "Primitive to show when no model is given (cube|sphere)")
	cells       = flag.Int("cells", 24, "Marching cubes cells along the primitive's longest side")
	modeFlag    = flag.String("mode", "fill", "Render mode (fill|wire|trace)")
	pngPath     = flag.String("png", "", "Render one frame to this PNG file instead of the terminal")
	pngWidth    = flag.Int("width", 320, "Width of the PNG snapshot")
	pngHeight   = flag.Int("height", 240, "Height of the PNG snapshot")
	pngTurn     = flag.String("turn", "-25,35,0", "Pitch, yaw and roll in degrees applied before the PNG snapshot")
)

const (
	cameraDistance  = 5.0
	defaultViewSize = 3.0
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "prism - Terminal Triangle Mesh Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: prism [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset model\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle render mode\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  I           - Invert winding\n")
		fmt.Fprintf(os.Stderr, "  B           - Toggle bounding box\n")
		fmt.Fprintf(os.Stderr, "  V           - Cycle view direction\n")
		fmt.Fprintf(os.Stderr, "  L           - Position light (mouse to aim, click to set)\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	mode, err := ParseRenderMode(*modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	modelPath := flag.Arg(0)

	if *pngPath != "" {
		err = snapshot(modelPath, mode)
	} else {
		err = run(modelPath, mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadScene returns the triangles to show and a display name. Without a
// model path the -shape primitive is tessellated instead.
func loadScene(modelPath string) (*models.MeshTriangle3Collection, string, error) {
	if modelPath == "" {
		var (
			scene *models.MeshTriangle3Collection
			err   error
		)
		switch *shape {
		case "cube":
			scene, err = models.Cube(math3d.Zero3(), 2, *cells)
		case "sphere":
			scene, err = models.Sphere(math3d.Zero3(), 1, *cells)
		default:
			return nil, "", fmt.Errorf("unknown shape: %s (use cube or sphere)", *shape)
		}
		if err != nil {
			return nil, "", fmt.Errorf("tessellate %s: %w", *shape, err)
		}
		return scene, *shape, nil
	}

	ext := strings.ToLower(filepath.Ext(modelPath))
	if ext != ".glb" && ext != ".gltf" {
		return nil, "", fmt.Errorf("unsupported format: %s (use .glb)", ext)
	}

	scene, err := models.LoadTriangles(modelPath)
	if err != nil {
		return nil, "", fmt.Errorf("load model: %w", err)
	}
	fitScene(scene)
	return scene, filepath.Base(modelPath), nil
}

// fitScene centers the triangles on the recorded origin and scales them so
// their largest side is 2 units.
func fitScene(scene *models.MeshTriangle3Collection) {
	bounds := scene.Bounds()
	if bounds.IsEmpty() {
		return
	}

	size := bounds.Size()
	scale := 1.0
	if maxDim := math.Max(size.X, math.Max(size.Y, size.Z)); maxDim > 0 {
		scale = 2 / maxDim
	}

	fit := math3d.Translate(scene.Origin()).
		Mul(math3d.Scale(math3d.Splat3(scale))).
		Mul(math3d.Translate(bounds.Center().Negate()))
	scene.Transform(fit)
}

// turnMatrix parses "pitch,yaw,roll" in degrees into a rotation applied in
// X, Y, Z order, the same order as Collection.Rotate.
func turnMatrix(s string) (math3d.Mat4, error) {
	var pitch, yaw, roll float64
	if _, err := fmt.Sscanf(s, "%g,%g,%g", &pitch, &yaw, &roll); err != nil {
		return math3d.Mat4{}, fmt.Errorf("parse turn %q: %w", s, err)
	}
	return math3d.RotateZ(math3d.DegreesToRadians(roll)).
		Mul(math3d.RotateY(math3d.DegreesToRadians(yaw))).
		Mul(math3d.RotateX(math3d.DegreesToRadians(pitch))), nil
}

// newRegion builds an orthographic caster looking at the world origin
// along dir, viewSize units tall and matching the framebuffer's aspect.
func newRegion(dir math3d.Vec3, viewSize float64, fbWidth, fbHeight int) *render.Ray3Region {
	dir = dir.Normalized()
	aspect := float64(fbWidth) / float64(max(fbHeight, 1))
	return render.NewRay3Region(math3d.NewRay3(dir.Scale(-cameraDistance), dir), viewSize*aspect, viewSize)
}

func parseBackground(s string) render.Color {
	var r, g, b uint8 = 30, 30, 40
	fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b)
	return render.RGB(r, g, b)
}

func loadTexture() *render.Texture {
	if *texturePath != "" {
		texture, err := render.LoadTexture(*texturePath)
		if err == nil {
			return texture
		}
		fmt.Fprintf(os.Stderr, "Warning: could not load texture: %v\n", err)
	}
	return render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
}

// snapshot renders a single frame of the scene to the -png file.
func snapshot(modelPath string, mode RenderMode) error {
	scene, name, err := loadScene(modelPath)
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(*pngWidth, *pngHeight)
	region := newRegion(math3d.V3(0, 0, -1), defaultViewSize, fb.Width, fb.Height)

	turn, err := turnMatrix(*pngTurn)
	if err != nil {
		return err
	}
	scene.Transform(turn)

	view := NewViewState(mode)
	frame := NewFrame(region, fb, loadTexture())
	frame.Draw(scene, view, parseBackground(*bgColor))

	if err := fb.SavePNG(*pngPath); err != nil {
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	fmt.Printf("Saved %s (%d triangles) to %s\n", name, scene.Len(), *pngPath)
	return nil
}

func run(modelPath string, mode RenderMode) error {
	background := parseBackground(*bgColor)

	base, name, err := loadScene(modelPath)
	if err != nil {
		return err
	}
	scene := base.Clone()

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// Two framebuffer rows per terminal cell
	fb := render.NewFramebuffer(width, height*2)
	viewDir := 0
	viewSize := defaultViewSize
	region := newRegion(viewDirections[viewDir], viewSize, fb.Width, fb.Height)
	frame := NewFrame(region, fb, loadTexture())

	hud := NewHUD(name, scene.Len())
	rotation := NewRotationState(*targetFPS)
	viewState := NewViewState(mode)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	// Mouse state
	var mouseDown bool
	var lastMouseX, lastMouseY int

	reframe := func() {
		*region = *newRegion(viewDirections[viewDir], viewSize, fb.Width, fb.Height)
	}

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			frame.Resize(width, height*2)
			reframe()

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"):
				if viewState.LightMode {
					viewState.LightMode = false
				} else {
					cancel()
				}
			case ev.MatchString("ctrl+c"):
				cancel()
			case ev.MatchString("q"):
				inputTorque.roll = -torqueStrength
			case ev.MatchString("e"):
				inputTorque.roll = torqueStrength
			case ev.MatchString("w", "up"):
				inputTorque.pitch = -torqueStrength
			case ev.MatchString("s", "down"):
				inputTorque.pitch = torqueStrength
			case ev.MatchString("a", "left"):
				inputTorque.yaw = -torqueStrength
			case ev.MatchString("d", "right"):
				inputTorque.yaw = torqueStrength
			case ev.MatchString("r"):
				rotation.Reset()
				scene = base.Clone()
				viewState.Inverted = false
				viewSize = defaultViewSize
				reframe()
			case ev.MatchString("space"):
				rotation.ApplyImpulse(
					(rand.Float64()-0.5)*0.5,
					(rand.Float64()-0.5)*0.5,
					(rand.Float64()-0.5)*0.5,
				)
			case ev.MatchString("+", "="):
				viewSize = math.Max(0.5, viewSize-0.25)
				reframe()
			case ev.MatchString("-", "_"):
				viewSize = math.Min(20, viewSize+0.25)
				reframe()
			case ev.MatchString("m"):
				viewState.RenderMode = viewState.RenderMode.Next()
			case ev.MatchString("t"):
				viewState.TextureEnabled = !viewState.TextureEnabled
			case ev.MatchString("i"):
				scene = scene.Inverted()
				viewState.Inverted = !viewState.Inverted
			case ev.MatchString("b"):
				viewState.ShowBounds = !viewState.ShowBounds
			case ev.MatchString("v"):
				viewDir = (viewDir + 1) % len(viewDirections)
				region.RotateTo(viewDirections[viewDir])
				region.D.P = region.D.V.Scale(-cameraDistance)
			case ev.MatchString("l"):
				viewState.LightMode = true
				viewState.PendingLight = viewState.LightDir
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				viewState.ShowHUD = !viewState.ShowHUD
			}

		case uv.KeyReleaseEvent:
			switch {
			case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
				inputTorque.pitch = 0
			case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
				inputTorque.yaw = 0
			case ev.MatchString("q"), ev.MatchString("e"):
				inputTorque.roll = 0
			}

		case uv.MouseClickEvent:
			if viewState.LightMode {
				viewState.LightDir = viewState.PendingLight
				viewState.LightMode = false
			} else {
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseReleaseEvent:
			if !viewState.LightMode {
				mouseDown = false
			}

		case uv.MouseMotionEvent:
			if viewState.LightMode {
				viewState.PendingLight = ScreenToLightDir(ev.X, ev.Y, width, height)
			} else if mouseDown {
				dx := ev.X - lastMouseX
				dy := ev.Y - lastMouseY
				rotation.ApplyImpulse(float64(dy)*0.01, float64(dx)*0.01, 0)
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				viewSize = math.Max(0.5, viewSize-0.25)
			case uv.MouseWheelDown:
				viewSize = math.Min(20, viewSize+0.25)
			}
			reframe()
		}
	}

	targetDuration := time.Second / time.Duration(max(*targetFPS, 1))
	lastFrame := time.Now()
	events := term.Events()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	for {
		// Events are drained here so the scene is only touched by this loop.
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				handle(ev)
			default:
				break drain
			}
		}

		now := time.Now()
		dt := math.Min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt*0.1,
			inputTorque.yaw*dt*0.1,
			inputTorque.roll*dt*0.1,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		// The collection keeps its vertices in world space, so each frame
		// only turns it by this frame's step.
		pitch, yaw, roll := rotation.Update()
		scene.Rotate(pitch, yaw, roll, math3d.Zero3())

		frame.Draw(scene, viewState, background)

		frame.Framebuffer().Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, viewState)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
