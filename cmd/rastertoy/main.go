// rastertoy renders OBJ meshes with a software CPU rasterizer directly into
// a terminal, using half-block characters to double vertical resolution.
//
// Usage:
//
//	rastertoy [options] <model1.obj> [model2.obj ...]
//
// With no arguments, a built-in cube is rendered instead.
//
// Controls:
//
//	W/S/D       - Wireframe / solid / solid+wireframe
//	F/G/P       - Flat / Gouraud / Phong shading
//	Q/E         - Rotate the current object around Y
//	Space/LCtrl - Move the camera down/up
//	Arrow keys  - Nudge the light position
//	N           - Toggle normal-vector overlay
//	M           - Toggle depth-map visualization
//	1-9         - Select object by index
//	Esc/Ctrl+C  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Veil43/rastertoy/pkg/math3d"
	"github.com/Veil43/rastertoy/pkg/models"
	"github.com/Veil43/rastertoy/pkg/render"
)

var (
	targetFPS = flag.Int("fps", 60, "target frames per second")
	dumpPath  = flag.String("dump", "", "render one frame headlessly to this PNG path and exit, instead of opening a terminal session")
	dumpSize  = flag.String("dump-size", "320x240", "WIDTHxHEIGHT for -dump")
	dumpRaw   = flag.String("dump-raw", "", "render one frame headlessly and write the raw host-buffer bytes (RGBA, row-major) to this path")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rastertoy - terminal software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rastertoy [options] <model.obj> [model.obj ...]\n\n")
		fmt.Fprintf(os.Stderr, "With no model arguments, a built-in cube is rendered.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/D       Wireframe / solid / solid+wireframe\n")
		fmt.Fprintf(os.Stderr, "  F/G/P       Flat / Gouraud / Phong shading\n")
		fmt.Fprintf(os.Stderr, "  Q/E         Rotate current object around Y\n")
		fmt.Fprintf(os.Stderr, "  Space/LCtrl Move camera down/up\n")
		fmt.Fprintf(os.Stderr, "  Arrow keys  Nudge light position\n")
		fmt.Fprintf(os.Stderr, "  N           Toggle normal overlay\n")
		fmt.Fprintf(os.Stderr, "  M           Toggle depth-map visualization\n")
		fmt.Fprintf(os.Stderr, "  1-9         Select object\n")
		fmt.Fprintf(os.Stderr, "  Esc/Ctrl+C  Quit\n")
	}
	flag.Parse()

	objects, names := loadObjects(flag.Args())

	var err error
	switch {
	case *dumpPath != "":
		err = runHeadlessDump(objects, names)
	case *dumpRaw != "":
		err = runHeadlessRawDump(objects, names)
	default:
		err = run(objects, names)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadObjects resolves command-line mesh paths into render.Object values,
// skipping any file that fails to parse (logged, not fatal). Paths ending in
// .glb or .gltf go through the GLTF loader; everything else is treated as
// OBJ. If none load — because no paths were given or every load failed — a
// fallback cube fills the slot so the scene is never empty, matching the
// original viewer's behavior.
func loadObjects(paths []string) (objects []render.Object, names []string) {
	for i, path := range paths {
		mesh, err := loadMesh(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		obj := models.NewObject(mesh, math3d.V3(0, 0, 20), 10, i)
		objects = append(objects, obj)
		names = append(names, filepath.Base(path))
	}

	if len(objects) == 0 {
		cube := models.NewObject(models.NewCubeMesh(), math3d.V3(0, 0, 12), 4, 0)
		objects = append(objects, cube)
		names = append(names, "cube")
	}
	return objects, names
}

// loadMesh dispatches to the GLTF loader for .glb/.gltf paths and the OBJ
// parser for everything else, so both mesh sources feed the same
// Mesh/Object pipeline.
func loadMesh(path string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	default:
		return models.LoadOBJ(path)
	}
}

// runHeadlessDump renders a single frame with no terminal involved and
// writes it to a PNG, for scripted testing of the pipeline without a tty.
func runHeadlessDump(objects []render.Object, names []string) error {
	var w, h int
	if _, err := fmt.Sscanf(*dumpSize, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("invalid -dump-size %q (want WIDTHxHEIGHT)", *dumpSize)
	}

	screen := render.Screen{Width: w, Height: h, AspectRatio: float64(w) / float64(h)}
	rs := render.NewRenderState()
	rs.OnLaunch(screen, objects)
	rs.Update(0)

	log.Printf("dumping %d object(s) (%v) to %s", len(objects), names, *dumpPath)
	return rs.FB.SavePNG(*dumpPath)
}

// runHeadlessRawDump renders one frame and writes the raw host Screen
// buffer bytes (the §6-shaped boundary Present/Blit cross) straight to
// disk, exercising the same byte layout a platform frontend with its own
// display surface would consume instead of FB.Pixels.
func runHeadlessRawDump(objects []render.Object, names []string) error {
	var w, h int
	if _, err := fmt.Sscanf(*dumpSize, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("invalid -dump-size %q (want WIDTHxHEIGHT)", *dumpSize)
	}

	const bytesPerPixel = 4
	screen := render.Screen{
		Buffer:        make([]byte, w*h*bytesPerPixel),
		Width:         w,
		Height:        h,
		Pitch:         w * bytesPerPixel,
		BytesPerPixel: bytesPerPixel,
		AspectRatio:   float64(w) / float64(h),
	}

	rs := render.NewRenderState()
	rs.OnLaunch(render.Screen{Width: w, Height: h, AspectRatio: screen.AspectRatio}, objects)
	rs.Update(0)
	rs.Present(screen)

	log.Printf("dumping %d object(s) (%v) raw to %s", len(objects), names, *dumpRaw)
	return os.WriteFile(*dumpRaw, screen.Buffer, 0o644)
}

func run(objects []render.Object, names []string) error {
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

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	rs := render.NewRenderState()
	newScreen := func(w, h int) render.Screen {
		// Terminal rows pack two framebuffer rows each via half-block
		// characters (Framebuffer.Draw), so the back-buffer is 2x tall.
		return render.Screen{Width: w, Height: h * 2, AspectRatio: float64(w) / float64(h*2)}
	}
	rs.OnLaunch(newScreen(width, height), objects)
	log.Printf("loaded %v", names)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				rs.OnLaunch(newScreen(width, height), rs.Objects)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					rs.ProcessInput(render.KeyW)
				case ev.MatchString("s"):
					rs.ProcessInput(render.KeyS)
				case ev.MatchString("d"):
					rs.ProcessInput(render.KeyD)
				case ev.MatchString("f"):
					rs.ProcessInput(render.KeyF)
				case ev.MatchString("g"):
					rs.ProcessInput(render.KeyG)
				case ev.MatchString("p"):
					rs.ProcessInput(render.KeyP)
				case ev.MatchString("q"):
					rs.ProcessInput(render.KeyQ)
				case ev.MatchString("e"):
					rs.ProcessInput(render.KeyE)
				case ev.MatchString("n"):
					rs.ProcessInput(render.KeyN)
				case ev.MatchString("m"):
					rs.ProcessInput(render.KeyM)
				case ev.MatchString("space"):
					rs.ProcessInput(render.KeySpace)
				case ev.MatchString("left_ctrl", "leftctrl", "ctrl+left"):
					rs.ProcessInput(render.KeyLCtrl)
				case ev.MatchString("up"):
					rs.ProcessInput(render.KeyUp)
				case ev.MatchString("down"):
					rs.ProcessInput(render.KeyDown)
				case ev.MatchString("left"):
					rs.ProcessInput(render.KeyLeft)
				case ev.MatchString("right"):
					rs.ProcessInput(render.KeyRight)
				case ev.MatchString("1"):
					rs.ProcessInput(render.Key1)
				case ev.MatchString("2"):
					rs.ProcessInput(render.Key2)
				case ev.MatchString("3"):
					rs.ProcessInput(render.Key3)
				case ev.MatchString("4"):
					rs.ProcessInput(render.Key4)
				case ev.MatchString("5"):
					rs.ProcessInput(render.Key5)
				case ev.MatchString("6"):
					rs.ProcessInput(render.Key6)
				case ev.MatchString("7"):
					rs.ProcessInput(render.Key7)
				case ev.MatchString("8"):
					rs.ProcessInput(render.Key8)
				case ev.MatchString("9"):
					rs.ProcessInput(render.Key9)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rs.Update(dt)
		rs.FB.Draw(term, uv.Rect(0, 0, width, height))
		term.Display()

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
