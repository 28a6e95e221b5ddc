package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"phong-viewer/internal/capture"
	"phong-viewer/internal/config"
	"phong-viewer/internal/graphics"
	"phong-viewer/internal/graphics/renderables/sphere"
	renderer "phong-viewer/internal/graphics/renderer"
	"phong-viewer/internal/viewer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// setupApp builds the renderer for cfg on the window's current GL context
// and returns an app ready to Run.
func setupApp(window *glfw.Window, cfg config.Config) (*viewer.App, error) {
	policy, err := graphics.ParseCompilePolicy(cfg.Shaders.Policy)
	if err != nil {
		return nil, err
	}
	if cfg.Capture.Path != "" {
		if _, err := capture.FormatFor(cfg.Capture.Path); err != nil {
			return nil, err
		}
	}

	builder := &graphics.ProgramBuilder{
		Backend:     graphics.GLBackend{},
		Policy:      policy,
		Diagnostics: os.Stderr,
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	camera := newCamera(cfg.Camera, fbWidth, fbHeight)

	sphereRenderer := sphere.NewSphere(cfg, builder)
	r, err := renderer.NewRenderer(camera, mgl32.Vec4(cfg.Window.ClearColor), sphereRenderer)
	if err != nil {
		return nil, err
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	opts := viewer.Options{
		SlowFrame: time.Duration(cfg.Debug.SlowFrameMillis) * time.Millisecond,
		FPSLimit:  config.GetFPSLimit,
		OnDispose: []func(){r.Dispose},
	}

	if cfg.Shaders.Watch {
		sw, err := viewer.WatchShaders(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if err != nil {
			// hot reload is a convenience; render without it
			slog.Warn("shader hot reload disabled", "err", err)
		} else {
			opts.Reloader = sphereRenderer
			opts.Reloads = sw.C
			opts.OnStop = append(opts.OnStop, sw.Close)
			slog.Info("watching shaders", "vertex", cfg.Shaders.Vertex, "fragment", cfg.Shaders.Fragment)
		}
	}

	if cfg.Capture.Path != "" {
		opts.CapturePath = cfg.Capture.Path
		opts.CaptureFrame = uint64(cfg.Capture.Frame)
		opts.GrabFrame = func() *image.RGBA {
			return graphics.ReadFramebuffer(camera.Width, camera.Height)
		}
	}

	return viewer.NewApp(window, glfw.PollEvents, r, opts), nil
}

func newCamera(c config.CameraSettings, width, height int) *graphics.Camera {
	camera := graphics.NewCamera(width, height)
	camera.Eye = c.Eye
	camera.Left, camera.Right = c.Left, c.Right
	camera.Bottom, camera.Top = c.Bottom, c.Top
	camera.NearPlane, camera.FarPlane = c.Near, c.Far
	return camera
}

// setupWindow creates the GL 4.1 core window described by w and makes its
// context current. Escape requests close.
func setupWindow(w config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	slog.Info("gl context ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	if w.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	return window, nil
}
