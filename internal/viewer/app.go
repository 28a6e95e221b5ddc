package viewer

import (
	"image"
	"log/slog"
	"time"

	"phong-viewer/internal/capture"
	"phong-viewer/internal/profiling"
)

// Window is the part of the platform window the frame loop drives.
// *glfw.Window satisfies it.
type Window interface {
	ShouldClose() bool
	SwapBuffers()
}

// FrameRenderer draws one complete frame into the back buffer
type FrameRenderer interface {
	Render(dt float64)
}

// Reloader rebuilds GPU programs from their sources
type Reloader interface {
	Reload() error
}

// Options configures the optional parts of the frame loop
type Options struct {
	// SlowFrame logs frames that take longer; zero disables the check
	SlowFrame time.Duration
	// FPSLimit returns the frame cap, read once per frame; nil or <= 0 is uncapped
	FPSLimit func() int

	// Reloads triggers Reloader.Reload between frames
	Reloader Reloader
	Reloads  <-chan struct{}

	// CapturePath receives frame number CaptureFrame (1-based), read
	// through GrabFrame before it is presented
	CapturePath  string
	CaptureFrame uint64
	GrabFrame    func() *image.RGBA

	// OnDispose runs on the render thread in reverse order
	OnDispose []func()
	// OnStop runs from any goroutine and must not touch GL
	OnStop []func()
}

// App runs the render loop until the window asks to close
type App struct {
	window     Window
	pollEvents func()
	renderer   FrameRenderer
	opts       Options

	limiter  *FPSLimiter
	frames   uint64
	lastTime time.Time
}

// NewApp wires a window, an event pump and a renderer into a frame loop
func NewApp(window Window, pollEvents func(), r FrameRenderer, opts Options) *App {
	return &App{
		window:     window,
		pollEvents: pollEvents,
		renderer:   r,
		opts:       opts,
		limiter:    NewFPSLimiter(opts.FPSLimit),
		lastTime:   time.Now(),
	}
}

// Run renders frames until the window is closed
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

// Frames returns the number of frames presented so far
func (a *App) Frames() uint64 {
	return a.frames
}

func (a *App) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	a.renderer.Render(dt)
	a.frames++

	if a.opts.CapturePath != "" && a.frames == a.opts.CaptureFrame {
		a.captureFrame()
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()
	func() { defer profiling.Track("glfw.PollEvents")(); a.pollEvents() }()

	a.applyReloads()

	if d := time.Since(now); a.opts.SlowFrame > 0 && d > a.opts.SlowFrame {
		slog.Warn("slow frame",
			"frame", a.frames,
			"duration", d,
			"present", profiling.SumWithPrefix("glfw."),
			"top", profiling.TopN(5))
	}

	a.limiter.Wait()
}

func (a *App) captureFrame() {
	if a.opts.GrabFrame == nil {
		return
	}
	defer profiling.Track("viewer.capture")()

	img := a.opts.GrabFrame()
	if err := capture.Save(a.opts.CapturePath, img); err != nil {
		slog.Error("frame capture failed", "path", a.opts.CapturePath, "err", err)
		return
	}
	slog.Info("frame captured", "frame", a.frames, "path", a.opts.CapturePath)
}

func (a *App) applyReloads() {
	if a.opts.Reloads == nil || a.opts.Reloader == nil {
		return
	}
	select {
	case <-a.opts.Reloads:
		if err := a.opts.Reloader.Reload(); err != nil {
			slog.Error("shader reload failed, keeping previous program", "err", err)
		}
	default:
	}
}

// Stop releases background resources. Safe to call from a signal handler.
func (a *App) Stop() {
	for _, fn := range a.opts.OnStop {
		fn()
	}
}

// Dispose releases everything the app owns. Call it on the render thread.
func (a *App) Dispose() {
	a.Stop()
	for i := len(a.opts.OnDispose) - 1; i >= 0; i-- {
		a.opts.OnDispose[i]()
	}
	a.opts.OnDispose = nil
}
