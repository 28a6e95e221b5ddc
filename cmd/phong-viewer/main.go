package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"phong-viewer/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	closer.Bind(func() {
		slog.Info("phong-viewer stopped")
	})
	closer.Checked(run, true)
	closer.Close()
}

func run() error {
	path := config.Path()
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	config.Apply(cfg)
	slog.Info("config loaded", "path", path,
		"stacks", cfg.Sphere.Stacks, "sectors", cfg.Sphere.Sectors,
		"policy", cfg.Shaders.Policy)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	app, err := setupApp(window, cfg)
	if err != nil {
		return err
	}
	// signal-time cleanup runs off the render thread, so it only stops
	// background work; GL objects are released by Dispose below
	closer.Bind(app.Stop)
	defer app.Dispose()

	app.Run()
	slog.Info("window closed", "frames", app.Frames())
	return nil
}
