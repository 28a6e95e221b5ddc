package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultPath is read from the working directory when EnvPath is unset
	DefaultPath = "phong.toml"
	// EnvPath names the environment variable that overrides DefaultPath
	EnvPath = "PHONG_CONFIG"

	ShadersDir = "assets/shaders/phong"

	PolicyFailFast        = "fail-fast"
	PolicyWarnAndContinue = "warn-and-continue"
)

var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the viewer. The zero-config defaults
// reproduce the classic green Phong sphere.
type Config struct {
	Window   WindowSettings   `toml:"window"`
	Shaders  ShaderSettings   `toml:"shaders"`
	Sphere   SphereSettings   `toml:"sphere"`
	Model    ModelSettings    `toml:"model"`
	Camera   CameraSettings   `toml:"camera"`
	Material MaterialSettings `toml:"material"`
	Light    LightSettings    `toml:"light"`
	Capture  CaptureSettings  `toml:"capture"`
	Debug    DebugSettings    `toml:"debug"`
}

type WindowSettings struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Title      string     `toml:"title"`
	VSync      bool       `toml:"vsync"`
	FPSLimit   int        `toml:"fps_limit"` // 0 = uncapped
	ClearColor [4]float32 `toml:"clear_color"`
}

type ShaderSettings struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	// Policy is "fail-fast" or "warn-and-continue"
	Policy string `toml:"policy"`
	Watch  bool   `toml:"watch"`
}

type SphereSettings struct {
	Stacks  int `toml:"stacks"`
	Sectors int `toml:"sectors"`
}

type ModelSettings struct {
	Translate [3]float32 `toml:"translate"`
	Scale     float32    `toml:"scale"`
}

type CameraSettings struct {
	Eye    [3]float32 `toml:"eye"`
	Left   float32    `toml:"left"`
	Right  float32    `toml:"right"`
	Bottom float32    `toml:"bottom"`
	Top    float32    `toml:"top"`
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
}

type MaterialSettings struct {
	Ambient          [3]float32 `toml:"ambient"`
	Diffuse          [3]float32 `toml:"diffuse"`
	Specular         [3]float32 `toml:"specular"`
	Shininess        float32    `toml:"shininess"`
	AmbientIntensity float32    `toml:"ambient_intensity"`
}

type LightSettings struct {
	Position [3]float32 `toml:"position"`
}

type CaptureSettings struct {
	// Path is empty when capture is disabled
	Path  string `toml:"path"`
	Frame int    `toml:"frame"`
}

type DebugSettings struct {
	SlowFrameMillis int `toml:"slow_frame_ms"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Window: WindowSettings{
			Width:      512,
			Height:     512,
			Title:      "Phong Shader Sphere",
			VSync:      true,
			ClearColor: [4]float32{0, 0, 0, 1},
		},
		Shaders: ShaderSettings{
			Vertex:   filepath.Join(ShadersDir, "Phong.vert"),
			Fragment: filepath.Join(ShadersDir, "Phong.frag"),
			Policy:   PolicyFailFast,
		},
		Sphere: SphereSettings{Stacks: 18, Sectors: 36},
		Model: ModelSettings{
			Translate: [3]float32{0, 0, -7},
			Scale:     2,
		},
		Camera: CameraSettings{
			Left:   -0.1,
			Right:  0.1,
			Bottom: -0.1,
			Top:    0.1,
			Near:   0.1,
			Far:    1000,
		},
		Material: MaterialSettings{
			Ambient:          [3]float32{0, 1, 0},
			Diffuse:          [3]float32{0, 0.5, 0},
			Specular:         [3]float32{0.5, 0.5, 0.5},
			Shininess:        32,
			AmbientIntensity: 0.2,
		},
		Light:   LightSettings{Position: [3]float32{-4, 4, -3}},
		Capture: CaptureSettings{Frame: 1},
		Debug:   DebugSettings{SlowFrameMillis: 16},
	}
}

// Path returns the config file location, honoring EnvPath
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load decodes the TOML file at path on top of Default. A missing file is
// not an error; unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("could not parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce a frame
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit %d", ErrInvalid, c.Window.FPSLimit)
	case c.Sphere.Stacks < 1 || c.Sphere.Sectors < 1:
		return fmt.Errorf("%w: sphere %dx%d", ErrInvalid, c.Sphere.Stacks, c.Sphere.Sectors)
	case c.Shaders.Vertex == "" || c.Shaders.Fragment == "":
		return fmt.Errorf("%w: shader paths must be set", ErrInvalid)
	case c.Shaders.Policy != PolicyFailFast && c.Shaders.Policy != PolicyWarnAndContinue:
		return fmt.Errorf("%w: shader policy %q", ErrInvalid, c.Shaders.Policy)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Left == c.Camera.Right || c.Camera.Bottom == c.Camera.Top:
		return fmt.Errorf("%w: empty frustum window", ErrInvalid)
	case c.Capture.Path != "" && c.Capture.Frame < 1:
		return fmt.Errorf("%w: capture frame %d", ErrInvalid, c.Capture.Frame)
	}
	return nil
}
