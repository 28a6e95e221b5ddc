package sphere

import (
	"fmt"
	"log/slog"

	"phong-viewer/internal/config"
	"phong-viewer/internal/graphics"
	renderer "phong-viewer/internal/graphics/renderer"
	"phong-viewer/internal/mesh"
	"phong-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere implements the Phong-lit unit sphere
type Sphere struct {
	cfg     config.Config
	builder *graphics.ProgramBuilder

	shader   *graphics.Shader
	geometry *mesh.Sphere
	mesh     *graphics.Mesh

	model    mgl32.Mat4
	material graphics.Material
}

// NewSphere creates a new sphere renderable
func NewSphere(cfg config.Config, builder *graphics.ProgramBuilder) *Sphere {
	return &Sphere{
		cfg:     cfg,
		builder: builder,
		model:   graphics.ModelMatrix(cfg.Model.Translate, cfg.Model.Scale),
		material: graphics.Material{
			Ambient:          cfg.Material.Ambient,
			Diffuse:          cfg.Material.Diffuse,
			Specular:         cfg.Material.Specular,
			Shininess:        cfg.Material.Shininess,
			AmbientIntensity: cfg.Material.AmbientIntensity,
		},
	}
}

// Init builds the program, generates the sphere and uploads it
func (s *Sphere) Init() error {
	shader, err := s.builder.Build(s.cfg.Shaders.Vertex, s.cfg.Shaders.Fragment)
	if err != nil {
		return fmt.Errorf("phong program: %w", err)
	}

	geometry, err := mesh.GenerateSphere(s.cfg.Sphere.Stacks, s.cfg.Sphere.Sectors)
	if err != nil {
		shader.Dispose()
		return err
	}

	s.shader = shader
	s.geometry = geometry
	s.mesh = graphics.UploadSphere(geometry)

	slog.Info("sphere ready",
		"program", shader.ID,
		"vertices", geometry.VertexCount(),
		"triangles", geometry.TriangleCount())
	return nil
}

// Render draws the sphere with the current program
func (s *Sphere) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderSphere")()

	s.shader.Use()
	u := s.Uniforms(ctx)
	u.Apply(s.shader)
	s.mesh.Draw()
}

// Uniforms returns the values uploaded for one frame
func (s *Sphere) Uniforms(ctx renderer.RenderContext) graphics.PhongUniforms {
	var eye mgl32.Vec3
	if ctx.Camera != nil {
		eye = ctx.Camera.Eye
	}
	return graphics.PhongUniforms{
		Model:      s.model,
		View:       ctx.View,
		Projection: ctx.Proj,
		Material:   s.material,
		LightPos:   s.cfg.Light.Position,
		ViewPos:    eye,
	}
}

// Reload rebuilds the program from the shader files. The running program
// is kept when the new one fails to build.
func (s *Sphere) Reload() error {
	shader, err := s.builder.Build(s.cfg.Shaders.Vertex, s.cfg.Shaders.Fragment)
	if err != nil {
		return err
	}
	if s.shader != nil {
		s.shader.Dispose()
	}
	s.shader = shader
	slog.Info("phong program reloaded", "program", shader.ID)
	return nil
}

// Dispose cleans up OpenGL resources
func (s *Sphere) Dispose() {
	if s.mesh != nil {
		s.mesh.Dispose()
		s.mesh = nil
	}
	if s.shader != nil {
		s.shader.Dispose()
		s.shader = nil
	}
}

func (s *Sphere) SetViewport(width, height int) {}
