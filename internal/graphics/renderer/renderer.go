package renderer

import (
	"fmt"

	"phong-viewer/internal/graphics"
	"phong-viewer/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
	clearColor  mgl32.Vec4
	frame       uint64
}

// NewRenderer configures global GL state and initializes every renderable.
// If one fails, the ones already initialized are disposed.
func NewRenderer(camera *graphics.Camera, clearColor mgl32.Vec4, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)

	r := &Renderer{
		camera:     camera,
		clearColor: clearColor,
	}

	for i, rend := range rs {
		if err := rend.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("renderable %d: %w", i, err)
		}
		r.renderables = append(r.renderables, rend)
	}

	r.UpdateViewport(camera.Width, camera.Height)
	return r, nil
}

// Render clears the frame and draws every renderable in order
func (r *Renderer) Render(dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.frame++
	ctx := RenderContext{
		Camera: r.camera,
		Frame:  r.frame,
		DT:     dt,
		View:   r.camera.GetViewMatrix(),
		Proj:   r.camera.GetProjectionMatrix(),
	}

	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// UpdateViewport resizes the GL viewport and notifies renderables
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
