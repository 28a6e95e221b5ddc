package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed viewer with an off-axis frustum projection
type Camera struct {
	Eye mgl32.Vec3

	Left, Right float32
	Bottom, Top float32
	NearPlane   float32
	FarPlane    float32

	Width, Height int
}

// NewCamera returns the default camera: eye at the origin looking down -Z
// through a symmetric 0.2×0.2 window on the near plane.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Left:      -0.1,
		Right:     0.1,
		Bottom:    -0.1,
		Top:       0.1,
		NearPlane: 0.1,
		FarPlane:  1000.0,
		Width:     width,
		Height:    height,
	}
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Frustum(c.Left, c.Right, c.Bottom, c.Top, c.NearPlane, c.FarPlane)
}

// GetViewMatrix moves the world opposite the eye; an eye at the origin gives identity
func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	if c.Eye == (mgl32.Vec3{}) {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(-c.Eye[0], -c.Eye[1], -c.Eye[2])
}

func (c *Camera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
}
