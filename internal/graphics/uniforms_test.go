package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type recordedUniform struct {
	name  string
	value any
}

type uniformRecorder struct {
	calls []recordedUniform
}

func (r *uniformRecorder) SetFloat(name string, v float32) {
	r.calls = append(r.calls, recordedUniform{name, v})
}

func (r *uniformRecorder) SetVector3(name string, v mgl32.Vec3) {
	r.calls = append(r.calls, recordedUniform{name, v})
}

func (r *uniformRecorder) SetMatrix4(name string, m mgl32.Mat4) {
	r.calls = append(r.calls, recordedUniform{name, m})
}

func TestPhongUniformsApply(t *testing.T) {
	u := PhongUniforms{
		Model:      ModelMatrix(mgl32.Vec3{0, 0, -7}, 2),
		View:       mgl32.Ident4(),
		Projection: NewCamera(512, 512).GetProjectionMatrix(),
		Material: Material{
			Ambient:          mgl32.Vec3{0, 1, 0},
			Diffuse:          mgl32.Vec3{0, 0.5, 0},
			Specular:         mgl32.Vec3{0.5, 0.5, 0.5},
			Shininess:        32,
			AmbientIntensity: 0.2,
		},
		LightPos: mgl32.Vec3{-4, 4, -3},
	}

	rec := &uniformRecorder{}
	u.Apply(rec)

	want := []recordedUniform{
		{"model", u.Model},
		{"view", u.View},
		{"projection", u.Projection},
		{"ka", mgl32.Vec3{0, 1, 0}},
		{"kd", mgl32.Vec3{0, 0.5, 0}},
		{"ks", mgl32.Vec3{0.5, 0.5, 0.5}},
		{"shininess", float32(32)},
		{"ambientIntensity", float32(0.2)},
		{"lightPos", mgl32.Vec3{-4, 4, -3}},
		{"viewPos", mgl32.Vec3{}},
	}
	assert.Equal(t, want, rec.calls)
}

func TestModelMatrixTranslatesThenScales(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{0, 0, -7}, 2)

	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, origin.ApproxEqual(mgl32.Vec4{0, 0, -7, 1}), "origin -> %v", origin)

	unitX := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, unitX.ApproxEqual(mgl32.Vec4{2, 0, -7, 1}), "unit x -> %v", unitX)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(512, 512)
	assert.Equal(t, mgl32.Ident4(), c.GetViewMatrix())

	proj := c.GetProjectionMatrix()
	assert.Equal(t, mgl32.Frustum(-0.1, 0.1, -0.1, 0.1, 0.1, 1000), proj)

	// the sphere center lands in the middle of the screen
	clip := proj.Mul4x1(mgl32.Vec4{0, 0, -7, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-6)
	assert.InDelta(t, 0, ndc.Y(), 1e-6)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)

	c.Eye = mgl32.Vec3{1, 2, 3}
	moved := c.GetViewMatrix().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	assert.True(t, moved.ApproxEqual(mgl32.Vec4{0, 0, 0, 1}))
}
