package graphics

import "github.com/go-gl/mathgl/mgl32"

// UniformSetter is implemented by *Shader
type UniformSetter interface {
	SetFloat(name string, value float32)
	SetVector3(name string, v mgl32.Vec3)
	SetMatrix4(name string, m mgl32.Mat4)
}

// Material holds the Phong reflectance coefficients
type Material struct {
	Ambient          mgl32.Vec3
	Diffuse          mgl32.Vec3
	Specular         mgl32.Vec3
	Shininess        float32
	AmbientIntensity float32
}

// PhongUniforms is everything the Phong program reads for one draw
type PhongUniforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4

	Material Material
	LightPos mgl32.Vec3
	ViewPos  mgl32.Vec3
}

// Apply uploads the transforms first, then material and lighting.
// The names match assets/shaders/phong.
func (u *PhongUniforms) Apply(s UniformSetter) {
	s.SetMatrix4("model", u.Model)
	s.SetMatrix4("view", u.View)
	s.SetMatrix4("projection", u.Projection)

	s.SetVector3("ka", u.Material.Ambient)
	s.SetVector3("kd", u.Material.Diffuse)
	s.SetVector3("ks", u.Material.Specular)
	s.SetFloat("shininess", u.Material.Shininess)
	s.SetFloat("ambientIntensity", u.Material.AmbientIntensity)
	s.SetVector3("lightPos", u.LightPos)
	s.SetVector3("viewPos", u.ViewPos)
}

// ModelMatrix translates, then scales uniformly about the object's origin
func ModelMatrix(translate mgl32.Vec3, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(translate[0], translate[1], translate[2]).Mul4(mgl32.Scale3D(scale, scale, scale))
}
