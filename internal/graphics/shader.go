package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents a linked OpenGL shader program
type Shader struct {
	ID uint32

	backend   Backend
	locations map[string]int32
}

func newShader(id uint32, backend Backend) *Shader {
	return &Shader{ID: id, backend: backend, locations: make(map[string]int32)}
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Dispose deletes the program object
func (s *Shader) Dispose() {
	if s.ID == 0 {
		return
	}
	s.backend.DeleteProgram(s.ID)
	s.ID = 0
}

func (s *Shader) uniformLocation(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.uniformLocation(name), value)
}

// SetVector3 sets a vector3 uniform
func (s *Shader) SetVector3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.uniformLocation(name), v[0], v[1], v[2])
}

// SetMatrix4 sets a 4x4 matrix uniform (column-major, as mgl32 stores it)
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.uniformLocation(name), 1, false, &m[0])
}
