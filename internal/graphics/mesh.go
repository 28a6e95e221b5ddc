package graphics

import (
	"phong-viewer/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh owns the vertex array and buffers of one indexed triangle list
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	indexCount int32
}

// UploadSphere copies the sphere into static GPU buffers.
// Attribute 0 is the position and attribute 1 the normal.
func UploadSphere(s *mesh.Sphere) *Mesh {
	m := &Mesh{indexCount: int32(len(s.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(s.Vertices)*4, gl.Ptr(s.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Indices)*4, gl.Ptr(s.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.VertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.VertexStride, mesh.NormalOffset)
	gl.EnableVertexAttribArray(1)

	// the element buffer binding stays recorded in the VAO
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m
}

// Draw binds the vertex state and issues one indexed draw over all indices
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

// Dispose cleans up OpenGL resources
func (m *Mesh) Dispose() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
