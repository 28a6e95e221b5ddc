package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage identifies a programmable pipeline stage
type Stage uint32

const (
	StageVertex   Stage = gl.VERTEX_SHADER
	StageFragment Stage = gl.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// Backend is the part of the GPU API the program builder needs
type Backend interface {
	// CompileStage always returns the created object, even when ok is false
	CompileStage(stage Stage, source string) (id uint32, infoLog string, ok bool)
	LinkProgram(stages ...uint32) (id uint32, infoLog string, ok bool)
	DeleteStage(id uint32)
	DeleteProgram(id uint32)
}

// GLBackend compiles and links through the current OpenGL context
type GLBackend struct{}

func (GLBackend) CompileStage(stage Stage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(uint32(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return shader, string(log), false
	}
	return shader, "", true
}

func (GLBackend) LinkProgram(stages ...uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return program, string(log), false
	}

	// detached stages can be deleted by the caller right away
	for _, s := range stages {
		gl.DetachShader(program, s)
	}
	return program, "", true
}

func (GLBackend) DeleteStage(id uint32) {
	if id != 0 {
		gl.DeleteShader(id)
	}
}

func (GLBackend) DeleteProgram(id uint32) {
	if id != 0 {
		gl.DeleteProgram(id)
	}
}
