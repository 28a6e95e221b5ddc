package graphics

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxInfoLogLength bounds the compiler output copied into diagnostics
const MaxInfoLogLength = 512

var (
	ErrShaderSource  = errors.New("could not read shader source")
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrProgramLink   = errors.New("shader program link failed")
	ErrUnknownPolicy = errors.New("unknown compile policy")
)

// CompilePolicy decides what happens after a stage fails to compile
type CompilePolicy int

const (
	// PolicyFailFast aborts the build on the first compile error
	PolicyFailFast CompilePolicy = iota
	// PolicyWarnAndContinue reports the error and links anyway; the link
	// status then decides whether the build succeeds
	PolicyWarnAndContinue
)

func (p CompilePolicy) String() string {
	switch p {
	case PolicyFailFast:
		return "fail-fast"
	case PolicyWarnAndContinue:
		return "warn-and-continue"
	}
	return fmt.Sprintf("CompilePolicy(%d)", int(p))
}

// ParseCompilePolicy maps "fail-fast" or "warn-and-continue" to a policy
func ParseCompilePolicy(s string) (CompilePolicy, error) {
	switch s {
	case "", "fail-fast":
		return PolicyFailFast, nil
	case "warn-and-continue":
		return PolicyWarnAndContinue, nil
	}
	return PolicyFailFast, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// CompileError reports a stage that did not compile
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader %s: %s", e.Stage, e.Path, e.Log)
}

func (e *CompileError) Unwrap() error { return ErrShaderCompile }

// LinkError reports a program that did not link
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "failed to link program: " + e.Log
}

func (e *LinkError) Unwrap() error { return ErrProgramLink }

// ProgramBuilder reads, compiles and links a vertex/fragment program
type ProgramBuilder struct {
	Backend     Backend
	Policy      CompilePolicy
	Diagnostics io.Writer
}

// ReadShaderSource reads the whole file as shader text
func ReadShaderSource(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrShaderSource, err)
	}
	return string(src), nil
}

// Build reads both stage files and links them into a program
func (b *ProgramBuilder) Build(vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := ReadShaderSource(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentSource, err := ReadShaderSource(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}

	return b.BuildSource(
		StageSource{Stage: StageVertex, Path: vertexPath, Source: vertexSource},
		StageSource{Stage: StageFragment, Path: fragmentPath, Source: fragmentSource},
	)
}

// StageSource is the text of one stage and where it came from
type StageSource struct {
	Stage  Stage
	Path   string
	Source string
}

// BuildSource compiles the given stages and links them into a program.
// Stage objects never outlive this call.
func (b *ProgramBuilder) BuildSource(stages ...StageSource) (*Shader, error) {
	ids := make([]uint32, 0, len(stages))
	release := func() {
		for _, id := range ids {
			b.Backend.DeleteStage(id)
		}
	}

	var firstCompileErr error
	for _, st := range stages {
		id, infoLog, ok := b.Backend.CompileStage(st.Stage, st.Source)
		ids = append(ids, id)
		if ok {
			continue
		}

		cerr := &CompileError{Stage: st.Stage, Path: st.Path, Log: TruncateInfoLog(infoLog)}
		b.report("%s shader compile error (%s): %s", st.Stage, st.Path, cerr.Log)
		slog.Warn("shader compile failed", "stage", st.Stage.String(), "path", st.Path, "policy", b.Policy.String())
		if b.Policy == PolicyFailFast {
			release()
			return nil, cerr
		}
		if firstCompileErr == nil {
			firstCompileErr = cerr
		}
	}

	program, infoLog, ok := b.Backend.LinkProgram(ids...)
	release()
	if !ok {
		lerr := &LinkError{Log: TruncateInfoLog(infoLog)}
		b.report("program link error: %s", lerr.Log)
		slog.Error("shader program link failed", "compileError", firstCompileErr != nil)
		if program != 0 {
			b.Backend.DeleteProgram(program)
		}
		return nil, lerr
	}
	if firstCompileErr != nil {
		// a driver may link around a broken stage; the result is still usable
		slog.Warn("program linked despite compile errors", "program", program)
	}

	return newShader(program, b.Backend), nil
}

func (b *ProgramBuilder) report(format string, args ...any) {
	w := b.Diagnostics
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// TruncateInfoLog trims trailing NULs and whitespace from a driver log and
// bounds it to MaxInfoLogLength bytes without splitting a UTF-8 sequence.
// An empty log becomes a placeholder so a failure is never reported silently.
func TruncateInfoLog(log string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if len(log) > MaxInfoLogLength {
		n := MaxInfoLogLength
		for n > 0 && !utf8.RuneStart(log[n]) {
			n--
		}
		log = log[:n]
	}
	if log == "" {
		return "(no info log)"
	}
	return log
}
