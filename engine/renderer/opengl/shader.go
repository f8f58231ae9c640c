package opengl

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a linked vertex + fragment program.
type Shader struct {
	api       API
	program   uint32
	locations map[string]int32
	deleted   bool
}

// NewShaderFromFiles reads both stages from disk and builds the program.
func NewShaderFromFiles(api API, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex shader %s: %w", vertexPath, err)
	}
	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment shader %s: %w", fragmentPath, err)
	}
	return NewShader(api, string(vertexSource), string(fragmentSource))
}

// NewShader compiles the vertex stage, then the fragment stage, then links.
// Stage objects are always released before returning.
func NewShader(api API, vertexSource, fragmentSource string) (*Shader, error) {
	vertex, err := compileStage(api, gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, fmt.Errorf("vertex shader compilation failed: %s", err)
	}
	defer api.DeleteShader(vertex)

	fragment, err := compileStage(api, gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("fragment shader compilation failed: %s", err)
	}
	defer api.DeleteShader(fragment)

	program := api.CreateProgram()
	api.AttachShader(program, vertex)
	api.AttachShader(program, fragment)
	api.LinkProgram(program)
	if api.GetProgramiv(program, gl.LINK_STATUS) == gl.FALSE {
		log := api.GetProgramInfoLog(program)
		api.DeleteProgram(program)
		return nil, fmt.Errorf("shader program linking failed: %s", log)
	}

	return &Shader{
		api:       api,
		program:   program,
		locations: make(map[string]int32),
	}, nil
}

func compileStage(api API, stage uint32, source string) (uint32, error) {
	shader := api.CreateShader(stage)
	api.ShaderSource(shader, source)
	api.CompileShader(shader)
	if api.GetShaderiv(shader, gl.COMPILE_STATUS) == gl.FALSE {
		log := api.GetShaderInfoLog(shader)
		api.DeleteShader(shader)
		return 0, errors.New(log)
	}
	return shader, nil
}

func (s *Shader) ID() uint32 { return s.program }

func (s *Shader) Use() {
	s.api.UseProgram(s.program)
}

// location looks a uniform up once per name. Missing uniforms resolve to -1,
// which GL ignores on upload.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.api.GetUniformLocation(s.program, name)
	s.locations[name] = loc
	return loc
}

func (s *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	s.api.Uniform1i(s.location(name), v)
}

func (s *Shader) SetInt(name string, value int32) {
	s.api.Uniform1i(s.location(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	s.api.Uniform1f(s.location(name), value)
}

func (s *Shader) SetUniform4f(name string, v0, v1, v2, v3 float32) {
	s.api.Uniform4f(s.location(name), v0, v1, v2, v3)
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	s.api.Uniform3f(s.location(name), v.X(), v.Y(), v.Z())
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	s.api.UniformMatrix4fv(s.location(name), false, m)
}

// GetFloat reads back a float uniform.
func (s *Shader) GetFloat(name string) (float32, error) {
	loc := s.location(name)
	if loc == -1 {
		return 0, &UniformNotFoundError{Name: name}
	}
	return s.api.GetUniformf(s.program, loc), nil
}

func (s *Shader) Delete() {
	if s.deleted {
		return
	}
	s.api.DeleteProgram(s.program)
	s.deleted = true
}

type UniformNotFoundError struct {
	Name string
}

func (e *UniformNotFoundError) Error() string {
	return fmt.Sprintf("uniform %s not found", e.Name)
}

func (e *UniformNotFoundError) Is(target error) bool {
	return target == ErrUniformNotFound
}
