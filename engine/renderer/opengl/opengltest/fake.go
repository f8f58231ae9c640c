// Package opengltest provides an in-memory opengl.API that records calls, for
// testing code that drives GL without a context.
package opengltest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Call is one recorded API invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// API is a fake opengl.API. Object ids are handed out sequentially from 1.
type API struct {
	mu     sync.Mutex
	calls  []Call
	nextID uint32

	// Buffers holds the last data uploaded per buffer id.
	Buffers map[uint32][]byte
	// Textures holds the last level 0 pixels per texture id.
	Textures map[uint32][]byte
	// Uniforms maps names to locations. Names not present resolve to -1
	// unless AllUniforms is set.
	Uniforms    map[string]int32
	AllUniforms bool
	// UniformValues records float uploads by location.
	UniformValues map[int32]float32

	// Compile and link failures keyed by the shader source or program.
	FailSource map[string]string
	LinkLog    string

	// Errors queued for GetError, returned first to last.
	Errors []uint32
	// Strings answered by GetString.
	Strings map[uint32]string

	Enabled map[uint32]bool

	boundArrayBuffer   uint32
	boundElementBuffer uint32
	boundTexture       uint32
	shaderSources      map[uint32]string
	shaderStatus       map[uint32]bool
	deleted            map[uint32]bool
	currentProgram     uint32
}

func New() *API {
	return &API{
		Buffers:       make(map[uint32][]byte),
		Textures:      make(map[uint32][]byte),
		Uniforms:      make(map[string]int32),
		UniformValues: make(map[int32]float32),
		FailSource:    make(map[string]string),
		Strings:       make(map[uint32]string),
		Enabled:       make(map[uint32]bool),
		shaderSources: make(map[uint32]string),
		shaderStatus:  make(map[uint32]bool),
		deleted:       make(map[uint32]bool),
	}
}

func (f *API) record(name string, args ...any) {
	f.calls = append(f.calls, Call{Name: name, Args: args})
}

func (f *API) genID() uint32 {
	f.nextID++
	return f.nextID
}

// Calls returns a copy of the recorded calls.
func (f *API) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsNamed returns the recorded calls with the given name.
func (f *API) CallsNamed(name string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *API) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Deleted reports whether id was passed to a Delete call.
func (f *API) Deleted(id uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleted[id]
}

func (f *API) CurrentProgram() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentProgram
}

func (f *API) GetError() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetError")
	if len(f.Errors) == 0 {
		return gl.NO_ERROR
	}
	code := f.Errors[0]
	f.Errors = f.Errors[1:]
	return code
}

func (f *API) GetString(name uint32) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetString", name)
	return f.Strings[name]
}

func (f *API) GetIntegerv(pname uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetIntegerv", pname)
	return 0
}

func (f *API) GenBuffer() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID()
	f.record("GenBuffer", id)
	return id
}

func (f *API) BindBuffer(target, buffer uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BindBuffer", target, buffer)
	switch target {
	case gl.ARRAY_BUFFER:
		f.boundArrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		f.boundElementBuffer = buffer
	}
}

func (f *API) bound(target uint32) uint32 {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		return f.boundElementBuffer
	}
	return f.boundArrayBuffer
}

func (f *API) BufferData(target uint32, data []byte, usage uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BufferData", target, len(data), usage)
	f.Buffers[f.bound(target)] = append([]byte(nil), data...)
}

func (f *API) BufferSubData(target uint32, offset int, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BufferSubData", target, offset, len(data))
	buf := f.Buffers[f.bound(target)]
	copy(buf[offset:], data)
}

func (f *API) DeleteBuffer(buffer uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteBuffer", buffer)
	f.deleted[buffer] = true
}

func (f *API) GenVertexArray() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID()
	f.record("GenVertexArray", id)
	return id
}

func (f *API) BindVertexArray(array uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BindVertexArray", array)
}

func (f *API) DeleteVertexArray(array uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteVertexArray", array)
	f.deleted[array] = true
}

func (f *API) EnableVertexAttribArray(index uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("EnableVertexAttribArray", index)
}

func (f *API) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (f *API) CreateShader(xtype uint32) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID()
	f.record("CreateShader", xtype, id)
	return id
}

func (f *API) ShaderSource(shader uint32, source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ShaderSource", shader)
	f.shaderSources[shader] = source
}

func (f *API) CompileShader(shader uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CompileShader", shader)
	_, fail := f.FailSource[f.shaderSources[shader]]
	f.shaderStatus[shader] = !fail
}

func (f *API) GetShaderiv(shader, pname uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetShaderiv", shader, pname)
	if pname == gl.COMPILE_STATUS && !f.shaderStatus[shader] {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *API) GetShaderInfoLog(shader uint32) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetShaderInfoLog", shader)
	return f.FailSource[f.shaderSources[shader]]
}

func (f *API) DeleteShader(shader uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteShader", shader)
	f.deleted[shader] = true
}

func (f *API) CreateProgram() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID()
	f.record("CreateProgram", id)
	return id
}

func (f *API) AttachShader(program, shader uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AttachShader", program, shader)
}

func (f *API) LinkProgram(program uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("LinkProgram", program)
}

func (f *API) ValidateProgram(program uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ValidateProgram", program)
}

func (f *API) GetProgramiv(program, pname uint32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetProgramiv", program, pname)
	if pname == gl.LINK_STATUS && f.LinkLog != "" {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *API) GetProgramInfoLog(program uint32) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetProgramInfoLog", program)
	return f.LinkLog
}

func (f *API) UseProgram(program uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UseProgram", program)
	f.currentProgram = program
}

func (f *API) DeleteProgram(program uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteProgram", program)
	f.deleted[program] = true
}

func (f *API) GetUniformLocation(program uint32, name string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetUniformLocation", program, name)
	if loc, ok := f.Uniforms[name]; ok {
		return loc
	}
	if f.AllUniforms {
		loc := int32(len(f.Uniforms))
		f.Uniforms[name] = loc
		return loc
	}
	return -1
}

func (f *API) GetUniformf(program uint32, location int32) float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetUniformf", program, location)
	return f.UniformValues[location]
}

func (f *API) Uniform1i(location, v0 int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Uniform1i", location, v0)
}

func (f *API) Uniform1f(location int32, v0 float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Uniform1f", location, v0)
	f.UniformValues[location] = v0
}

func (f *API) Uniform3f(location int32, v0, v1, v2 float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Uniform3f", location, v0, v1, v2)
}

func (f *API) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Uniform4f", location, v0, v1, v2, v3)
}

func (f *API) UniformMatrix4fv(location int32, transpose bool, m [16]float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UniformMatrix4fv", location, transpose, m)
}

func (f *API) GenTexture() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID()
	f.record("GenTexture", id)
	return id
}

func (f *API) ActiveTexture(unit uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ActiveTexture", unit)
}

func (f *API) BindTexture(target, texture uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BindTexture", target, texture)
	f.boundTexture = texture
}

func (f *API) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("TexImage2D", target, level, internalFormat, width, height, format, xtype, len(pixels))
	if level == 0 {
		f.Textures[f.boundTexture] = append([]byte(nil), pixels...)
	}
}

func (f *API) TexParameteri(target, pname uint32, param int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("TexParameteri", target, pname, param)
}

func (f *API) GenerateMipmap(target uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GenerateMipmap", target)
}

func (f *API) PixelStorei(pname uint32, param int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PixelStorei", pname, param)
}

func (f *API) DeleteTexture(texture uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTexture", texture)
	f.deleted[texture] = true
}

func (f *API) ClearColor(r, g, b, a float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ClearColor", r, g, b, a)
}

func (f *API) Clear(mask uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Clear", mask)
}

func (f *API) PolygonMode(face, mode uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PolygonMode", face, mode)
}

func (f *API) Enable(capability uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Enable", capability)
	f.Enabled[capability] = true
}

func (f *API) Disable(capability uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Disable", capability)
	f.Enabled[capability] = false
}

func (f *API) IsEnabled(capability uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("IsEnabled", capability)
	return f.Enabled[capability]
}

func (f *API) Viewport(x, y, width, height int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Viewport", x, y, width, height)
}

func (f *API) Scissor(x, y, width, height int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Scissor", x, y, width, height)
}

func (f *API) BlendEquation(mode uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BlendEquation", mode)
}

func (f *API) BlendFunc(sfactor, dfactor uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BlendFunc", sfactor, dfactor)
}

func (f *API) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DrawElements", mode, count, xtype, offset)
}

func (f *API) DrawArrays(mode uint32, first, count int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DrawArrays", mode, first, count)
}
