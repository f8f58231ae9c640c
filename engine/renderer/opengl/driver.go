package opengl

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Driver implements API on the current OpenGL context.
type Driver struct{}

// NewDriver loads the GL function pointers. A context must be current on the
// calling thread.
func NewDriver() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &Driver{}, nil
}

func (Driver) GetError() uint32 { return gl.GetError() }

func (Driver) GetString(name uint32) string {
	return gl.GoStr(gl.GetString(name))
}

func (Driver) GetIntegerv(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (Driver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (Driver) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Driver) BufferData(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (Driver) BufferSubData(target uint32, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target, offset, len(data), gl.Ptr(data))
}

func (Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Driver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (Driver) BindVertexArray(array uint32)     { gl.BindVertexArray(array) }
func (Driver) DeleteVertexArray(array uint32)   { gl.DeleteVertexArrays(1, &array) }
func (Driver) EnableVertexAttribArray(i uint32) { gl.EnableVertexAttribArray(i) }

func (Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (Driver) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (Driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Driver) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (d Driver) GetShaderInfoLog(shader uint32) string {
	logLength := d.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Driver) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }
func (Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (Driver) ValidateProgram(program uint32)      { gl.ValidateProgram(program) }

func (Driver) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (d Driver) GetProgramInfoLog(program uint32) string {
	logLength := d.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Driver) UseProgram(program uint32)    { gl.UseProgram(program) }
func (Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Driver) GetUniformf(program uint32, location int32) float32 {
	var v float32
	gl.GetUniformfv(program, location, &v)
	return v
}

func (Driver) Uniform1i(location, v0 int32)                 { gl.Uniform1i(location, v0) }
func (Driver) Uniform1f(location int32, v0 float32)         { gl.Uniform1f(location, v0) }
func (Driver) Uniform3f(location int32, v0, v1, v2 float32) { gl.Uniform3f(location, v0, v1, v2) }

func (Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (Driver) UniformMatrix4fv(location int32, transpose bool, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

func (Driver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (Driver) ActiveTexture(unit uint32)          { gl.ActiveTexture(unit) }
func (Driver) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	if len(pixels) == 0 {
		gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, nil)
		return
	}
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gl.Ptr(pixels))
}

func (Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}
func (Driver) GenerateMipmap(target uint32)          { gl.GenerateMipmap(target) }
func (Driver) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }
func (Driver) DeleteTexture(texture uint32)          { gl.DeleteTextures(1, &texture) }

func (Driver) ClearColor(r, g, b, a float32)     { gl.ClearColor(r, g, b, a) }
func (Driver) Clear(mask uint32)                 { gl.Clear(mask) }
func (Driver) PolygonMode(face, mode uint32)     { gl.PolygonMode(face, mode) }
func (Driver) Enable(capability uint32)          { gl.Enable(capability) }
func (Driver) Disable(capability uint32)         { gl.Disable(capability) }
func (Driver) IsEnabled(capability uint32) bool  { return gl.IsEnabled(capability) }
func (Driver) Viewport(x, y, w, h int32)         { gl.Viewport(x, y, w, h) }
func (Driver) Scissor(x, y, w, h int32)          { gl.Scissor(x, y, w, h) }
func (Driver) BlendEquation(mode uint32)         { gl.BlendEquation(mode) }
func (Driver) BlendFunc(sfactor, dfactor uint32) { gl.BlendFunc(sfactor, dfactor) }

func (Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, xtype, offset)
}

func (Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }
