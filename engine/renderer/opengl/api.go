package opengl

// API is the subset of OpenGL used by the wrappers in this package. Driver
// forwards to go-gl; tests substitute a recording implementation.
type API interface {
	GetError() uint32
	GetString(name uint32) string
	GetIntegerv(pname uint32) int32

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	DeleteBuffer(buffer uint32)

	GenVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	GetUniformf(program uint32, location int32) float32
	Uniform1i(location, v0 int32)
	Uniform1f(location int32, v0 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, transpose bool, m [16]float32)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)
	PixelStorei(pname uint32, param int32)
	DeleteTexture(texture uint32)

	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	PolygonMode(face, mode uint32)
	Enable(capability uint32)
	Disable(capability uint32)
	IsEnabled(capability uint32) bool
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	BlendEquation(mode uint32)
	BlendFunc(sfactor, dfactor uint32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
	DrawArrays(mode uint32, first, count int32)
}
