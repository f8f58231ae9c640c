package opengl

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/lizual/lizual/engine/core"
)

var (
	ErrUnsupportedAttribType = errors.New("unsupported vertex attribute type")
	ErrUniformNotFound       = errors.New("uniform not found")
	ErrDeleted               = errors.New("object already deleted")
)

// Not exported by the 3.3 core profile bindings.
const (
	glStackOverflow  uint32 = 0x0503
	glStackUnderflow uint32 = 0x0504
)

var errorNames = map[uint32]string{
	gl.NO_ERROR:                      "GL_NO_ERROR",
	gl.INVALID_ENUM:                  "GL_INVALID_ENUM",
	gl.INVALID_VALUE:                 "GL_INVALID_VALUE",
	gl.INVALID_OPERATION:             "GL_INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY",
	glStackUnderflow:                 "GL_STACK_UNDERFLOW",
	glStackOverflow:                  "GL_STACK_OVERFLOW",
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("GL_UNKNOWN_ERROR(0x%04X)", code)
}

// Error is a pending GL error observed after Op.
type Error struct {
	Code uint32
	Name string
	Op   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (0x%04X)", e.Op, e.Name, e.Code)
}

// ClearErrors drains the GL error queue.
func ClearErrors(api API) {
	// the queue is bounded by the number of error flags, but a lost context
	// can report forever
	for i := 0; i < 32; i++ {
		if api.GetError() == gl.NO_ERROR {
			return
		}
	}
}

// CheckError reports the first pending error, if any, and drains the rest.
func CheckError(api API, op string) error {
	code := api.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	ClearErrors(api)
	return &Error{Code: code, Name: ErrorName(code), Op: op}
}

var debug atomic.Bool

// SetDebug turns on error checking after every wrapped call.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

func Debug() bool {
	return debug.Load()
}

// Call runs fn bracketed by error checks when debug mode is on.
func Call(api API, op string, fn func()) error {
	if !debug.Load() {
		fn()
		return nil
	}
	ClearErrors(api)
	fn()
	if err := CheckError(api, op); err != nil {
		core.LogError("%s", err)
		return err
	}
	return nil
}
