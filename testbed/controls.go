package testbed

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/components"
)

// Degrees per second turned by the arrow keys.
const keyTurnRate = 90

type cameraControls struct {
	MoveSpeed       float32
	LookSensitivity float32
}

// apply moves cam from the current input state. It runs once per rendered
// frame since the mouse delta is only meaningful per frame.
func (c cameraControls) apply(cam *components.Camera, deltaTime float64, ignoreKeyboard, ignoreMouse bool) {
	dt := float32(deltaTime)

	if !ignoreKeyboard {
		step := c.MoveSpeed * dt
		if core.InputIsKeyDown(core.KEY_W) {
			cam.MoveForward(step)
		}
		if core.InputIsKeyDown(core.KEY_S) {
			cam.MoveBackward(step)
		}
		if core.InputIsKeyDown(core.KEY_A) {
			cam.MoveLeft(step)
		}
		if core.InputIsKeyDown(core.KEY_D) {
			cam.MoveRight(step)
		}
		if core.InputIsKeyDown(core.KEY_SPACE) {
			cam.MoveUp(step)
		}
		if core.InputIsKeyDown(core.KEY_LCONTROL) {
			cam.MoveDown(step)
		}

		var turn mgl32.Vec2
		if core.InputIsKeyDown(core.KEY_UP) {
			turn[0] += keyTurnRate * dt
		}
		if core.InputIsKeyDown(core.KEY_DOWN) {
			turn[0] -= keyTurnRate * dt
		}
		if core.InputIsKeyDown(core.KEY_LEFT) {
			turn[1] += keyTurnRate * dt
		}
		if core.InputIsKeyDown(core.KEY_RIGHT) {
			turn[1] -= keyTurnRate * dt
		}
		cam.Rotate(turn)
	}

	if !ignoreMouse && core.InputIsButtonDown(core.BUTTON_RIGHT) {
		dx, dy := core.InputGetMouseDelta()
		// Screen Y grows downwards; positive yaw turns left.
		cam.Rotate(mgl32.Vec2{
			-float32(dy) * c.LookSensitivity,
			-float32(dx) * c.LookSensitivity,
		})
	}
}
