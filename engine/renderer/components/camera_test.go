package components

import (
	"io"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/lizual/lizual/engine/core"
)

const eps = 1e-4

func TestRotateClampsPitch(t *testing.T) {
	core.SetLogOutput(io.Discard)

	tests := []struct {
		name       string
		startPitch float32
		delta      float32
		want       float32
	}{
		{"inside upper range", 0, 45, 45},
		{"exactly up", 0, 90, 90},
		{"past up", 80, 20, 90},
		{"half turn", 0, 180, 90},
		{"past down", 0, -100, 270},
		{"just past half turn", 0, 181, 270},
		{"inside lower range", 0, -30, 330},
		{"exactly down", 0, -90, 270},
		{"full turn", 10, 360, 10},
		{"tiny turn down", 0, -1e-6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(mgl32.Vec3{}, tt.startPitch, 0)
			c.Rotate(mgl32.Vec2{tt.delta, 0})
			assert.InDelta(t, tt.want, c.Pitch, eps)
			assert.Less(t, c.Pitch, float32(360))
		})
	}
}

func TestRotateWrapsYaw(t *testing.T) {
	core.SetLogOutput(io.Discard)

	c := NewCamera(mgl32.Vec3{}, 0, 350)
	c.Rotate(mgl32.Vec2{0, 20})
	assert.InDelta(t, 10, c.Yaw, eps)

	c.Rotate(mgl32.Vec2{0, -30})
	assert.InDelta(t, 340, c.Yaw, eps)

	c = NewCamera(mgl32.Vec3{}, 0, 0)
	c.Rotate(mgl32.Vec2{0, -1e-6})
	assert.Less(t, c.Yaw, float32(360))
}

func TestZeroDeltaIsNoOp(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3}, 45, 90)
	view := c.GetView()

	c.Rotate(mgl32.Vec2{})
	c.Move(mgl32.Vec3{})

	assert.False(t, c.IsDirty)
	assert.Equal(t, view, c.GetView())
	assert.Equal(t, float32(45), c.Pitch)
}

func TestMoveFollowsOrientation(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 0, 0)
	c.MoveForward(1)
	assert.InDelta(t, -1, c.Position.Z(), eps)

	// a quarter turn of yaw points forward down -X
	c = NewCamera(mgl32.Vec3{}, 0, 90)
	c.MoveForward(2)
	assert.InDelta(t, -2, c.Position.X(), eps)
	assert.InDelta(t, 0, c.Position.Z(), eps)

	c = NewCamera(mgl32.Vec3{}, 90, 0)
	c.Move(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 1, c.Position.Y(), eps)
}

func TestViewMatrixInvertsCameraTransform(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3}, 0, 0)
	origin := c.GetView().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, origin.Z(), eps)

	// the camera position maps to the view-space origin for any rotation
	c = NewCamera(mgl32.Vec3{4, -2, 7}, 30, 120)
	p := c.GetView().Mul4x1(mgl32.Vec4{4, -2, 7, 1})
	assert.InDelta(t, 0, p.Vec3().Len(), eps)

	// and a point straight ahead lands on -Z
	ahead := c.Position.Add(c.Forward().Mul(5))
	q := c.GetView().Mul4x1(ahead.Vec4(1))
	assert.InDelta(t, 0, q.X(), eps)
	assert.InDelta(t, 0, q.Y(), eps)
	assert.InDelta(t, -5, q.Z(), eps)
}

func TestOrientationMatchesEulerComposition(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 30, 60)
	q := c.Orientation()

	p := mgl32.DegToRad(30) / 2
	y := mgl32.DegToRad(60) / 2
	cx, sx := float32(math.Cos(float64(p))), float32(math.Sin(float64(p)))
	cy, sy := float32(math.Cos(float64(y))), float32(math.Sin(float64(y)))

	assert.InDelta(t, cx*cy, q.W, eps)
	assert.InDelta(t, sx*cy, q.V.X(), eps)
	assert.InDelta(t, cx*sy, q.V.Y(), eps)
	assert.InDelta(t, -sx*sy, q.V.Z(), eps)
}

func TestReset(t *testing.T) {
	core.SetLogOutput(io.Discard)

	c := NewCamera(mgl32.Vec3{0, 0, 3}, 0, 0)
	c.Move(mgl32.Vec3{1, 1, 1})
	c.Rotate(mgl32.Vec2{10, 10})
	c.Reset()

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Position)
	assert.Zero(t, c.Pitch)
	assert.Zero(t, c.Yaw)
}

func TestDirectionsAreOrthonormal(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 20, 75)
	f, r, u := c.Forward(), c.Right(), c.Up()
	assert.InDelta(t, 1, f.Len(), eps)
	assert.InDelta(t, 0, f.Dot(r), eps)
	assert.InDelta(t, 0, f.Dot(u), eps)
	assert.InDelta(t, 0, r.Dot(u), eps)
}
