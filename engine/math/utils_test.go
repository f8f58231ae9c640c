package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, float32(2.5), Clamp(float32(2.5), 0, 5))
}

func TestWrap(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{370, 10},
		{-30, 330},
		{-360, 0},
		{725, 5},
		{-1e-6, 0},
		{-1e-9, 0},
	}
	for _, c := range cases {
		got := Wrap(c.in, float32(360))
		assert.InDelta(t, c.want, got, 1e-4, "Wrap(%v, 360)", c.in)
		assert.Less(t, got, float32(360), "Wrap(%v, 360)", c.in)
		assert.GreaterOrEqual(t, got, float32(0), "Wrap(%v, 360)", c.in)
	}
	assert.Equal(t, 0.0, Wrap(-1e-20, 360.0))
}

func TestRangeConvert(t *testing.T) {
	assert.InDelta(t, 0.0, RangeConvertFloat32(640, 0, 1280, -1, 1), 1e-6)
	assert.InDelta(t, -1.0, RangeConvertFloat32(0, 0, 1280, -1, 1), 1e-6)
	assert.InDelta(t, 1.0, RangeConvertFloat32(720, 0, 720, -1, 1), 1e-6)
}

func TestDegRad(t *testing.T) {
	assert.InDelta(t, mgl32.DegToRad(90), DegToRad(90), 1e-6)
	assert.InDelta(t, 180.0, RadToDeg(DegToRad(180)), 1e-4)
	assert.True(t, Vec3IsZero(mgl32.Vec3{}))
	assert.False(t, Vec2IsZero(mgl32.Vec2{0, 1}))
}

func TestTransformParentChain(t *testing.T) {
	parent := TransformFromPosition(mgl32.Vec3{10, 0, 0})
	child := TransformFromPosition(mgl32.Vec3{0, 5, 0})
	child.Parent = parent

	origin := child.GetWorld().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 10, origin.X(), 1e-5)
	assert.InDelta(t, 5, origin.Y(), 1e-5)

	// rotating the parent a quarter turn about Y swings the child with it
	parent.Rotate(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	p := child.GetWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 10, p.X(), 1e-5)
	assert.InDelta(t, 5, p.Y(), 1e-5)
	assert.InDelta(t, -1, p.Z(), 1e-5)

	var nilTransform *Transform
	assert.Equal(t, mgl32.Ident4(), nilTransform.GetWorld())
}
