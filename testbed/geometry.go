package testbed

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine/math"
)

var triangleVertices = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.0, 0.5,
}

var quadVertices = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.5, 0.5,
	-0.5, 0.5,
}

var quadIndices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

// x, y, z, u, v, r, g, b
var texturedQuadVertices = []float32{
	0.5, 0.5, 0.0, 1.0, 1.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 0.0,
	-0.5, -0.5, 0.0, 0.0, 0.0, 0.0, 0.0, 1.0,
	-0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0, 0.0,
}

var texturedQuadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

const cubeFloatsPerVertex = 5

// x, y, z, u, v; six faces of two triangles each.
var cubeVertices = []float32{
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,

	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,

	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,

	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,

	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,

	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}

var cubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

// Degrees per second for the spinning cubes.
const cubeSpinRate = 50

var cubeAxis = mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()

// newCubeTransforms places the cubes under a shared root, each tilted a
// little more than the previous one.
func newCubeTransforms(root *math.Transform) []*math.Transform {
	out := make([]*math.Transform, len(cubePositions))
	for i, p := range cubePositions {
		t := math.TransformFromPositionRotationScale(p,
			mgl32.QuatRotate(math.DegToRad(20*float32(i)), cubeAxis),
			mgl32.Vec3{1, 1, 1})
		t.Parent = root
		out[i] = t
	}
	return out
}

// spinCubes turns every third cube around its axis.
func spinCubes(cubes []*math.Transform, deltaTime float64) {
	step := mgl32.QuatRotate(math.DegToRad(cubeSpinRate*float32(deltaTime)), cubeAxis)
	for i := 0; i < len(cubes); i += 3 {
		cubes[i].Rotate(step)
	}
}
