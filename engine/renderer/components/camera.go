package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/math"
)

/**
 * @brief A first-person camera described by a position and pitch/yaw
 * angles in degrees. Ideally, these are created and managed by the
 * camera system.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position mgl32.Vec3
	/**
	 * @brief Rotation about the X axis in degrees. Always within
	 * [0, 90] or [270, 360) so the camera never flips over.
	 */
	Pitch float32
	/** @brief Rotation about the Y axis in degrees, within [0, 360). */
	Yaw float32

	FOV  float32
	Near float32
	Far  float32

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix mgl32.Mat4

	initialPosition mgl32.Vec3
	initialPitch    float32
	initialYaw      float32
}

type CameraLookup struct {
	ID             uint16
	ReferenceCount uint16
	Camera         *Camera
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

const (
	DefaultFOV  float32 = 45
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100
)

func NewCamera(position mgl32.Vec3, pitch, yaw float32) *Camera {
	camera := &Camera{
		initialPosition: position,
		initialPitch:    pitch,
		initialYaw:      yaw,
		FOV:             DefaultFOV,
		Near:            DefaultNear,
		Far:             DefaultFar,
	}
	camera.Reset()
	return camera
}

// Reset returns the camera to the pose it was created with.
func (c *Camera) Reset() {
	c.Position = c.initialPosition
	c.Pitch = c.initialPitch
	c.Yaw = c.initialYaw
	c.IsDirty = true
}

func (c *Camera) GetPosition() mgl32.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.Position = position
	c.IsDirty = true
}

// SetRotation sets pitch and yaw directly, in degrees.
func (c *Camera) SetRotation(pitch, yaw float32) {
	c.Pitch = pitch
	c.Yaw = yaw
	c.IsDirty = true
}

// Orientation is yaw about Y applied after pitch about X.
func (c *Camera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(c.Yaw), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(c.Pitch), mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// GetView returns inverse(translate(position) * rotation).
func (c *Camera) GetView() mgl32.Mat4 {
	if c.IsDirty {
		translation := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
		c.ViewMatrix = translation.Mul4(c.Orientation().Mat4()).Inv()
		c.IsDirty = false
	}
	return c.ViewMatrix
}

// Projection returns a perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *Camera) Backward() mgl32.Vec3 {
	return c.Forward().Mul(-1)
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{1, 0, 0})
}

func (c *Camera) Left() mgl32.Vec3 {
	return c.Right().Mul(-1)
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 1, 0})
}

// Rotate adds deltaDegrees (pitch, yaw) to the current angles. Pitch is kept
// in [0, 90] or [270, 360): anything past straight up or straight down snaps
// back to the nearest limit.
func (c *Camera) Rotate(deltaDegrees mgl32.Vec2) {
	if math.Vec2IsZero(deltaDegrees) {
		return
	}

	targetPitch := math.Wrap(c.Pitch+deltaDegrees.X(), 360)
	core.LogDebug("target pitch = %f", targetPitch)
	if targetPitch > 90 && targetPitch <= 180 {
		targetPitch = 90
	} else if targetPitch > 180 && targetPitch < 270 {
		targetPitch = 270
	}
	c.Pitch = targetPitch

	c.Yaw = math.Wrap(c.Yaw+deltaDegrees.Y(), 360)
	core.LogDebug("pitch = %f, yaw = %f", c.Pitch, c.Yaw)

	c.IsDirty = true
}

// Move translates the camera by deltaPosition expressed in camera space.
func (c *Camera) Move(deltaPosition mgl32.Vec3) {
	if math.Vec3IsZero(deltaPosition) {
		return
	}
	c.Position = c.Position.Add(c.Orientation().Rotate(deltaPosition))
	c.IsDirty = true
}

func (c *Camera) MoveForward(amount float32) {
	c.Move(mgl32.Vec3{0, 0, -amount})
}

func (c *Camera) MoveBackward(amount float32) {
	c.Move(mgl32.Vec3{0, 0, amount})
}

func (c *Camera) MoveLeft(amount float32) {
	c.Move(mgl32.Vec3{-amount, 0, 0})
}

func (c *Camera) MoveRight(amount float32) {
	c.Move(mgl32.Vec3{amount, 0, 0})
}

func (c *Camera) MoveUp(amount float32) {
	c.Move(mgl32.Vec3{0, amount, 0})
}

func (c *Camera) MoveDown(amount float32) {
	c.Move(mgl32.Vec3{0, -amount, 0})
}
