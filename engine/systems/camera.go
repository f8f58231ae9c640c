package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/components"
)

var ErrCameraNotFound = errors.New("camera not found")

type CameraSystem struct {
	Config *CameraSystemConfig
	Lookup map[string]*components.CameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera

	mu     sync.Mutex
	nextID uint16
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
	/** @brief Starting pose for every camera created by the system. */
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
	FOV      float32
	Near     float32
	Far      float32
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	cs := &CameraSystem{
		Config: config,
		Lookup: make(map[string]*components.CameraLookup, config.MaxCameraCount),
	}
	// Setup default camera.
	cs.DefaultCamera = cs.newCamera()
	return cs, nil
}

func (cs *CameraSystem) newCamera() *components.Camera {
	c := components.NewCamera(cs.Config.Position, cs.Config.Pitch, cs.Config.Yaw)
	if cs.Config.FOV > 0 {
		c.FOV = cs.Config.FOV
	}
	if cs.Config.Near > 0 {
		c.Near = cs.Config.Near
	}
	if cs.Config.Far > 0 {
		c.Far = cs.Config.Far
	}
	return c
}

func (cs *CameraSystem) Shutdown() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.Lookup = make(map[string]*components.CameraLookup)
	return nil
}

/**
 * @brief Acquires a pointer to a camera by name.
 * If one is not found, a new one is created and retuned.
 * Internal reference counter is incremented.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	lookup, ok := cs.Lookup[name]
	if !ok {
		if len(cs.Lookup) >= int(cs.Config.MaxCameraCount) {
			err := fmt.Errorf("func CameraSystemAcquire failed to acquire new slot for '%s'. Adjust camera system config to allow more", name)
			core.LogError(err.Error())
			return nil, err
		}
		// Create/register the new camera.
		core.LogDebug("Creating new camera named '%s'...", name)
		lookup = &components.CameraLookup{
			ID:     cs.nextID,
			Camera: cs.newCamera(),
		}
		cs.nextID++
		cs.Lookup[name] = lookup
	}
	lookup.ReferenceCount++
	return lookup.Camera, nil
}

/**
 * @brief Releases a camera with the given name. Internal reference
 * counter is decremented. If this reaches 0, the camera is reset,
 * and the name is usable by a new camera.
 */
func (cs *CameraSystem) Release(name string) error {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return nil
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	lookup, ok := cs.Lookup[name]
	if !ok {
		core.LogWarn("CameraSystemRelease failed lookup for '%s'. Nothing was done.", name)
		return fmt.Errorf("%w: %s", ErrCameraNotFound, name)
	}
	// Decrement the reference count, and reset the camera if the counter reaches 0.
	lookup.ReferenceCount--
	if lookup.ReferenceCount < 1 {
		lookup.Camera.Reset()
		delete(cs.Lookup, name)
	}
	return nil
}

func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}
