package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is the host-owned pose of a GameObject. Physics reads it to derive
// world geometry and writes translation/rotation updates back into it.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion // unit quaternion
	Scale    rl.Vector3
}

// NewTransform returns an identity pose at the given position.
func NewTransform(position rl.Vector3) Transform {
	return Transform{
		Position: position,
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Right returns the local +X axis in world space.
func (t Transform) Right() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, t.Rotation)
}

// Up returns the local +Y axis in world space.
func (t Transform) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, t.Rotation)
}

// Forward returns the local +Z axis in world space.
func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, t.Rotation)
}

// TransformPoint maps a local-space point through scale, rotation and translation.
func (t Transform) TransformPoint(local rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Multiply(local, t.Scale)
	return rl.Vector3Add(t.Position, rl.Vector3RotateByQuaternion(scaled, t.Rotation))
}

// SetEuler sets the rotation from Euler angles in degrees (X, then Y, then Z).
func (t *Transform) SetEuler(degrees rl.Vector3) {
	t.Rotation = rl.QuaternionFromEuler(degrees.X*rl.Deg2rad, degrees.Y*rl.Deg2rad, degrees.Z*rl.Deg2rad)
}

var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:        nextUID.Add(1),
		Name:       name,
		Active:     true,
		Transform:  NewTransform(rl.Vector3{}),
		components: make([]Component, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component of type T in attachment order.
func GetComponents[T any](g *GameObject) []T {
	var result []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}
