package physics

import (
	"obbsim/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// newBoxObject creates a GameObject at pos carrying a static box collider.
func newBoxObject(name string, pos, halfExtents rl.Vector3) (*engine.GameObject, *OrientedBoundingBox) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	return g, NewBox(g, rl.Vector3{}, halfExtents)
}

// newDynamicBox creates a GameObject at pos with a box collider and a body.
func newDynamicBox(name string, pos, halfExtents rl.Vector3) *RigidBody {
	_, box := newBoxObject(name, pos, halfExtents)
	return NewRigidBody(box)
}

func unitHalf() rl.Vector3 {
	return rl.Vector3{X: 1, Y: 1, Z: 1}
}

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func vecNear(a, b rl.Vector3, tol float32) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

func quatLength(q rl.Quaternion) float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}
