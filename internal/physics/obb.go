package physics

import (
	"obbsim/internal/engine"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrientedBoundingBox is a box collider attached to a GameObject. Its center
// and half-extents are local to the object's Transform; world-space vertices
// and axes are derived from the current pose on every call and never cached.
//
// A box without a RigidBody is a static collider: it takes part in detection
// but resolution treats it as immovable.
type OrientedBoundingBox struct {
	engine.BaseComponent
	Center      rl.Vector3 // local-space center
	HalfExtents rl.Vector3 // local-space half size, non-negative
	RigidBody   *RigidBody

	detached *engine.Transform
}

func newOrientedBoundingBox(center, halfExtents rl.Vector3) *OrientedBoundingBox {
	return &OrientedBoundingBox{
		Center:      center,
		HalfExtents: halfExtents,
	}
}

// NewBox creates a box collider and attaches it to g.
func NewBox(g *engine.GameObject, center, halfExtents rl.Vector3) *OrientedBoundingBox {
	o := newOrientedBoundingBox(center, halfExtents)
	g.AddComponent(o)
	return o
}

// Pose returns the host transform the box is posed by. A box not attached to
// a GameObject is posed by a private identity transform at the origin.
func (o *OrientedBoundingBox) Pose() *engine.Transform {
	if g := o.GetGameObject(); g != nil {
		return &g.Transform
	}
	if o.detached == nil {
		t := engine.NewTransform(rl.Vector3{})
		o.detached = &t
	}
	return o.detached
}

// Body returns the owning rigid body. ok is false for a static collider.
func (o *OrientedBoundingBox) Body() (rb *RigidBody, ok bool) {
	return o.RigidBody, o.RigidBody != nil
}

// Vertices returns the 8 world-space corners. Corner i takes +extent on an
// axis when the matching bit of i (X=4, Y=2, Z=1) is clear.
func (o *OrientedBoundingBox) Vertices() [8]rl.Vector3 {
	pose := o.Pose()
	e := o.HalfExtents

	var vertices [8]rl.Vector3
	i := 0
	for _, sx := range [2]float32{1, -1} {
		for _, sy := range [2]float32{1, -1} {
			for _, sz := range [2]float32{1, -1} {
				local := rl.Vector3{
					X: o.Center.X + sx*e.X,
					Y: o.Center.Y + sy*e.Y,
					Z: o.Center.Z + sz*e.Z,
				}
				vertices[i] = pose.TransformPoint(local)
				i++
			}
		}
	}
	return vertices
}

// Axes returns the pose's right, up and forward vectors in world space.
func (o *OrientedBoundingBox) Axes() [3]rl.Vector3 {
	pose := o.Pose()
	return [3]rl.Vector3{pose.Right(), pose.Up(), pose.Forward()}
}

// Bounds returns the world-space axis-aligned box enclosing the collider.
func (o *OrientedBoundingBox) Bounds() cube.BBox {
	vertices := o.Vertices()
	lo, hi := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		lo = rl.Vector3{X: math32.Min(lo.X, v.X), Y: math32.Min(lo.Y, v.Y), Z: math32.Min(lo.Z, v.Z)}
		hi = rl.Vector3{X: math32.Max(hi.X, v.X), Y: math32.Max(hi.Y, v.Y), Z: math32.Max(hi.Z, v.Z)}
	}
	return cube.Box(lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
}

func (o *OrientedBoundingBox) name() string {
	if g := o.GetGameObject(); g != nil {
		return g.Name
	}
	return ""
}
