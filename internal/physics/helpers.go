package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerateAxisEpsilon is the squared length below which a candidate axis is
// treated as the zero vector.
const degenerateAxisEpsilon = 1e-10

// isDegenerate reports whether axis is (numerically) the zero vector, as
// produced by the cross product of two parallel axes.
func isDegenerate(axis rl.Vector3) bool {
	return rl.Vector3DotProduct(axis, axis) < degenerateAxisEpsilon
}

// isFinite reports whether every component of v is a real number.
func isFinite(v rl.Vector3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func toMgl(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
