package physics

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// rayEpsilon is the smallest positive float32. Determinants and hit
// parameters at or below it count as misses.
const rayEpsilon = math32.SmallestNonzeroFloat32

// boundsMargin pads a shape's bounds before the cheap segment test.
const boundsMargin = 1e-3

// RaycastHit describes the nearest face a ray struck.
type RaycastHit struct {
	Shape    *OrientedBoundingBox
	Point    rl.Vector3
	T        float32 // hit parameter along end-start; 1 is the end point
	Distance float32 // world distance from start to Point
}

// boxFaces lists each face as 4 vertex indices (see Vertices). A face is
// split into triangles (0,1,2) and (1,3,2).
var boxFaces = [6][4]int{
	{0, 1, 2, 3},
	{4, 0, 6, 2},
	{5, 4, 7, 6},
	{1, 5, 3, 7},
	{5, 4, 1, 0},
	{7, 6, 3, 2},
}

// CastRay intersects the ray from start through end with the 12 face
// triangles of shape and returns the nearest hit in front of start. Hits past
// end are still reported; T > 1 for those.
func CastRay(start, end rl.Vector3, shape *OrientedBoundingBox) (RaycastHit, bool) {
	dir := rl.Vector3Subtract(end, start)
	verts := shape.Vertices()

	nearestT := float32(math32.MaxFloat32)
	hit := false

	for _, face := range boxFaces {
		v0, v1, v2, v3 := verts[face[0]], verts[face[1]], verts[face[2]], verts[face[3]]
		for _, tri := range [2][3]rl.Vector3{{v0, v1, v2}, {v1, v3, v2}} {
			t, ok := rayHitsTriangle(start, dir, tri[0], tri[1], tri[2])
			if ok && t < nearestT {
				nearestT = t
				hit = true
			}
		}
	}

	if !hit {
		return RaycastHit{}, false
	}
	point := rl.Vector3Add(start, rl.Vector3Scale(dir, nearestT))
	return RaycastHit{
		Shape:    shape,
		Point:    point,
		T:        nearestT,
		Distance: rl.Vector3Distance(start, point),
	}, true
}

// rayHitsTriangle is the Möller–Trumbore test. dir need not be normalized; t
// is measured in multiples of dir.
func rayHitsTriangle(start, dir, v0, v1, v2 rl.Vector3) (float32, bool) {
	edge1 := rl.Vector3Subtract(v1, v0)
	edge2 := rl.Vector3Subtract(v2, v0)
	h := rl.Vector3CrossProduct(dir, edge2)

	a := rl.Vector3DotProduct(edge1, h)
	if math32.Abs(a) < rayEpsilon {
		return 0, false // parallel to the triangle plane
	}

	f := 1 / a
	s := rl.Vector3Subtract(start, v0)
	u := f * rl.Vector3DotProduct(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := rl.Vector3CrossProduct(s, edge1)
	v := f * rl.Vector3DotProduct(dir, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * rl.Vector3DotProduct(edge2, q)
	if t > rayEpsilon {
		return t, true
	}
	return 0, false
}

// boundsMayHit is a cheap rejection test: it reports false only when the ray
// from start along dir certainly misses bb.
func boundsMayHit(bb cube.BBox, start, dir rl.Vector3) bool {
	bb = bb.Grow(boundsMargin)
	lo, hi := fromMgl(bb.Min()), fromMgl(bb.Max())

	if start.X >= lo.X && start.X <= hi.X &&
		start.Y >= lo.Y && start.Y <= hi.Y &&
		start.Z >= lo.Z && start.Z <= hi.Z {
		return true
	}

	length := rl.Vector3Length(dir)
	if length == 0 {
		return false
	}

	// Stretch the probe so the segment passes all the way through the box.
	center := rl.Vector3Scale(rl.Vector3Add(lo, hi), 0.5)
	reach := (rl.Vector3Distance(start, center) + rl.Vector3Distance(lo, hi)) / length
	far := rl.Vector3Add(start, rl.Vector3Scale(dir, reach+1))

	_, ok := trace.BBoxIntercept(bb, toMgl(start), toMgl(far))
	return ok
}
