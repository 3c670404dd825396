package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Interval is the projection range of a shape onto an axis. Start <= End.
type Interval struct {
	Start float32
	End   float32
}

// Overlap returns how far the two intervals overlap, measured from the start
// of the later interval to the end of the earlier one. Intervals sharing a
// start overlap by the shorter length. Disjoint or merely touching intervals
// yield 0.
//
//	        s       e        s           e
//	|-------<   a   >--------<     b     >-------------|
func (a Interval) Overlap(b Interval) float32 {
	if a.End <= b.Start || b.End <= a.Start {
		return 0
	}
	switch {
	case a.Start < b.Start:
		return a.End - b.Start
	case b.Start < a.Start:
		return b.End - a.Start
	default:
		return math32.Min(a.End, b.End) - a.Start
	}
}

func projectionInterval(vertices [8]rl.Vector3, axis rl.Vector3) Interval {
	projMin, projMax := float32(math32.MaxFloat32), float32(-math32.MaxFloat32)
	for _, v := range vertices {
		p := rl.Vector3DotProduct(v, axis)
		if p < projMin {
			projMin = p
		}
		if p > projMax {
			projMax = p
		}
	}
	return Interval{Start: projMin, End: projMax}
}

// Collision is one overlapping pair found during a tick. It references the
// shapes without owning them and is only meaningful for the tick that
// produced it.
type Collision struct {
	A, B     *OrientedBoundingBox
	Normal   rl.Vector3 // unit axis of least penetration
	Depth    float32    // overlap along Normal, > 0
	Resolved bool
}

// candidateAxes lists the 15 SAT axes: a's 3 face axes, b's 3 face axes, then
// the 9 edge cross products with a's axis as the outer loop.
func candidateAxes(aAxes, bAxes [3]rl.Vector3) [15]rl.Vector3 {
	var axes [15]rl.Vector3
	copy(axes[0:3], aAxes[:])
	copy(axes[3:6], bAxes[:])
	n := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[n] = rl.Vector3CrossProduct(aAxes[i], bAxes[j])
			n++
		}
	}
	return axes
}

// Detect tests two boxes with the Separating Axis Theorem and reports the
// axis of least penetration.
//
// Axes are walked in order and the walk stops at the first separating axis.
// A degenerate (zero) cross-product axis ends the walk early and reports a
// collision with the least-penetration axis seen so far. That shortcut can
// report a hit for boxes a later axis would have separated; it is kept
// because changing it changes observable contacts.
//
// The pair is evaluated in a canonical order (lower GameObject UID first), so
// Detect(a, b) and Detect(b, a) reach the same verdict, depth and normal even
// when the shortcut fires.
func Detect(a, b *OrientedBoundingBox) (Collision, bool) {
	first, second := a, b
	if uidOf(b) < uidOf(a) {
		first, second = b, a
	}

	normal, depth, ok := satCheck(first, second)
	if !ok {
		return Collision{}, false
	}
	return Collision{A: a, B: b, Normal: normal, Depth: depth}, true
}

func satCheck(a, b *OrientedBoundingBox) (normal rl.Vector3, depth float32, ok bool) {
	depth = math32.MaxFloat32

	axes := candidateAxes(a.Axes(), b.Axes())
	aVerts := a.Vertices()
	bVerts := b.Vertices()

	for _, axis := range axes {
		if isDegenerate(axis) {
			return normal, depth, true
		}
		axis = rl.Vector3Normalize(axis)

		overlap := projectionInterval(aVerts, axis).Overlap(projectionInterval(bVerts, axis))
		if overlap <= 0 {
			return rl.Vector3{}, 0, false
		}
		if overlap < depth {
			depth = overlap
			normal = axis
		}
	}

	return normal, depth, true
}

func uidOf(o *OrientedBoundingBox) uint64 {
	if g := o.GetGameObject(); g != nil {
		return g.UID
	}
	return 0
}
