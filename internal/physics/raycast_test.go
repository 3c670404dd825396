package physics

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestCastRayHitsNearFace(t *testing.T) {
	_, box := newBoxObject("Box", rl.Vector3{}, unitHalf())

	hit, ok := CastRay(rl.Vector3{Z: -10}, rl.Vector3{}, box)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !near(hit.T, 0.9, 1e-5) {
		t.Errorf("Expected t 0.9, got %v", hit.T)
	}
	if !vecNear(hit.Point, rl.Vector3{Z: -1}, 1e-4) {
		t.Errorf("Expected hit point (0, 0, -1), got %v", hit.Point)
	}
	if !near(hit.Distance, 9, 1e-4) {
		t.Errorf("Expected distance 9, got %v", hit.Distance)
	}
	if hit.Shape != box {
		t.Error("Hit should reference the shape")
	}
}

func TestCastRayMiss(t *testing.T) {
	_, box := newBoxObject("Box", rl.Vector3{}, unitHalf())

	if _, ok := CastRay(rl.Vector3{X: 5, Z: -10}, rl.Vector3{X: 5}, box); ok {
		t.Error("Ray passing beside the box should miss")
	}
}

func TestCastRayPointingAway(t *testing.T) {
	_, box := newBoxObject("Box", rl.Vector3{}, unitHalf())

	if _, ok := CastRay(rl.Vector3{Z: -10}, rl.Vector3{Z: -20}, box); ok {
		t.Error("Box behind the ray origin should not be hit")
	}
}

func TestCastRayBeyondEnd(t *testing.T) {
	_, box := newBoxObject("Box", rl.Vector3{Z: 20}, unitHalf())

	hit, ok := CastRay(rl.Vector3{}, rl.Vector3{Z: 1}, box)
	if !ok {
		t.Fatal("Ray should extend past its end point")
	}
	if !near(hit.T, 19, 1e-4) {
		t.Errorf("Expected t 19, got %v", hit.T)
	}
}

func TestCastRayFromInside(t *testing.T) {
	_, box := newBoxObject("Box", rl.Vector3{}, unitHalf())

	hit, ok := CastRay(rl.Vector3{}, rl.Vector3{Y: 4}, box)
	if !ok {
		t.Fatal("Ray from inside should hit the exit face")
	}
	if !vecNear(hit.Point, rl.Vector3{Y: 1}, 1e-4) {
		t.Errorf("Expected exit at (0, 1, 0), got %v", hit.Point)
	}
}

func TestCastRayRotatedBox(t *testing.T) {
	g, box := newBoxObject("Box", rl.Vector3{}, unitHalf())
	g.Transform.SetEuler(rl.Vector3{Y: 45})

	hit, ok := CastRay(rl.Vector3{X: -10, Y: 0.5, Z: 0.3}, rl.Vector3{Y: 0.5, Z: 0.3}, box)
	if !ok {
		t.Fatal("Expected a hit")
	}
	// The turned face is the plane -x + z = sqrt(2).
	if !near(hit.Point.X, 0.3-1.41421356, 1e-4) {
		t.Errorf("Expected hit on the turned face, got %v", hit.Point)
	}
}

func TestBoundsMayHit(t *testing.T) {
	bb := cube.Box(-1, -1, -1, 1, 1, 1)

	tests := []struct {
		name       string
		start, dir rl.Vector3
		want       bool
	}{
		{"toward", rl.Vector3{Z: -10}, rl.Vector3{Z: 1}, true},
		{"short segment toward", rl.Vector3{Z: -10}, rl.Vector3{Z: 0.01}, true},
		{"inside", rl.Vector3{}, rl.Vector3{X: 1}, true},
		{"beside", rl.Vector3{X: 5, Z: -10}, rl.Vector3{Z: 1}, false},
		{"away", rl.Vector3{Z: -10}, rl.Vector3{Z: -1}, false},
		{"zero direction", rl.Vector3{Z: -10}, rl.Vector3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boundsMayHit(bb, tt.start, tt.dir); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
