package physics

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestIntervalOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want float32
	}{
		{"disjoint", Interval{0, 1}, Interval{2, 3}, 0},
		{"disjoint reversed", Interval{2, 3}, Interval{0, 1}, 0},
		{"touching", Interval{0, 1}, Interval{1, 2}, 0},
		{"partial", Interval{0, 2}, Interval{1, 3}, 1},
		{"partial reversed", Interval{1, 3}, Interval{0, 2}, 1},
		{"contained", Interval{0, 10}, Interval{4, 5}, 6},
		{"contained reversed", Interval{4, 5}, Interval{0, 10}, 6},
		{"shared start", Interval{0, 2}, Interval{0, 3}, 2},
		{"shared start reversed", Interval{0, 3}, Interval{0, 2}, 2},
		{"identical", Interval{-1, 1}, Interval{-1, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlap(tt.b); !near(got, tt.want, 1e-6) {
				t.Errorf("Expected overlap %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDetectSeparated(t *testing.T) {
	_, a := newBoxObject("A", rl.Vector3{}, unitHalf())
	_, b := newBoxObject("B", rl.Vector3{X: 10}, unitHalf())

	if _, ok := Detect(a, b); ok {
		t.Error("Boxes 10 units apart should not collide")
	}
}

func TestDetectTouchingFacesDoNotCollide(t *testing.T) {
	_, a := newBoxObject("A", rl.Vector3{}, unitHalf())
	_, b := newBoxObject("B", rl.Vector3{X: 2}, unitHalf())

	if _, ok := Detect(a, b); ok {
		t.Error("Boxes sharing a face should not collide")
	}
}

func TestDetectOverlapAlongX(t *testing.T) {
	_, a := newBoxObject("A", rl.Vector3{}, unitHalf())
	_, b := newBoxObject("B", rl.Vector3{X: 1}, unitHalf())

	c, ok := Detect(a, b)
	if !ok {
		t.Fatal("Expected overlapping boxes to collide")
	}
	if c.A != a || c.B != b {
		t.Error("Collision should keep the argument order")
	}
	if !near(c.Depth, 1, 1e-5) {
		t.Errorf("Expected depth 1, got %v", c.Depth)
	}
	if !near(math32.Abs(c.Normal.X), 1, 1e-5) || !near(c.Normal.Y, 0, 1e-5) || !near(c.Normal.Z, 0, 1e-5) {
		t.Errorf("Expected normal along X, got %v", c.Normal)
	}
	if c.Resolved {
		t.Error("A fresh collision should not be resolved")
	}
}

func TestDetectPicksShallowestAxis(t *testing.T) {
	_, a := newBoxObject("A", rl.Vector3{}, unitHalf())
	_, b := newBoxObject("B", rl.Vector3{X: 0.5, Y: 1.75}, unitHalf())

	c, ok := Detect(a, b)
	if !ok {
		t.Fatal("Expected a collision")
	}
	if !near(c.Depth, 0.25, 1e-5) {
		t.Errorf("Expected depth 0.25, got %v", c.Depth)
	}
	if !near(math32.Abs(c.Normal.Y), 1, 1e-5) {
		t.Errorf("Expected normal along Y, got %v", c.Normal)
	}
}

func TestDetectContainedBoxDepth(t *testing.T) {
	_, floor := newBoxObject("Floor", rl.Vector3{}, rl.Vector3{X: 5, Y: 1, Z: 5})
	_, pebble := newBoxObject("Pebble", rl.Vector3{Y: -0.9}, rl.Vector3{X: 0.05, Y: 0.05, Z: 0.05})

	c, ok := Detect(floor, pebble)
	if !ok {
		t.Fatal("Expected a contained box to collide")
	}
	// Y projections [-1, 1] and [-0.95, -0.85]: from the later start to the
	// earlier end is 1.95, still shallower than the 5.05 along X and Z.
	if !near(c.Depth, 1.95, 1e-5) {
		t.Errorf("Expected depth 1.95, got %v", c.Depth)
	}
	if !near(math32.Abs(c.Normal.Y), 1, 1e-5) {
		t.Errorf("Expected normal along Y, got %v", c.Normal)
	}

	r, ok := Detect(pebble, floor)
	if !ok || r.Depth != c.Depth {
		t.Errorf("Expected the same depth in both orders, got %v and %v", c.Depth, r.Depth)
	}
}

func TestDetectRotatedBox(t *testing.T) {
	_, a := newBoxObject("A", rl.Vector3{}, unitHalf())
	gb, b := newBoxObject("B", rl.Vector3{X: 2.2}, unitHalf())

	// Axis-aligned, B is 0.2 clear of A.
	if _, ok := Detect(a, b); ok {
		t.Fatal("Axis-aligned boxes should be separated")
	}

	// Turned 45 degrees about Y and Z, B's corner reaches back into A.
	gb.Transform.SetEuler(rl.Vector3{Y: 45, Z: 45})
	if _, ok := Detect(a, b); !ok {
		t.Error("Rotated box corner should reach into A")
	}
}

func TestDetectNormalIsUnit(t *testing.T) {
	ga, a := newBoxObject("A", rl.Vector3{}, unitHalf())
	gb, b := newBoxObject("B", rl.Vector3{X: 1.2, Y: 0.4, Z: 0.3}, unitHalf())
	ga.Transform.SetEuler(rl.Vector3{X: 10, Y: 20, Z: 30})
	gb.Transform.SetEuler(rl.Vector3{X: 40, Y: 15, Z: 5})

	c, ok := Detect(a, b)
	if !ok {
		t.Fatal("Expected a collision")
	}
	if l := rl.Vector3Length(c.Normal); !near(l, 1, 1e-4) {
		t.Errorf("Expected unit normal, got length %v", l)
	}
	if c.Depth <= 0 {
		t.Errorf("Expected positive depth, got %v", c.Depth)
	}
}

func TestDetectSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randVec := func(scale float32) rl.Vector3 {
		return rl.Vector3{
			X: (rng.Float32()*2 - 1) * scale,
			Y: (rng.Float32()*2 - 1) * scale,
			Z: (rng.Float32()*2 - 1) * scale,
		}
	}

	for i := 0; i < 200; i++ {
		ga, a := newBoxObject("A", randVec(2), rl.Vector3{X: 1, Y: 0.5, Z: 0.75})
		gb, b := newBoxObject("B", randVec(2), rl.Vector3{X: 0.5, Y: 1, Z: 0.25})
		ga.Transform.SetEuler(randVec(180))
		// Every few pairs share an orientation, which makes cross axes degenerate.
		if i%4 == 0 {
			gb.Transform.Rotation = ga.Transform.Rotation
		} else {
			gb.Transform.SetEuler(randVec(180))
		}

		ab, okAB := Detect(a, b)
		ba, okBA := Detect(b, a)
		if okAB != okBA {
			t.Fatalf("Pair %d: Detect(a, b) = %v but Detect(b, a) = %v", i, okAB, okBA)
		}
		if !okAB {
			continue
		}
		if ab.Depth != ba.Depth || ab.Normal != ba.Normal {
			t.Errorf("Pair %d: asymmetric result %v/%v vs %v/%v", i, ab.Depth, ab.Normal, ba.Depth, ba.Normal)
		}
	}
}

func TestCandidateAxesOrder(t *testing.T) {
	a := [3]rl.Vector3{{X: 1}, {Y: 1}, {Z: 1}}
	b := [3]rl.Vector3{{Y: 1}, {Z: 1}, {X: 1}}

	axes := candidateAxes(a, b)

	for i := 0; i < 3; i++ {
		if axes[i] != a[i] || axes[3+i] != b[i] {
			t.Fatalf("Face axes out of order at %d", i)
		}
	}
	// a.X cross b.Y is +Z, a.X cross b.Z is -Y.
	if !vecNear(axes[6], rl.Vector3{Z: 1}, 1e-6) || !vecNear(axes[7], rl.Vector3{Y: -1}, 1e-6) {
		t.Errorf("Unexpected edge axes %v %v", axes[6], axes[7])
	}
	if !isDegenerate(axes[8]) {
		t.Errorf("Parallel edges should give a degenerate axis, got %v", axes[8])
	}
}
