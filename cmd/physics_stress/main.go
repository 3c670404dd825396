// Stress test for brute-force narrow-phase collision detection
package main

import (
	"fmt"
	"math/rand"
	"time"

	"obbsim/internal/engine"
	"obbsim/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// Test various object counts
	testCounts := []int{100, 250, 500, 1000, 2000}

	for _, count := range testCounts {
		testNarrowPhase(count)
	}
}

func testNarrowPhase(count int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(20.0) + float32(count)/20.0

	shapes := make([]*physics.OrientedBoundingBox, count)
	for i := range shapes {
		g := engine.NewGameObject(fmt.Sprintf("Box_%d", i))
		g.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		g.Transform.SetEuler(rl.Vector3{
			X: rng.Float32() * 360,
			Y: rng.Float32() * 360,
			Z: rng.Float32() * 360,
		})
		half := 0.5 + rng.Float32()*0.5 // 0.5 to 1.0 half extent
		shapes[i] = physics.NewBox(g, rl.Vector3{}, rl.Vector3{X: half, Y: half, Z: half})
	}

	cw := physics.NewCollisionWorld()
	cw.RegisterShapes(shapes)

	// Warm up
	cw.UpdateCollisions()

	start := time.Now()
	const iterations = 5
	var pairs int
	for i := 0; i < iterations; i++ {
		pairs = len(cw.UpdateCollisions())
	}
	elapsed := time.Since(start) / iterations

	tests := count * (count - 1) / 2
	perPair := elapsed / time.Duration(max(tests, 1))

	fmt.Printf("%5d objects: %10v per tick (%4d collisions, %8d pair tests, %v/test)\n",
		count, elapsed.Round(time.Microsecond), pairs, tests, perPair)
}
