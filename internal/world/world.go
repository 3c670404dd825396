package world

import (
	"context"
	"fmt"
	"math/rand"

	"obbsim/internal/config"
	"obbsim/internal/engine"
	"obbsim/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

const (
	FloorName = "Floor"
	FloorTag  = "static"
	CubeTag   = "dynamic"
)

// World owns the scene and the physics world that simulates it.
type World struct {
	Scene        *engine.Scene
	PhysicsWorld *physics.PhysicsWorld

	cfg config.Config
	log logrus.FieldLogger
	rng *rand.Rand

	begun, ended int
}

// Stats summarizes a run.
type Stats struct {
	Ticks        int
	Collisions   int // summed over all ticks
	Resolved     int
	PeakContacts int
	Begun        int // contacts that started during the run
	Ended        int
	NonFinite    []string // names of bodies that left the finite range
}

func New(cfg config.Config, log logrus.FieldLogger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	settings := physics.Settings{
		Gravity:           cfg.Gravity,
		NormalizeRotation: cfg.NormalizeRotation,
	}
	w := &World{
		Scene:        engine.NewScene("Main"),
		PhysicsWorld: physics.NewPhysicsWorld(settings, log),
		cfg:          cfg,
		log:          log,
		rng:          rand.New(rand.NewSource(cfg.Seed)),
	}
	w.PhysicsWorld.Entered.AddListener(func(e physics.ContactEvent) {
		w.begun++
		w.logContact(e, "Contact began")
	})
	w.PhysicsWorld.Exited.AddListener(func(e physics.ContactEvent) {
		w.ended++
		w.logContact(e, "Contact ended")
	})
	return w
}

func (w *World) logContact(e physics.ContactEvent, msg string) {
	w.log.WithFields(logrus.Fields{
		"a":     e.A.Name,
		"b":     e.B.Name,
		"depth": e.Collision.Depth,
	}).Debug(msg)
}

// Initialize populates the scene, from the configured scene file if there is
// one and with a floor and randomly placed cubes otherwise, then starts it.
func (w *World) Initialize() error {
	if w.cfg.Scene != "" {
		if err := w.LoadScene(w.cfg.Scene); err != nil {
			return err
		}
	} else {
		w.createFloor()
		if err := w.createCubes(); err != nil {
			return err
		}
	}

	w.Scene.Start()
	w.log.WithFields(logrus.Fields{
		"objects": len(w.Scene.GameObjects),
		"shapes":  len(w.PhysicsWorld.Shapes()),
		"bodies":  len(w.PhysicsWorld.Bodies()),
	}).Info("World initialized")
	return nil
}

func (w *World) createFloor() {
	f := w.cfg.Floor
	if f.HalfExtents == [3]float32{} {
		return
	}
	floor := engine.NewGameObject(FloorName)
	floor.Tags = []string{FloorTag}
	floor.Transform.Position = toVector(f.Position)
	physics.NewBox(floor, rl.Vector3{}, toVector(f.HalfExtents))
	w.add(floor)
}

func (w *World) createCubes() error {
	extent := w.cfg.SpawnExtent

	for i := 0; i < w.cfg.Bodies; i++ {
		pos := rl.Vector3{
			X: (w.rng.Float32()*2 - 1) * extent,
			Y: 2 + w.rng.Float32()*extent,
			Z: (w.rng.Float32()*2 - 1) * extent,
		}

		cube := engine.NewGameObject(fmt.Sprintf("Cube_%d", i))
		cube.Tags = []string{CubeTag}
		cube.Transform.Position = pos
		cube.Transform.SetEuler(rl.Vector3{
			X: w.rng.Float32() * 360,
			Y: w.rng.Float32() * 360,
			Z: w.rng.Float32() * 360,
		})

		box := physics.NewBox(cube, rl.Vector3{}, toVector(w.cfg.Body.HalfExtents))
		rb := newBody(box, w.cfg.Body)
		if err := rb.Validate(); err != nil {
			return err
		}

		// Start with a small random drift and spin.
		_ = rb.AddForce(w.randomUnit(), physics.ForceModeVelocityChange)
		_ = rb.AddTorque(rl.Vector3Scale(w.randomUnit(), 0.5), physics.ForceModeVelocityChange)

		w.add(cube)
	}
	return nil
}

func newBody(box *physics.OrientedBoundingBox, def config.Body) *physics.RigidBody {
	rb := physics.NewRigidBody(box)
	rb.Mass = def.Mass
	rb.Drag = def.Drag
	rb.AngularDrag = def.AngularDrag
	rb.Restitution = def.Restitution
	rb.UseGravity = def.UseGravity
	rb.InertiaTensor = toVector(def.Inertia)
	return rb
}

func (w *World) add(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.PhysicsWorld.AddObject(g)
}

// Remove takes g out of both the scene and the simulation.
func (w *World) Remove(g *engine.GameObject) {
	w.PhysicsWorld.RemoveObject(g)
	w.Scene.RemoveGameObject(g)
}

// randomUnit returns a random unit direction. The spread is not uniform over
// the sphere.
func (w *World) randomUnit() rl.Vector3 {
	v := rl.Vector3{
		X: w.rng.Float32()*2 - 1,
		Y: w.rng.Float32()*2 - 1,
		Z: w.rng.Float32()*2 - 1,
	}
	if rl.Vector3Length(v) == 0 {
		return rl.Vector3{Y: 1}
	}
	return rl.Vector3Normalize(v)
}

// Shake kicks every body upward with a random impulse and twist.
func (w *World) Shake() {
	for _, rb := range w.PhysicsWorld.Bodies() {
		kick := rl.Vector3Scale(w.randomUnit(), rb.Mass)
		kick.Y = rl.Vector3Length(kick)
		if err := w.PhysicsWorld.ApplyForce(rb, kick, physics.ForceModeImpulse); err != nil {
			w.log.WithError(err).Warn("Shake force rejected")
		}
		if err := w.PhysicsWorld.ApplyTorque(rb, w.randomUnit(), physics.ForceModeImpulse); err != nil {
			w.log.WithError(err).Warn("Shake torque rejected")
		}
	}
}

// Update advances the scene's components and then the physics by one tick.
func (w *World) Update(deltaTime float32) []physics.Collision {
	w.Scene.Update(deltaTime)
	return w.PhysicsWorld.Step(deltaTime)
}

// Run steps the configured number of ticks, shaking the bodies every
// ShakeInterval ticks. It stops early when ctx is cancelled.
func (w *World) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	dt := w.cfg.DeltaTime()
	begun, ended := w.begun, w.ended
	counted := func() Stats {
		stats.Begun = w.begun - begun
		stats.Ended = w.ended - ended
		return stats
	}

	for tick := 1; tick <= w.cfg.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return counted(), err
		}
		if w.cfg.ShakeInterval > 0 && tick%w.cfg.ShakeInterval == 0 {
			w.Shake()
		}

		collisions := w.Update(dt)
		stats.Ticks++
		stats.Collisions += len(collisions)
		for _, c := range collisions {
			if c.Resolved {
				stats.Resolved++
			}
		}
		stats.PeakContacts = max(stats.PeakContacts, w.PhysicsWorld.ContactCount())
	}

	for _, rb := range w.PhysicsWorld.Bodies() {
		if !rb.Finite() {
			stats.NonFinite = append(stats.NonFinite, rb.GetGameObject().Name)
		}
	}
	return counted(), nil
}

// Probe casts a ray straight down from height above (x, z).
func (w *World) Probe(x, z, height float32) (physics.RaycastHit, bool) {
	start := rl.Vector3{X: x, Y: height, Z: z}
	return w.PhysicsWorld.Raycast(start, rl.Vector3{X: x, Z: z})
}

func toVector(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func fromVector(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
