package physics

import (
	"slices"

	"obbsim/internal/engine"

	"github.com/elliotchance/orderedmap/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// DefaultGravity is the vertical acceleration applied to bodies with
// UseGravity set, along world Y.
const DefaultGravity float32 = -9.81

// Settings are the world-wide integration parameters.
type Settings struct {
	Gravity float32
	// NormalizeRotation renormalizes the orientation after each small-angle
	// update. With it off the raw update is written back, which lets the
	// quaternion drift from unit length over long runs.
	NormalizeRotation bool
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:           DefaultGravity,
		NormalizeRotation: true,
	}
}

// ContactEvent is delivered when a pair starts or stops touching.
type ContactEvent struct {
	A, B      *engine.GameObject
	Collision Collision // the collision of the last overlapping tick
}

// PhysicsWorld is a self-contained simulation: one collision world, the
// bodies it integrates and the contact state used for enter/exit events.
// It is not safe for concurrent use; Step, Raycast and force application
// must be serialized by the host.
type PhysicsWorld struct {
	Settings Settings

	Entered engine.Signal[ContactEvent]
	Exited  engine.Signal[ContactEvent]

	collisionWorld *CollisionWorld
	shapes         []*OrientedBoundingBox
	bodies         []*RigidBody
	contacts       *orderedmap.OrderedMap[pairKey, Collision]

	log  logrus.FieldLogger
	tick uint64
}

// NewPhysicsWorld creates an empty world. A nil log uses the logrus standard
// logger.
func NewPhysicsWorld(settings Settings, log logrus.FieldLogger) *PhysicsWorld {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PhysicsWorld{
		Settings:       settings,
		collisionWorld: NewCollisionWorld(),
		contacts:       orderedmap.NewOrderedMap[pairKey, Collision](),
		log:            log,
	}
}

// Init replaces both the shape set and the body set.
func (p *PhysicsWorld) Init(shapes []*OrientedBoundingBox, bodies []*RigidBody) {
	p.RegisterShapes(shapes)
	p.RegisterBodies(bodies)
}

// RegisterShapes replaces the set of shapes tested for collisions.
func (p *PhysicsWorld) RegisterShapes(shapes []*OrientedBoundingBox) {
	p.shapes = append([]*OrientedBoundingBox(nil), shapes...)
	p.collisionWorld.RegisterShapes(p.shapes)
	p.log.WithField("shapes", len(p.shapes)).Debug("Physics: shapes registered")
}

// RegisterBodies replaces the set of bodies integrated each tick and routes
// their diagnostics to the world's logger.
func (p *PhysicsWorld) RegisterBodies(bodies []*RigidBody) {
	p.bodies = append([]*RigidBody(nil), bodies...)
	for _, rb := range p.bodies {
		rb.SetLogger(p.log)
	}
}

// AddObject registers every box collider on g, and the body owning each one.
// Colliders that are already registered are skipped.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	added := false
	for _, box := range engine.GetComponents[*OrientedBoundingBox](g) {
		if slices.Contains(p.shapes, box) {
			continue
		}
		added = true
		p.shapes = append(p.shapes, box)
		if rb, ok := box.Body(); ok && !slices.Contains(p.bodies, rb) {
			rb.SetLogger(p.log)
			p.bodies = append(p.bodies, rb)
		}
	}
	if added {
		p.collisionWorld.RegisterShapes(p.shapes)
	}
}

// AddScene registers every object in s, in scene order.
func (p *PhysicsWorld) AddScene(s *engine.Scene) {
	for _, g := range s.GameObjects {
		p.AddObject(g)
	}
}

// RemoveObject unregisters g's colliders and bodies. Pending contacts that
// involve g are dropped without an exit event.
func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	shapes := p.shapes[:0]
	for _, s := range p.shapes {
		if s.GetGameObject() != g {
			shapes = append(shapes, s)
		}
	}
	clear(p.shapes[len(shapes):])
	p.shapes = shapes

	bodies := p.bodies[:0]
	for _, rb := range p.bodies {
		if rb.GetGameObject() != g {
			bodies = append(bodies, rb)
		}
	}
	clear(p.bodies[len(bodies):])
	p.bodies = bodies

	p.collisionWorld.RegisterShapes(p.shapes)
	p.forgetContacts(g)
}

func (p *PhysicsWorld) Shapes() []*OrientedBoundingBox { return p.shapes }
func (p *PhysicsWorld) Bodies() []*RigidBody           { return p.bodies }

// CollisionWorld exposes the detection stage.
func (p *PhysicsWorld) CollisionWorld() *CollisionWorld { return p.collisionWorld }

// Tick returns how many steps have run.
func (p *PhysicsWorld) Tick() uint64 { return p.tick }

// Step runs one fixed tick: detect, resolve, integrate, then dispatch contact
// events. It returns this tick's collisions, all marked resolved unless
// neither side had a body.
func (p *PhysicsWorld) Step(dt float32) []Collision {
	collisions := p.collisionWorld.UpdateCollisions()
	resolved := ResolveCollisions(collisions)

	for _, rb := range p.bodies {
		rb.Integrate(dt, p.Settings)
	}

	p.updateContacts(collisions)
	p.tick++

	if len(collisions) > 0 {
		p.log.WithFields(logrus.Fields{
			"tick":       p.tick,
			"collisions": len(collisions),
			"resolved":   resolved,
		}).Debug("Physics: step")
	}
	return collisions
}

// ApplyForce applies force to rb; see RigidBody.AddForce.
func (p *PhysicsWorld) ApplyForce(rb *RigidBody, force rl.Vector3, mode ForceMode) error {
	return rb.AddForce(force, mode)
}

// ApplyTorque applies torque to rb; see RigidBody.AddTorque.
func (p *PhysicsWorld) ApplyTorque(rb *RigidBody, torque rl.Vector3, mode ForceMode) error {
	return rb.AddTorque(torque, mode)
}

// Raycast casts a ray from start through end against every registered shape
// and returns the nearest hit.
func (p *PhysicsWorld) Raycast(start, end rl.Vector3) (RaycastHit, bool) {
	dir := rl.Vector3Subtract(end, start)

	var closest RaycastHit
	hit := false
	for _, shape := range p.shapes {
		if !boundsMayHit(shape.Bounds(), start, dir) {
			continue
		}
		h, ok := CastRay(start, end, shape)
		if ok && (!hit || h.T < closest.T) {
			closest = h
			hit = true
		}
	}
	return closest, hit
}
