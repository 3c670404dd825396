package world

import (
	"fmt"
	"os"

	"obbsim/internal/engine"
	"obbsim/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type SceneFile struct {
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name     string     `yaml:"name"`
	Tags     []string   `yaml:"tags,omitempty"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // Euler degrees
	Scale    [3]float32 `yaml:"scale"`

	Box       *boxDef       `yaml:"box,omitempty"`
	Rigidbody *rigidbodyDef `yaml:"rigidbody,omitempty"`
}

type boxDef struct {
	Center      [3]float32 `yaml:"center,omitempty"`
	HalfExtents [3]float32 `yaml:"half_extents"`
}

type rigidbodyDef struct {
	Mass            float32     `yaml:"mass,omitempty"`
	Drag            float32     `yaml:"drag,omitempty"`
	AngularDrag     float32     `yaml:"angular_drag,omitempty"`
	Restitution     *float32    `yaml:"restitution,omitempty"`
	UseGravity      *bool       `yaml:"use_gravity,omitempty"`
	Inertia         *[3]float32 `yaml:"inertia,omitempty"`
	Velocity        [3]float32  `yaml:"velocity,omitempty"`
	AngularMomentum [3]float32  `yaml:"angular_momentum,omitempty"`
}

// LoadScene adds the objects described by a scene file to the world. A
// rigidbody entry is ignored on an object without a box. Objects are built
// first and added only when the whole file is valid, so a failed load leaves
// the world unchanged.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	loaded := make([]*engine.GameObject, 0, len(sf.Objects))
	for _, objDef := range sf.Objects {
		g, err := w.loadObject(objDef)
		if err != nil {
			return fmt.Errorf("scene %s: object %q: %w", path, objDef.Name, err)
		}
		loaded = append(loaded, g)
	}

	for _, g := range loaded {
		w.add(g)
	}
	return nil
}

func (w *World) loadObject(objDef ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(objDef.Name)
	g.Tags = objDef.Tags
	g.Transform.Position = toVector(objDef.Position)
	g.Transform.SetEuler(toVector(objDef.Rotation))

	// Default scale to 1 if zero
	if objDef.Scale != [3]float32{} {
		g.Transform.Scale = toVector(objDef.Scale)
	}

	if objDef.Box != nil {
		box := physics.NewBox(g, toVector(objDef.Box.Center), toVector(objDef.Box.HalfExtents))
		if objDef.Rigidbody != nil {
			if err := w.loadRigidbody(box, *objDef.Rigidbody); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (w *World) loadRigidbody(box *physics.OrientedBoundingBox, def rigidbodyDef) error {
	body := w.cfg.Body
	if def.Mass > 0 {
		body.Mass = def.Mass
	}
	body.Drag = def.Drag
	body.AngularDrag = def.AngularDrag
	if def.Restitution != nil {
		body.Restitution = *def.Restitution
	}
	if def.UseGravity != nil {
		body.UseGravity = *def.UseGravity
	}
	if def.Inertia != nil {
		body.Inertia = *def.Inertia
	}

	rb := newBody(box, body)
	if err := rb.Validate(); err != nil {
		return err
	}
	_ = rb.AddForce(toVector(def.Velocity), physics.ForceModeVelocityChange)
	_ = rb.AddTorque(toVector(def.AngularMomentum), physics.ForceModeVelocityChange)
	return nil
}

// SaveScene writes every object with a box collider, including the current
// pose and motion of its body.
func (w *World) SaveScene(path string) error {
	var sf SceneFile

	for _, g := range w.Scene.GameObjects {
		box := engine.GetComponent[*physics.OrientedBoundingBox](g)
		if box == nil {
			continue
		}

		objDef := ObjectDef{
			Name:     g.Name,
			Tags:     g.Tags,
			Position: fromVector(g.Transform.Position),
			Rotation: fromVector(eulerDegrees(g.Transform.Rotation)),
			Scale:    fromVector(g.Transform.Scale),
			Box: &boxDef{
				Center:      fromVector(box.Center),
				HalfExtents: fromVector(box.HalfExtents),
			},
		}
		if rb, ok := box.Body(); ok {
			objDef.Rigidbody = saveRigidbody(rb)
		}
		sf.Objects = append(sf.Objects, objDef)
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func saveRigidbody(rb *physics.RigidBody) *rigidbodyDef {
	restitution := rb.Restitution
	useGravity := rb.UseGravity
	inertia := fromVector(rb.InertiaTensor)
	return &rigidbodyDef{
		Mass:            rb.Mass,
		Drag:            rb.Drag,
		AngularDrag:     rb.AngularDrag,
		Restitution:     &restitution,
		UseGravity:      &useGravity,
		Inertia:         &inertia,
		Velocity:        fromVector(rb.LinearVelocity()),
		AngularMomentum: fromVector(rb.AngularMomentum()),
	}
}

func eulerDegrees(q rl.Quaternion) rl.Vector3 {
	return rl.Vector3Scale(rl.QuaternionToEuler(q), rl.Rad2deg)
}
