package physics

import (
	"errors"
	"fmt"

	"obbsim/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// impulseTorqueScale multiplies impulse-mode torque before the mass divide.
// It is an empirical factor existing scenes are tuned against.
const impulseTorqueScale = 10

// RigidBody integrates forces and torques into the pose of its GameObject.
// It owns exactly one collider.
type RigidBody struct {
	engine.BaseComponent
	Collider *OrientedBoundingBox

	Mass          float32    // > 0
	Drag          float32    // [0, 1]
	AngularDrag   float32    // [0, 1]
	Restitution   float32    // [0, 1]
	InertiaTensor rl.Vector3 // diagonal, components > 0
	UseGravity    bool

	linearVelocity     rl.Vector3
	linearAcceleration rl.Vector3
	angularMomentum    rl.Vector3
	force              rl.Vector3
	torque             rl.Vector3

	log      logrus.FieldLogger
	detached *engine.Transform
}

// NewRigidBody creates a body for collider, links the two and attaches the
// body to the collider's GameObject.
func NewRigidBody(collider *OrientedBoundingBox) *RigidBody {
	r := &RigidBody{
		Collider:      collider,
		Mass:          5.0,
		Restitution:   1.0,
		InertiaTensor: rl.Vector3{X: 1, Y: 1, Z: 1},
	}
	collider.RigidBody = r
	if g := collider.GetGameObject(); g != nil {
		g.AddComponent(r)
	}
	return r
}

// SetLogger sets where configuration errors are reported. nil restores the
// logrus standard logger.
func (r *RigidBody) SetLogger(log logrus.FieldLogger) {
	r.log = log
}

func (r *RigidBody) logger() logrus.FieldLogger {
	if r.log == nil {
		return logrus.StandardLogger()
	}
	return r.log
}

func (r *RigidBody) name() string {
	if g := r.GetGameObject(); g != nil {
		return g.Name
	}
	return ""
}

// pose is the collider's pose; the body always moves with its collider.
func (r *RigidBody) pose() *engine.Transform {
	if r.Collider != nil {
		return r.Collider.Pose()
	}
	if g := r.GetGameObject(); g != nil {
		return &g.Transform
	}
	if r.detached == nil {
		t := engine.NewTransform(rl.Vector3{})
		r.detached = &t
	}
	return r.detached
}

func (r *RigidBody) LinearVelocity() rl.Vector3     { return r.linearVelocity }
func (r *RigidBody) LinearAcceleration() rl.Vector3 { return r.linearAcceleration }
func (r *RigidBody) AngularMomentum() rl.Vector3    { return r.angularMomentum }

// Force returns the force accumulated for the next integration.
func (r *RigidBody) Force() rl.Vector3 { return r.force }

// Torque returns the torque accumulated for the next integration.
func (r *RigidBody) Torque() rl.Vector3 { return r.torque }

// AngularVelocity returns angular momentum divided component-wise by the
// diagonal inertia tensor.
func (r *RigidBody) AngularVelocity() rl.Vector3 {
	return rl.Vector3{
		X: r.angularMomentum.X / r.InertiaTensor.X,
		Y: r.angularMomentum.Y / r.InertiaTensor.Y,
		Z: r.angularMomentum.Z / r.InertiaTensor.Z,
	}
}

// Validate checks the body's configuration. Integration never validates; a
// host should call this once when it builds a body.
func (r *RigidBody) Validate() error {
	var errs []error
	if !(r.Mass > 0) {
		errs = append(errs, fmt.Errorf("mass must be positive, got %v", r.Mass))
	}
	for _, p := range []struct {
		name  string
		value float32
	}{
		{"drag", r.Drag},
		{"angular drag", r.AngularDrag},
		{"restitution", r.Restitution},
	} {
		if p.value < 0 || p.value > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", p.name, p.value))
		}
	}
	if !(r.InertiaTensor.X > 0 && r.InertiaTensor.Y > 0 && r.InertiaTensor.Z > 0) {
		errs = append(errs, fmt.Errorf("inertia tensor components must be positive, got %v", r.InertiaTensor))
	}
	if r.Collider == nil {
		errs = append(errs, errors.New("body has no collider"))
	} else if e := r.Collider.HalfExtents; e.X < 0 || e.Y < 0 || e.Z < 0 {
		errs = append(errs, fmt.Errorf("half extents must be non-negative, got %v", e))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("rigid body %q: %w", r.name(), err)
	}
	return nil
}

// Finite reports whether the body's kinematic state and pose are free of NaN
// and Inf.
func (r *RigidBody) Finite() bool {
	pose := r.pose()
	q := pose.Rotation
	return isFinite(r.linearVelocity) && isFinite(r.angularMomentum) &&
		isFinite(pose.Position) && isFinite(rl.Vector3{X: q.X, Y: q.Y, Z: q.Z}) &&
		!math32.IsNaN(q.W) && !math32.IsInf(q.W, 0)
}

// AddForce applies force according to mode. An unsupported mode is logged and
// returned; the body is left unchanged.
func (r *RigidBody) AddForce(force rl.Vector3, mode ForceMode) error {
	switch mode {
	case ForceModeForce:
		r.force = rl.Vector3Add(r.force, force)
	case ForceModeImpulse:
		r.linearVelocity = rl.Vector3Add(r.linearVelocity, rl.Vector3Scale(force, 1/r.Mass))
	case ForceModeVelocityChange:
		r.linearVelocity = rl.Vector3Add(r.linearVelocity, force)
	default:
		return r.unsupported("force", mode)
	}
	return nil
}

// AddTorque applies torque according to mode. Impulse torque is scaled by
// impulseTorqueScale before dividing by mass. An unsupported mode is logged
// and returned; the body is left unchanged.
func (r *RigidBody) AddTorque(torque rl.Vector3, mode ForceMode) error {
	switch mode {
	case ForceModeForce:
		r.torque = rl.Vector3Add(r.torque, torque)
	case ForceModeImpulse:
		scaled := rl.Vector3Scale(torque, impulseTorqueScale)
		r.angularMomentum = rl.Vector3Add(r.angularMomentum, rl.Vector3Scale(scaled, 1/r.Mass))
	case ForceModeVelocityChange:
		r.angularMomentum = rl.Vector3Add(r.angularMomentum, torque)
	default:
		return r.unsupported("torque", mode)
	}
	return nil
}

func (r *RigidBody) unsupported(kind string, mode ForceMode) error {
	err := fmt.Errorf("%s mode %v: %w", kind, mode, ErrUnsupportedForceMode)
	r.logger().WithFields(logrus.Fields{
		"body": r.name(),
		"mode": mode.String(),
	}).Error(err)
	return err
}

// Integrate advances the body by dt: natural forces, then translation, then
// rotation. Accumulated force and torque are zero afterwards.
func (r *RigidBody) Integrate(dt float32, settings Settings) {
	r.applyNaturalForces(dt, settings.Gravity)
	r.translate(dt)
	r.rotate(dt, settings.NormalizeRotation)
}

func (r *RigidBody) applyNaturalForces(dt, gravity float32) {
	if r.UseGravity {
		r.force.Y += r.Mass * gravity
	}

	r.linearVelocity = rl.Vector3Scale(r.linearVelocity, dragMultiplier(r.Drag, dt))
	r.angularMomentum = rl.Vector3Scale(r.angularMomentum, dragMultiplier(r.AngularDrag, dt))
}

// dragMultiplier is the per-tick velocity decay factor, clamped at zero.
func dragMultiplier(drag, dt float32) float32 {
	return math32.Max(0, 1-drag*dt)
}

// translate is a velocity Verlet step: the position uses last tick's
// acceleration, the velocity blends it with the acceleration from this
// tick's force.
func (r *RigidBody) translate(dt float32) {
	pose := r.pose()

	step := rl.Vector3Add(
		rl.Vector3Scale(r.linearVelocity, dt),
		rl.Vector3Scale(r.linearAcceleration, 0.5*dt*dt),
	)
	pose.Position = rl.Vector3Add(pose.Position, step)

	halfStepVelocity := rl.Vector3Add(r.linearVelocity, rl.Vector3Scale(r.linearAcceleration, 0.5*dt))
	r.linearAcceleration = rl.Vector3Scale(r.force, 1/r.Mass)
	r.linearVelocity = rl.Vector3Add(halfStepVelocity, rl.Vector3Scale(r.linearAcceleration, 0.5*dt))

	r.force = rl.Vector3{}
}

// rotate is an explicit Euler step on angular momentum followed by a
// small-angle quaternion update (w = 1, unnormalized) premultiplied onto the
// orientation.
func (r *RigidBody) rotate(dt float32, normalize bool) {
	pose := r.pose()

	r.angularMomentum = rl.Vector3Add(r.angularMomentum, rl.Vector3Scale(r.torque, dt))

	h := 0.5 * dt
	delta := rl.Quaternion{
		X: h * r.angularMomentum.X / r.InertiaTensor.X,
		Y: h * r.angularMomentum.Y / r.InertiaTensor.Y,
		Z: h * r.angularMomentum.Z / r.InertiaTensor.Z,
		W: 1,
	}
	rotation := rl.QuaternionMultiply(delta, pose.Rotation)
	if normalize {
		rotation = rl.QuaternionNormalize(rotation)
	}
	pose.Rotation = rotation

	r.torque = rl.Vector3{}
}
