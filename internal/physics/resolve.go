package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ResolveCollisions resolves each collision independently in slice order and
// returns how many produced a response. Later corrections may undo earlier
// ones in the same tick; there is no iterative solver.
func ResolveCollisions(collisions []Collision) int {
	resolved := 0
	for i := range collisions {
		if resolveCollision(&collisions[i]) {
			resolved++
		}
	}
	return resolved
}

// resolveCollision pushes the bodies apart by half the depth each and applies
// an impulse along the normal. A side without a body is immovable and adds
// nothing to the velocity or inverse-mass terms.
func resolveCollision(c *Collision) bool {
	rb1, hasA := c.A.Body()
	rb2, hasB := c.B.Body()
	if !hasA && !hasB {
		return false
	}

	separation := rl.Vector3Scale(c.Normal, c.Depth/2)

	var relativeVelocity rl.Vector3
	switch {
	case hasA && hasB:
		relativeVelocity = rl.Vector3Subtract(rb2.LinearVelocity(), rb1.LinearVelocity())
	case hasA:
		relativeVelocity = rl.Vector3Negate(rb1.LinearVelocity())
	default:
		relativeVelocity = rb2.LinearVelocity()
	}

	// Orient the push so the bodies move apart along their closing direction.
	if rl.Vector3DotProduct(separation, relativeVelocity) > 0 {
		if hasA {
			translate(rb1, separation)
		}
		if hasB {
			translate(rb2, rl.Vector3Negate(separation))
		}
	} else {
		if hasA {
			translate(rb1, rl.Vector3Negate(separation))
		}
		if hasB {
			translate(rb2, separation)
		}
	}

	var restitution, v1Dot, v2Dot, summedInverseMasses float32
	switch {
	case hasA && hasB:
		restitution = (rb1.Restitution + rb2.Restitution) / 2
	case hasA:
		restitution = rb1.Restitution
	default:
		restitution = rb2.Restitution
	}
	if hasA {
		v1Dot = rl.Vector3DotProduct(rb1.LinearVelocity(), c.Normal)
		summedInverseMasses += 1 / rb1.Mass
	}
	if hasB {
		v2Dot = rl.Vector3DotProduct(rb2.LinearVelocity(), c.Normal)
		summedInverseMasses += 1 / rb2.Mass
	}

	pHat := (restitution + 1) * (v2Dot - v1Dot) / summedInverseMasses
	impulse := rl.Vector3Scale(c.Normal, pHat)

	// Impulse is always a supported mode, so these cannot fail.
	if hasA {
		_ = rb1.AddForce(impulse, ForceModeImpulse)
	}
	if hasB {
		_ = rb2.AddForce(rl.Vector3Negate(impulse), ForceModeImpulse)
	}

	c.Resolved = true
	return true
}

func translate(rb *RigidBody, offset rl.Vector3) {
	pose := rb.pose()
	pose.Position = rl.Vector3Add(pose.Position, offset)
}
