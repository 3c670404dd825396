package physics

// CollisionWorld runs brute-force narrow-phase detection over a registered
// shape set. There is no broad phase: every unordered pair is tested each
// tick.
type CollisionWorld struct {
	colliders  []*OrientedBoundingBox
	collisions []Collision
}

func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{}
}

// RegisterShapes replaces the set of shapes tested for collisions. The slice
// is copied; registration order is pair enumeration order.
func (c *CollisionWorld) RegisterShapes(shapes []*OrientedBoundingBox) {
	c.colliders = append([]*OrientedBoundingBox(nil), shapes...)
}

// Shapes returns the registered shapes.
func (c *CollisionWorld) Shapes() []*OrientedBoundingBox {
	return c.colliders
}

// Collisions returns the set built by the most recent UpdateCollisions.
func (c *CollisionWorld) Collisions() []Collision {
	return c.collisions
}

// UpdateCollisions discards the previous tick's collisions and rebuilds the
// set from current poses. Pairs (i, j) are visited with i < j in registration
// order. The returned slice is never reused by later ticks.
func (c *CollisionWorld) UpdateCollisions() []Collision {
	c.collisions = nil
	if len(c.colliders) < 2 {
		return nil
	}

	for i := 0; i < len(c.colliders); i++ {
		for j := i + 1; j < len(c.colliders); j++ {
			if collision, ok := Detect(c.colliders[i], c.colliders[j]); ok {
				c.collisions = append(c.collisions, collision)
			}
		}
	}
	return c.collisions
}
