package physics

import (
	"obbsim/internal/engine"

	"github.com/elliotchance/orderedmap/v2"
)

// pairKey identifies an unordered pair of colliders by owner UID, lower first.
type pairKey struct {
	A, B uint64
}

func makePairKey(a, b *OrientedBoundingBox) pairKey {
	ua, ub := uidOf(a), uidOf(b)
	if ua > ub {
		ua, ub = ub, ua
	}
	return pairKey{A: ua, B: ub}
}

// updateContacts diffs this tick's collisions against the previous tick's and
// dispatches enter events in detection order, then exit events in the order
// the pairs first appeared.
func (p *PhysicsWorld) updateContacts(collisions []Collision) {
	current := orderedmap.NewOrderedMap[pairKey, Collision]()
	for _, c := range collisions {
		current.Set(makePairKey(c.A, c.B), c)
	}

	for el := current.Front(); el != nil; el = el.Next() {
		if _, ok := p.contacts.Get(el.Key); !ok {
			p.notifyEnter(el.Value)
		}
	}

	for el := p.contacts.Front(); el != nil; el = el.Next() {
		if _, ok := current.Get(el.Key); !ok {
			p.notifyExit(el.Value)
		}
	}

	// Carry pairs forward in first-seen order so exit order stays stable.
	next := orderedmap.NewOrderedMap[pairKey, Collision]()
	for el := p.contacts.Front(); el != nil; el = el.Next() {
		if c, ok := current.Get(el.Key); ok {
			next.Set(el.Key, c)
		}
	}
	for el := current.Front(); el != nil; el = el.Next() {
		if _, ok := next.Get(el.Key); !ok {
			next.Set(el.Key, el.Value)
		}
	}
	p.contacts = next
}

// forgetContacts drops every tracked pair involving g.
func (p *PhysicsWorld) forgetContacts(g *engine.GameObject) {
	var stale []pairKey
	for el := p.contacts.Front(); el != nil; el = el.Next() {
		if el.Key.A == g.UID || el.Key.B == g.UID {
			stale = append(stale, el.Key)
		}
	}
	for _, k := range stale {
		p.contacts.Delete(k)
	}
}

// ContactCount returns how many pairs are currently touching.
func (p *PhysicsWorld) ContactCount() int {
	return p.contacts.Len()
}

func (p *PhysicsWorld) notifyEnter(c Collision) {
	a, b := c.A.GetGameObject(), c.B.GetGameObject()
	notifyHandlers(a, b, engine.CollisionHandler.OnCollisionEnter)
	notifyHandlers(b, a, engine.CollisionHandler.OnCollisionEnter)
	p.Entered.Invoke(ContactEvent{A: a, B: b, Collision: c})
}

func (p *PhysicsWorld) notifyExit(c Collision) {
	a, b := c.A.GetGameObject(), c.B.GetGameObject()
	notifyHandlers(a, b, engine.CollisionHandler.OnCollisionExit)
	notifyHandlers(b, a, engine.CollisionHandler.OnCollisionExit)
	p.Exited.Invoke(ContactEvent{A: a, B: b, Collision: c})
}

// notifyHandlers calls fn on every CollisionHandler component of obj.
func notifyHandlers(obj, other *engine.GameObject, fn func(engine.CollisionHandler, *engine.GameObject)) {
	if obj == nil {
		return
	}
	for _, h := range engine.GetComponents[engine.CollisionHandler](obj) {
		fn(h, other)
	}
}
