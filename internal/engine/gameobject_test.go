package engine

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func vecNear(a, b rl.Vector3, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol && math32.Abs(a.Y-b.Y) <= tol && math32.Abs(a.Z-b.Z) <= tol
}

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}

	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}

	if obj.Transform.Rotation != rl.QuaternionIdentity() {
		t.Errorf("Expected identity rotation, got %v", obj.Transform.Rotation)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

type countingComponent struct {
	BaseComponent
	updates int
}

func (c *countingComponent) Update(deltaTime float32) { c.updates++ }

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	base := &BaseComponent{}
	counter := &countingComponent{}

	obj.AddComponent(base)
	obj.AddComponent(counter)

	if found := GetComponent[*BaseComponent](obj); found != base {
		t.Error("GetComponent failed to find component")
	}

	if found := GetComponent[*countingComponent](obj); found != counter {
		t.Error("GetComponent failed to find embedded component type")
	}

	if got := len(GetComponents[Component](obj)); got != 2 {
		t.Errorf("Expected 2 components, got %d", got)
	}
}

func TestGameObjectInactiveSkipsUpdate(t *testing.T) {
	obj := NewGameObject("Test")
	counter := &countingComponent{}
	obj.AddComponent(counter)

	obj.Update(0.02)
	obj.Active = false
	obj.Update(0.02)

	if counter.updates != 1 {
		t.Errorf("Expected 1 update, got %d", counter.updates)
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	obj.Start() // Should not panic or cause issues
}

func TestTransformAxes(t *testing.T) {
	tr := NewTransform(rl.Vector3{})
	tr.SetEuler(rl.Vector3{Y: 90})

	// +90 degrees about Y maps +X onto -Z and +Z onto +X.
	if !vecNear(tr.Right(), rl.Vector3{Z: -1}, 1e-5) {
		t.Errorf("Expected right (0,0,-1), got %v", tr.Right())
	}
	if !vecNear(tr.Up(), rl.Vector3{Y: 1}, 1e-5) {
		t.Errorf("Expected up (0,1,0), got %v", tr.Up())
	}
	if !vecNear(tr.Forward(), rl.Vector3{X: 1}, 1e-5) {
		t.Errorf("Expected forward (1,0,0), got %v", tr.Forward())
	}
}

func TestTransformPoint(t *testing.T) {
	tr := NewTransform(rl.Vector3{X: 10})
	tr.Scale = rl.Vector3{X: 2, Y: 3, Z: 4}

	got := tr.TransformPoint(rl.Vector3{X: 1, Y: 1, Z: 1})
	want := rl.Vector3{X: 12, Y: 3, Z: 4}
	if !vecNear(got, want, 1e-5) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
