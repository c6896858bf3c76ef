package doodle

import (
	"reflect"
	"testing"
)

// step runs n Updates and fails the test on error.
func step(t *testing.T, s *Scene, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

// --- Hit testing ---

func TestHitTestTopmost(t *testing.T) {
	s := newTestScene()
	bottom := s.Rectangle(0, 0, 100, 100)
	top := s.Rectangle(50, 50, 100, 100)
	bottom.SetInteractive(true)
	top.SetInteractive(true)

	if got := s.HitTest(75, 75); got != top {
		t.Errorf("overlap hit = %v, want top", got)
	}
	if got := s.HitTest(10, 10); got != bottom {
		t.Errorf("hit = %v, want bottom", got)
	}
	if got := s.HitTest(500, 500); got != nil {
		t.Errorf("miss = %v, want nil", got)
	}
}

func TestHitTestSkipsHiddenAndPassive(t *testing.T) {
	s := newTestScene()
	passive := s.Rectangle(0, 0, 10, 10)
	hidden := s.Rectangle(0, 0, 10, 10)
	hidden.SetInteractive(true)
	hidden.SetVisible(false)
	if got := s.HitTest(5, 5); got != nil {
		t.Errorf("hit = %v, want nil (passive=%v)", got, passive)
	}

	g := NewContainer()
	g.SetVisible(false)
	s.Add(g)
	inner := NewRectangle(10, 10)
	inner.SetInteractive(true)
	g.Add(inner)
	if got := s.HitTest(5, 5); got != nil {
		t.Error("children of hidden containers should not be hit")
	}
}

func TestHitTestShapeGeometry(t *testing.T) {
	s := newTestScene()
	c := s.Circle(50, 50, 10)
	c.SetInteractive(true)
	if s.HitTest(50, 50) != c {
		t.Error("center should hit the circle")
	}
	if s.HitTest(59, 59) != nil {
		t.Error("bounding box corner should miss the circle")
	}
}

// --- Click ---

func TestInjectClickFiresClick(t *testing.T) {
	s := newTestScene()
	var clicks int
	r := OnClick(s.Rectangle(0, 0, 100, 100), func(e PointerEvent) {
		clicks++
		if e.Type != EventClick {
			t.Errorf("Type = %v, want EventClick", e.Type)
		}
		if e.LocalX != 40 || e.LocalY != 50 {
			t.Errorf("Local = (%v, %v), want (40, 50)", e.LocalX, e.LocalY)
		}
	})
	Move(r, 10, 0)

	s.InjectClick(50, 50)
	step(t, s, 1)
	if clicks != 0 {
		t.Fatal("click should not fire on press frame")
	}
	step(t, s, 1)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestClickEventOrder(t *testing.T) {
	s := newTestScene()
	r := s.Rectangle(0, 0, 100, 100)
	r.SetInteractive(true)
	var got []EventType
	record := func(e PointerEvent) { got = append(got, e.Type) }
	for _, ev := range []EventType{EventPointerDown, EventPointerUp, EventClick, EventPointerEnter} {
		r.On(ev, record)
	}

	s.InjectClick(50, 50)
	step(t, s, 2)

	want := []EventType{EventPointerEnter, EventPointerDown, EventPointerUp, EventClick}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestReleaseOutsideFiresUpOutside(t *testing.T) {
	s := newTestScene()
	r := s.Rectangle(0, 0, 50, 50)
	r.SetInteractive(true)
	var clicked, outside bool
	r.On(EventClick, func(PointerEvent) { clicked = true })
	r.On(EventPointerUpOutside, func(PointerEvent) { outside = true })

	s.InjectPress(10, 10)
	s.InjectRelease(200, 200)
	step(t, s, 2)

	if clicked {
		t.Error("click should not fire when released elsewhere")
	}
	if !outside {
		t.Error("up-outside should fire on the pressed shape")
	}
}

// --- Scene-level handlers ---

func TestSceneHandlersFireFirst(t *testing.T) {
	s := newTestScene()
	var order []string
	r := OnClick(s.Rectangle(0, 0, 10, 10), func(PointerEvent) { order = append(order, "shape") })
	s.On(EventClick, func(e PointerEvent) {
		order = append(order, "scene")
		if e.Target != r {
			t.Error("scene handler should see the target")
		}
	})

	s.InjectClick(5, 5)
	step(t, s, 2)
	if !reflect.DeepEqual(order, []string{"scene", "shape"}) {
		t.Errorf("order = %v, want [scene shape]", order)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := newTestScene()
	var a, b int
	ha := s.On(EventPointerDown, func(PointerEvent) { a++ })
	s.On(EventPointerDown, func(PointerEvent) { b++ })

	s.InjectClick(5, 5)
	step(t, s, 2)
	ha.Remove()
	ha.Remove() // second remove is a no-op
	s.InjectClick(5, 5)
	step(t, s, 2)

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want a=1 b=2", a, b)
	}
	CallbackHandle{}.Remove() // zero handle is safe
}

func TestSceneHandlerWithoutTarget(t *testing.T) {
	s := newTestScene()
	var target Shape = NewRectangle(1, 1)
	s.On(EventPointerDown, func(e PointerEvent) { target = e.Target })
	s.InjectPress(300, 300)
	step(t, s, 1)
	if target != nil {
		t.Errorf("Target = %v, want nil over empty space", target)
	}
}

// --- Enter / Leave / Move ---

func TestEnterLeave(t *testing.T) {
	s := newTestScene()
	r := s.Rectangle(0, 0, 10, 10)
	r.SetInteractive(true)
	var got []EventType
	r.On(EventPointerEnter, func(e PointerEvent) { got = append(got, e.Type) })
	r.On(EventPointerLeave, func(e PointerEvent) { got = append(got, e.Type) })

	s.InjectHover(5, 5)
	s.InjectHover(6, 6)
	s.InjectHover(50, 50)
	step(t, s, 3)

	want := []EventType{EventPointerEnter, EventPointerLeave}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestMoveFiresWhetherPressedOrNot(t *testing.T) {
	s := newTestScene()
	r := s.Rectangle(0, 0, 100, 100)
	r.SetInteractive(true)
	var moves int
	r.On(EventPointerMove, func(PointerEvent) { moves++ })

	s.InjectHover(10, 10) // hover move
	s.InjectPress(10, 10) // no position change
	s.InjectMove(20, 20)  // pressed move
	s.InjectRelease(20, 20)
	step(t, s, 4)

	if moves != 2 {
		t.Errorf("moves = %d, want 2", moves)
	}
}

// --- Draggable ---

func TestDraggableFollowsPointer(t *testing.T) {
	s := newTestScene()
	r := Draggable(s.Rectangle(0, 0, 20, 20))

	s.InjectDrag(10, 10, 200, 150, 5)
	step(t, s, 3)
	if s.captured[0] != r {
		t.Fatal("pointer should be captured mid-drag")
	}
	step(t, s, 2)

	if got := r.Position(); got != (Vec2{200, 150}) {
		t.Errorf("Position = %v, want (200, 150)", got)
	}
	if s.captured[0] != nil {
		t.Error("capture should be released after the drag")
	}

	// Hovering afterwards does not move the shape.
	s.InjectHover(300, 300)
	step(t, s, 1)
	if got := r.Position(); got != (Vec2{200, 150}) {
		t.Errorf("Position after hover = %v, want unchanged", got)
	}
}

func TestDraggableNoGrabOffset(t *testing.T) {
	s := newTestScene()
	r := Draggable(s.Rectangle(100, 100, 50, 50))

	s.InjectPress(140, 140)
	s.InjectMove(141, 141)
	step(t, s, 2)
	if got := r.Position(); got != (Vec2{141, 141}) {
		t.Errorf("Position = %v, want (141, 141)", got)
	}
}

func TestDraggableInsideOffsetContainer(t *testing.T) {
	s := newTestScene()
	g := NewContainer()
	g.SetPosition(100, 0)
	s.Add(g)
	r := NewRectangle(20, 20)
	r.SetPosition(0, 0)
	g.Add(r)
	Draggable(r)

	s.InjectDrag(105, 5, 150, 50, 3)
	step(t, s, 3)
	if got := r.Position(); got != (Vec2{50, 50}) {
		t.Errorf("Position = %v, want (50, 50) in parent space", got)
	}
}

// --- Capture ---

func TestCaptureRoutesToShape(t *testing.T) {
	s := newTestScene()
	r := s.Rectangle(0, 0, 10, 10)
	r.SetInteractive(true)
	var ups int
	r.On(EventPointerUp, func(PointerEvent) { ups++ })

	s.CapturePointer(0, r)
	s.InjectPress(100, 100)
	s.InjectRelease(100, 100)
	step(t, s, 2)

	if ups != 1 {
		t.Errorf("ups = %d, want 1", ups)
	}
	s.CapturePointer(-1, r)
	s.ReleasePointer(maxPointers)
}
