package doodle

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PointerEvent describes a pointer interaction delivered to scene-level and
// per-shape handlers.
type PointerEvent struct {
	Type EventType
	// Target is the shape under (or capturing) the pointer, or nil.
	Target    Shape
	PointerID int
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers

	scene *Scene
}

// Scene returns the scene that dispatched the event.
func (e PointerEvent) Scene() *Scene { return e.scene }

// Capture routes further events for this pointer to the event target until
// the pointer is released.
func (e PointerEvent) Capture() {
	if e.scene != nil && e.Target != nil {
		e.scene.CapturePointer(e.PointerID, e.Target)
	}
}

// ReleaseCapture stops routing this pointer to a captured shape.
func (e PointerEvent) ReleaseCapture() {
	if e.scene != nil {
		e.scene.ReleasePointer(e.PointerID)
	}
}

// Captured reports whether this pointer is currently captured by the event
// target.
func (e PointerEvent) Captured() bool {
	if e.scene == nil || e.Target == nil || e.PointerID < 0 || e.PointerID >= maxPointers {
		return false
	}
	return e.scene.captured[e.PointerID] == e.Target
}

// --- Device polling ---

// inputSource abstracts device polling so scenes can run without a window.
type inputSource interface {
	cursor() (x, y float64)
	mouse() (pressed bool, button MouseButton)
	touchIDs(buf []ebiten.TouchID) []ebiten.TouchID
	touchPosition(id ebiten.TouchID) (x, y float64)
	modifiers() KeyModifiers
	pressedKeys(buf []ebiten.Key) []ebiten.Key
	// keyPressDuration is the number of ticks k has been held, 1 on the
	// tick it went down.
	keyPressDuration(k ebiten.Key) int
	justReleasedKeys(buf []ebiten.Key) []ebiten.Key
}

// ebitenInput polls Ebitengine's global input state.
type ebitenInput struct{}

func (ebitenInput) cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func (ebitenInput) mouse() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

func (ebitenInput) touchIDs(buf []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(buf)
}

func (ebitenInput) touchPosition(id ebiten.TouchID) (float64, float64) {
	x, y := ebiten.TouchPosition(id)
	return float64(x), float64(y)
}

func (ebitenInput) modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

func (ebitenInput) pressedKeys(buf []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(buf)
}

func (ebitenInput) keyPressDuration(k ebiten.Key) int {
	return inpututil.KeyPressDuration(k)
}

func (ebitenInput) justReleasedKeys(buf []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(buf)
}

// idleInput reports no devices. Headless scenes only see injected input.
type idleInput struct{}

func (idleInput) cursor() (float64, float64)                      { return 0, 0 }
func (idleInput) mouse() (bool, MouseButton)                      { return false, MouseButtonLeft }
func (idleInput) touchIDs(buf []ebiten.TouchID) []ebiten.TouchID  { return buf }
func (idleInput) touchPosition(ebiten.TouchID) (float64, float64) { return 0, 0 }
func (idleInput) modifiers() KeyModifiers                         { return 0 }
func (idleInput) pressedKeys(buf []ebiten.Key) []ebiten.Key       { return buf }
func (idleInput) keyPressDuration(ebiten.Key) int                 { return 0 }
func (idleInput) justReleasedKeys(buf []ebiten.Key) []ebiten.Key  { return buf }

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitShape  Shape       // shape under the pointer at press time
	hoverNode Shape       // last shape the pointer was over (for enter/leave)
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type sceneHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	byEvent [numEventTypes][]sceneHandler
	nextID  uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	list := h.reg.byEvent[h.event]
	for i := range list {
		if list[i].id == h.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = sceneHandler{}
			h.reg.byEvent[h.event] = list[:len(list)-1]
			return
		}
	}
}

// On registers a scene-level callback for the given pointer event. Scene
// handlers fire before the target shape's own handlers, and also fire when
// no shape is under the pointer (Target is nil).
func (s *Scene) On(event EventType, fn func(PointerEvent)) CallbackHandle {
	if event >= numEventTypes {
		panic(fmt.Sprintf("doodle: unknown event type %d", event))
	}
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byEvent[event] = append(s.handlers.byEvent[event], sceneHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// CapturePointer routes all events for pointerID to the given shape.
func (s *Scene) CapturePointer(pointerID int, sh Shape) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = sh
	}
}

// ReleasePointer stops routing events for pointerID to a captured shape.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// --- Hit testing ---

// collectInteractive walks the tree in paint order, appending interactive
// leaf shapes to buf. Invisible subtrees are skipped.
func collectInteractive(sh Shape, buf []Shape) []Shape {
	n := sh.base()
	if !n.visible {
		return buf
	}
	if c, ok := sh.(*Container); ok {
		for _, child := range c.children {
			buf = collectInteractive(child, buf)
		}
		return buf
	}
	if n.interactive {
		buf = append(buf, sh)
	}
	return buf
}

// HitTest returns the topmost interactive shape at the world point, or nil.
func (s *Scene) HitTest(wx, wy float64) Shape {
	s.hitBuf = collectInteractive(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		sh := s.hitBuf[i]
		lx, ly := sh.base().WorldToLocal(wx, wy)
		if sh.containsLocal(lx, ly) {
			return sh
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update to handle pointers and keys.
func (s *Scene) processInput() {
	mods := s.input.modifiers()

	// Injected pointer events take precedence over the real mouse. Headless
	// scenes have no mouse: between injected events pointer 0 stays where
	// the last one left it, pressed or not.
	if !s.processInjectedInput(mods) && !s.opts.Headless {
		s.processMousePointer(mods)
	}
	s.processTouchPointers(mods)
	s.processKeys(mods)
}

// processMousePointer handles mouse input (pointer 0). Screen and world
// coordinates coincide: the root has no camera.
func (s *Scene) processMousePointer(mods KeyModifiers) {
	wx, wy := s.input.cursor()
	pressed, button := s.input.mouse()
	s.processPointer(0, wx, wy, pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := s.input.touchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := s.input.touchPosition(tid)
		s.processPointer(slot, tx, ty, true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
//
// A position change fires EventPointerMove before any press or release at
// the new position, so a drag always reaches its final point.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	if ps.down {
		button = ps.button
	}

	over := s.HitTest(wx, wy)
	target := over
	if c := s.captured[pointerID]; c != nil {
		target = c
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.fire(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, mods)
		}
		if target != nil {
			s.fire(EventPointerEnter, target, pointerID, wx, wy, button, mods)
		}
		ps.hoverNode = target
	}

	if wx != ps.lastX || wy != ps.lastY {
		s.fire(EventPointerMove, target, pointerID, wx, wy, button, mods)
		ps.lastX = wx
		ps.lastY = wy
		// A move handler may have captured or released the pointer.
		if c := s.captured[pointerID]; c != nil {
			target = c
		}
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitShape = target
		s.fire(EventPointerDown, target, pointerID, wx, wy, button, mods)

	case !pressed && ps.down:
		hit := ps.hitShape
		captured := s.captured[pointerID]
		if captured != nil {
			target = captured
		}

		s.fire(EventPointerUp, target, pointerID, wx, wy, button, mods)
		if captured == nil && hit != nil && hit != over {
			s.fire(EventPointerUpOutside, hit, pointerID, wx, wy, button, mods)
		}
		if hit != nil && hit == over {
			s.fire(EventClick, hit, pointerID, wx, wy, button, mods)
		}

		// Auto-release capture.
		s.captured[pointerID] = nil
		ps.down = false
		ps.hitShape = nil
	}
}

// fire dispatches one event: scene-level handlers first, then the
// target's own handlers in registration order.
func (s *Scene) fire(typ EventType, target Shape, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ev := PointerEvent{
		Type:      typ,
		Target:    target,
		PointerID: pointerID,
		GlobalX:   wx,
		GlobalY:   wy,
		Button:    button,
		Modifiers: mods,
		scene:     s,
	}
	if target != nil {
		ev.LocalX, ev.LocalY = target.base().WorldToLocal(wx, wy)
	}
	for _, h := range s.handlers.byEvent[typ] {
		h.fn(ev)
	}
	if target != nil {
		for _, fn := range target.base().handlers[typ] {
			fn(ev)
		}
	}
}
