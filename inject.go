package doodle

// syntheticPointerEvent represents a single injected pointer event in root
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// injectedKey is a queued key edge.
type injectedKey struct {
	action KeyAction
	event  KeyEvent
}

// InjectPress queues a pointer press event at the given coordinates
// (left button). The event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectKeyDown queues a key press for the next Update.
func (s *Scene) InjectKeyDown(code KeyCode) {
	s.keyQueue = append(s.keyQueue, injectedKey{action: KeyPressed, event: injectedKeyEvent(code)})
}

// InjectKeyUp queues a key release for the next Update.
func (s *Scene) InjectKeyUp(code KeyCode) {
	s.keyQueue = append(s.keyQueue, injectedKey{action: KeyReleased, event: injectedKeyEvent(code)})
}

// InjectKey queues a press and a release of code, delivered in the same
// frame.
func (s *Scene) InjectKey(code KeyCode) {
	s.InjectKeyDown(code)
	s.InjectKeyUp(code)
}

func injectedKeyEvent(code KeyCode) KeyEvent {
	ev := KeyEvent{Code: code, Key: -1}
	for k, c := range keyCodes {
		if c == code && (ev.Key < 0 || k < ev.Key) {
			ev.Key = k
		}
	}
	return ev
}

// pendingInput reports whether injected pointer or key events are queued.
func (s *Scene) pendingInput() bool {
	return len(s.injectQueue) > 0 || len(s.keyQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer as the mouse. Returns true if an event was
// consumed (real mouse input should be skipped).
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.x, evt.y, evt.pressed, evt.button, mods)
	return true
}
