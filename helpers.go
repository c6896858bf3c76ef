package doodle

// OnClick makes s interactive and runs fn whenever it is clicked (pressed
// and released over the shape). It returns s for chaining.
func OnClick[S Shape](s S, fn func(PointerEvent)) S {
	s.SetInteractive(true)
	s.On(EventClick, fn)
	return s
}

// Move sets the position of s relative to its parent.
func Move[S Shape](s S, x, y float64) S {
	s.SetPosition(x, y)
	return s
}

// MoveBy offsets the position of s by (dx, dy).
func MoveBy[S Shape](s S, dx, dy float64) S {
	p := s.Position()
	return Move(s, p.X+dx, p.Y+dy)
}

// Remove detaches s from its parent. The shape is not destroyed: it stops
// being drawn and hit-tested and may be added again.
func Remove[S Shape](s S) S {
	if p := s.Parent(); p != nil {
		p.Remove(s)
	}
	return s
}

// Draggable makes s follow the pointer while pressed. Pressing on the
// shape captures the pointer; every move of the captured pointer places
// the shape's origin under the pointer, with no grab offset; releasing
// anywhere ends the drag.
func Draggable[S Shape](s S) S {
	s.SetInteractive(true)
	s.On(EventPointerDown, func(e PointerEvent) {
		e.Capture()
	})
	s.On(EventPointerMove, func(e PointerEvent) {
		if !e.Captured() {
			return
		}
		x, y := e.GlobalX, e.GlobalY
		if p := s.Parent(); p != nil {
			x, y = p.WorldToLocal(x, y)
		}
		s.SetPosition(x, y)
	})
	release := func(e PointerEvent) { e.ReleaseCapture() }
	s.On(EventPointerUp, release)
	s.On(EventPointerUpOutside, release)
	return s
}

// Collides reports whether the world-space bounding boxes of a and b
// overlap. Touching edges count as overlapping.
func Collides(a, b Shape) bool {
	return a.Bounds().Intersects(b.Bounds())
}
