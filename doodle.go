package doodle

// Vec2 is a 2D vector used for positions, offsets, and polygon points.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ShapeKind distinguishes the concrete shape behind a Shape handle.
type ShapeKind uint8

const (
	KindContainer ShapeKind = iota // group with no visual output
	KindRectangle                  // filled axis-aligned rectangle
	KindCircle                     // filled circle centered on its position
	KindEllipse                    // filled ellipse centered on its position
	KindPolygon                    // filled polygon, origin at its top-left bound
	KindText                       // single or multi-line text
	KindSprite                     // image drawn at its top-left
)

var kindNames = [...]string{
	KindContainer: "container",
	KindRectangle: "rectangle",
	KindCircle:    "circle",
	KindEllipse:   "ellipse",
	KindPolygon:   "polygon",
	KindText:      "text",
	KindSprite:    "sprite",
}

// String returns the lower-case name of the kind.
func (k ShapeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// EventType identifies a kind of pointer interaction event.
type EventType uint8

const (
	EventPointerDown      EventType = iota // a pointer button is pressed over the shape
	EventPointerUp                         // a pointer button is released over the shape
	EventPointerUpOutside                  // released elsewhere after being pressed on the shape
	EventPointerMove                       // the pointer moved (pressed or not)
	EventClick                             // press then release over the same shape
	EventPointerEnter                      // the pointer entered the shape
	EventPointerLeave                      // the pointer left the shape
	numEventTypes
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
