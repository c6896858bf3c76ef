package doodle

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- Rectangle ---

// Rectangle is a filled rectangle whose origin is its top-left corner.
type Rectangle struct {
	node
	width, height float64
	mesh          fillMesh
}

// NewRectangle creates a detached rectangle. The fill defaults to black.
func NewRectangle(width, height float64, fill ...Color) *Rectangle {
	r := &Rectangle{width: width, height: height}
	r.init(r, fillOrBlack(fill))
	r.mesh.dirty = true
	return r
}

// Kind returns KindRectangle.
func (r *Rectangle) Kind() ShapeKind { return KindRectangle }

// Size returns the rectangle's width and height.
func (r *Rectangle) Size() (width, height float64) { return r.width, r.height }

// SetSize changes the rectangle's width and height.
func (r *Rectangle) SetSize(width, height float64) {
	r.width = width
	r.height = height
	r.mesh.dirty = true
}

// LocalBounds returns (0, 0, width, height), normalized for negative sizes.
func (r *Rectangle) LocalBounds() Rect {
	return Rect{
		X:      math.Min(0, r.width),
		Y:      math.Min(0, r.height),
		Width:  math.Abs(r.width),
		Height: math.Abs(r.height),
	}
}

func (r *Rectangle) containsLocal(x, y float64) bool {
	return r.LocalBounds().Contains(x, y)
}

func (r *Rectangle) emit(s *Scene, world [6]float64) {
	if r.mesh.dirty {
		var p vector.Path
		w, h := float32(r.width), float32(r.height)
		p.MoveTo(0, 0)
		p.LineTo(w, 0)
		p.LineTo(w, h)
		p.LineTo(0, h)
		p.Close()
		r.mesh.build(&p)
	}
	s.pushMesh(r.mesh.transform(world, r.fill), r.mesh.inds)
}

// --- Circle ---

// Circle is a filled circle centered on its position.
type Circle struct {
	node
	radius float64
	mesh   fillMesh
}

// NewCircle creates a detached circle. The fill defaults to black.
func NewCircle(radius float64, fill ...Color) *Circle {
	c := &Circle{radius: radius}
	c.init(c, fillOrBlack(fill))
	c.mesh.dirty = true
	return c
}

// Kind returns KindCircle.
func (c *Circle) Kind() ShapeKind { return KindCircle }

// Radius returns the circle's radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius changes the circle's radius.
func (c *Circle) SetRadius(radius float64) {
	c.radius = radius
	c.mesh.dirty = true
}

// LocalBounds returns the square around the center with side 2*radius.
func (c *Circle) LocalBounds() Rect {
	r := math.Abs(c.radius)
	return Rect{X: -r, Y: -r, Width: 2 * r, Height: 2 * r}
}

func (c *Circle) containsLocal(x, y float64) bool {
	return x*x+y*y <= c.radius*c.radius
}

func (c *Circle) emit(s *Scene, world [6]float64) {
	if c.mesh.dirty {
		var p vector.Path
		p.Arc(0, 0, float32(math.Abs(c.radius)), 0, 2*math.Pi, vector.Clockwise)
		p.Close()
		c.mesh.build(&p)
	}
	s.pushMesh(c.mesh.transform(world, c.fill), c.mesh.inds)
}

// --- Ellipse ---

// Ellipse is a filled ellipse centered on its position. Its size is given
// as half-extents: the ellipse spans 2*rx by 2*ry.
type Ellipse struct {
	node
	rx, ry float64
	mesh   fillMesh
}

// NewEllipse creates a detached ellipse with half-extents rx and ry. The
// fill defaults to black.
func NewEllipse(rx, ry float64, fill ...Color) *Ellipse {
	e := &Ellipse{rx: rx, ry: ry}
	e.init(e, fillOrBlack(fill))
	e.mesh.dirty = true
	return e
}

// Kind returns KindEllipse.
func (e *Ellipse) Kind() ShapeKind { return KindEllipse }

// Radii returns the horizontal and vertical half-extents.
func (e *Ellipse) Radii() (rx, ry float64) { return e.rx, e.ry }

// SetRadii changes the half-extents.
func (e *Ellipse) SetRadii(rx, ry float64) {
	e.rx = rx
	e.ry = ry
	e.mesh.dirty = true
}

// LocalBounds returns (-rx, -ry, 2*rx, 2*ry).
func (e *Ellipse) LocalBounds() Rect {
	rx, ry := math.Abs(e.rx), math.Abs(e.ry)
	return Rect{X: -rx, Y: -ry, Width: 2 * rx, Height: 2 * ry}
}

func (e *Ellipse) containsLocal(x, y float64) bool {
	if e.rx == 0 || e.ry == 0 {
		return false
	}
	nx := x / e.rx
	ny := y / e.ry
	return nx*nx+ny*ny <= 1
}

func (e *Ellipse) emit(s *Scene, world [6]float64) {
	if e.mesh.dirty {
		rx, ry := math.Abs(e.rx), math.Abs(e.ry)
		rmax := math.Max(rx, ry)
		var p vector.Path
		if rmax > 0 {
			// Flatten at the larger radius, then squash the short axis.
			p.Arc(0, 0, float32(rmax), 0, 2*math.Pi, vector.Clockwise)
			p.Close()
		}
		e.mesh.build(&p)
		if rmax > 0 {
			e.mesh.scale(float32(rx/rmax), float32(ry/rmax))
		}
	}
	s.pushMesh(e.mesh.transform(world, e.fill), e.mesh.inds)
}
