package doodle

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Polygon is a filled polygon. Its points are stored relative to the
// top-left of their bounding box, and its position is that top-left corner
// in parent space. Concave polygons are filled with the non-zero rule.
type Polygon struct {
	node
	points []Vec2
	bounds Rect
	mesh   fillMesh
}

// NewPolygon creates a detached polygon from parent-space points. The points
// are copied and normalized: the minimum x and y are subtracted from every
// point and become the polygon's position. The fill defaults to black.
func NewPolygon(points []Vec2, fill ...Color) *Polygon {
	p := &Polygon{}
	p.init(p, fillOrBlack(fill))
	p.SetPoints(points)
	return p
}

// NewTriangle creates a detached three-point polygon.
func NewTriangle(x1, y1, x2, y2, x3, y3 float64, fill ...Color) *Polygon {
	return NewPolygon([]Vec2{{x1, y1}, {x2, y2}, {x3, y3}}, fill...)
}

// Kind returns KindPolygon.
func (p *Polygon) Kind() ShapeKind { return KindPolygon }

// Points returns the normalized local points. The returned slice MUST NOT be
// mutated by the caller.
func (p *Polygon) Points() []Vec2 {
	return p.points
}

// SetPoints replaces the outline with parent-space points, normalizing them
// and moving the polygon to their minimum corner.
func (p *Polygon) SetPoints(points []Vec2) {
	local, origin := normalizePoints(points)
	p.points = local
	p.x, p.y = origin.X, origin.Y
	p.bounds = pointsBounds(local)
	p.mesh.dirty = true
}

// LocalBounds returns the bounding box of the normalized points, which
// always starts at (0, 0).
func (p *Polygon) LocalBounds() Rect {
	return p.bounds
}

func (p *Polygon) containsLocal(x, y float64) bool {
	if len(p.points) < 3 || !p.bounds.Contains(x, y) {
		return false
	}
	return pointInPolygon(p.points, x, y)
}

func (p *Polygon) emit(s *Scene, world [6]float64) {
	if len(p.points) < 3 {
		return
	}
	if p.mesh.dirty {
		var path vector.Path
		path.MoveTo(float32(p.points[0].X), float32(p.points[0].Y))
		for _, pt := range p.points[1:] {
			path.LineTo(float32(pt.X), float32(pt.Y))
		}
		path.Close()
		p.mesh.build(&path)
	}
	s.pushMesh(p.mesh.transform(world, p.fill), p.mesh.inds)
}

// normalizePoints returns a copy of points translated so that the minimum x
// and y are zero, together with that minimum. Empty input yields (nil, 0,0).
func normalizePoints(points []Vec2) ([]Vec2, Vec2) {
	if len(points) == 0 {
		return nil, Vec2{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	for _, pt := range points {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
	}
	local := make([]Vec2, len(points))
	for i, pt := range points {
		local[i] = Vec2{pt.X - minX, pt.Y - minY}
	}
	return local, Vec2{minX, minY}
}

// pointsBounds returns the axis-aligned bounding box of points.
func pointsBounds(points []Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// pointInPolygon is an even-odd ray cast. Works for concave outlines.
func pointInPolygon(points []Vec2, x, y float64) bool {
	inside := false
	j := len(points) - 1
	for i := range points {
		pi, pj := points[i], points[j]
		if (pi.Y > y) != (pj.Y > y) {
			cross := (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if x < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
