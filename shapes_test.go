package doodle

import "testing"

// --- Local geometry ---

func TestLocalBounds(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  Rect
	}{
		{"rectangle", NewRectangle(30, 20), Rect{0, 0, 30, 20}},
		{"negative rectangle", NewRectangle(-30, 20), Rect{-30, 0, 30, 20}},
		{"circle", NewCircle(5), Rect{-5, -5, 10, 10}},
		{"ellipse", NewEllipse(8, 4), Rect{-8, -4, 16, 8}},
		{"triangle", NewTriangle(5, 5, 15, 5, 10, 15), Rect{0, 0, 10, 10}},
		{"empty polygon", NewPolygon(nil), Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.LocalBounds(); got != tt.want {
				t.Errorf("LocalBounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldBoundsFromPosition(t *testing.T) {
	s := newTestScene()
	tests := []struct {
		name  string
		shape Shape
		want  Rect
	}{
		{"rectangle top-left", s.Rectangle(10, 20, 30, 40), Rect{10, 20, 30, 40}},
		{"circle centered", s.Circle(50, 50, 10), Rect{40, 40, 20, 20}},
		{"ellipse centered", s.Ellipse(100, 100, 20, 10), Rect{80, 90, 40, 20}},
		{"polygon at min corner", s.Polygon([]Vec2{{5, 5}, {15, 5}, {10, 15}}), Rect{5, 5, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Bounds(); got != tt.want {
				t.Errorf("Bounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsLocal(t *testing.T) {
	concave := NewPolygon([]Vec2{{0, 0}, {10, 0}, {10, 10}, {5, 5}, {0, 10}})
	tests := []struct {
		name   string
		shape  Shape
		x, y   float64
		expect bool
	}{
		{"rect inside", NewRectangle(10, 10), 5, 5, true},
		{"rect edge", NewRectangle(10, 10), 10, 10, true},
		{"rect outside", NewRectangle(10, 10), 11, 5, false},
		{"circle center", NewCircle(5), 0, 0, true},
		{"circle edge", NewCircle(5), 5, 0, true},
		{"circle bbox corner", NewCircle(5), 4.5, 4.5, false},
		{"ellipse inside", NewEllipse(10, 2), 9, 0, true},
		{"ellipse outside short axis", NewEllipse(10, 2), 0, 3, false},
		{"zero ellipse", NewEllipse(0, 2), 0, 0, false},
		{"concave inside", concave, 2, 2, true},
		{"concave notch", concave, 5, 8, false},
		{"two point polygon", NewPolygon([]Vec2{{0, 0}, {10, 10}}), 5, 5, false},
		{"container", NewContainer(), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.containsLocal(tt.x, tt.y); got != tt.expect {
				t.Errorf("containsLocal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Polygon normalization ---

func TestPolygonNormalization(t *testing.T) {
	in := []Vec2{{5, 5}, {15, 5}, {10, 15}}
	p := NewPolygon(in)

	if pos := p.Position(); pos != (Vec2{5, 5}) {
		t.Errorf("Position = %v, want (5, 5)", pos)
	}
	want := []Vec2{{0, 0}, {10, 0}, {5, 10}}
	got := p.Points()
	if len(got) != len(want) {
		t.Fatalf("Points = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if in[0] != (Vec2{5, 5}) || in[2] != (Vec2{10, 15}) {
		t.Errorf("caller slice mutated: %v", in)
	}
}

func TestPolygonEmpty(t *testing.T) {
	p := NewPolygon([]Vec2{})
	if p.Position() != (Vec2{}) {
		t.Errorf("Position = %v, want origin", p.Position())
	}
	if p.Points() != nil {
		t.Errorf("Points = %v, want nil", p.Points())
	}
}

func TestPolygonSetPoints(t *testing.T) {
	p := NewTriangle(0, 0, 1, 0, 0, 1)
	p.SetPoints([]Vec2{{-4, 2}, {6, 2}, {1, 12}})
	if p.Position() != (Vec2{-4, 2}) {
		t.Errorf("Position = %v, want (-4, 2)", p.Position())
	}
	if b := p.LocalBounds(); b != (Rect{0, 0, 10, 10}) {
		t.Errorf("LocalBounds = %v", b)
	}
	if !p.mesh.dirty {
		t.Error("SetPoints should invalidate the mesh")
	}
}

// --- Setters invalidate cached meshes ---

func TestSizeSettersMarkDirty(t *testing.T) {
	r := NewRectangle(1, 1)
	r.mesh.dirty = false
	r.SetSize(5, 6)
	if w, h := r.Size(); w != 5 || h != 6 || !r.mesh.dirty {
		t.Errorf("SetSize: size=(%v,%v) dirty=%v", w, h, r.mesh.dirty)
	}

	c := NewCircle(1)
	c.mesh.dirty = false
	c.SetRadius(3)
	if c.Radius() != 3 || !c.mesh.dirty {
		t.Error("SetRadius should update radius and mark dirty")
	}

	e := NewEllipse(1, 1)
	e.mesh.dirty = false
	e.SetRadii(4, 2)
	if rx, ry := e.Radii(); rx != 4 || ry != 2 || !e.mesh.dirty {
		t.Error("SetRadii should update radii and mark dirty")
	}
}

func TestFactoryFill(t *testing.T) {
	red := Hex(0xff0000)
	if got := NewRectangle(1, 1, red).Fill(); got != red {
		t.Errorf("Fill = %v, want red", got)
	}
	if got := NewCircle(1).Fill(); got != ColorBlack {
		t.Errorf("default Fill = %v, want black", got)
	}
}
