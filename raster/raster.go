// Package raster renders a doodle scene on the CPU, without opening a window.
//
// It walks the same shape tree the GPU draw pass walks and replays it onto a
// gogpu/gg context, which makes it suitable for snapshots, thumbnails and
// golden-image tests.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"

	"github.com/phanxgames/doodle"
)

// Render rasterizes the scene at its logical size and returns the pixels.
func Render(s *doodle.Scene) (image.Image, error) {
	dc, err := draw(s)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// SavePNG renders the scene and writes it to path as PNG.
func SavePNG(s *doodle.Scene, path string) error {
	dc, err := draw(s)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("raster: save %q: %w", path, err)
	}
	return nil
}

// EncodePNG renders the scene and writes PNG data to w.
func EncodePNG(s *doodle.Scene, w io.Writer) error {
	dc, err := draw(s)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("raster: encode: %w", err)
	}
	return nil
}

func draw(s *doodle.Scene) (*gg.Context, error) {
	gg.SetLogger(doodle.Logger())

	w, h := s.Size()
	dc := gg.NewContext(w, h)
	r := &renderer{dc: dc, faces: make(map[faceKey]ggtext.Face)}

	if bg := s.Options().Background; bg.A > 0 {
		dc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("raster: background: %w", err)
		}
	}
	if err := r.walk(s.Root()); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

type faceKey struct {
	font *doodle.Font
	size float64
}

type renderer struct {
	dc    *gg.Context
	faces map[faceKey]ggtext.Face
}

func (r *renderer) walk(sh doodle.Shape) error {
	if !sh.Visible() {
		return nil
	}
	if c, ok := sh.(*doodle.Container); ok {
		for _, child := range c.Children() {
			if err := r.walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	r.dc.Push()
	defer r.dc.Pop()
	r.dc.SetTransform(matrix(sh.WorldTransform()))

	if err := r.shape(sh); err != nil {
		return fmt.Errorf("raster: %s %d: %w", sh.Kind(), sh.ID(), err)
	}
	return nil
}

func (r *renderer) shape(sh doodle.Shape) error {
	fill := sh.Fill()
	r.dc.SetRGBA(fill.R, fill.G, fill.B, fill.A)

	switch v := sh.(type) {
	case *doodle.Rectangle:
		w, h := v.Size()
		r.dc.DrawRectangle(0, 0, w, h)
	case *doodle.Circle:
		r.dc.DrawCircle(0, 0, v.Radius())
	case *doodle.Ellipse:
		rx, ry := v.Radii()
		r.dc.DrawEllipse(0, 0, rx, ry)
	case *doodle.Polygon:
		pts := v.Points()
		if len(pts) < 3 {
			return nil
		}
		r.dc.SetFillRule(gg.FillRuleNonZero)
		r.dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			r.dc.LineTo(p.X, p.Y)
		}
		r.dc.ClosePath()
	case *doodle.Text:
		return r.text(v)
	case *doodle.Sprite:
		r.sprite(v)
		return nil
	default:
		return nil
	}
	return r.dc.Fill()
}

// text draws each line at its baseline. gg draws glyphs untransformed, so
// the line origin is mapped through the world matrix and the face is scaled
// by the matrix's uniform scale; rotation is not applied to glyphs.
func (r *renderer) text(t *doodle.Text) error {
	content := t.Content()
	if content == "" {
		return nil
	}
	st := t.Style()
	m := t.WorldTransform()
	scale := math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
	if scale == 0 {
		return nil
	}

	face, err := r.face(st.Font, st.Size*scale)
	if err != nil {
		return err
	}
	r.dc.SetFont(face)
	r.dc.Identity()

	width := t.LocalBounds().Width
	ascent := face.Metrics().Ascent / scale
	lineHeight := t.LineHeight()
	for i, line := range strings.Split(content, "\n") {
		lw, _ := ggtext.Measure(line, face)
		lw /= scale
		var x float64
		switch st.Align {
		case doodle.TextAlignCenter:
			x = (width - lw) / 2
		case doodle.TextAlignRight:
			x = width - lw
		}
		y := float64(i)*lineHeight + ascent
		wx := m[0]*x + m[2]*y + m[4]
		wy := m[1]*x + m[3]*y + m[5]
		r.dc.DrawString(line, wx, wy)
	}
	return nil
}

func (r *renderer) face(font *doodle.Font, size float64) (ggtext.Face, error) {
	key := faceKey{font: font, size: size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	src, err := ggtext.NewFontSource(font.Data())
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f := src.Face(size)
	r.faces[key] = f
	return f, nil
}

// sprite draws the decoded source pixels. Sprites built directly from an
// ebiten image carry no CPU copy and are skipped.
func (r *renderer) sprite(sp *doodle.Sprite) {
	src := sp.Source()
	if src == nil {
		return
	}
	r.dc.DrawImage(gg.ImageBufFromImage(src), 0, 0)
}

// matrix converts [a, b, c, d, tx, ty] (x' = a*x + c*y + tx) to gg's
// row-major layout (x' = A*x + B*y + C).
func matrix(m [6]float64) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}
