package doodle

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fillMesh caches the local-space triangulation of a filled path. Geometry
// changes mark it dirty; the next draw rebuilds it.
type fillMesh struct {
	verts       []ebiten.Vertex
	inds        []uint16
	transformed []ebiten.Vertex // preallocated transform buffer
	dirty       bool
}

// build triangulates p into the cache. Vertices sample the center of the
// shared white pixel so the fill color comes entirely from the vertex color.
func (m *fillMesh) build(p *vector.Path) {
	m.verts, m.inds = p.AppendVerticesAndIndicesForFilling(m.verts[:0], m.inds[:0])
	for i := range m.verts {
		v := &m.verts[i]
		v.SrcX = 0.5
		v.SrcY = 0.5
		v.ColorR = 1
		v.ColorG = 1
		v.ColorB = 1
		v.ColorA = 1
	}
	m.dirty = false
}

// scale multiplies every cached vertex position by (sx, sy).
func (m *fillMesh) scale(sx, sy float32) {
	for i := range m.verts {
		m.verts[i].DstX *= sx
		m.verts[i].DstY *= sy
	}
}

// transform writes the world-space, tinted copy of the cached vertices into
// the transform buffer and returns it.
func (m *fillMesh) transform(world [6]float64, tint Color) []ebiten.Vertex {
	need := len(m.verts)
	if cap(m.transformed) < need {
		m.transformed = make([]ebiten.Vertex, need)
	}
	m.transformed = m.transformed[:need]
	transformVertices(m.verts, m.transformed, world, tint)
	return m.transformed
}

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
//
// Colors are premultiplied here: the vertex color is scaled by the tint and
// the tint's alpha.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * ca,
			ColorG: s.ColorG * cg * ca,
			ColorB: s.ColorB * cb * ca,
			ColorA: s.ColorA * ca,
		}
	}
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used as the source texture of every filled shape.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
