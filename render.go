package doodle

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// commandType identifies the kind of draw command.
type commandType uint8

const (
	commandMesh  commandType = iota // DrawTriangles against the white pixel
	commandImage                    // DrawImage with a world transform
)

// drawCommand is a single draw instruction emitted during scene traversal.
type drawCommand struct {
	typ       commandType
	transform [6]float64
	tint      Color

	// Mesh-only fields (slice headers, not copies of vertex data).
	verts []ebiten.Vertex
	inds  []uint16

	image *ebiten.Image
}

const defaultCommandCap = 256

// traverse walks the shape tree depth-first in paint order, composing
// world transforms and emitting draw commands for visible shapes.
func (s *Scene) traverse(sh Shape, parentWorld [6]float64) {
	n := sh.base()
	if !n.visible {
		return
	}
	world := multiplyAffine(parentWorld, computeLocalTransform(n))
	sh.emit(s, world)
}

// pushMesh queues already-transformed, tinted vertices.
func (s *Scene) pushMesh(verts []ebiten.Vertex, inds []uint16) {
	if len(verts) == 0 || len(inds) == 0 {
		return
	}
	s.commands = append(s.commands, drawCommand{
		typ:   commandMesh,
		verts: verts,
		inds:  inds,
	})
}

// pushImage queues img drawn through world, multiplied by tint.
func (s *Scene) pushImage(img *ebiten.Image, world [6]float64, tint Color) {
	s.commands = append(s.commands, drawCommand{
		typ:       commandImage,
		transform: world,
		tint:      tint,
		image:     img,
	})
}

// render clears the command list, rebuilds it from the root, and submits it
// to target.
func (s *Scene) render(target *ebiten.Image) {
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.traverse(s.root, identityTransform)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.meshCount, stats.imageCount = countCommands(s.commands)
		s.debugLog(stats)
	}
}

// submit issues one draw call per command in order.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	var triOp ebiten.DrawTrianglesOptions
	triOp.FillRule = ebiten.FillRuleNonZero
	triOp.AntiAlias = s.opts.AntiAlias
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	white := ensureWhitePixel()
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.typ {
		case commandMesh:
			target.DrawTriangles(cmd.verts, cmd.inds, white, &triOp)
		case commandImage:
			op.GeoM = geoM(cmd.transform)
			op.ColorScale.Reset()
			a := float32(cmd.tint.A)
			op.ColorScale.Scale(float32(cmd.tint.R)*a, float32(cmd.tint.G)*a, float32(cmd.tint.B)*a, a)
			if s.opts.AntiAlias {
				op.Filter = ebiten.FilterLinear
			}
			target.DrawImage(cmd.image, &op)
		}
	}
}

// geoM converts a [a, b, c, d, tx, ty] affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
