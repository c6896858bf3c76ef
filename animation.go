package doodle

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a shape simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenColor) and either call Update(dt) yourself or hand it
// to Scene.AddTween. A group writes fields only; it keeps running when
// its target is detached.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target Shape
	Done   bool

	onDone func()
}

// Target returns the animated shape.
func (g *TweenGroup) Target() Shape { return g.target }

// OnDone sets a callback run once when every tween has finished.
func (g *TweenGroup) OnDone(fn func()) *TweenGroup {
	g.onDone = fn
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done && g.onDone != nil {
		g.onDone()
	}
}

// TweenPosition animates the shape's position to (toX, toY).
func TweenPosition(sh Shape, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := sh.base()
	g := &TweenGroup{count: 2, target: sh}
	g.tweens[0] = gween.New(float32(n.x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(n.y), float32(toY), duration, fn)
	g.fields[0] = &n.x
	g.fields[1] = &n.y
	return g
}

// TweenScale animates the shape's scale factors to (toSX, toSY).
func TweenScale(sh Shape, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := sh.base()
	g := &TweenGroup{count: 2, target: sh}
	g.tweens[0] = gween.New(float32(n.scaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(n.scaleY), float32(toSY), duration, fn)
	g.fields[0] = &n.scaleX
	g.fields[1] = &n.scaleY
	return g
}

// TweenRotation animates the shape's rotation, in radians.
func TweenRotation(sh Shape, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := sh.base()
	g := &TweenGroup{count: 1, target: sh}
	g.tweens[0] = gween.New(float32(n.rotation), float32(to), duration, fn)
	g.fields[0] = &n.rotation
	return g
}

// TweenColor animates all four components of the fill color.
func TweenColor(sh Shape, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := sh.base()
	g := &TweenGroup{count: 4, target: sh}
	g.tweens[0] = gween.New(float32(n.fill.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(n.fill.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(n.fill.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(n.fill.A), float32(to.A), duration, fn)
	g.fields[0] = &n.fill.R
	g.fields[1] = &n.fill.G
	g.fields[2] = &n.fill.B
	g.fields[3] = &n.fill.A
	return g
}

// AddTween registers g to advance on every Update. Finished groups are
// dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) *TweenGroup {
	s.tweens = append(s.tweens, g)
	return g
}

// NumTweens returns the number of unfinished tweens owned by the scene.
func (s *Scene) NumTweens() int { return len(s.tweens) }

func (s *Scene) updateTweens(dt float64) {
	if len(s.tweens) == 0 {
		return
	}
	// OnDone callbacks may add tweens; those land in the fresh s.tweens.
	current := s.tweens
	s.tweens = nil
	live := current[:0]
	for _, g := range current {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(current[len(live):])
	s.tweens = append(live, s.tweens...)
}
