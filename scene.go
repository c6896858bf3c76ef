package doodle

import (
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene owns the shape tree, the key dispatcher, loops, tweens, and input
// state. Factories add shapes to the root.
type Scene struct {
	root          *Container
	width, height int
	opts          Options
	debug         bool
	stopped       atomic.Bool
	frame         uint64

	keys   *KeyDispatcher
	loops  []*Loop
	tweens []*TweenGroup

	// Render state
	commands []drawCommand

	// Input state
	input        inputSource
	handlers     handlerRegistry
	captured     [maxPointers]Shape
	pointers     [maxPointers]pointerState
	hitBuf       []Shape
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	keyBuf       []ebiten.Key
	injectQueue  []syntheticPointerEvent
	keyQueue     []injectedKey

	// Testing and diagnostics
	testRunner      *TestRunner
	screenshotQueue []string
	fps             *fpsOverlay
}

// New creates a scene of the given size. Zero width or height default to
// 800x600.
func New(width, height int, opts Options) *Scene {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	opts = opts.withDefaults()

	root := NewContainer()
	root.SetName("root")
	s := &Scene{
		root:     root,
		width:    width,
		height:   height,
		opts:     opts,
		keys:     NewKeyDispatcher(),
		commands: make([]drawCommand, 0, defaultCommandCap),
	}
	root.scene = s

	if opts.Headless {
		s.input = idleInput{}
	} else {
		s.input = ebitenInput{}
	}
	if opts.ShowFPS {
		s.fps = newFPSOverlay()
	}
	s.SetDebugMode(opts.Debug)
	return s
}

// NewFromConfig creates a scene from a loaded Config.
func NewFromConfig(cfg Config) *Scene {
	return New(cfg.Width, cfg.Height, cfg.Options)
}

// Root returns the scene's root container.
func (s *Scene) Root() *Container { return s.root }

// Size returns the logical screen size.
func (s *Scene) Size() (width, height int) { return s.width, s.height }

// Options returns the effective options, with defaults applied.
func (s *Scene) Options() Options { return s.opts }

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() uint64 { return s.frame }

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats and tree-size warnings are written to Logger().
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Add attaches sh to the root and returns it.
func (s *Scene) Add(sh Shape) Shape {
	s.root.Add(sh)
	return sh
}

// --- Factories ---

// Rectangle adds a w-by-h rectangle with its top-left corner at (x, y).
func (s *Scene) Rectangle(x, y, w, h float64, fill ...Color) *Rectangle {
	r := NewRectangle(w, h, fill...)
	r.SetPosition(x, y)
	s.root.Add(r)
	return r
}

// Circle adds a circle of radius r centered at (x, y).
func (s *Scene) Circle(x, y, r float64, fill ...Color) *Circle {
	c := NewCircle(r, fill...)
	c.SetPosition(x, y)
	s.root.Add(c)
	return c
}

// Ellipse adds an ellipse centered at (x, y) with half-extents w and h.
func (s *Scene) Ellipse(x, y, w, h float64, fill ...Color) *Ellipse {
	e := NewEllipse(w, h, fill...)
	e.SetPosition(x, y)
	s.root.Add(e)
	return e
}

// Polygon adds a polygon through root-space points. The shape's position
// becomes the points' minimum corner.
func (s *Scene) Polygon(points []Vec2, fill ...Color) *Polygon {
	p := NewPolygon(points, fill...)
	s.root.Add(p)
	return p
}

// Triangle adds a three-point polygon.
func (s *Scene) Triangle(x1, y1, x2, y2, x3, y3 float64, fill ...Color) *Polygon {
	p := NewTriangle(x1, y1, x2, y2, x3, y3, fill...)
	s.root.Add(p)
	return p
}

// Text adds a text block with its top-left corner at (x, y).
func (s *Scene) Text(x, y float64, content string, style TextStyle) *Text {
	t := NewText(content, style)
	t.SetPosition(x, y)
	s.root.Add(t)
	return t
}

// Image loads the image file at path and adds it with its top-left corner
// at (x, y).
func (s *Scene) Image(x, y float64, path string) (*Sprite, error) {
	sp, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	sp.SetPosition(x, y)
	s.root.Add(sp)
	return sp, nil
}

// ImageFS is Image reading from fsys.
func (s *Scene) ImageFS(fsys fs.FS, x, y float64, name string) (*Sprite, error) {
	sp, err := LoadImageFS(fsys, name)
	if err != nil {
		return nil, err
	}
	sp.SetPosition(x, y)
	s.root.Add(sp)
	return sp, nil
}

// Sprite adds an already-loaded image with its top-left corner at (x, y).
func (s *Scene) Sprite(x, y float64, img *ebiten.Image) *Sprite {
	sp := NewSprite(img)
	sp.SetPosition(x, y)
	s.root.Add(sp)
	return sp
}

// --- Frame ---

// Update advances the scene by one tick: the test runner step, pointer and
// key input, loops in creation order, then tweens. The first loop error is
// returned and stops the tick.
func (s *Scene) Update() error {
	dt := 1.0 / float64(s.opts.TPS)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	// Loops added during this tick start on the next one.
	n := len(s.loops)
	for i := 0; i < n; i++ {
		if err := s.loops[i].Step(dt); err != nil {
			return fmt.Errorf("doodle: frame %d: %w", s.frame, err)
		}
	}
	s.updateTweens(dt)
	if s.fps != nil {
		s.fps.update(dt)
	}
	s.frame++
	return nil
}

// Draw renders the tree to screen, followed by the FPS overlay and any
// queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.opts.Background.A > 0 {
		screen.Fill(s.opts.Background.toRGBA())
	}
	s.render(screen)
	if s.fps != nil {
		s.fps.draw(screen)
	}
	s.flushScreenshots(screen)
}

// Stop asks Run to return after the current frame. Safe to call from any
// goroutine.
func (s *Scene) Stop() { s.stopped.Store(true) }

// Stopped reports whether Stop has been called.
func (s *Scene) Stopped() bool { return s.stopped.Load() }
