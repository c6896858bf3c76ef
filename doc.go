// Package doodle is a small 2D drawing layer for [Ebitengine], aimed at
// first programs: one call per shape, one call per interaction.
//
// # Quick start
//
// Create a scene, add shapes with its factories, and run it:
//
//	s := doodle.New(0, 0, doodle.Options{Title: "Hello"}) // 800x600
//	box := s.Rectangle(100, 100, 80, 40, doodle.Hex(0x3399ff))
//	doodle.Draggable(box)
//	doodle.OnClick(s.Circle(400, 300, 30), func(e doodle.PointerEvent) {
//		doodle.MoveBy(e.Target, 10, 0)
//	})
//	if err := s.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Shapes
//
// Every visual element implements [Shape]. Factories return the concrete
// type: [Rectangle], [Circle], [Ellipse], [Polygon] (triangles too),
// [Text] and [Sprite]. [Container] groups shapes; children inherit their
// parent's transform and visibility. Fill colors default to black.
//
// Rectangles, text and sprites are positioned by their top-left corner.
// Circles and ellipses are positioned by their center. Polygons are
// positioned at the minimum corner of their points.
//
// # Input
//
// [OnClick] and [Draggable] cover the common cases. [Shape.On] and
// [Scene.On] accept any [EventType]. Keyboard input goes through the
// scene's [KeyDispatcher]:
//
//	s.OnKeyDown(doodle.KeyRight, func(doodle.KeyEvent) { doodle.MoveBy(box, 5, 0) })
//
// # Frames
//
// [Scene.Animate] registers a per-frame callback as a [Loop] that can be
// stopped and restarted. Tweens (via [gween]) animate position, scale,
// rotation and color.
//
// Logging is off by default; see [SetLogger].
//
// # Related packages
//
// Package scenefile builds scenes from YAML or TOML descriptions, package
// raster renders a scene to an image without opening a window, and
// cmd/doodle plays or renders scene files from the command line.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package doodle
