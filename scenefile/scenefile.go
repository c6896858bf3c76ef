// Package scenefile loads declarative scene descriptions written in YAML or
// TOML and builds them into doodle scenes.
//
// A document has a window section (a doodle.Config) and a list of shapes:
//
//	window:
//	  width: 640
//	  height: 480
//	  background: "#223344"
//	shapes:
//	  - kind: rectangle
//	    x: 10
//	    y: 10
//	    width: 100
//	    height: 50
//	    fill: "#ff8800"
//	    draggable: true
//	  - kind: text
//	    x: 20
//	    y: 80
//	    text: hello
//
// Shape kinds are rectangle, circle, ellipse, polygon, triangle, text, image
// and group. Groups hold nested shapes in children, positioned relative to
// the group.
package scenefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/doodle"
)

var (
	// ErrUnknownShape is returned for a shape whose kind is not recognised.
	ErrUnknownShape = errors.New("scenefile: unknown shape kind")
	// ErrUnsupportedFormat is returned for a file that is neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("scenefile: unsupported format")
)

// Document is a parsed scene file.
type Document struct {
	Window doodle.Config `yaml:"window" toml:"window"`
	Shapes []ShapeSpec   `yaml:"shapes" toml:"shapes"`

	// BaseDir resolves relative image paths. Load sets it to the directory
	// of the scene file.
	BaseDir string `yaml:"-" toml:"-"`
}

// ShapeSpec describes one shape. Which fields apply depends on Kind.
type ShapeSpec struct {
	Kind string  `yaml:"kind" toml:"kind"`
	Name string  `yaml:"name" toml:"name"`
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`

	// Width and Height size rectangles; for ellipses they are half-extents.
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Radius float64 `yaml:"radius" toml:"radius"`
	// Points are absolute vertices for polygon and triangle.
	Points [][2]float64 `yaml:"points" toml:"points"`

	Fill *doodle.Color `yaml:"fill" toml:"fill"`

	Text  string  `yaml:"text" toml:"text"`
	Size  float64 `yaml:"size" toml:"size"`
	Align string  `yaml:"align" toml:"align"`

	Image string `yaml:"image" toml:"image"`

	Rotation  float64 `yaml:"rotation" toml:"rotation"`
	Hidden    bool    `yaml:"hidden" toml:"hidden"`
	Draggable bool    `yaml:"draggable" toml:"draggable"`

	Children []ShapeSpec `yaml:"children" toml:"children"`
}

// Parse decodes a document from data.
func Parse(data []byte, format doodle.Format) (*Document, error) {
	if format != doodle.FormatYAML && format != doodle.FormatTOML {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	doc := &Document{}
	if err := doodle.Decode(data, format, doc); err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	return doc, nil
}

// Load reads and parses the scene file at path. The format follows the
// extension (.yaml, .yml or .toml).
func Load(path string) (*Document, error) {
	format, err := doodle.FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %q: %w", path, err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	doc.BaseDir = filepath.Dir(path)
	return doc, nil
}

// Build creates a scene from the window section and populates it.
func (d *Document) Build() (*doodle.Scene, error) {
	s := doodle.New(d.Window.Width, d.Window.Height, d.Window.Options)
	if err := d.Populate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Populate adds the document's shapes to the scene root, in order. Nothing
// is added when any shape fails to build.
func (d *Document) Populate(s *doodle.Scene) error {
	shapes, err := d.BuildShapes()
	if err != nil {
		return err
	}
	for _, sh := range shapes {
		s.Add(sh)
	}
	doodle.Logger().Debug("scene populated", "shapes", len(shapes))
	return nil
}

// BuildShapes builds the top-level shapes without attaching them.
func (d *Document) BuildShapes() ([]doodle.Shape, error) {
	shapes := make([]doodle.Shape, 0, len(d.Shapes))
	for i := range d.Shapes {
		sh, err := d.build(&d.Shapes[i])
		if err != nil {
			return nil, fmt.Errorf("scenefile: shape %d: %w", i, err)
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

func (d *Document) build(spec *ShapeSpec) (doodle.Shape, error) {
	fill := doodle.ColorBlack
	if spec.Fill != nil {
		fill = *spec.Fill
	}

	var sh doodle.Shape
	switch spec.Kind {
	case "rectangle", "rect":
		sh = doodle.NewRectangle(spec.Width, spec.Height, fill)
		sh.SetPosition(spec.X, spec.Y)
	case "circle":
		sh = doodle.NewCircle(spec.Radius, fill)
		sh.SetPosition(spec.X, spec.Y)
	case "ellipse":
		sh = doodle.NewEllipse(spec.Width, spec.Height, fill)
		sh.SetPosition(spec.X, spec.Y)
	case "polygon", "triangle":
		if spec.Kind == "triangle" && len(spec.Points) != 3 {
			return nil, fmt.Errorf("triangle needs 3 points, got %d", len(spec.Points))
		}
		pts := make([]doodle.Vec2, len(spec.Points))
		for i, p := range spec.Points {
			pts[i] = doodle.Vec2{X: p[0], Y: p[1]}
		}
		// Polygons place themselves at their top-left vertex.
		sh = doodle.NewPolygon(pts, fill)
	case "text":
		align, err := parseAlign(spec.Align)
		if err != nil {
			return nil, err
		}
		sh = doodle.NewText(spec.Text, doodle.TextStyle{Size: spec.Size, Fill: fill, Align: align})
		sh.SetPosition(spec.X, spec.Y)
	case "image", "sprite":
		path := spec.Image
		if path != "" && !filepath.IsAbs(path) && d.BaseDir != "" {
			path = filepath.Join(d.BaseDir, path)
		}
		sp, err := doodle.LoadImage(path)
		if err != nil {
			return nil, err
		}
		if spec.Fill != nil {
			sp.SetFill(*spec.Fill)
		}
		sp.SetPosition(spec.X, spec.Y)
		sh = sp
	case "group", "container":
		c := doodle.NewContainer()
		c.SetPosition(spec.X, spec.Y)
		for i := range spec.Children {
			child, err := d.build(&spec.Children[i])
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			c.Add(child)
		}
		sh = c
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, spec.Kind)
	}

	if spec.Name != "" {
		sh.SetName(spec.Name)
	}
	if spec.Rotation != 0 {
		sh.SetRotation(spec.Rotation)
	}
	if spec.Hidden {
		sh.SetVisible(false)
	}
	if spec.Draggable {
		doodle.Draggable(sh)
	}
	return sh, nil
}

func parseAlign(s string) (doodle.TextAlign, error) {
	switch s {
	case "", "left":
		return doodle.TextAlignLeft, nil
	case "center":
		return doodle.TextAlignCenter, nil
	case "right":
		return doodle.TextAlignRight, nil
	}
	return 0, fmt.Errorf("unknown text align %q", s)
}
