package scenefile

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/doodle"
)

const sampleYAML = `
window:
  width: 320
  height: 240
  title: sample
  background: "#102030"
  headless: true
shapes:
  - kind: rectangle
    name: paddle
    x: 10
    y: 20
    width: 100
    height: 10
    fill: "#ff0000"
    draggable: true
  - kind: circle
    x: 50
    y: 60
    radius: 5
  - kind: ellipse
    x: 100
    y: 100
    width: 30
    height: 10
  - kind: triangle
    points: [[5, 5], [15, 5], [10, 15]]
  - kind: text
    x: 1
    y: 2
    text: hello
    size: 12
    align: center
  - kind: group
    x: 200
    y: 200
    rotation: 0.5
    children:
      - kind: rect
        width: 4
        height: 4
`

const sampleTOML = `
[window]
width = 320
height = 240
background = "#102030"
headless = true

[[shapes]]
kind = "rectangle"
x = 10
y = 20
width = 100
height = 10
fill = "0x00ff00"

[[shapes]]
kind = "polygon"
points = [[0, 10], [10, 0], [20, 10]]
`

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), doodle.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 320, doc.Window.Width)
	assert.Equal(t, 240, doc.Window.Height)
	assert.Equal(t, "sample", doc.Window.Title)
	assert.Equal(t, doodle.Hex(0x102030), doc.Window.Background)
	require.Len(t, doc.Shapes, 6)

	paddle := doc.Shapes[0]
	assert.Equal(t, "rectangle", paddle.Kind)
	assert.Equal(t, "paddle", paddle.Name)
	assert.True(t, paddle.Draggable)
	require.NotNil(t, paddle.Fill)
	assert.Equal(t, doodle.Hex(0xff0000), *paddle.Fill)

	assert.Nil(t, doc.Shapes[1].Fill)
	assert.Equal(t, [][2]float64{{5, 5}, {15, 5}, {10, 15}}, doc.Shapes[3].Points)
	require.Len(t, doc.Shapes[5].Children, 1)
}

func TestParseTOML(t *testing.T) {
	doc, err := Parse([]byte(sampleTOML), doodle.FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, 320, doc.Window.Width)
	assert.True(t, doc.Window.Headless)
	require.Len(t, doc.Shapes, 2)
	require.NotNil(t, doc.Shapes[0].Fill)
	assert.Equal(t, doodle.Hex(0x00ff00), *doc.Shapes[0].Fill)
	assert.Equal(t, "polygon", doc.Shapes[1].Kind)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("shapes: []"), doodle.Format("json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse([]byte("bogus: 1"), doodle.FormatYAML)
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Parse([]byte("shapes:\n  - kind: rect\n    fill: nope\n"), doodle.FormatYAML)
	assert.Error(t, err, "bad color")
}

func TestBuild(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), doodle.FormatYAML)
	require.NoError(t, err)

	s, err := doc.Build()
	require.NoError(t, err)

	w, h := s.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)

	root := s.Root()
	require.Equal(t, 6, root.NumChildren())

	rect, ok := root.ChildAt(0).(*doodle.Rectangle)
	require.True(t, ok)
	assert.Equal(t, "paddle", rect.Name())
	assert.Equal(t, doodle.Vec2{X: 10, Y: 20}, rect.Position())
	assert.Equal(t, doodle.Hex(0xff0000), rect.Fill())
	assert.True(t, rect.Interactive(), "draggable shapes are interactive")

	circle := root.ChildAt(1).(*doodle.Circle)
	assert.Equal(t, doodle.Rect{X: 45, Y: 55, Width: 10, Height: 10}, circle.Bounds())
	assert.Equal(t, doodle.ColorBlack, circle.Fill(), "fill defaults to black")

	ellipse := root.ChildAt(2).(*doodle.Ellipse)
	assert.Equal(t, doodle.Rect{X: 70, Y: 90, Width: 60, Height: 20}, ellipse.Bounds())

	tri := root.ChildAt(3).(*doodle.Polygon)
	assert.Equal(t, doodle.Vec2{X: 5, Y: 5}, tri.Position())
	assert.Equal(t, []doodle.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}, tri.Points())

	txt := root.ChildAt(4).(*doodle.Text)
	assert.Equal(t, "hello", txt.Content())
	assert.Equal(t, 12.0, txt.Style().Size)
	assert.Equal(t, doodle.TextAlignCenter, txt.Style().Align)

	group := root.ChildAt(5).(*doodle.Container)
	assert.Equal(t, 0.5, group.Rotation())
	require.Equal(t, 1, group.NumChildren())
	child := group.ChildAt(0).(*doodle.Rectangle)
	wx, wy := child.LocalToWorld(0, 0)
	assert.InDelta(t, 200, wx, 1e-9)
	assert.InDelta(t, 200, wy, 1e-9)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown kind", "shapes:\n  - kind: star\n"},
		{"short triangle", "shapes:\n  - kind: triangle\n    points: [[0, 0], [1, 1]]\n"},
		{"bad align", "shapes:\n  - kind: text\n    align: justify\n"},
		{"missing image", "shapes:\n  - kind: image\n    image: nope.png\n"},
		{"bad child", "shapes:\n  - kind: group\n    children:\n      - kind: star\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src), doodle.FormatYAML)
			require.NoError(t, err)
			doc.Window.Headless = true
			_, err = doc.Build()
			assert.Error(t, err)
		})
	}

	doc, err := Parse([]byte("shapes:\n  - kind: star\n"), doodle.FormatYAML)
	require.NoError(t, err)
	err = doc.Populate(doodle.New(0, 0, doodle.Options{Headless: true}))
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestPopulateIsAllOrNothing(t *testing.T) {
	doc, err := Parse([]byte("shapes:\n  - kind: rect\n  - kind: star\n"), doodle.FormatYAML)
	require.NoError(t, err)

	s := doodle.New(0, 0, doodle.Options{Headless: true})
	require.Error(t, doc.Populate(s))
	assert.Equal(t, 0, s.Root().NumChildren())

	doc.Shapes = doc.Shapes[:1]
	shapes, err := doc.BuildShapes()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Nil(t, shapes[0].Parent(), "built shapes are detached")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	f, err := os.Create(filepath.Join(dir, "dot.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	scene := "window:\n  headless: true\nshapes:\n  - kind: image\n    x: 3\n    y: 4\n    image: dot.png\n"
	path := filepath.Join(dir, "scene.yml")
	require.NoError(t, os.WriteFile(path, []byte(scene), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, doc.BaseDir)

	s, err := doc.Build()
	require.NoError(t, err)
	sp := s.Root().ChildAt(0).(*doodle.Sprite)
	assert.Equal(t, doodle.Rect{X: 3, Y: 4, Width: 8, Height: 6}, sp.Bounds())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("scene.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
