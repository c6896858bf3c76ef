package doodle

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultTextSize is the font size, in pixels, used when TextStyle.Size is zero.
const DefaultTextSize = 26

// TextAlign controls horizontal alignment of the lines within a Text block.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align lines to the left edge (default)
	TextAlignCenter                  // center lines horizontally
	TextAlignRight                   // align lines to the right edge
)

// --- Font ---

// Font is a parsed TrueType/OpenType font usable at any size.
type Font struct {
	source *text.GoTextFaceSource
	data   []byte
}

// LoadFont parses raw TTF/OTF data.
func LoadFont(ttf []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("doodle: failed to parse font data: %w", err)
	}
	return &Font{source: source, data: ttf}, nil
}

var defaultFont struct {
	once sync.Once
	font *Font
}

// DefaultFont returns the bundled Go Regular font.
func DefaultFont() *Font {
	defaultFont.once.Do(func() {
		f, err := LoadFont(goregular.TTF)
		if err != nil {
			panic(err)
		}
		defaultFont.font = f
	})
	return defaultFont.font
}

// Data returns the raw font bytes the font was loaded from.
func (f *Font) Data() []byte {
	return f.data
}

func (f *Font) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.source, Size: size}
}

// --- TextStyle ---

// TextStyle configures a Text shape. Zero fields take defaults: the bundled
// font, DefaultTextSize, a black fill, and the font's own line height.
type TextStyle struct {
	Font        *Font
	Size        float64
	Fill        Color
	LineSpacing float64
	Align       TextAlign
}

func (st TextStyle) withDefaults() TextStyle {
	if st.Font == nil {
		st.Font = DefaultFont()
	}
	if st.Size == 0 {
		st.Size = DefaultTextSize
	}
	if st.Fill == (Color{}) {
		st.Fill = ColorBlack
	}
	return st
}

// --- Text ---

// Text draws a block of text whose origin is its top-left corner. Lines are
// separated by '\n'.
type Text struct {
	node
	content string
	style   TextStyle

	// Cached layout
	layoutDirty bool
	face        *text.GoTextFace
	lineHeight  float64
	measuredW   float64
	measuredH   float64

	// Rendered glyphs in white; the fill is applied as a tint at draw time.
	cache      *ebiten.Image
	cacheDirty bool
}

// NewText creates a detached text shape.
func NewText(content string, style TextStyle) *Text {
	style = style.withDefaults()
	t := &Text{content: content, style: style, layoutDirty: true, cacheDirty: true}
	t.init(t, style.Fill)
	return t
}

// Kind returns KindText.
func (t *Text) Kind() ShapeKind { return KindText }

// Content returns the displayed string.
func (t *Text) Content() string { return t.content }

// SetContent replaces the displayed string.
func (t *Text) SetContent(s string) {
	if s == t.content {
		return
	}
	t.content = s
	t.layoutDirty = true
	t.cacheDirty = true
}

// Style returns the text style. Fill reflects the current fill color.
func (t *Text) Style() TextStyle {
	st := t.style
	st.Fill = t.fill
	return st
}

// SetStyle replaces the style, including the fill color.
func (t *Text) SetStyle(style TextStyle) {
	style = style.withDefaults()
	t.style = style
	t.fill = style.Fill
	t.layoutDirty = true
	t.cacheDirty = true
}

// LineHeight returns the distance between baselines in pixels.
func (t *Text) LineHeight() float64 {
	t.layout()
	return t.lineHeight
}

// LocalBounds returns (0, 0, measured width, measured height).
func (t *Text) LocalBounds() Rect {
	t.layout()
	return Rect{Width: t.measuredW, Height: t.measuredH}
}

func (t *Text) containsLocal(x, y float64) bool {
	return t.LocalBounds().Contains(x, y)
}

func (t *Text) layout() {
	if !t.layoutDirty {
		return
	}
	t.layoutDirty = false
	t.face = t.style.Font.face(t.style.Size)
	t.lineHeight = t.style.LineSpacing
	if t.lineHeight == 0 {
		m := t.face.Metrics()
		t.lineHeight = m.HAscent + m.HDescent + m.HLineGap
	}
	t.measuredW, t.measuredH = text.Measure(t.content, t.face, t.lineHeight)
}

func (t *Text) emit(s *Scene, world [6]float64) {
	t.layout()
	if t.measuredW == 0 || t.measuredH == 0 {
		return
	}

	w := int(math.Ceil(t.measuredW)) + 1
	h := int(math.Ceil(t.measuredH)) + 1

	if t.cacheDirty || t.cache == nil {
		t.cacheDirty = false

		if t.cache != nil {
			b := t.cache.Bounds()
			if b.Dx() != w || b.Dy() != h {
				t.cache.Deallocate()
				t.cache = ebiten.NewImage(w, h)
			} else {
				t.cache.Clear()
			}
		} else {
			t.cache = ebiten.NewImage(w, h)
		}

		op := &text.DrawOptions{}
		op.LineSpacing = t.lineHeight
		switch t.style.Align {
		case TextAlignCenter:
			op.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(t.measuredW/2, 0)
		case TextAlignRight:
			op.PrimaryAlign = text.AlignEnd
			op.GeoM.Translate(t.measuredW, 0)
		}
		text.Draw(t.cache, t.content, t.face, op)
	}

	s.pushImage(t.cache, world, t.fill)
}
