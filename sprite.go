package doodle

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for LoadImage
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Sprite draws an image with its top-left corner at its position. The fill
// color multiplies the image (white leaves it unchanged).
type Sprite struct {
	node
	img *ebiten.Image
	src image.Image // decoded pixels, kept for headless rendering
}

// NewSprite creates a detached sprite from an ebiten image.
func NewSprite(img *ebiten.Image) *Sprite {
	sp := &Sprite{img: img}
	sp.init(sp, ColorWhite)
	return sp
}

// NewSpriteFromImage creates a detached sprite from decoded pixels.
func NewSpriteFromImage(src image.Image) *Sprite {
	sp := NewSprite(ebiten.NewImageFromImage(src))
	sp.src = src
	return sp
}

// LoadImage decodes the PNG or JPEG file at path into a detached sprite.
func LoadImage(path string) (*Sprite, error) {
	img, src, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("doodle: load image %q: %w", path, err)
	}
	sp := NewSprite(img)
	sp.src = src
	return sp, nil
}

// LoadImageFS is LoadImage reading from fsys, e.g. an embed.FS.
func LoadImageFS(fsys fs.FS, name string) (*Sprite, error) {
	img, src, err := ebitenutil.NewImageFromFileSystem(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("doodle: load image %q: %w", name, err)
	}
	sp := NewSprite(img)
	sp.src = src
	return sp, nil
}

// Kind returns KindSprite.
func (sp *Sprite) Kind() ShapeKind { return KindSprite }

// Image returns the displayed ebiten image.
func (sp *Sprite) Image() *ebiten.Image { return sp.img }

// Source returns the decoded pixels when the sprite was loaded from a file
// or an image.Image, and nil otherwise.
func (sp *Sprite) Source() image.Image { return sp.src }

// SetImage replaces the displayed image.
func (sp *Sprite) SetImage(img *ebiten.Image) {
	sp.img = img
	sp.src = nil
}

// Size returns the image size in pixels.
func (sp *Sprite) Size() (width, height float64) {
	if sp.img == nil {
		return 0, 0
	}
	b := sp.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// LocalBounds returns (0, 0, image width, image height).
func (sp *Sprite) LocalBounds() Rect {
	w, h := sp.Size()
	return Rect{Width: w, Height: h}
}

func (sp *Sprite) containsLocal(x, y float64) bool {
	return sp.LocalBounds().Contains(x, y)
}

func (sp *Sprite) emit(s *Scene, world [6]float64) {
	if sp.img == nil {
		return
	}
	s.pushImage(sp.img, world, sp.fill)
}
