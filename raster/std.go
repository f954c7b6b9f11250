package raster

import (
	"image"
	"image/color"

	"deedles.dev/imgcore/pixel"
	"golang.org/x/image/draw"
)

// Std returns b as a draw.Image so that it can be used with the
// standard image packages. The returned image shares b's samples.
func (b *Buffer[L, T]) Std() draw.Image {
	return &stdImage[L, T]{b: b}
}

// stdImage adapts a Buffer to image.Image and draw.Image.
type stdImage[L pixel.Layout, T pixel.Primitive] struct {
	b *Buffer[L, T]
}

func (img *stdImage[L, T]) Bounds() image.Rectangle { return img.b.Bounds().Image() }

func (img *stdImage[L, T]) ColorModel() color.Model { return pixel.Model[L, T]() }

func (img *stdImage[L, T]) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return pixel.Pixel[L, T]{}
	}
	return img.b.UnsafeGetPixel(uint32(x), uint32(y))
}

func (img *stdImage[L, T]) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return
	}
	img.b.UnsafePutPixel(uint32(x), uint32(y), pixel.FromColor[L, T](c))
}

// Opaque reports whether every pixel of the image is fully opaque.
func (img *stdImage[L, T]) Opaque() bool {
	var l L
	if !l.HasAlpha() {
		return true
	}

	n := l.Channels()
	top := pixel.Max[T]()
	for i := n - 1; i < len(img.b.Pix); i += n {
		if img.b.Pix[i] != top {
			return false
		}
	}
	return true
}

// FromStd converts img into a new Buffer with layout L, translating
// img's bounds so that its top-left corner lands at (0, 0).
func FromStd[L pixel.Layout, T pixel.Primitive](img image.Image) *Buffer[L, T] {
	bounds := img.Bounds()
	out := New[L, T](uint32(bounds.Dx()), uint32(bounds.Dy()))
	draw.Draw(out.Std(), out.Bounds().Image(), img, bounds.Min, draw.Src)
	return out
}
