package raster

import (
	"errors"
	"fmt"
	"iter"

	"deedles.dev/imgcore/geom"
	"deedles.dev/imgcore/pixel"
)

// ErrDataSize is returned when a sample slice does not match the
// geometry of the image it is meant to back.
var ErrDataSize = errors.New("raster: sample data does not match image size")

// OutOfBoundsError is the panic value used when a checked accessor is
// given coordinates outside of the image.
type OutOfBoundsError struct {
	X, Y          uint32
	Width, Height uint32
}

func (err *OutOfBoundsError) Error() string {
	return fmt.Sprintf("raster: pixel (%d, %d) out of bounds for %dx%d image", err.X, err.Y, err.Width, err.Height)
}

// Buffer is an image that owns its samples. Samples are stored row by
// row with no padding, ChannelCount samples per pixel.
type Buffer[L pixel.Layout, T pixel.Primitive] struct {
	width  uint32
	height uint32

	// Pix holds the samples. Its length is always
	// width*height*channels.
	Pix []T
}

// Common buffer types.
type (
	GrayImage      = Buffer[pixel.Luma, uint8]
	GrayAlphaImage = Buffer[pixel.LumaAlpha, uint8]
	RgbImage       = Buffer[pixel.Rgb, uint8]
	RgbaImage      = Buffer[pixel.Rgba, uint8]
)

// New returns a zeroed buffer of the given size.
func New[L pixel.Layout, T pixel.Primitive](width, height uint32) *Buffer[L, T] {
	var l L
	return &Buffer[L, T]{
		width:  width,
		height: height,
		Pix:    make([]T, int(width)*int(height)*l.Channels()),
	}
}

// FromRaw wraps pix without copying. It fails with ErrDataSize if pix
// does not have exactly width*height*channels samples.
func FromRaw[L pixel.Layout, T pixel.Primitive](width, height uint32, pix []T) (*Buffer[L, T], error) {
	var l L
	want := uint64(width) * uint64(height) * uint64(l.Channels())
	if uint64(len(pix)) != want {
		return nil, fmt.Errorf("%w: have %d samples, need %d for %dx%d %s", ErrDataSize, len(pix), want, width, height, l.Model())
	}

	return &Buffer[L, T]{
		width:  width,
		height: height,
		Pix:    pix,
	}, nil
}

// Clone returns a deep copy of b.
func (b *Buffer[L, T]) Clone() *Buffer[L, T] {
	return &Buffer[L, T]{
		width:  b.width,
		height: b.height,
		Pix:    append([]T(nil), b.Pix...),
	}
}

func (b *Buffer[L, T]) Dimensions() (uint32, uint32) {
	return b.width, b.height
}

func (b *Buffer[L, T]) Bounds() geom.Rect[uint32] {
	return geom.Rt(0, 0, b.width, b.height)
}

// Stride returns the number of samples per row.
func (b *Buffer[L, T]) Stride() int {
	return b.stride(b.channels())
}

func (b *Buffer[L, T]) stride(n int) int {
	return n * int(b.width)
}

func (b *Buffer[L, T]) channels() int {
	var l L
	return l.Channels()
}

// PixOffset returns the index of the first sample of the pixel at
// (x, y) in Pix.
func (b *Buffer[L, T]) PixOffset(x, y uint32) int {
	n := b.channels()
	return b.pixOffset(x, y, b.stride(n), n)
}

func (b *Buffer[L, T]) pixOffset(x, y uint32, stride, n int) int {
	return (stride * int(y)) + (int(x) * n)
}

// View returns a pixel view of the samples at (x, y). Writes through
// the view change the buffer. It panics if (x, y) is out of range.
func (b *Buffer[L, T]) View(x, y uint32) pixel.View[L, T] {
	checkPoint(x, y, b.width, b.height)
	return b.view(x, y)
}

func (b *Buffer[L, T]) view(x, y uint32) pixel.View[L, T] {
	n := b.channels()
	i := b.pixOffset(x, y, b.stride(n), n)
	return pixel.FromSlice[L](b.Pix[i : i+n : i+n])
}

func (b *Buffer[L, T]) GetPixel(x, y uint32) pixel.Pixel[L, T] {
	checkPoint(x, y, b.width, b.height)
	return b.view(x, y).Pixel()
}

func (b *Buffer[L, T]) PutPixel(x, y uint32, p pixel.Pixel[L, T]) {
	checkPoint(x, y, b.width, b.height)
	b.view(x, y).Store(p)
}

func (b *Buffer[L, T]) UnsafeGetPixel(x, y uint32) pixel.Pixel[L, T] {
	return b.view(x, y).Pixel()
}

func (b *Buffer[L, T]) UnsafePutPixel(x, y uint32, p pixel.Pixel[L, T]) {
	b.view(x, y).Store(p)
}

func (b *Buffer[L, T]) BlendPixel(x, y uint32, p pixel.Pixel[L, T]) {
	v := b.View(x, y)
	v.Store(pixel.Blended(v.Pixel(), p))
}

// Rows returns the rows of b in order, top to bottom. Each row is a
// slice of Pix.
func (b *Buffer[L, T]) Rows() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		stride := b.Stride()
		for y := 0; y < int(b.height); y++ {
			row := b.Pix[y*stride : (y+1)*stride : (y+1)*stride]
			if !yield(row) {
				return
			}
		}
	}
}

// Cursor returns a cursor positioned before the first pixel of b.
func (b *Buffer[L, T]) Cursor() *Cursor[L, T] {
	return &Cursor[L, T]{b: b, i: -1}
}

// Cursor walks the pixels of a Buffer in row order and allows them to
// be read and replaced in place. It refers to pixels only by index, so
// nothing it hands out stays attached to the buffer.
type Cursor[L pixel.Layout, T pixel.Primitive] struct {
	b *Buffer[L, T]
	i int
}

// Next advances to the next pixel and reports whether there is one.
func (c *Cursor[L, T]) Next() bool {
	if c.i >= int(c.b.width)*int(c.b.height) {
		return false
	}
	c.i++
	return c.i < int(c.b.width)*int(c.b.height)
}

// X returns the column of the current pixel.
func (c *Cursor[L, T]) X() uint32 { return uint32(c.i % int(c.b.width)) }

// Y returns the row of the current pixel.
func (c *Cursor[L, T]) Y() uint32 { return uint32(c.i / int(c.b.width)) }

// Get returns the current pixel.
func (c *Cursor[L, T]) Get() pixel.Pixel[L, T] {
	return c.b.view(c.X(), c.Y()).Pixel()
}

// Set replaces the current pixel.
func (c *Cursor[L, T]) Set(p pixel.Pixel[L, T]) {
	c.b.view(c.X(), c.Y()).Store(p)
}
