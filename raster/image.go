// Package raster provides pixel-addressable images: an owning Buffer,
// rectangular SubImage views, and the operations shared by both.
package raster

import (
	"iter"

	"deedles.dev/imgcore/geom"
	"deedles.dev/imgcore/pixel"
)

// Image is implemented by anything whose pixels can be addressed by
// coordinate, whether it owns its storage or views someone else's.
type Image[L pixel.Layout, T pixel.Primitive] interface {
	// Dimensions returns the width and height of the image.
	Dimensions() (width, height uint32)

	// Bounds returns the offset and extent of the image. For an image
	// that owns its pixels the offset is always (0, 0).
	Bounds() geom.Rect[uint32]

	// GetPixel returns the pixel at (x, y). It panics if (x, y) is
	// out of range.
	GetPixel(x, y uint32) pixel.Pixel[L, T]

	// PutPixel sets the pixel at (x, y). It panics if (x, y) is out of
	// range.
	PutPixel(x, y uint32, p pixel.Pixel[L, T])

	// UnsafeGetPixel is like GetPixel but may skip bounds checking.
	// The caller must have validated (x, y) already.
	UnsafeGetPixel(x, y uint32) pixel.Pixel[L, T]

	// UnsafePutPixel is like PutPixel but may skip bounds checking.
	// The caller must have validated (x, y) already.
	UnsafePutPixel(x, y uint32, p pixel.Pixel[L, T])

	// BlendPixel composites p over the pixel at (x, y).
	//
	// Prefer blending with pixel.Blended and storing the result with
	// PutPixel in new code.
	BlendPixel(x, y uint32, p pixel.Pixel[L, T])
}

// Width returns the width of img.
func Width[L pixel.Layout, T pixel.Primitive](img Image[L, T]) uint32 {
	w, _ := img.Dimensions()
	return w
}

// Height returns the height of img.
func Height[L pixel.Layout, T pixel.Primitive](img Image[L, T]) uint32 {
	_, h := img.Dimensions()
	return h
}

// InBounds reports whether (x, y) lies inside img.Bounds(). For a view
// the bounds are in the coordinate space of the viewed image.
func InBounds[L pixel.Layout, T pixel.Primitive](img Image[L, T], x, y uint32) bool {
	return geom.Pt(x, y).In(img.Bounds())
}

// Pixels returns the pixels of img along with their coordinates,
// row by row from the top and left to right within each row.
//
// The returned sequence keeps its position: ranging over it a second
// time continues where the previous loop stopped, and yields nothing
// once every pixel has been seen.
func Pixels[L pixel.Layout, T pixel.Primitive](img Image[L, T]) iter.Seq2[geom.Point[uint32], pixel.Pixel[L, T]] {
	w, h := img.Dimensions()
	total := uint64(w) * uint64(h)

	var next uint64
	return func(yield func(geom.Point[uint32], pixel.Pixel[L, T]) bool) {
		for next < total {
			x, y := uint32(next%uint64(w)), uint32(next/uint64(w))
			next++
			if !yield(geom.Pt(x, y), img.GetPixel(x, y)) {
				return
			}
		}
	}
}

// MapPixels replaces every pixel of img with the result of calling f
// on it. Pixels are visited in the same order as [Pixels].
func MapPixels[L pixel.Layout, T pixel.Primitive](img Image[L, T], f func(x, y uint32, p pixel.Pixel[L, T]) pixel.Pixel[L, T]) {
	w, h := img.Dimensions()
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			img.UnsafePutPixel(x, y, f(x, y, img.UnsafeGetPixel(x, y)))
		}
	}
}

// CopyFrom copies all of src into dst with src's top-left corner
// placed at (x, y). If src does not fit, CopyFrom returns false and
// leaves dst untouched.
//
// To copy only part of an image, pass a view from [Sub] as src.
func CopyFrom[L pixel.Layout, T pixel.Primitive](dst, src Image[L, T], x, y uint32) bool {
	dw, dh := dst.Dimensions()
	sw, sh := src.Dimensions()
	if uint64(dw) < uint64(sw)+uint64(x) {
		return false
	}
	if uint64(dh) < uint64(sh)+uint64(y) {
		return false
	}

	for i := uint32(0); i < sw; i++ {
		for k := uint32(0); k < sh; k++ {
			dst.UnsafePutPixel(i+x, k+y, src.UnsafeGetPixel(i, k))
		}
	}
	return true
}

func checkPoint(x, y, w, h uint32) {
	if x >= w || y >= h {
		panic(&OutOfBoundsError{X: x, Y: y, Width: w, Height: h})
	}
}
