package raster

import (
	"fmt"

	"deedles.dev/imgcore/geom"
	"deedles.dev/imgcore/pixel"
)

// SubImage is a rectangular view into another image. It does not copy
// pixels: reads and writes are translated by the view's offset and
// passed through to the underlying image.
//
// A SubImage takes over the underlying image for as long as it is in
// use. While a view is live, the underlying image must not be
// accessed through any other path; use Inner to reach it through the
// view instead.
type SubImage[L pixel.Layout, T pixel.Primitive] struct {
	image   Image[L, T]
	xoffset uint32
	yoffset uint32
	width   uint32
	height  uint32
}

// Sub returns a view of the w×h region of img whose top-left corner is
// at (x, y). It panics if the region does not fit inside img.
func Sub[L pixel.Layout, T pixel.Primitive](img Image[L, T], x, y, w, h uint32) *SubImage[L, T] {
	s := SubImage[L, T]{image: img}
	s.ChangeBounds(x, y, w, h)
	return &s
}

// Inner returns the underlying image.
func (s *SubImage[L, T]) Inner() Image[L, T] {
	return s.image
}

// ChangeBounds moves and resizes the view. It panics if the new region
// does not fit inside the underlying image.
func (s *SubImage[L, T]) ChangeBounds(x, y, w, h uint32) {
	iw, ih := s.image.Dimensions()
	if (uint64(x)+uint64(w) > uint64(iw)) || (uint64(y)+uint64(h) > uint64(ih)) {
		panic(fmt.Errorf("raster: view %v exceeds %dx%d image", geom.XYWH(uint64(x), uint64(y), uint64(w), uint64(h)), iw, ih))
	}

	s.xoffset = x
	s.yoffset = y
	s.width = w
	s.height = h
}

// ToImage copies the viewed pixels into a new Buffer of the view's
// size.
func (s *SubImage[L, T]) ToImage() *Buffer[L, T] {
	out := New[L, T](s.width, s.height)
	for y := uint32(0); y < s.height; y++ {
		for x := uint32(0); x < s.width; x++ {
			out.UnsafePutPixel(x, y, s.UnsafeGetPixel(x, y))
		}
	}
	return out
}

func (s *SubImage[L, T]) Dimensions() (uint32, uint32) {
	return s.width, s.height
}

func (s *SubImage[L, T]) Bounds() geom.Rect[uint32] {
	return geom.XYWH(s.xoffset, s.yoffset, s.width, s.height)
}

func (s *SubImage[L, T]) GetPixel(x, y uint32) pixel.Pixel[L, T] {
	checkPoint(x, y, s.width, s.height)
	return s.image.GetPixel(x+s.xoffset, y+s.yoffset)
}

func (s *SubImage[L, T]) PutPixel(x, y uint32, p pixel.Pixel[L, T]) {
	checkPoint(x, y, s.width, s.height)
	s.image.PutPixel(x+s.xoffset, y+s.yoffset, p)
}

func (s *SubImage[L, T]) UnsafeGetPixel(x, y uint32) pixel.Pixel[L, T] {
	return s.image.UnsafeGetPixel(x+s.xoffset, y+s.yoffset)
}

func (s *SubImage[L, T]) UnsafePutPixel(x, y uint32, p pixel.Pixel[L, T]) {
	s.image.UnsafePutPixel(x+s.xoffset, y+s.yoffset, p)
}

func (s *SubImage[L, T]) BlendPixel(x, y uint32, p pixel.Pixel[L, T]) {
	checkPoint(x, y, s.width, s.height)
	s.image.BlendPixel(x+s.xoffset, y+s.yoffset, p)
}
