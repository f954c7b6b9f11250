// Package pixel provides a pixel type that is generic over its channel
// layout and the numeric width of its samples.
//
// A Pixel is a small value. Its layout type argument fixes the channel
// count at compile time, so a Pixel[Rgb, uint8] can never be passed
// where a Pixel[Rgba, uint8] is expected.
package pixel

import (
	"fmt"
	"math/bits"
)

// Primitive is the constraint for sample types.
type Primitive interface {
	~uint8 | ~uint16
}

// Max returns the largest value representable by T.
func Max[T Primitive]() T {
	return ^T(0)
}

// BitDepth returns the width of T in bits.
func BitDepth[T Primitive]() uint8 {
	return uint8(bits.Len64(uint64(Max[T]())))
}

// Pixel is a single pixel with the channel layout L and samples of
// type T. Channels beyond L's channel count are always zero, so Pixels
// may be compared with ==.
type Pixel[L Layout, T Primitive] struct {
	data [MaxChannels]T
}

// Shorthands for the common 8-bit pixels.
type (
	Luma8      = Pixel[Luma, uint8]
	LumaAlpha8 = Pixel[LumaAlpha, uint8]
	Rgb8       = Pixel[Rgb, uint8]
	Rgba8      = Pixel[Rgba, uint8]
)

// FromChannels builds a pixel from up to four samples. Only as many
// arguments as the layout has channels are used; the rest are ignored.
func FromChannels[L Layout, T Primitive](a, b, c, d T) Pixel[L, T] {
	all := [MaxChannels]T{a, b, c, d}
	return FromSlice[L](all[:channels[L]()]).Pixel()
}

// New builds a pixel from exactly as many samples as the layout has
// channels. It panics if the number of samples is wrong.
func New[L Layout, T Primitive](samples ...T) Pixel[L, T] {
	return FromSlice[L](samples).Pixel()
}

func NewLuma[T Primitive](y T) Pixel[Luma, T] {
	return FromChannels[Luma](y, 0, 0, 0)
}

func NewLumaAlpha[T Primitive](y, a T) Pixel[LumaAlpha, T] {
	return FromChannels[LumaAlpha](y, a, 0, 0)
}

func NewRgb[T Primitive](r, g, b T) Pixel[Rgb, T] {
	return FromChannels[Rgb](r, g, b, 0)
}

func NewRgba[T Primitive](r, g, b, a T) Pixel[Rgba, T] {
	return FromChannels[Rgba](r, g, b, a)
}

func channels[L Layout]() int {
	var l L
	return l.Channels()
}

// ChannelCount returns the number of channels of the pixel's layout.
func (p Pixel[L, T]) ChannelCount() int {
	return channels[L]()
}

// ColorModel returns the layout's color model label.
func (p Pixel[L, T]) ColorModel() string {
	var l L
	return l.Model()
}

// ColorType returns the layout's ColorType with a depth equal to the
// bit width of T.
func (p Pixel[L, T]) ColorType() ColorType {
	var l L
	return ColorType{Kind: l.Kind(), Depth: BitDepth[T]()}
}

// Channels returns a copy of the pixel's samples.
func (p Pixel[L, T]) Channels() []T {
	return p.data[:channels[L]()]
}

// ChannelsMut returns the pixel's samples. Writes to the returned
// slice modify p.
func (p *Pixel[L, T]) ChannelsMut() []T {
	return p.data[:channels[L]()]
}

// At returns the i-th sample. It panics if i is not a valid channel
// index.
func (p Pixel[L, T]) At(i int) T {
	return p.Channels()[i]
}

// Set makes p a copy of other. This is the identity color conversion;
// conversions between layouts are not provided here.
func (p *Pixel[L, T]) Set(other Pixel[L, T]) {
	*p = other
}

func (p Pixel[L, T]) String() string {
	var l L
	return fmt.Sprintf("%s%v", l.Model(), p.Channels())
}

// View is a pixel-shaped window onto a slice of samples owned by
// someone else. It does not copy: reads and writes go straight to the
// underlying slice.
type View[L Layout, T Primitive] struct {
	s []T
}

// FromSlice returns a View of s. s must have exactly as many elements
// as the layout has channels; any other length is a programming error
// and FromSlice panics.
func FromSlice[L Layout, T Primitive](s []T) View[L, T] {
	n := channels[L]()
	if len(s) != n {
		var l L
		panic(fmt.Errorf("pixel: slice of length %d cannot be viewed as %s with %d channels", len(s), l.Model(), n))
	}
	return View[L, T]{s: s[:n:n]}
}

// Channels returns the viewed samples. The returned slice aliases the
// slice passed to FromSlice.
func (v View[L, T]) Channels() []T { return v.s }

// At returns the i-th sample.
func (v View[L, T]) At(i int) T { return v.s[i] }

// SetAt sets the i-th sample.
func (v View[L, T]) SetAt(i int, val T) { v.s[i] = val }

// Pixel copies the viewed samples into a Pixel value.
func (v View[L, T]) Pixel() (p Pixel[L, T]) {
	copy(p.data[:], v.s)
	return p
}

// Store copies p into the viewed samples.
func (v View[L, T]) Store(p Pixel[L, T]) {
	copy(v.s, p.data[:len(v.s)])
}
