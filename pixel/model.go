package pixel

import "image/color"

// RGBA implements color.Color. The returned values are
// alpha-premultiplied and scaled to 16 bits.
func (p Pixel[L, T]) RGBA() (r, g, b, a uint32) {
	var l L
	c := p.Channels()

	a = 0xFFFF
	if l.HasAlpha() {
		a = widen(c[len(c)-1])
	}

	switch l.Kind() {
	case KindGray, KindGrayAlpha:
		r = widen(c[0])
		g, b = r, r
	default:
		r, g, b = widen(c[0]), widen(c[1]), widen(c[2])
	}

	r = r * a / 0xFFFF
	g = g * a / 0xFFFF
	b = b * a / 0xFFFF
	return
}

func widen[T Primitive](v T) uint32 {
	return uint32(v) * 0xFFFF / uint32(Max[T]())
}

func narrow[T Primitive](v uint32) T {
	return T(v * uint32(Max[T]()) / 0xFFFF)
}

// FromColor converts an arbitrary color into the layout L. Gray
// layouts use the same luminance weights as color.GrayModel. Alpha is
// dropped for layouts without an alpha channel.
func FromColor[L Layout, T Primitive](c color.Color) Pixel[L, T] {
	if p, ok := c.(Pixel[L, T]); ok {
		return p
	}

	r, g, b, a := c.RGBA()
	if a != 0 && a != 0xFFFF {
		r = r * 0xFFFF / a
		g = g * 0xFFFF / a
		b = b * 0xFFFF / a
	}

	var l L
	switch l.Kind() {
	case KindGray:
		return FromChannels[L](narrow[T](luminance(r, g, b)), 0, 0, 0)
	case KindGrayAlpha:
		return FromChannels[L](narrow[T](luminance(r, g, b)), narrow[T](a), 0, 0)
	case KindRGB:
		return FromChannels[L](narrow[T](r), narrow[T](g), narrow[T](b), 0)
	default:
		return FromChannels[L](narrow[T](r), narrow[T](g), narrow[T](b), narrow[T](a))
	}
}

func luminance(r, g, b uint32) uint32 {
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16
}

// Model returns a color.Model that converts colors into pixels of
// layout L.
func Model[L Layout, T Primitive]() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return FromColor[L, T](c)
	})
}
