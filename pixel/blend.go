package pixel

// Blend composites src over p using the source-over operator. Layouts
// without an alpha channel are treated as opaque, so src simply
// replaces p.
//
// The arithmetic is done in float32 on channels normalized to [0, 1]
// and the results are truncated back into T's range.
func (p *Pixel[L, T]) Blend(src Pixel[L, T]) {
	var l L
	if !l.HasAlpha() {
		*p = src
		return
	}

	ai := l.Channels() - 1
	top := float32(Max[T]())

	bgA := float32(p.data[ai]) / top
	fgA := float32(src.data[ai]) / top

	outA := float32(bgA+fgA) - float32(bgA*fgA)
	if outA == 0 {
		return
	}

	for i := 0; i < ai; i++ {
		bg := float32(p.data[i]) / top
		fg := float32(src.data[i]) / top

		// Premultiply, composite, then divide the result alpha back out.
		bgPre := float32(bg * bgA)
		fgPre := float32(fg * fgA)
		out := float32(fgPre + float32(bgPre*float32(1-fgA)))
		p.data[i] = requantize[T](float32(out/outA), top)
	}
	p.data[ai] = requantize[T](outA, top)
}

// Blended returns the result of compositing src over dst.
func Blended[L Layout, T Primitive](dst, src Pixel[L, T]) Pixel[L, T] {
	dst.Blend(src)
	return dst
}

func requantize[T Primitive](v, top float32) T {
	v = float32(v * top)
	switch {
	case v <= 0:
		return 0
	case v >= top:
		return T(top)
	default:
		return T(v)
	}
}
