package geom

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// VerticalStack returns an iterator that yields the rectangle
// provided and then identical copies shifted downwards by its height
// repeatedly, thus producing an infinite vertical stack of rectangles
// below the first.
func VerticalStack[T Scalar](first Rect[T]) iter.Seq[Rect[T]] {
	return func(yield func(Rect[T]) bool) {
		shift := Pt(0, first.Dy())
		for {
			if !yield(first) {
				return
			}
			first = first.Add(shift)
		}
	}
}

// HorizontalStack is like [VerticalStack] but stacks the copies to
// the right of the first.
func HorizontalStack[T Scalar](first Rect[T]) iter.Seq[Rect[T]] {
	return func(yield func(Rect[T]) bool) {
		shift := Pt(first.Dx(), 0)
		for {
			if !yield(first) {
				return
			}
			first = first.Add(shift)
		}
	}
}

// TiledGrid yields the tiles of a grid of size-sized rectangles
// anchored at r.Min that covers r, left to right and then top to
// bottom. In other words, for a 3x2 grid it yields
//
//	-------------
//	| 0 | 1 | 2 |
//	-------------
//	| 3 | 4 | 5 |
//	-------------
//
// Tiles on the right and bottom edges are not clipped and may extend
// past r; use [Rect.Intersect] to clip them.
func TiledGrid[T Scalar](r Rect[T], size Point[T]) iter.Seq[Rect[T]] {
	return func(yield func(Rect[T]) bool) {
		if r.Empty() || (size.X <= 0) || (size.Y <= 0) {
			return
		}

		for row := range VerticalStack(XYWH(r.Min.X, r.Min.Y, size.X, size.Y)) {
			if row.Min.Y >= r.Max.Y {
				return
			}
			for t := range HorizontalStack(row) {
				if t.Min.X >= r.Max.X {
					break
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// GridSize returns the number of columns and rows of the grid that
// [TiledGrid] yields for the same arguments.
func GridSize[T constraints.Integer](r Rect[T], size Point[T]) Point[T] {
	if r.Empty() || (size.X <= 0) || (size.Y <= 0) {
		return Point[T]{}
	}
	return Pt(
		(r.Dx()+size.X-1)/size.X,
		(r.Dy()+size.Y-1)/size.Y,
	)
}
