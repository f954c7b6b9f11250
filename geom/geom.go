// Package geom provides small generic point and rectangle types.
//
// It is patterned after image.Point and image.Rectangle, but works
// with any integer or floating-point type so that image coordinates
// can stay unsigned.
package geom

import (
	"fmt"
	"image"

	"golang.org/x/exp/constraints"
)

// Scalar is a constraint for the types that geom types and functions
// can handle.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Point is an X, Y coordinate pair.
type Point[T Scalar] struct {
	X, Y T
}

// Pt is shorthand for Point[T]{X: x, Y: y}.
func Pt[T Scalar](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point[T]) Sub(q Point[T]) Point[T] {
	return Point[T]{X: p.X - q.X, Y: p.Y - q.Y}
}

// In reports whether p is in r.
func (p Point[T]) In(r Rect[T]) bool {
	return (r.Min.X <= p.X) && (p.X < r.Max.X) &&
		(r.Min.Y <= p.Y) && (p.Y < r.Max.Y)
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

// Rect is a rectangle with Min inclusive and Max exclusive.
type Rect[T Scalar] struct {
	Min, Max Point[T]
}

// Rt is shorthand for Rect[T]{Min: Pt(x0, y0), Max: Pt(x1, y1)}.
func Rt[T Scalar](x0, y0, x1, y1 T) Rect[T] {
	return Rect[T]{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// XYWH returns a rectangle with its top-left corner at (x, y) and the
// given size.
func XYWH[T Scalar](x, y, w, h T) Rect[T] {
	return Rt(x, y, x+w, y+h)
}

func (r Rect[T]) Dx() T { return r.Max.X - r.Min.X }
func (r Rect[T]) Dy() T { return r.Max.Y - r.Min.Y }

// Size returns the width and height of r as a Point.
func (r Rect[T]) Size() Point[T] {
	return Pt(r.Dx(), r.Dy())
}

// Add translates r by p.
func (r Rect[T]) Add(p Point[T]) Rect[T] {
	return Rect[T]{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// Empty reports whether r contains no points.
func (r Rect[T]) Empty() bool {
	return (r.Min.X >= r.Max.X) || (r.Min.Y >= r.Max.Y)
}

// Contains reports whether every point of s is also in r. An empty s
// is contained in any rectangle.
func (r Rect[T]) Contains(s Rect[T]) bool {
	if s.Empty() {
		return true
	}
	return (r.Min.X <= s.Min.X) && (s.Max.X <= r.Max.X) &&
		(r.Min.Y <= s.Min.Y) && (s.Max.Y <= r.Max.Y)
}

// Intersect returns the largest rectangle contained by both r and s.
// If they do not overlap, the zero rectangle is returned.
func (r Rect[T]) Intersect(s Rect[T]) Rect[T] {
	r.Min.X = max(r.Min.X, s.Min.X)
	r.Min.Y = max(r.Min.Y, s.Min.Y)
	r.Max.X = min(r.Max.X, s.Max.X)
	r.Max.Y = min(r.Max.Y, s.Max.Y)
	if r.Empty() {
		return Rect[T]{}
	}
	return r
}

// Image converts r into an image.Rectangle.
func (r Rect[T]) Image() image.Rectangle {
	return image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y))
}

func (r Rect[T]) String() string {
	return r.Min.String() + "-" + r.Max.String()
}
