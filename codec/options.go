package codec

import "fmt"

// Limits bounds the resources a decoder may commit to an image. A zero
// MaxWidth or MaxHeight means no limit on that axis.
type Limits struct {
	MaxWidth  uint32
	MaxHeight uint32

	// MaxAlloc is the largest decoded image, in bytes, that a decoder
	// will allocate. Zero means no limit.
	MaxAlloc uint64
}

// DefaultLimits returns the limits used when no WithLimits option is
// given.
func DefaultLimits() Limits {
	return Limits{
		MaxAlloc: 512 << 20,
	}
}

// Check returns an error wrapping ErrDimension if an image of the given
// size, with bytesPerPixel bytes per pixel, is empty or exceeds l.
func (l Limits) Check(width, height uint32, bytesPerPixel int) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimension, width, height)
	}
	if l.MaxWidth != 0 && width > l.MaxWidth {
		return fmt.Errorf("%w: width %d exceeds limit %d", ErrDimension, width, l.MaxWidth)
	}
	if l.MaxHeight != 0 && height > l.MaxHeight {
		return fmt.Errorf("%w: height %d exceeds limit %d", ErrDimension, height, l.MaxHeight)
	}

	size := uint64(width) * uint64(height) * uint64(bytesPerPixel)
	if l.MaxAlloc != 0 && size > l.MaxAlloc {
		return fmt.Errorf("%w: %dx%d image needs %d bytes, limit is %d", ErrDimension, width, height, size, l.MaxAlloc)
	}
	return nil
}

// Option configures a decoder.
//
// Example:
//
//	dec, err := tiff.NewDecoder(r, codec.WithLimits(codec.Limits{
//	    MaxWidth:  4096,
//	    MaxHeight: 4096,
//	}))
type Option func(*Config)

// Config is the resolved set of decoder options.
type Config struct {
	Limits Limits
}

// NewConfig returns the default Config with opts applied in order.
func NewConfig(opts ...Option) Config {
	c := Config{
		Limits: DefaultLimits(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLimits replaces the decoder's resource limits.
func WithLimits(l Limits) Option {
	return func(c *Config) {
		c.Limits = l
	}
}
