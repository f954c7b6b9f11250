package codec

import (
	"errors"
	"fmt"
	"io"

	"deedles.dev/imgcore/pixel"
)

var (
	// ErrDimension indicates that an image's dimensions are zero, too
	// large to represent, or over the configured limits.
	ErrDimension = errors.New("image dimensions are either too small or too large")

	// ErrNotEnoughData indicates that the input ended before all of the
	// data required by the image's declared geometry had been read.
	ErrNotEnoughData = errors.New("not enough data was provided to decode the image")

	// ErrImageEnd indicates that there are no further images in the
	// input. Callers iterating over images should stop, not abort.
	ErrImageEnd = errors.New("the end of the image has been reached")
)

// FormatError indicates that the input is not a well-formed instance
// of its container format.
type FormatError struct {
	Detail string
}

// FormatErrorf returns a *FormatError with a formatted detail.
func FormatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Detail: fmt.Sprintf(format, args...)}
}

func (err *FormatError) Error() string {
	return "format error: " + err.Detail
}

// UnsupportedError indicates that the container was recognized but
// uses a feature, variant, or format that no available decoder
// handles.
type UnsupportedError struct {
	Detail string
}

// Unsupportedf returns an *UnsupportedError with a formatted detail.
func Unsupportedf(format string, args ...any) *UnsupportedError {
	return &UnsupportedError{Detail: fmt.Sprintf(format, args...)}
}

func (err *UnsupportedError) Error() string {
	return "unsupported: " + err.Detail
}

// UnsupportedColorError indicates that decoded samples have a layout
// that the consumer cannot represent.
type UnsupportedColorError struct {
	Color pixel.ColorType
}

func (err *UnsupportedColorError) Error() string {
	return fmt.Sprintf("unsupported color type %v", err.Color)
}

// IOError wraps a failure of the underlying reader.
type IOError struct {
	Err error
}

func (err *IOError) Error() string {
	return "i/o error: " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// WrapRead classifies an error returned while reading structurally
// required data. A premature end of input becomes ErrNotEnoughData,
// errors that already belong to this package are returned as is, and
// anything else is wrapped in an *IOError.
func WrapRead(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrNotEnoughData, err)
	}

	if known(err) {
		return err
	}

	return &IOError{Err: err}
}

func known(err error) bool {
	var (
		ferr  *FormatError
		uerr  *UnsupportedError
		cerr  *UnsupportedColorError
		ioerr *IOError
	)
	return errors.Is(err, ErrDimension) ||
		errors.Is(err, ErrNotEnoughData) ||
		errors.Is(err, ErrImageEnd) ||
		errors.As(err, &ferr) ||
		errors.As(err, &uerr) ||
		errors.As(err, &cerr) ||
		errors.As(err, &ioerr)
}
