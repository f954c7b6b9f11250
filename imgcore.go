// Package imgcore loads images of several container formats into a
// common in-memory representation.
//
// Most callers only need Open or LoadFromMemory:
//
//	img, err := imgcore.Open("photo.tiff")
//	if err != nil {
//		return err
//	}
//	switch img := img.(type) {
//	case imgcore.ImageRgb8:
//		p := img.GetPixel(0, 0)
//		...
//	}
package imgcore

import (
	"fmt"
	"log/slog"

	"deedles.dev/imgcore/codec"
)

// ImageFormat is a container format known to the library.
type ImageFormat uint8

const (
	PNG ImageFormat = iota
	JPEG
	GIF
	WEBP
	PPM
	TIFF
	TGA
	BMP
	ICO

	formatCount
)

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case WEBP:
		return "WEBP"
	case PPM:
		return "PPM"
	case TIFF:
		return "TIFF"
	case TGA:
		return "TGA"
	case BMP:
		return "BMP"
	case ICO:
		return "ICO"
	default:
		return fmt.Sprintf("ImageFormat(%d)", uint8(f))
	}
}

// SetLogger sets the logger used by every decoder. See
// [codec.SetLogger].
func SetLogger(l *slog.Logger) {
	codec.SetLogger(l)
}
