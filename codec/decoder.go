// Package codec defines the contract between container decoders and
// the rest of the library, along with the errors decoders report.
package codec

import (
	"image/color"

	"deedles.dev/imgcore/pixel"
)

// Decoder is implemented by every container decoder.
//
// Dimensions and ColorType may be called before ReadImage and in any
// order. Implementations parse their header lazily on the first call
// to any method and remember the result.
type Decoder interface {
	// Dimensions returns the width and height of the image.
	Dimensions() (width, height uint32, err error)

	// ColorType returns the layout and depth of the samples that
	// ReadImage will produce.
	ColorType() (pixel.ColorType, error)

	// ReadImage decodes the whole image.
	ReadImage() (DecodingResult, error)
}

// PaletteDecoder is implemented by decoders of images whose samples
// are indices into a color map.
type PaletteDecoder interface {
	Decoder

	// Palette returns the color map. ReadImage yields one index into
	// it per pixel.
	Palette() (color.Palette, error)
}

// DecodingResult is the raw output of a decoder. It is either U8 or
// U16.
type DecodingResult interface {
	// Len returns the number of samples.
	Len() int

	// BitDepth returns the width of a single sample in bits.
	BitDepth() int

	result()
}

// U8 holds 8-bit samples.
type U8 []uint8

func (r U8) Len() int      { return len(r) }
func (r U8) BitDepth() int { return 8 }
func (U8) result()         {}

// U16 holds 16-bit samples.
type U16 []uint16

func (r U16) Len() int      { return len(r) }
func (r U16) BitDepth() int { return 16 }
func (U16) result()         {}
