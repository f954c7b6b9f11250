package imgcore

import (
	"fmt"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/pixel"
	"deedles.dev/imgcore/raster"
	"golang.org/x/image/draw"
)

// DynamicImage is a decoded image whose layout is only known at run
// time. It is always one of ImageLuma8, ImageLumaA8, ImageRgb8 or
// ImageRgba8, and callers are expected to use a type switch to get at
// the pixels.
type DynamicImage interface {
	ColorType() pixel.ColorType
	Dimensions() (width, height uint32)

	// Std returns the image as a draw.Image that shares its samples.
	Std() draw.Image

	dynamicImage()
}

type (
	ImageLuma8  struct{ *raster.GrayImage }
	ImageLumaA8 struct{ *raster.GrayAlphaImage }
	ImageRgb8   struct{ *raster.RgbImage }
	ImageRgba8  struct{ *raster.RgbaImage }
)

func (ImageLuma8) ColorType() pixel.ColorType  { return pixel.Gray(8) }
func (ImageLumaA8) ColorType() pixel.ColorType { return pixel.GrayAlpha(8) }
func (ImageRgb8) ColorType() pixel.ColorType   { return pixel.RGB(8) }
func (ImageRgba8) ColorType() pixel.ColorType  { return pixel.RGBA(8) }

func (ImageLuma8) dynamicImage()  {}
func (ImageLumaA8) dynamicImage() {}
func (ImageRgb8) dynamicImage()   {}
func (ImageRgba8) dynamicImage()  {}

// DecoderToImage decodes the image from d and wraps the samples in the
// DynamicImage variant matching d's color type. Palette images are
// expanded to ImageRgb8 if d is a codec.PaletteDecoder. Anything other
// than that or 8 bit gray, gray with alpha, RGB or RGBA fails with an
// *codec.UnsupportedColorError.
func DecoderToImage(d codec.Decoder) (DynamicImage, error) {
	w, h, err := d.Dimensions()
	if err != nil {
		return nil, err
	}

	ct, err := d.ColorType()
	if err != nil {
		return nil, err
	}
	if ct.Kind == pixel.KindPalette {
		pd, ok := d.(codec.PaletteDecoder)
		if !ok {
			return nil, &codec.UnsupportedColorError{Color: ct}
		}
		buf, err := expandPalette(pd, w, h, ct)
		if err != nil {
			return nil, err
		}
		return ImageRgb8{buf}, nil
	}
	if ct.Depth != 8 {
		return nil, &codec.UnsupportedColorError{Color: ct}
	}

	switch ct.Kind {
	case pixel.KindGray:
		buf, err := assemble[pixel.Luma](d, w, h, ct)
		if err != nil {
			return nil, err
		}
		return ImageLuma8{buf}, nil

	case pixel.KindGrayAlpha:
		buf, err := assemble[pixel.LumaAlpha](d, w, h, ct)
		if err != nil {
			return nil, err
		}
		return ImageLumaA8{buf}, nil

	case pixel.KindRGB:
		buf, err := assemble[pixel.Rgb](d, w, h, ct)
		if err != nil {
			return nil, err
		}
		return ImageRgb8{buf}, nil

	case pixel.KindRGBA:
		buf, err := assemble[pixel.Rgba](d, w, h, ct)
		if err != nil {
			return nil, err
		}
		return ImageRgba8{buf}, nil

	default:
		return nil, &codec.UnsupportedColorError{Color: ct}
	}
}

func assemble[L pixel.Layout](d codec.Decoder, w, h uint32, ct pixel.ColorType) (*raster.Buffer[L, uint8], error) {
	res, err := d.ReadImage()
	if err != nil {
		return nil, err
	}
	pix, ok := res.(codec.U8)
	if !ok {
		return nil, &codec.UnsupportedColorError{Color: pixel.ColorType{Kind: ct.Kind, Depth: uint8(res.BitDepth())}}
	}

	var l L
	if err := checkSamples(len(pix), w, h, l.Channels(), ct); err != nil {
		return nil, err
	}

	return raster.FromRaw[L](w, h, []uint8(pix))
}

// expandPalette looks up every index d produces in its color map.
func expandPalette(d codec.PaletteDecoder, w, h uint32, ct pixel.ColorType) (*raster.RgbImage, error) {
	pal, err := d.Palette()
	if err != nil {
		return nil, err
	}
	colors := make([]pixel.Rgb8, len(pal))
	for i, c := range pal {
		colors[i] = pixel.FromColor[pixel.Rgb, uint8](c)
	}

	res, err := d.ReadImage()
	if err != nil {
		return nil, err
	}
	var indices []int
	switch res := res.(type) {
	case codec.U8:
		indices = toInts(res)
	case codec.U16:
		indices = toInts(res)
	}
	if err := checkSamples(len(indices), w, h, 1, ct); err != nil {
		return nil, err
	}

	buf := raster.New[pixel.Rgb, uint8](w, h)
	c := buf.Cursor()
	for _, i := range indices {
		if i >= len(colors) {
			return nil, codec.FormatErrorf("palette index %d out of range for %d colors", i, len(colors))
		}
		c.Next()
		c.Set(colors[i])
	}
	return buf, nil
}

func toInts[T pixel.Primitive](s []T) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}

func checkSamples(n int, w, h uint32, channels int, ct pixel.ColorType) error {
	want := uint64(w) * uint64(h) * uint64(channels)
	switch n := uint64(n); {
	case n < want:
		return fmt.Errorf("%w: %d samples for a %dx%d %v image", codec.ErrNotEnoughData, n, w, h, ct)
	case n > want:
		return fmt.Errorf("%w: %d samples for a %dx%d %v image", codec.ErrDimension, n, w, h, ct)
	}
	return nil
}
