// Package stdcodec adapts decoders written against the standard
// image.Image interface to codec.Decoder.
package stdcodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/pixel"
	"deedles.dev/imgcore/raster"
	"golang.org/x/image/bmp"
)

// Decoder decodes a whole image with a standard decoder the first
// time any of its methods is called.
type Decoder struct {
	r      io.Reader
	cfg    codec.Config
	name   string
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)

	img image.Image
	ct  pixel.ColorType
	err error
}

func newDecoder(
	r io.Reader,
	name string,
	decode func(io.Reader) (image.Image, error),
	config func(io.Reader) (image.Config, error),
	opts []codec.Option,
) *Decoder {
	return &Decoder{
		r:      r,
		cfg:    codec.NewConfig(opts...),
		name:   name,
		decode: decode,
		config: config,
	}
}

func NewPNG(r io.Reader, opts ...codec.Option) *Decoder {
	return newDecoder(r, "png", png.Decode, png.DecodeConfig, opts)
}

func NewJPEG(r io.Reader, opts ...codec.Option) *Decoder {
	return newDecoder(r, "jpeg", jpeg.Decode, jpeg.DecodeConfig, opts)
}

// NewGIF returns a decoder of the first frame of a GIF.
func NewGIF(r io.Reader, opts ...codec.Option) *Decoder {
	return newDecoder(r, "gif", gif.Decode, gif.DecodeConfig, opts)
}

func NewBMP(r io.Reader, opts ...codec.Option) *Decoder {
	return newDecoder(r, "bmp", bmp.Decode, bmp.DecodeConfig, opts)
}

func (d *Decoder) load() error {
	if (d.img != nil) || (d.err != nil) {
		return d.err
	}

	d.img, d.err = d.read()
	if d.err != nil {
		return d.err
	}
	d.ct = colorType(d.img)

	codec.Logger().Debug("stdcodec: decoded image", "format", d.name, "bounds", d.img.Bounds(), "color", d.ct)
	return nil
}

func (d *Decoder) read() (image.Image, error) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, codec.WrapRead(err)
	}

	config, err := d.config(bytes.NewReader(data))
	if err != nil {
		return nil, d.wrap(err)
	}
	err = d.cfg.Limits.Check(uint32(config.Width), uint32(config.Height), 4)
	if err != nil {
		return nil, err
	}

	img, err := d.decode(bytes.NewReader(data))
	if err != nil {
		return nil, d.wrap(err)
	}
	return img, nil
}

func (d *Decoder) wrap(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return codec.WrapRead(err)
	}

	if errors.As(err, new(png.UnsupportedError)) || errors.As(err, new(jpeg.UnsupportedError)) || errors.Is(err, bmp.ErrUnsupported) {
		return codec.Unsupportedf("%v: %v", d.name, err)
	}
	return codec.FormatErrorf("%v: %v", d.name, err)
}

// Dimensions returns the size of the image.
func (d *Decoder) Dimensions() (width, height uint32, err error) {
	err = d.load()
	if err != nil {
		return 0, 0, err
	}
	size := d.img.Bounds().Size()
	return uint32(size.X), uint32(size.Y), nil
}

// ColorType returns the layout the image is converted to. Palettes are
// expanded, and images without any translucent pixel lose their alpha
// channel.
func (d *Decoder) ColorType() (pixel.ColorType, error) {
	err := d.load()
	if err != nil {
		return pixel.ColorType{}, err
	}
	return d.ct, nil
}

func (d *Decoder) ReadImage() (codec.DecodingResult, error) {
	err := d.load()
	if err != nil {
		return nil, err
	}

	switch d.ct {
	case pixel.Gray(8):
		return codec.U8(raster.FromStd[pixel.Luma, uint8](d.img).Pix), nil
	case pixel.Gray(16):
		return codec.U16(raster.FromStd[pixel.Luma, uint16](d.img).Pix), nil
	case pixel.RGB(8):
		return codec.U8(raster.FromStd[pixel.Rgb, uint8](d.img).Pix), nil
	case pixel.RGB(16):
		return codec.U16(raster.FromStd[pixel.Rgb, uint16](d.img).Pix), nil
	case pixel.RGBA(8):
		return codec.U8(raster.FromStd[pixel.Rgba, uint8](d.img).Pix), nil
	case pixel.RGBA(16):
		return codec.U16(raster.FromStd[pixel.Rgba, uint16](d.img).Pix), nil
	default:
		return nil, &codec.UnsupportedColorError{Color: d.ct}
	}
}

func colorType(img image.Image) pixel.ColorType {
	opaque := isOpaque(img)
	switch img.ColorModel() {
	case color.GrayModel:
		return pixel.Gray(8)
	case color.Gray16Model:
		return pixel.Gray(16)
	case color.RGBA64Model, color.NRGBA64Model:
		if opaque {
			return pixel.RGB(16)
		}
		return pixel.RGBA(16)
	default:
		if opaque {
			return pixel.RGB(8)
		}
		return pixel.RGBA(8)
	}
}

func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}
