package imgcore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/internal/stdcodec"
	"deedles.dev/imgcore/tiff"
	"deedles.dev/imgcore/webp"
)

type newDecoderFunc func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error)

// decoders holds the decoder for each format. Formats without one
// cannot be loaded.
var decoders = [formatCount]newDecoderFunc{
	PNG: func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error) {
		return stdcodec.NewPNG(r, opts...), nil
	},
	JPEG: func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error) {
		return stdcodec.NewJPEG(r, opts...), nil
	},
	GIF: func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error) {
		return stdcodec.NewGIF(r, opts...), nil
	},
	WEBP: func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error) {
		return webp.NewDecoder(r, opts...), nil
	},
	TIFF: func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error) {
		d, err := tiff.NewDecoder(r, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
	BMP: func(r io.ReadSeeker, opts []codec.Option) (codec.Decoder, error) {
		return stdcodec.NewBMP(r, opts...), nil
	},
}

// Load decodes an image of the given format from r. Palette images
// are expanded to ImageRgb8 when the decoder provides their color map.
func Load(r io.ReadSeeker, format ImageFormat, opts ...codec.Option) (DynamicImage, error) {
	if format >= formatCount || decoders[format] == nil {
		return nil, codec.Unsupportedf("a decoder for %v is not available", format)
	}

	d, err := decoders[format](r, opts)
	if err != nil {
		return nil, err
	}
	return DecoderToImage(d)
}

// LoadFromMemory decodes an image whose format is detected with
// GuessFormat.
func LoadFromMemory(buf []byte, opts ...codec.Option) (DynamicImage, error) {
	format, err := GuessFormat(buf)
	if err != nil {
		return nil, err
	}
	return LoadFromMemoryWithFormat(buf, format, opts...)
}

// LoadFromMemoryWithFormat decodes an image of the given format from
// buf.
func LoadFromMemoryWithFormat(buf []byte, format ImageFormat, opts ...codec.Option) (DynamicImage, error) {
	return Load(bytes.NewReader(buf), format, opts...)
}

// Open decodes the image in the named file, detecting its format from
// its leading bytes.
func Open(path string, opts ...codec.Option) (DynamicImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	var magic [16]byte
	n, err := io.ReadFull(file, magic[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read %v: %w", path, codec.WrapRead(err))
	}

	format, err := GuessFormat(magic[:n])
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("seek %v: %w", path, codec.WrapRead(err))
	}

	img, err := Load(file, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", path, err)
	}
	return img, nil
}
