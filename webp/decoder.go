// Package webp decodes the luma plane of lossy WEBP images.
package webp

import (
	"errors"
	"io"
	"slices"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/pixel"
	"golang.org/x/image/riff"
	"golang.org/x/image/vp8"
)

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccVP8  = riff.FourCC{'V', 'P', '8', ' '}
	fccVP8L = riff.FourCC{'V', 'P', '8', 'L'}
	fccVP8X = riff.FourCC{'V', 'P', '8', 'X'}
	fccANIM = riff.FourCC{'A', 'N', 'I', 'M'}
	fccANMF = riff.FourCC{'A', 'N', 'M', 'F'}
	fccALPH = riff.FourCC{'A', 'L', 'P', 'H'}
	fccICCP = riff.FourCC{'I', 'C', 'C', 'P'}
	fccEXIF = riff.FourCC{'E', 'X', 'I', 'F'}
	fccXMP  = riff.FourCC{'X', 'M', 'P', ' '}
)

const (
	vp8xHeaderSize    = 10
	vp8xAnimationFlag = 0x02
)

// Frame is a decoded luma plane. YBuf holds Width*Height samples with
// no padding between rows.
type Frame struct {
	Width  uint16
	Height uint16
	YBuf   []byte
}

// Decoder decodes a single WEBP image. Nothing is read from the
// underlying reader until one of its methods is called, and the result
// of the first read, successful or not, is reused by every later call.
type Decoder struct {
	r   *trackingReader
	cfg codec.Config
	err error

	frame       Frame
	haveFrame   bool
	decodedRows uint32
}

// NewDecoder returns a decoder that reads from r.
func NewDecoder(r io.Reader, opts ...codec.Option) *Decoder {
	return &Decoder{
		r:   &trackingReader{r: r},
		cfg: codec.NewConfig(opts...),
	}
}

func (d *Decoder) readMetadata() error {
	if d.haveFrame || (d.err != nil) {
		return d.err
	}

	d.err = d.decode()
	if d.err != nil {
		return d.err
	}
	d.haveFrame = true
	return nil
}

func (d *Decoder) decode() error {
	form, chunks, err := riff.NewReader(d.r)
	if err != nil {
		return d.wrap(err)
	}
	if form != fccWEBP {
		return codec.FormatErrorf("RIFF form %q is not WEBP", form[:])
	}

	for {
		id, size, data, err := chunks.Next()
		if err == io.EOF {
			return codec.FormatErrorf("no VP8 chunk")
		}
		if err != nil {
			return d.wrap(err)
		}

		codec.Logger().Debug("webp: chunk", "id", string(id[:]), "size", size)

		switch id {
		case fccVP8:
			return d.decodeVP8(data, int(size))

		case fccVP8L:
			return codec.Unsupportedf("lossless WEBP")

		case fccANIM, fccANMF:
			return codec.Unsupportedf("animated WEBP")

		case fccVP8X:
			if size < vp8xHeaderSize {
				return codec.FormatErrorf("VP8X chunk of %d bytes", size)
			}
			var header [vp8xHeaderSize]byte
			if _, err := io.ReadFull(data, header[:]); err != nil {
				return d.wrap(err)
			}
			if header[0]&vp8xAnimationFlag != 0 {
				return codec.Unsupportedf("animated WEBP")
			}

		case fccALPH, fccICCP, fccEXIF, fccXMP:
			codec.Logger().Debug("webp: ignoring chunk", "id", string(id[:]))

		default:
			codec.Logger().Warn("webp: skipping unknown chunk", "id", string(id[:]), "size", size)
		}
	}
}

func (d *Decoder) decodeVP8(data io.Reader, size int) error {
	dec := vp8.NewDecoder()
	dec.Init(data, size)

	fh, err := dec.DecodeFrameHeader()
	if err != nil {
		return d.wrap(err)
	}
	if !fh.KeyFrame {
		return codec.FormatErrorf("first VP8 frame is not a key frame")
	}

	width, height := uint32(fh.Width), uint32(fh.Height)
	if err := d.cfg.Limits.Check(width, height, 1); err != nil {
		return err
	}

	img, err := dec.DecodeFrame()
	if err != nil {
		return d.wrap(err)
	}

	buf := make([]byte, 0, int(width)*int(height))
	for y := range int(height) {
		off := img.YOffset(0, y)
		buf = append(buf, img.Y[off:off+int(width)]...)
	}

	d.frame = Frame{
		Width:  uint16(width),
		Height: uint16(height),
		YBuf:   buf,
	}
	d.decodedRows = height

	codec.Logger().Debug("webp: decoded frame", "width", width, "height", height)
	return nil
}

// wrap classifies an error from the RIFF or VP8 readers. Those report
// malformed input with plain errors, so anything that is not a read
// failure of the underlying reader is treated as a format error.
func (d *Decoder) wrap(err error) error {
	if d.r.err != nil {
		return codec.WrapRead(d.r.err)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return codec.WrapRead(err)
	}
	return codec.FormatErrorf("%v", err)
}

// Dimensions returns the size of the frame.
func (d *Decoder) Dimensions() (width, height uint32, err error) {
	err = d.readMetadata()
	if err != nil {
		return 0, 0, err
	}
	return uint32(d.frame.Width), uint32(d.frame.Height), nil
}

// ColorType returns pixel.Gray(8). Only the luma plane is decoded.
func (d *Decoder) ColorType() (pixel.ColorType, error) {
	err := d.readMetadata()
	if err != nil {
		return pixel.ColorType{}, err
	}
	return pixel.Gray(8), nil
}

// ReadImage returns a copy of the frame's luma samples.
func (d *Decoder) ReadImage() (codec.DecodingResult, error) {
	err := d.readMetadata()
	if err != nil {
		return nil, err
	}
	return codec.U8(slices.Clone(d.frame.YBuf)), nil
}

// trackingReader remembers the last error, other than io.EOF, returned
// by the reader it wraps.
type trackingReader struct {
	r   io.Reader
	err error
}

func (r *trackingReader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)
	if (err != nil) && (err != io.EOF) {
		r.err = err
	}
	return n, err
}
