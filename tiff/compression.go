package tiff

import (
	"bytes"
	"errors"
	"io"
	"math/bits"
	"slices"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/pixel"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/image/ccitt"
	"golang.org/x/image/tiff/lzw"
)

const (
	compressionNone       = 1
	compressionCCITTG3    = 3
	compressionCCITTG4    = 4
	compressionLZW        = 5
	compressionDeflate    = 8
	compressionPackBits   = 32773
	compressionDeflateOld = 32946
)

// decompress returns a reader of the decoded bytes of a strip or tile
// of width by rows pixels whose compressed data is src.
func (d *Decoder) decompress(src io.Reader, width, rows uint32) io.ReadCloser {
	if (d.fillOrder == 2) && (d.compression != compressionCCITTG3) && (d.compression != compressionCCITTG4) {
		if d.compression != compressionNone {
			d.throw(codec.Unsupportedf("fill order 2 with compression %d", d.compression))
		}
		return io.NopCloser(&reverseReader{r: src})
	}

	switch d.compression {
	case compressionNone:
		return io.NopCloser(src)

	case compressionLZW:
		return lzw.NewReader(src, lzw.MSB, 8)

	case compressionDeflate, compressionDeflateOld:
		r, err := zlib.NewReader(src)
		if err != nil {
			d.throw(stripError(d.compression, err))
		}
		return r

	case compressionPackBits:
		data, err := io.ReadAll(src)
		d.throw(codec.WrapRead(err))
		return io.NopCloser(bytes.NewReader(unpackPackBits(data)))

	case compressionCCITTG3, compressionCCITTG4:
		return io.NopCloser(d.ccittReader(src, width, rows))

	default:
		d.throw(codec.Unsupportedf("compression %d", d.compression))
		panic("unreachable")
	}
}

func (d *Decoder) ccittReader(src io.Reader, width, rows uint32) io.Reader {
	if (d.samples != 1) || (d.bitsPerSample[0] != 1) {
		d.throw(codec.FormatErrorf("CCITT compression with %d samples of %d bits", d.samples, d.bitsPerSample[0]))
	}

	sf := ccitt.Group4
	if d.compression == compressionCCITTG3 {
		sf = ccitt.Group3
		if d.first(TagT4Options, 0)&1 != 0 {
			d.throw(codec.Unsupportedf("two-dimensional Group 3 coding"))
		}
	}

	order := ccitt.MSB
	if d.fillOrder == 2 {
		order = ccitt.LSB
	}

	return ccitt.NewReader(src, order, sf, int(width), int(rows), &ccitt.Options{
		Invert: d.photometric == photometricWhiteIsZero,
	})
}

// stripError classifies an error from a strip's decompressor. A
// decompressor that fails for any reason other than running out of
// input is looking at corrupt data.
func stripError(compression uint32, err error) error {
	if (compression == compressionNone) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return codec.WrapRead(err)
	}
	return codec.FormatErrorf("compression %d: %v", compression, err)
}

// unpackPackBits decodes Macintosh PackBits run-length data. A
// truncated run ends the output early.
func unpackPackBits(src []byte) []byte {
	dst := make([]byte, 0, 2*len(src))
	for len(src) > 0 {
		n := int(int8(src[0]))
		src = src[1:]

		switch {
		case n >= 0:
			n++
			if n > len(src) {
				return append(dst, src...)
			}
			dst = append(dst, src[:n]...)
			src = src[n:]

		case n > -128:
			if len(src) == 0 {
				return dst
			}
			for range 1 - n {
				dst = append(dst, src[0])
			}
			src = src[1:]
		}
	}
	return dst
}

type reverseReader struct {
	r io.Reader
}

func (r *reverseReader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)
	for i, b := range buf[:n] {
		buf[i] = bits.Reverse8(b)
	}
	return n, err
}

// undoPredictor reverses the horizontal predictor, if any, of the
// decompressed rows of a strip or tile.
func (d *Decoder) undoPredictor(buf []byte, rowBytes int, bits uint32) {
	if d.predictor != 2 {
		return
	}

	stride := int(d.samples)
	switch bits {
	case 8:
		undoPredictor(buf, rowBytes, stride)
	case 16:
		samples := make([]uint16, len(buf)/2)
		for i := range samples {
			samples[i] = d.r.order.Uint16(buf[2*i:])
		}
		undoPredictor(samples, rowBytes/2, stride)
		for i, v := range samples {
			d.r.order.PutUint16(buf[2*i:], v)
		}
	}
}

// undoPredictor reverses horizontal differencing in place. Each row
// holds rowLen samples, and a sample is predicted from the one stride
// samples before it.
func undoPredictor[T pixel.Primitive](samples []T, rowLen, stride int) {
	for row := range slices.Chunk(samples, rowLen) {
		for i := stride; i < len(row); i++ {
			row[i] += row[i-stride]
		}
	}
}

// invertSamples inverts the first colors samples of every stride
// samples.
func invertSamples[T pixel.Primitive](samples []T, stride, colors int) {
	top := pixel.Max[T]()
	for i, v := range samples {
		if i%stride < colors {
			samples[i] = top - v
		}
	}
}

// unpackSamples unpacks rows of packed samples, most significant bits
// first, with the depths of a pixel's samples cycling through depths.
// Byte aligned 16-bit samples are read in the file's byte order. If
// scale is set, values are stretched to the full range of T.
func unpackSamples[T pixel.Primitive](raw []byte, width, rowBytes int, depths []uint32, order ByteOrder, scale bool) []T {
	rowLen := width * len(depths)
	out := make([]T, 0, len(raw)/rowBytes*rowLen)
	top := uint64(pixel.Max[T]())
	for row := range slices.Chunk(raw, rowBytes) {
		var bit int
		for i := range rowLen {
			depth := int(depths[i%len(depths)])

			var v uint64
			if (depth == 16) && (bit%8 == 0) {
				v = uint64(order.Uint16(row[bit/8:]))
			} else {
				v = readBits(row, bit, depth)
			}
			bit += depth

			if scale {
				v = v * top / (1<<depth - 1)
			}
			out = append(out, T(v))
		}
	}
	return out
}

// readBits reads n bits starting at bit off of buf, most significant
// first.
func readBits(buf []byte, off, n int) uint64 {
	var v uint64
	for i := off; i < off+n; i++ {
		b := buf[i/8] >> (7 - i%8) & 1
		v = v<<1 | uint64(b)
	}
	return v
}
