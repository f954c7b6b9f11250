// Package tiff decodes baseline TIFF images stored in strips or tiles.
package tiff

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"maps"
	"slices"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/geom"
	"deedles.dev/imgcore/pixel"
	"deedles.dev/xiter"
)

// ErrTagNotFound is returned by the tag accessors of a Decoder when
// the current directory has no entry for the requested tag.
var ErrTagNotFound = errors.New("tag not found")

const (
	headerLittle = "II\x2A\x00"
	headerBig    = "MM\x00\x2A"
)

const (
	photometricWhiteIsZero = 0
	photometricBlackIsZero = 1
	photometricRGB         = 2
	photometricPalette     = 3
)

// maxValueSize bounds the size of a single out-of-line entry value.
const maxValueSize = 16 << 20

// Decoder reads the images of a TIFF file. The file's header and first
// directory are read by NewDecoder; NextImage moves to the next one.
type Decoder struct {
	r   *EndianReader
	cfg codec.Config
	err error

	ifd     Directory
	nextIFD uint32
	seen    map[uint32]struct{}

	width         uint32
	height        uint32
	bitsPerSample []uint32
	samples       uint32
	photometric   uint32
	compression   uint32
	predictor     uint32
	planar        uint32
	fillOrder     uint32
	tiled         bool
	chunkSize     geom.Point[uint32]
	offsets       []uint32
	counts        []uint32
}

// NewDecoder reads the header of the TIFF file in r and loads its first
// image directory. r must be positioned at the start of the file.
func NewDecoder(r io.ReadSeeker, opts ...codec.Option) (*Decoder, error) {
	d := Decoder{
		cfg:  codec.NewConfig(opts...),
		seen: make(map[uint32]struct{}),
	}
	err := d.init(r)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Decoder) init(r io.ReadSeeker) (err error) {
	defer d.catch(&err)

	d.header(r)
	d.readIFD()
	return nil
}

func (d *Decoder) header(r io.ReadSeeker) {
	d.r = NewEndianReader(r, LittleEndian)

	var buf [4]byte
	d.readFull(buf[:])
	switch string(buf[:]) {
	case headerLittle:
	case headerBig:
		d.r.order = BigEndian
	case "II\x2B\x00", "MM\x00\x2B":
		d.throw(codec.Unsupportedf("BigTIFF"))
	default:
		d.throw(codec.FormatErrorf("bad header %q", buf[:]))
	}

	d.nextIFD = d.u32()
	if d.nextIFD == 0 {
		d.throw(codec.FormatErrorf("no image file directory"))
	}

	codec.Logger().Debug("tiff: read header", "order", d.r.order, "ifd", d.nextIFD)
}

// ByteOrder returns the byte order of the file.
func (d *Decoder) ByteOrder() ByteOrder {
	return d.r.order
}

// Directory returns a copy of the current image's directory, including
// entries with tags this package does not know.
func (d *Decoder) Directory() Directory {
	return maps.Clone(d.ifd)
}

// MoreImages reports whether NextImage can move to another image.
func (d *Decoder) MoreImages() bool {
	return (d.err == nil) && (d.nextIFD != 0)
}

// NextImage loads the directory of the next image in the file. It
// returns codec.ErrImageEnd if the current image is the last one. Any
// other error leaves the decoder unusable.
func (d *Decoder) NextImage() (err error) {
	if d.err != nil {
		return d.err
	}
	if d.nextIFD == 0 {
		return codec.ErrImageEnd
	}

	defer func() { d.err = err }()
	defer d.catch(&err)

	d.readIFD()
	return nil
}

func (d *Decoder) readIFD() {
	off := d.nextIFD
	if _, ok := d.seen[off]; ok {
		d.throw(codec.FormatErrorf("directory at offset %d is referenced twice", off))
	}
	d.seen[off] = struct{}{}

	d.seek(off)
	n := d.u16()
	dir := make(Directory, n)
	for range n {
		tag := Tag(d.u16())
		e := Entry{Type: Type(d.u16()), Count: d.u32()}
		d.readFull(e.Offset[:])

		if !e.Type.Valid() {
			codec.Logger().Warn("tiff: skipping entry with invalid type", "tag", tag, "type", e.Type)
			continue
		}
		if _, ok := dir[tag]; ok {
			codec.Logger().Warn("tiff: skipping duplicate entry", "tag", tag)
			continue
		}
		dir[tag] = e
	}
	d.nextIFD = d.u32()
	d.ifd = dir

	d.parseIFD()

	codec.Logger().Debug("tiff: loaded directory",
		"offset", off,
		"entries", len(dir),
		"width", d.width,
		"height", d.height,
		"bits", d.bitsPerSample,
		"compression", d.compression,
		"next", d.nextIFD,
	)
}

func (d *Decoder) parseIFD() {
	d.width = d.required(TagImageWidth)[0]
	d.height = d.required(TagImageLength)[0]

	d.samples = d.first(TagSamplesPerPixel, 1)
	if d.samples == 0 {
		d.throw(codec.FormatErrorf("zero samples per pixel"))
	}

	bps, ok := d.values(TagBitsPerSample)
	switch {
	case !ok:
		bps = []uint32{1}
	case len(bps) == 0:
		d.throw(codec.FormatErrorf("%v has no values", TagBitsPerSample))
	}
	if (len(bps) == 1) && (d.samples > 1) {
		bps = slices.Repeat(bps, int(d.samples))
	}
	if uint32(len(bps)) != d.samples {
		d.throw(codec.FormatErrorf("%d bits per sample values for %d samples", len(bps), d.samples))
	}
	if slices.Contains(bps, 0) {
		d.throw(codec.FormatErrorf("zero bits per sample in %v", bps))
	}
	d.bitsPerSample = bps

	defPhotometric := uint32(photometricBlackIsZero)
	if d.samples >= 3 {
		defPhotometric = photometricRGB
	}
	if _, ok := d.ifd[TagPhotometricInterpretation]; !ok {
		codec.Logger().Warn("tiff: no photometric interpretation", "default", defPhotometric)
	}
	d.photometric = d.first(TagPhotometricInterpretation, defPhotometric)

	d.compression = d.first(TagCompression, compressionNone)
	d.predictor = d.first(TagPredictor, 1)
	d.planar = d.first(TagPlanarConfiguration, 1)
	d.fillOrder = d.first(TagFillOrder, 1)

	if _, d.tiled = d.ifd[TagTileWidth]; d.tiled {
		d.chunkSize = geom.Pt(d.required(TagTileWidth)[0], d.required(TagTileLength)[0])
		if (d.chunkSize.X == 0) || (d.chunkSize.Y == 0) {
			d.throw(codec.FormatErrorf("%v tiles", d.chunkSize))
		}
		d.offsets = d.required(TagTileOffsets)
		d.counts, _ = d.values(TagTileByteCounts)
	} else {
		rowsPerStrip := min(d.first(TagRowsPerStrip, d.height), d.height)
		if rowsPerStrip == 0 {
			d.throw(codec.FormatErrorf("zero rows per strip"))
		}
		d.chunkSize = geom.Pt(d.width, rowsPerStrip)
		d.offsets = d.required(TagStripOffsets)
		d.counts, _ = d.values(TagStripByteCounts)
	}

	bpp := int(d.samples * max(1, (slices.Max(d.bitsPerSample)+7)/8))
	d.throw(d.cfg.Limits.Check(d.width, d.height, bpp))
	if d.tiled {
		d.throw(d.cfg.Limits.Check(d.chunkSize.X, d.chunkSize.Y, bpp))
	}
}

// Dimensions returns the size of the current image.
func (d *Decoder) Dimensions() (width, height uint32, err error) {
	if d.err != nil {
		return 0, 0, d.err
	}
	return d.width, d.height, nil
}

// ColorType returns the layout of the samples that ReadImage produces
// for the current image. Samples of up to 8 bits are widened to 8 and
// deeper ones to 16, with mixed depths following the deepest sample.
// Palette indices keep their declared depth.
func (d *Decoder) ColorType() (pixel.ColorType, error) {
	if d.err != nil {
		return pixel.ColorType{}, d.err
	}

	bits := slices.Max(d.bitsPerSample)
	if bits > 16 {
		return pixel.ColorType{}, codec.Unsupportedf("%d bits per channel not supported", bits)
	}
	depth := uint8(8)
	if bits > 8 {
		depth = 16
	}

	switch d.photometric {
	case photometricWhiteIsZero, photometricBlackIsZero:
		switch d.samples {
		case 1:
			return pixel.Gray(depth), nil
		case 2:
			return pixel.GrayAlpha(depth), nil
		}
	case photometricRGB:
		switch d.samples {
		case 3:
			return pixel.RGB(depth), nil
		case 4:
			return pixel.RGBA(depth), nil
		}
	case photometricPalette:
		if d.samples == 1 {
			return pixel.Palette(uint8(bits)), nil
		}
	default:
		return pixel.ColorType{}, codec.Unsupportedf("photometric interpretation %d", d.photometric)
	}

	return pixel.ColorType{}, codec.Unsupportedf("%d samples per pixel with photometric interpretation %d", d.samples, d.photometric)
}

// ReadImage decodes the current image. The result holds
// width*height*samples values: 8-bit if no sample is deeper than 8
// bits, 16-bit otherwise. Shallower samples are widened to fill the
// result's range, except for palette indices, which are kept as is.
func (d *Decoder) ReadImage() (res codec.DecodingResult, err error) {
	if d.err != nil {
		return nil, d.err
	}

	defer d.catch(&err)

	bits := slices.Max(d.bitsPerSample)
	if bits > 16 {
		d.throw(codec.Unsupportedf("%d bits per channel not supported", bits))
	}
	d.checkSupported(bits)

	raw := d.readChunks(bits)

	// Only the gray sample is inverted. Extra samples, such as alpha,
	// are stored the same way for every photometric interpretation.
	invert := d.photometric == photometricWhiteIsZero
	stride := int(d.samples)
	if bits == 8 && d.uniformDepth() {
		if invert {
			invertSamples(raw, stride, 1)
		}
		return codec.U8(raw), nil
	}

	width, rowBytes := int(d.width), d.rowBytes(d.width)
	scale := d.photometric != photometricPalette
	if bits <= 8 {
		out := unpackSamples[uint8](raw, width, rowBytes, d.bitsPerSample, d.r.order, scale)
		if invert {
			invertSamples(out, stride, 1)
		}
		return codec.U8(out), nil
	}

	out := unpackSamples[uint16](raw, width, rowBytes, d.bitsPerSample, d.r.order, scale)
	if invert {
		invertSamples(out, stride, 1)
	}
	return codec.U16(out), nil
}

// Palette returns the color map of the current image, which must be a
// palette image. The map has one color for every possible index.
func (d *Decoder) Palette() (p color.Palette, err error) {
	if d.err != nil {
		return nil, d.err
	}

	defer d.catch(&err)

	if d.photometric != photometricPalette {
		d.throw(codec.FormatErrorf("photometric interpretation %d has no color map", d.photometric))
	}
	bits := d.bitsPerSample[0]
	if (d.samples != 1) || (bits > 16) {
		d.throw(codec.Unsupportedf("palette with %d samples of %d bits", d.samples, bits))
	}

	cmap, ok := d.values(TagColorMap)
	if !ok {
		d.throw(codec.FormatErrorf("palette image without %v", TagColorMap))
	}
	n := 1 << bits
	if len(cmap) != 3*n {
		d.throw(codec.FormatErrorf("%v has %d values, want %d", TagColorMap, len(cmap), 3*n))
	}

	p = make(color.Palette, n)
	for i := range p {
		p[i] = color.RGBA64{
			R: uint16(cmap[i]),
			G: uint16(cmap[n+i]),
			B: uint16(cmap[2*n+i]),
			A: 0xFFFF,
		}
	}
	return p, nil
}

func (d *Decoder) uniformDepth() bool {
	first := d.bitsPerSample[0]
	return !slices.ContainsFunc(d.bitsPerSample, func(b uint32) bool { return b != first })
}

func (d *Decoder) checkSupported(bits uint32) {
	if d.tiled && (d.rowBytes(d.chunkSize.X)*8 != int(d.chunkSize.X)*d.pixelBits()) {
		d.throw(codec.Unsupportedf("%d pixel wide tiles of %v bit samples", d.chunkSize.X, d.bitsPerSample))
	}
	if d.planar != 1 {
		d.throw(codec.Unsupportedf("planar configuration %d", d.planar))
	}

	switch d.predictor {
	case 1:
	case 2:
		if !d.uniformDepth() || ((bits != 8) && (bits != 16)) {
			d.throw(codec.Unsupportedf("horizontal predictor with %v bits per sample", d.bitsPerSample))
		}
	default:
		d.throw(codec.Unsupportedf("predictor %d", d.predictor))
	}

	if format, ok := d.values(TagSampleFormat); ok {
		if slices.ContainsFunc(format, func(v uint32) bool { return v != 1 }) {
			d.throw(codec.Unsupportedf("sample format %v", format))
		}
	}

	_, err := d.ColorType()
	d.throw(err)
}

// pixelBits returns the number of bits of a single pixel.
func (d *Decoder) pixelBits() int {
	var n int
	for _, b := range d.bitsPerSample {
		n += int(b)
	}
	return n
}

func (d *Decoder) rowBytes(width uint32) int {
	return (int(width)*d.pixelBits() + 7) / 8
}

// readChunks returns the decompressed samples of the current image,
// exactly rowBytes(width)*height bytes. The image is stored as a grid
// of strips or tiles, each compressed separately. Tiles on the edges of
// the image are padded to the full tile size, but the last strip only
// holds the rows that remain.
func (d *Decoder) readChunks(bits uint32) []byte {
	bounds := geom.Rt(0, 0, d.width, d.height)
	grid := geom.GridSize(bounds, d.chunkSize)
	if n := uint64(grid.X) * uint64(grid.Y); uint64(len(d.offsets)) < n {
		d.throw(fmt.Errorf("%w: %d of %d strips or tiles", codec.ErrNotEnoughData, len(d.offsets), n))
	}

	rowBytes := d.rowBytes(d.width)
	out := make([]byte, rowBytes*int(d.height))
	for i, chunk := range xiter.Enumerate(geom.TiledGrid(bounds, d.chunkSize)) {
		visible := chunk.Intersect(bounds)
		rows := chunk.Dy()
		if !d.tiled {
			rows = visible.Dy()
		}
		chunkRowBytes := d.rowBytes(chunk.Dx())
		buf := d.readChunk(i, chunk.Dx(), rows, chunkRowBytes*int(rows))
		d.undoPredictor(buf, chunkRowBytes, bits)

		n := d.rowBytes(visible.Dx())
		x := d.rowBytes(visible.Min.X)
		for y := range int(visible.Dy()) {
			row := (int(visible.Min.Y)+y)*rowBytes + x
			copy(out[row:row+n], buf[y*chunkRowBytes:])
		}
	}
	return out
}

// readChunk decompresses the i-th strip or tile, which has width
// pixels in each of its rows.
func (d *Decoder) readChunk(i int, width, rows uint32, want int) []byte {
	var size int64
	switch {
	case i < len(d.counts):
		size = int64(d.counts[i])
	case d.compression == compressionNone:
		size = int64(want)
	default:
		d.throw(codec.FormatErrorf("no byte count for strip or tile %d", i))
	}

	d.seek(d.offsets[i])
	r := d.decompress(io.LimitReader(d.r, size), width, rows)
	defer r.Close()

	buf := make([]byte, want)
	_, err := io.ReadFull(r, buf)
	if err != nil {
		d.throw(fmt.Errorf("read strip or tile %d: %w", i, stripError(d.compression, err)))
	}
	return buf
}

// Values returns the integer values of an entry in the current
// directory.
func (d *Decoder) Values(tag Tag) (v []uint32, err error) {
	if d.err != nil {
		return nil, d.err
	}

	defer d.catch(&err)

	v, ok := d.values(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrTagNotFound, tag)
	}
	return v, nil
}

// ASCII returns the value of an ASCII entry in the current directory
// without its terminating NUL.
func (d *Decoder) ASCII(tag Tag) (s string, err error) {
	if d.err != nil {
		return "", d.err
	}

	defer d.catch(&err)

	s, ok := d.ascii(tag)
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrTagNotFound, tag)
	}
	return s, nil
}

// Rationals returns the numerator and denominator pairs of a RATIONAL
// entry in the current directory.
func (d *Decoder) Rationals(tag Tag) (v [][2]uint32, err error) {
	if d.err != nil {
		return nil, d.err
	}

	defer d.catch(&err)

	e, ok := d.ifd[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrTagNotFound, tag)
	}
	if e.Type != TypeRational {
		d.throw(codec.FormatErrorf("%v has type %v, want %v", tag, e.Type, TypeRational))
	}

	buf := d.value(e)
	v = make([][2]uint32, e.Count)
	for i := range v {
		v[i] = [2]uint32{
			d.r.order.Uint32(buf[8*i:]),
			d.r.order.Uint32(buf[8*i+4:]),
		}
	}
	return v, nil
}

func (d *Decoder) values(tag Tag) ([]uint32, bool) {
	e, ok := d.ifd[tag]
	if !ok {
		return nil, false
	}

	buf := d.value(e)
	v := make([]uint32, e.Count)
	switch e.Type {
	case TypeByte, TypeUndefined:
		for i := range v {
			v[i] = uint32(buf[i])
		}
	case TypeShort:
		for i := range v {
			v[i] = uint32(d.r.order.Uint16(buf[2*i:]))
		}
	case TypeLong:
		for i := range v {
			v[i] = d.r.order.Uint32(buf[4*i:])
		}
	default:
		d.throw(codec.FormatErrorf("%v has type %v, want an integer type", tag, e.Type))
	}
	return v, true
}

func (d *Decoder) ascii(tag Tag) (string, bool) {
	e, ok := d.ifd[tag]
	if !ok {
		return "", false
	}
	if e.Type != TypeASCII {
		d.throw(codec.FormatErrorf("%v has type %v, want %v", tag, e.Type, TypeASCII))
	}

	return string(bytes.TrimRight(d.value(e), "\x00")), true
}

func (d *Decoder) first(tag Tag, def uint32) uint32 {
	v, ok := d.values(tag)
	if !ok {
		return def
	}
	if len(v) == 0 {
		d.throw(codec.FormatErrorf("%v has no values", tag))
	}
	return v[0]
}

func (d *Decoder) required(tag Tag) []uint32 {
	v, ok := d.values(tag)
	if !ok || (len(v) == 0) {
		d.throw(codec.FormatErrorf("missing required tag %v", tag))
	}
	return v
}

// value returns the raw bytes of an entry's value, reading them from
// the file if they are not inline.
func (d *Decoder) value(e Entry) []byte {
	size := e.Size()
	if e.IsInline() {
		return e.Offset[:size]
	}
	if size > maxValueSize {
		d.throw(codec.FormatErrorf("entry value of %d bytes is too large", size))
	}

	d.seek(d.r.order.Uint32(e.Offset[:]))
	buf := make([]byte, size)
	d.readFull(buf)
	return buf
}

func (d *Decoder) u16() uint16 {
	v, err := d.r.ReadU16()
	d.throw(codec.WrapRead(err))
	return v
}

func (d *Decoder) u32() uint32 {
	v, err := d.r.ReadU32()
	d.throw(codec.WrapRead(err))
	return v
}

func (d *Decoder) readFull(buf []byte) {
	_, err := io.ReadFull(d.r, buf)
	d.throw(codec.WrapRead(err))
}

func (d *Decoder) seek(off uint32) {
	d.throw(codec.WrapRead(d.r.SeekTo(int64(off))))
}

type decoderError struct {
	err error
}

func (d *Decoder) throw(err error) {
	if err != nil {
		panic(decoderError{err: err})
	}
}

func (d *Decoder) catch(err *error) {
	switch r := recover().(type) {
	case decoderError:
		*err = r.err
	case nil:
	default:
		panic(r)
	}
}
