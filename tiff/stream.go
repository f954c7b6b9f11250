package tiff

import (
	"bufio"
	"encoding/binary"
	"io"
)

// ByteOrder is the byte order of a TIFF file. It is fixed for the
// whole file by the file's first two bytes.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "BigEndian"
	}
	return "LittleEndian"
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uint16 decodes the first two bytes of b in byte order o.
func (o ByteOrder) Uint16(b []byte) uint16 { return o.binary().Uint16(b) }

// Uint32 decodes the first four bytes of b in byte order o.
func (o ByteOrder) Uint32(b []byte) uint32 { return o.binary().Uint32(b) }

// PutUint16 encodes v into the first two bytes of b in byte order o.
func (o ByteOrder) PutUint16(b []byte, v uint16) { o.binary().PutUint16(b, v) }

// EndianReader reads multi-byte integers in a fixed byte order and
// keeps track of its position so that it can jump to offsets stored
// in the file. Reads are buffered; a forward jump that lands inside the
// buffer is served from it instead of seeking.
type EndianReader struct {
	r     io.ReadSeeker
	br    *bufio.Reader
	order ByteOrder
	n     int64
	buf   [4]byte
}

// NewEndianReader returns a reader of r that is positioned at r's
// start.
func NewEndianReader(r io.ReadSeeker, order ByteOrder) *EndianReader {
	return &EndianReader{
		r:     r,
		br:    bufio.NewReader(r),
		order: order,
	}
}

// ByteOrder returns the byte order used for multi-byte reads.
func (r *EndianReader) ByteOrder() ByteOrder { return r.order }

// Offset returns the current position in the underlying stream.
func (r *EndianReader) Offset() int64 { return r.n }

func (r *EndianReader) Read(buf []byte) (int, error) {
	n, err := r.br.Read(buf)
	r.n += int64(n)
	return n, err
}

// ReadU16 reads an unsigned 16-bit integer.
func (r *EndianReader) ReadU16() (uint16, error) {
	if _, err := io.ReadFull(r, r.buf[:2]); err != nil {
		return 0, err
	}
	return r.order.Uint16(r.buf[:2]), nil
}

// ReadU32 reads an unsigned 32-bit integer.
func (r *EndianReader) ReadU32() (uint32, error) {
	if _, err := io.ReadFull(r, r.buf[:4]); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.buf[:4]), nil
}

// SeekTo moves to the absolute offset n.
func (r *EndianReader) SeekTo(n int64) error {
	diff := n - r.n
	if diff == 0 {
		return nil
	}

	if (diff > 0) && (diff <= int64(r.br.Buffered())) {
		disc, err := r.br.Discard(int(diff))
		r.n += int64(disc)
		return err
	}

	_, err := r.r.Seek(n, io.SeekStart)
	if err != nil {
		return err
	}
	r.br.Reset(r.r)
	r.n = n
	return nil
}
