package tiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpackPackBits(t *testing.T) {
	src := []byte{
		0xFE, 0xAA, 0x02, 0x80, 0x00, 0x2A, 0xFD, 0xAA, 0x03, 0x80,
		0x00, 0x2A, 0x22, 0xF7, 0xAA,
	}
	want := []byte{
		0xAA, 0xAA, 0xAA, 0x80, 0x00, 0x2A, 0xAA, 0xAA, 0xAA, 0xAA,
		0x80, 0x00, 0x2A, 0x22, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
		0xAA, 0xAA, 0xAA, 0xAA,
	}
	require.Equal(t, want, unpackPackBits(src))

	require.Equal(t, []byte{1, 2}, unpackPackBits([]byte{0x80, 0x01, 1, 2}))
	require.Equal(t, []byte{1}, unpackPackBits([]byte{0x03, 1}))
	require.Empty(t, unpackPackBits([]byte{0xFE}))
}

func TestUnpackSamples(t *testing.T) {
	raw := []byte{0b00011011, 0b11000000}
	require.Equal(t, []uint8{0, 1, 2, 3, 3}, unpackSamples[uint8](raw, 5, 2, []uint32{2}, BigEndian, false))
	require.Equal(t, []uint8{0, 85, 170, 255}, unpackSamples[uint8](raw[:1], 4, 1, []uint32{2}, BigEndian, true))

	// 12-bit samples straddle byte boundaries.
	twelve := []byte{0xAB, 0xC1, 0x23, 0xFF, 0xF0, 0x00}
	require.Equal(t, []uint16{0xABC, 0x123, 0xFFF, 0x000}, unpackSamples[uint16](twelve, 4, 6, []uint32{12}, BigEndian, false))
	require.Equal(t, []uint16{43978, 4657, 65535, 0}, unpackSamples[uint16](twelve, 4, 6, []uint32{12}, BigEndian, true))

	// Mixed depths widen to the deepest sample.
	mixed := []byte{0x80, 0x34, 0x12}
	require.Equal(t, []uint16{0x8080, 0x1234}, unpackSamples[uint16](mixed, 1, 3, []uint32{8, 16}, LittleEndian, true))
	require.Equal(t, []uint8{0x80, 182}, unpackSamples[uint8]([]byte{0x80, 0xA0}, 1, 2, []uint32{8, 3}, BigEndian, true))
}

func TestReadBits(t *testing.T) {
	buf := []byte{0b10110011, 0b01010101}
	require.Equal(t, uint64(0b1), readBits(buf, 0, 1))
	require.Equal(t, uint64(0b0110), readBits(buf, 1, 4))
	require.Equal(t, uint64(0b0011010), readBits(buf, 4, 7))
	require.Equal(t, uint64(0b1011001101010101), readBits(buf, 0, 16))
}

func TestInvertSamples(t *testing.T) {
	samples := []uint8{0, 255, 255, 255, 10, 20}
	invertSamples(samples, 2, 1)
	require.Equal(t, []uint8{255, 255, 0, 255, 245, 20}, samples)

	wide := []uint16{0, 1, 2}
	invertSamples(wide, 3, 3)
	require.Equal(t, []uint16{65535, 65534, 65533}, wide)
}

func TestUndoPredictor(t *testing.T) {
	samples := []uint16{1000, 65535, 2, 3}
	undoPredictor(samples, 2, 1)
	require.Equal(t, []uint16{1000, 999, 2, 5}, samples)
}
