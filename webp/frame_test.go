package webp

import (
	"testing"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/pixel"
	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	d := NewDecoder(nil)
	d.frame = Frame{
		Width:  3,
		Height: 2,
		YBuf:   []byte{1, 2, 3, 4, 5, 6},
	}
	d.haveFrame = true
	d.decodedRows = 2

	w, h, err := d.Dimensions()
	require.Nil(t, err)
	require.Equal(t, uint32(3), w)
	require.Equal(t, uint32(2), h)

	ct, err := d.ColorType()
	require.Nil(t, err)
	require.Equal(t, pixel.Gray(8), ct)

	res, err := d.ReadImage()
	require.Nil(t, err)
	require.Equal(t, codec.U8{1, 2, 3, 4, 5, 6}, res)

	res.(codec.U8)[0] = 100
	require.Equal(t, byte(1), d.frame.YBuf[0])
}
