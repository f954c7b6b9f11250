package webp_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/pixel"
	"deedles.dev/imgcore/webp"
	"github.com/stretchr/testify/require"
)

// goldenLuma returns the Y plane stored in the top-left corner of a
// split-plane golden image.
func goldenLuma(t *testing.T, path string, w, h int) []byte {
	t.Helper()

	file, err := os.Open(path)
	require.Nil(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.Nil(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok)

	y := make([]byte, 0, w*h)
	for row := range h {
		off := gray.PixOffset(0, row)
		y = append(y, gray.Pix[off:off+w]...)
	}
	return y
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		golden string
		w, h   uint32
		known  map[[2]int]byte
	}{
		{
			name:   "Lossy",
			file:   "blue-purple-pink.lossy.webp",
			golden: "blue-purple-pink.lossy.webp.ycbcr.png",
			w:      150,
			h:      100,
			known:  map[[2]int]byte{{0, 0}: 31, {75, 50}: 159, {149, 99}: 30},
		},
		{
			name:   "ExtendedWithAlpha",
			file:   "yellow_rose.lossy-with-alpha.webp",
			golden: "yellow_rose.lossy-with-alpha.webp.nycbcra.png",
			w:      400,
			h:      301,
			known:  map[[2]int]byte{{0, 0}: 86, {200, 150}: 94, {399, 300}: 86},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", tt.file))
			require.Nil(t, err)

			d := webp.NewDecoder(bytes.NewReader(data))
			w, h, err := d.Dimensions()
			require.Nil(t, err)
			require.Equal(t, tt.w, w)
			require.Equal(t, tt.h, h)

			ct, err := d.ColorType()
			require.Nil(t, err)
			require.Equal(t, pixel.Gray(8), ct)

			res, err := d.ReadImage()
			require.Nil(t, err)
			luma, ok := res.(codec.U8)
			require.True(t, ok)
			require.Len(t, luma, int(w*h))

			for p, v := range tt.known {
				require.Equal(t, v, luma[p[1]*int(w)+p[0]], "luma at %v", p)
			}
			require.True(t, bytes.Equal(goldenLuma(t, filepath.Join("testdata", tt.golden), int(w), int(h)), luma))
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "blue-purple-pink.lossy.webp"))
	require.Nil(t, err)

	_, _, err = webp.NewDecoder(bytes.NewReader(data[:len(data)/2])).Dimensions()
	require.Error(t, err)
}
