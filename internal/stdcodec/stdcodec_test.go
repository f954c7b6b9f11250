package stdcodec_test

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"deedles.dev/imgcore/codec"
	"deedles.dev/imgcore/internal/stdcodec"
	"deedles.dev/imgcore/pixel"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.Nil(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPNG(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})

	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	copy(gray.Pix, []byte{0, 128, 255})

	gray16 := image.NewGray16(image.Rect(0, 0, 2, 1))
	gray16.SetGray16(0, 0, color.Gray16{0x1234})
	gray16.SetGray16(1, 0, color.Gray16{0xFFFF})

	opaque := image.NewRGBA(image.Rect(0, 0, 1, 2))
	opaque.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})
	opaque.SetRGBA(0, 1, color.RGBA{4, 5, 6, 255})

	tests := []struct {
		name string
		img  image.Image
		ct   pixel.ColorType
		want codec.DecodingResult
	}{
		{"Translucent", nrgba, pixel.RGBA(8), codec.U8{10, 20, 30, 255, 0, 0, 0, 0}},
		{"Gray", gray, pixel.Gray(8), codec.U8{0, 128, 255}},
		{"Gray16", gray16, pixel.Gray(16), codec.U16{0x1234, 0xFFFF}},
		{"Opaque", opaque, pixel.RGB(8), codec.U8{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := stdcodec.NewPNG(bytes.NewReader(encodePNG(t, tt.img)))

			w, h, err := d.Dimensions()
			require.Nil(t, err)
			require.Equal(t, uint32(tt.img.Bounds().Dx()), w)
			require.Equal(t, uint32(tt.img.Bounds().Dy()), h)

			ct, err := d.ColorType()
			require.Nil(t, err)
			require.Equal(t, tt.ct, ct)

			res, err := d.ReadImage()
			require.Nil(t, err)
			if diff := cmp.Diff(tt.want, res); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestGIF(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9)
	img.SetColorIndex(1, 1, 255)

	var buf bytes.Buffer
	require.Nil(t, gif.Encode(&buf, img, nil))

	d := stdcodec.NewGIF(&buf)
	ct, err := d.ColorType()
	require.Nil(t, err)
	require.Equal(t, pixel.RGB(8), ct)

	res, err := d.ReadImage()
	require.Nil(t, err)
	require.Equal(t, 2*2*3, res.Len())

	r, g, b, _ := palette.Plan9[255].RGBA()
	require.Equal(t, codec.U8{byte(r >> 8), byte(g >> 8), byte(b >> 8)}, res.(codec.U8)[9:])
}

func TestBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{200, 100, 50, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})

	var buf bytes.Buffer
	require.Nil(t, bmp.Encode(&buf, img))

	d := stdcodec.NewBMP(&buf)
	res, err := d.ReadImage()
	require.Nil(t, err)
	require.Equal(t, codec.U8{200, 100, 50, 0, 0, 0}, res)
}

func TestJPEG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	var buf bytes.Buffer
	require.Nil(t, jpeg.Encode(&buf, img, nil))

	d := stdcodec.NewJPEG(&buf)
	ct, err := d.ColorType()
	require.Nil(t, err)
	require.Equal(t, pixel.Gray(8), ct)

	res, err := d.ReadImage()
	require.Nil(t, err)
	require.Equal(t, 64, res.Len())
}

func TestErrors(t *testing.T) {
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 4, 4)))

	_, _, err := stdcodec.NewPNG(bytes.NewReader(data[:12])).Dimensions()
	require.ErrorIs(t, err, codec.ErrNotEnoughData)

	var ferr *codec.FormatError
	_, _, err = stdcodec.NewPNG(bytes.NewReader([]byte("definitely not a PNG file"))).Dimensions()
	require.ErrorAs(t, err, &ferr)

	_, _, err = stdcodec.NewPNG(bytes.NewReader(data), codec.WithLimits(codec.Limits{MaxHeight: 2})).Dimensions()
	require.ErrorIs(t, err, codec.ErrDimension)
}
